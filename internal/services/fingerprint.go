package services

import (
	"encoding/binary"
	"landing-sequencer-service/internal/domain"
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint hashes the aircraft list (in input order) and the N×N
// separation block it indexes. Identical inputs always sequence to identical
// results, so the fingerprint is a safe cache key. The dataset name is not
// part of the hash.
func Fingerprint(ds domain.Dataset) string {
	h := xxhash.New()
	var buf [8]byte

	writeInt := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
		_, _ = h.Write(buf[:])
	}
	writeFloat := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = h.Write(buf[:])
	}

	n := len(ds.Aircraft)
	writeInt(n)
	for _, a := range ds.Aircraft {
		writeInt(len(a.FlightID))
		_, _ = h.WriteString(a.FlightID)
		writeInt(a.OriginalIndex)
		writeInt(a.ELT)
		writeInt(a.TLT)
		writeInt(a.LLT)
		writeFloat(a.EarlyPenalty)
		writeFloat(a.LatePenalty)
	}

	for i := 0; i < n && i < len(ds.Separation); i++ {
		row := ds.Separation[i]
		for j := 0; j < n && j < len(row); j++ {
			writeInt(row[j])
		}
	}

	return strconv.FormatUint(h.Sum64(), 16)
}
