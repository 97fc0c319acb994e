package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInputShape reports aircraft and separation data that cannot
	// index each other: a matrix smaller than N×N, or an OriginalIndex that
	// is outside [0, N) or used twice.
	ErrInvalidInputShape = errors.New("invalid input shape")

	// ErrMalformedDataset reports dataset text that cannot be parsed.
	ErrMalformedDataset = errors.New("malformed dataset")
)

// SeparationMatrix holds minimum landing separations in time units.
// sep[i][j] is the gap required when aircraft j lands right after aircraft i.
// It is not assumed to be symmetric and the diagonal is never read.
type SeparationMatrix [][]int

// Between returns the separation required when follow lands right after lead.
func (m SeparationMatrix) Between(lead, follow int) int {
	return m[lead][follow]
}

// Validate checks that the matrix can be indexed by every OriginalIndex of
// aircraft. It is at least N×N with N = len(aircraft), and the indices form
// a permutation of 0..N-1.
func (m SeparationMatrix) Validate(aircraft []Aircraft) error {
	n := len(aircraft)
	if n == 0 {
		return nil
	}

	if len(m) < n {
		return fmt.Errorf("%w: separation matrix has %d rows, need at least %d", ErrInvalidInputShape, len(m), n)
	}
	for i, row := range m[:n] {
		if len(row) < n {
			return fmt.Errorf("%w: separation row %d has %d columns, need at least %d", ErrInvalidInputShape, i, len(row), n)
		}
	}

	seen := make(map[int]string, n)
	for _, a := range aircraft {
		if a.OriginalIndex < 0 || a.OriginalIndex >= n {
			return fmt.Errorf(
				"%w: aircraft %q original index %d outside [0, %d)",
				ErrInvalidInputShape, a.FlightID, a.OriginalIndex, n,
			)
		}
		if other, ok := seen[a.OriginalIndex]; ok {
			return fmt.Errorf(
				"%w: aircraft %q and %q share original index %d",
				ErrInvalidInputShape, other, a.FlightID, a.OriginalIndex,
			)
		}
		seen[a.OriginalIndex] = a.FlightID
	}

	return nil
}
