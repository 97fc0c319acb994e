package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"landing-sequencer-service/internal/api/dto"
	"landing-sequencer-service/internal/domain"
	"landing-sequencer-service/internal/ports"
	"landing-sequencer-service/internal/services"
	"log"
	"net/http"
	"strings"
)

const maxSequenceBody = 4 << 20

// ScheduleHandler exposes the landing sequencer over HTTP. It translates
// requests and responses only; sequencing happens in services.
type ScheduleHandler struct {
	Provider ports.DatasetProvider
	Deps     services.RunDeps
}

// Run sequences the configured dataset.
func (h *ScheduleHandler) Run(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	out, err := services.RunSequence(r.Context(), h.Provider, h.Deps)
	if err != nil {
		log.Printf("run schedule failed: %v", err)
		writeRunError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toScheduleResponse(out))
}

// Sequence sequences a dataset supplied in the request body.
func (h *ScheduleHandler) Sequence(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.SequenceRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSequenceBody))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "request"
	}

	ds := domain.Dataset{
		Name:       name,
		Aircraft:   make([]domain.Aircraft, 0, len(req.Aircraft)),
		Separation: domain.SeparationMatrix(req.Separation),
	}
	for i, a := range req.Aircraft {
		idx := i
		if a.OriginalIndex != nil {
			idx = *a.OriginalIndex
		}
		ds.Aircraft = append(ds.Aircraft, domain.Aircraft{
			FlightID:      a.FlightID,
			OriginalIndex: idx,
			ELT:           a.ELT,
			TLT:           a.TLT,
			LLT:           a.LLT,
			EarlyPenalty:  a.EarlyPenalty,
			LatePenalty:   a.LatePenalty,
		})
	}

	out, err := services.SequenceDataset(r.Context(), ds, h.Deps)
	if err != nil {
		log.Printf("sequence request failed: %v", err)
		writeRunError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toScheduleResponse(out))
}

func writeRunError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrDatasetUnavailable):
		writeError(w, r, http.StatusBadGateway, "dataset unavailable")
	case errors.Is(err, domain.ErrInvalidInputShape):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func toScheduleResponse(out *services.RunOutput) dto.ScheduleResponse {
	resp := dto.NewScheduleResponse(out.Result)
	resp.Dataset = out.Dataset
	resp.Fingerprint = out.Fingerprint
	resp.Cached = out.Cached
	resp.RunID = out.RunID
	return resp
}
