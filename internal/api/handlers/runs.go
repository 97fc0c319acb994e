package handlers

import (
	"landing-sequencer-service/internal/api/dto"
	"landing-sequencer-service/internal/ports"
	"log"
	"net/http"
	"strconv"
)

// RunsHandler exposes read-only run history.
type RunsHandler struct {
	Runs ports.RunRepository
}

func (h *RunsHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if h.Runs == nil {
		writeError(w, r, http.StatusNotFound, "run history is not configured")
		return
	}

	limit := 20
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 500 {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		limit = n
	}

	runs, err := h.Runs.ListRuns(r.Context(), limit)
	if err != nil {
		log.Printf("list runs failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListRunsResponse{Runs: make([]dto.RunResponse, 0, len(runs))}
	for _, run := range runs {
		res.Runs = append(res.Runs, dto.RunResponse{
			RunID:          run.RunID,
			Dataset:        run.Dataset,
			Fingerprint:    run.Fingerprint,
			TotalCost:      run.TotalCost,
			TotalScheduled: run.TotalScheduled,
			TotalDiverted:  run.TotalDiverted,
			CreatedAt:      run.CreatedAt,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
