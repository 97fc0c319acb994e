package handlers

import (
	"net/http"
)

// HealthHandler provides a minimal liveness check that also reports which
// optional collaborators are wired.
type HealthHandler struct {
	DatasetSource string
	CacheEnabled  bool
	RunsEnabled   bool
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	res := map[string]any{
		"status":         "ok",
		"dataset_source": h.DatasetSource,
		"result_cache":   h.CacheEnabled,
		"run_history":    h.RunsEnabled,
	}
	writeJSON(w, r, http.StatusOK, res)
}
