package api

import (
	"landing-sequencer-service/internal/api/handlers"
	"landing-sequencer-service/internal/platform/metrics"
	"landing-sequencer-service/internal/ports"
	"landing-sequencer-service/internal/services"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
// collector may be nil, in which case /metrics is not served.
func NewRouter(
	provider ports.DatasetProvider,
	sourceName string,
	deps services.RunDeps,
	collector *metrics.SequencerCollector,
) http.Handler {
	mux := http.NewServeMux()

	if collector != nil && deps.Observer == nil {
		deps.Observer = collector
	}

	healthHandler := &handlers.HealthHandler{
		DatasetSource: sourceName,
		CacheEnabled:  deps.Cache != nil,
		RunsEnabled:   deps.Runs != nil,
	}
	scheduleHandler := &handlers.ScheduleHandler{
		Provider: provider,
		Deps:     deps,
	}
	runsHandler := &handlers.RunsHandler{Runs: deps.Runs}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/run-schedule", scheduleHandler.Run)
	mux.HandleFunc("/schedules", scheduleHandler.Sequence)
	mux.HandleFunc("/runs", runsHandler.List)
	if collector != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(collector.Gatherer(), promhttp.HandlerOpts{}))
	}

	routes := map[string]struct{}{
		"/health":       {},
		"/run-schedule": {},
		"/schedules":    {},
		"/runs":         {},
		"/metrics":      {},
	}

	return loggingMiddleware(mux, collector, routes)
}
