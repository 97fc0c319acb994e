package metrics

import (
	"errors"
	"fmt"
	"landing-sequencer-service/internal/domain"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SequencerCollector exposes sequencing and HTTP metrics.
type SequencerCollector struct {
	gatherer prometheus.Gatherer

	Runs            *prometheus.CounterVec
	AircraftOutcome *prometheus.CounterVec
	RunDuration     prometheus.Histogram
	LastTotalCost   prometheus.Gauge
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
}

// NewSequencerCollector registers the collector's metrics against reg, or the
// default registerer when reg is nil. Registering twice reuses the existing
// collectors.
func NewSequencerCollector(reg prometheus.Registerer) (*SequencerCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	runs, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sequencer_runs_total",
		Help: "Completed sequencing runs, by whether the result came from cache.",
	}, []string{"cached"}), "sequencer_runs_total")
	if err != nil {
		return nil, err
	}

	outcomes, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sequencer_aircraft_total",
		Help: "Aircraft processed by the sequencer, by outcome.",
	}, []string{"outcome"}), "sequencer_aircraft_total")
	if err != nil {
		return nil, err
	}

	duration, err := register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sequencer_run_duration_seconds",
		Help:    "Duration of sequencing runs including cache lookups and run recording.",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}), "sequencer_run_duration_seconds")
	if err != nil {
		return nil, err
	}

	cost, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sequencer_last_total_cost",
		Help: "Total deviation cost of the most recent run.",
	}), "sequencer_last_total_cost")
	if err != nil {
		return nil, err
	}

	httpRequests, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests served, by method, path and status.",
	}, []string{"method", "path", "status"}), "http_requests_total")
	if err != nil {
		return nil, err
	}

	httpDuration, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency, by method and path.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"}), "http_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	return &SequencerCollector{
		gatherer:        gatherer,
		Runs:            runs,
		AircraftOutcome: outcomes,
		RunDuration:     duration,
		LastTotalCost:   cost,
		HTTPRequests:    httpRequests,
		HTTPDuration:    httpDuration,
	}, nil
}

// Gatherer returns the Prometheus gatherer associated with the collector.
func (c *SequencerCollector) Gatherer() prometheus.Gatherer {
	if c == nil {
		return nil
	}
	return c.gatherer
}

// ObserveRun records one completed run. Cached runs count towards runs and
// duration only; aircraft outcomes are counted when actually sequenced.
func (c *SequencerCollector) ObserveRun(dur time.Duration, result *domain.SchedulingResult, cached bool) {
	if c == nil {
		return
	}
	c.Runs.WithLabelValues(strconv.FormatBool(cached)).Inc()
	c.RunDuration.Observe(dur.Seconds())

	if result == nil {
		return
	}
	c.LastTotalCost.Set(result.TotalCost)
	if !cached {
		c.AircraftOutcome.WithLabelValues(domain.Accepted.String()).Add(float64(result.TotalScheduled()))
		c.AircraftOutcome.WithLabelValues(domain.Diverted.String()).Add(float64(result.TotalDiverted()))
	}
}

// ObserveHTTP records one served request.
func (c *SequencerCollector) ObserveHTTP(method, path string, status int, dur time.Duration) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, path).Observe(dur.Seconds())
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T, name string) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
			var zero T
			return zero, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		var zero T
		return zero, err
	}
	return c, nil
}
