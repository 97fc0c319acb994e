package metrics

import (
	"landing-sequencer-service/internal/domain"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRunCountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewSequencerCollector(reg)
	require.NoError(t, err)

	result := &domain.SchedulingResult{
		Schedule:  make([]domain.ScheduleEntry, 3),
		Diverted:  make([]domain.Aircraft, 1),
		TotalCost: 42.5,
	}

	c.ObserveRun(5*time.Millisecond, result, false)
	c.ObserveRun(time.Millisecond, result, true)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.Runs.WithLabelValues("false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Runs.WithLabelValues("true")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.AircraftOutcome.WithLabelValues("accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.AircraftOutcome.WithLabelValues("diverted")))
	assert.Equal(t, 42.5, testutil.ToFloat64(c.LastTotalCost))
	assert.Equal(t, 1, testutil.CollectAndCount(c.RunDuration))
}

func TestObserveHTTP(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewSequencerCollector(reg)
	require.NoError(t, err)

	c.ObserveHTTP("GET", "/run-schedule", 200, 10*time.Millisecond)
	c.ObserveHTTP("GET", "/run-schedule", 502, 10*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("GET", "/run-schedule", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("GET", "/run-schedule", "502")))
}

func TestNewSequencerCollectorReusesRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewSequencerCollector(reg)
	require.NoError(t, err)
	second, err := NewSequencerCollector(reg)
	require.NoError(t, err)

	first.ObserveRun(time.Millisecond, nil, false)
	assert.Equal(t, 1.0, testutil.ToFloat64(second.Runs.WithLabelValues("false")))
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *SequencerCollector
	c.ObserveRun(time.Millisecond, nil, false)
	c.ObserveHTTP("GET", "/", 200, time.Millisecond)
	assert.Nil(t, c.Gatherer())
}
