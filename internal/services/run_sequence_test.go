package services

import (
	"context"
	"errors"
	"landing-sequencer-service/internal/adapters/dataset"
	"landing-sequencer-service/internal/domain"
	"landing-sequencer-service/internal/ports"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCache struct {
	entries map[string]*domain.SchedulingResult
	puts    int
	getErr  error
}

func (m *memoryCache) Get(ctx context.Context, fp string) (*domain.SchedulingResult, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	r, ok := m.entries[fp]
	return r, ok, nil
}

func (m *memoryCache) Put(ctx context.Context, fp string, r *domain.SchedulingResult) error {
	if m.entries == nil {
		m.entries = map[string]*domain.SchedulingResult{}
	}
	m.entries[fp] = r
	m.puts++
	return nil
}

type failingRuns struct{}

func (failingRuns) RecordRun(context.Context, string, string, *domain.SchedulingResult) (int64, error) {
	return 0, errors.New("db down")
}

func (failingRuns) ListRuns(context.Context, int) ([]ports.RunSummary, error) {
	return nil, errors.New("db down")
}

type countingObserver struct {
	runs, cached int
}

func (c *countingObserver) ObserveRun(_ time.Duration, _ *domain.SchedulingResult, cached bool) {
	c.runs++
	if cached {
		c.cached++
	}
}

func testDataset() domain.Dataset {
	return domain.Dataset{
		Name: "two",
		Aircraft: []domain.Aircraft{
			plane(0, 0, 5, 10, 1, 1),
			plane(1, 8, 8, 9, 1, 1),
		},
		Separation: domain.SeparationMatrix{{0, 3}, {5, 0}},
	}
}

func TestRunSequenceUsesCache(t *testing.T) {
	cache := &memoryCache{}
	observer := &countingObserver{}
	provider := dataset.NewStaticDatasetProvider(testDataset())
	deps := RunDeps{Cache: cache, Observer: observer}

	first, err := RunSequence(context.Background(), provider, deps)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, "two", first.Dataset)
	assert.Equal(t, 1, cache.puts)

	second, err := RunSequence(context.Background(), provider, deps)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Fingerprint, second.Fingerprint)
	assert.Equal(t, first.Result, second.Result)
	assert.Equal(t, 1, cache.puts)

	assert.Equal(t, 2, observer.runs)
	assert.Equal(t, 1, observer.cached)
}

func TestRunSequenceProviderFailureSkipsSequencer(t *testing.T) {
	observer := &countingObserver{}
	provider := dataset.NewFailingDatasetProvider(errors.New("download failed"))

	_, err := RunSequence(context.Background(), provider, RunDeps{Observer: observer})
	require.ErrorIs(t, err, ErrDatasetUnavailable)
	assert.Contains(t, err.Error(), "download failed")
	assert.Zero(t, observer.runs)
}

func TestRunSequenceNilProvider(t *testing.T) {
	_, err := RunSequence(context.Background(), nil, RunDeps{})
	require.Error(t, err)
}

func TestSequenceDatasetToleratesCollaboratorFailures(t *testing.T) {
	cache := &memoryCache{getErr: errors.New("redis down")}

	out, err := SequenceDataset(context.Background(), testDataset(), RunDeps{Cache: cache, Runs: failingRuns{}})
	require.NoError(t, err)
	assert.False(t, out.Cached)
	assert.Zero(t, out.RunID)
	assert.Equal(t, 1, out.Result.TotalScheduled())
	assert.Equal(t, 1, out.Result.TotalDiverted())
}

func TestSequenceDatasetInvalidShape(t *testing.T) {
	ds := testDataset()
	ds.Separation = domain.SeparationMatrix{{0}}

	_, err := SequenceDataset(context.Background(), ds, RunDeps{})
	require.ErrorIs(t, err, domain.ErrInvalidInputShape)
}

func TestFingerprint(t *testing.T) {
	ds := testDataset()
	fp := Fingerprint(ds)

	renamed := testDataset()
	renamed.Name = "other"
	assert.Equal(t, fp, Fingerprint(renamed), "name is not part of the fingerprint")

	changed := testDataset()
	changed.Aircraft[1].LatePenalty = 1.5
	assert.NotEqual(t, fp, Fingerprint(changed))

	sep := testDataset()
	sep.Separation[1][0] = 6
	assert.NotEqual(t, fp, Fingerprint(sep))
}
