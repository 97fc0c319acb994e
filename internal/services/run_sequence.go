package services

import (
	"context"
	"errors"
	"fmt"
	"landing-sequencer-service/internal/domain"
	"landing-sequencer-service/internal/platform/obs"
	"landing-sequencer-service/internal/ports"
	"log"
	"time"
)

// ErrDatasetUnavailable wraps failures of the dataset provider. The
// sequencer is not invoked when it is returned.
var ErrDatasetUnavailable = errors.New("dataset unavailable")

// RunObserver receives one notification per completed run.
type RunObserver interface {
	ObserveRun(dur time.Duration, result *domain.SchedulingResult, cached bool)
}

// RunDeps are the optional collaborators of a run. Any of them may be nil.
type RunDeps struct {
	Cache    ports.ResultCache
	Runs     ports.RunRepository
	Observer RunObserver
}

type RunOutput struct {
	Dataset     string
	Fingerprint string
	Result      *domain.SchedulingResult
	Cached      bool
	RunID       int64
}

// RunSequence loads the dataset from provider and sequences it.
// If the provider fails, the sequencer is never invoked.
func RunSequence(
	ctx context.Context,
	provider ports.DatasetProvider,
	deps RunDeps,
) (*RunOutput, error) {
	if provider == nil {
		return nil, errors.New("run sequence: dataset provider is nil")
	}

	ds, err := provider.LoadDataset(ctx)
	if err != nil {
		return nil, fmt.Errorf("run sequence: %w: %w", ErrDatasetUnavailable, err)
	}

	out, err := SequenceDataset(ctx, ds, deps)
	if err != nil {
		return nil, fmt.Errorf("run sequence: %w", err)
	}

	return out, nil
}

// SequenceDataset sequences an already-loaded dataset, consulting the result
// cache first and recording the run afterwards. Cache and repository
// failures are logged and do not fail the run.
func SequenceDataset(
	ctx context.Context,
	ds domain.Dataset,
	deps RunDeps,
) (_ *RunOutput, err error) {
	defer obs.Time(ctx, "services.SequenceDataset")(&err)

	start := time.Now()
	out := &RunOutput{
		Dataset:     ds.Name,
		Fingerprint: Fingerprint(ds),
	}

	if deps.Cache != nil {
		cached, ok, err := deps.Cache.Get(ctx, out.Fingerprint)
		if err != nil {
			log.Printf("result cache read failed: fingerprint=%s err=%v", out.Fingerprint, err)
		} else if ok {
			out.Result = cached
			out.Cached = true
		}
	}

	if out.Result == nil {
		result, err := Sequence(ds.Aircraft, ds.Separation)
		if err != nil {
			return nil, fmt.Errorf("sequence dataset %q: %w", ds.Name, err)
		}
		out.Result = result

		if deps.Cache != nil {
			if err := deps.Cache.Put(ctx, out.Fingerprint, result); err != nil {
				log.Printf("result cache write failed: fingerprint=%s err=%v", out.Fingerprint, err)
			}
		}
	}

	if deps.Runs != nil {
		id, err := deps.Runs.RecordRun(ctx, ds.Name, out.Fingerprint, out.Result)
		if err != nil {
			log.Printf("run record failed: dataset=%s err=%v", ds.Name, err)
		} else {
			out.RunID = id
		}
	}

	if deps.Observer != nil {
		deps.Observer.ObserveRun(time.Since(start), out.Result, out.Cached)
	}

	return out, nil
}
