package ports

import (
	"context"
	"landing-sequencer-service/internal/domain"
)

// Port: a boundary for acquiring the aircraft and separation data of a run.
type DatasetProvider interface {
	// Load the dataset to be sequenced. Implementations must return an error
	// rather than a partial dataset when acquisition fails.
	LoadDataset(ctx context.Context) (domain.Dataset, error)
}
