package ports

import (
	"context"
	"landing-sequencer-service/internal/domain"
)

// Contract for caching sequencing results by dataset fingerprint.
type ResultCache interface {
	// Return the cached result and true, or false on a miss.
	Get(ctx context.Context, fingerprint string) (*domain.SchedulingResult, bool, error)
	// Store a result under the given fingerprint.
	Put(ctx context.Context, fingerprint string, result *domain.SchedulingResult) error
}
