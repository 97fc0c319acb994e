package ports

import (
	"context"
	"landing-sequencer-service/internal/domain"
	"time"
)

// Summary of a recorded sequencing run.
type RunSummary struct {
	RunID          int64
	Dataset        string
	Fingerprint    string
	TotalCost      float64
	TotalScheduled int
	TotalDiverted  int
	CreatedAt      time.Time
}

// Port: persistence for completed sequencing runs.
type RunRepository interface {
	// Record a completed run and return its identifier.
	RecordRun(ctx context.Context, dataset string, fingerprint string, result *domain.SchedulingResult) (int64, error)
	// List the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]RunSummary, error)
}
