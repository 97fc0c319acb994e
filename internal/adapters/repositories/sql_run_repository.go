package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"landing-sequencer-service/internal/domain"
	"landing-sequencer-service/internal/platform/obs"
	"landing-sequencer-service/internal/ports"
)

// SQL-backed implementation of the RunRepository port.
type SQLRunRepository struct{ DB *sql.DB }

func NewSQLRunRepository(db *sql.DB) *SQLRunRepository {
	return &SQLRunRepository{DB: db}
}

// Record a run and one entry row per aircraft, in processing order.
func (s *SQLRunRepository) RecordRun(
	ctx context.Context,
	dataset string,
	fingerprint string,
	result *domain.SchedulingResult,
) (_ int64, err error) {
	defer obs.Time(ctx, "runs.sql.RecordRun")(&err)

	if s.DB == nil {
		return 0, errors.New("sql run repository: DB is nil")
	}
	if result == nil {
		return 0, errors.New("record run: result is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("record run: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var runID int64
	err = tx.QueryRowContext(ctx, `
	INSERT INTO schedule_runs (dataset, fingerprint, total_cost, total_scheduled, total_diverted)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING run_id;
	`, dataset, fingerprint, result.TotalCost, result.TotalScheduled(), result.TotalDiverted()).Scan(&runID)
	if err != nil {
		return 0, fmt.Errorf("record run: insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO schedule_run_entries (
        run_id,
        position,
        flight_id,
        original_index,
        outcome,
        actual_landing_time,
        deviation_cost
    )
    VALUES ($1, $2, $3, $4, $5, $6, $7);
	`)
	if err != nil {
		return 0, fmt.Errorf("record run: prepare entry insert: %w", err)
	}
	defer stmt.Close()

	accepted := make(map[int]domain.ScheduleEntry, len(result.Schedule))
	for _, e := range result.Schedule {
		accepted[e.OriginalIndex] = e
	}

	for pos, d := range result.Decisions {
		var landing sql.NullInt64
		var cost sql.NullFloat64
		if d.Outcome == domain.Accepted {
			e := accepted[d.OriginalIndex]
			landing = sql.NullInt64{Int64: int64(e.ActualLandingTime), Valid: true}
			cost = sql.NullFloat64{Float64: e.DeviationCost, Valid: true}
		}

		if _, err := stmt.ExecContext(ctx, runID, pos, d.FlightID, d.OriginalIndex, d.Outcome.String(), landing, cost); err != nil {
			return 0, fmt.Errorf("record run: insert entry flight_id=%s: %w", d.FlightID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("record run: commit tx: %w", err)
	}

	return runID, nil
}

// Return the most recent runs, newest first.
func (s *SQLRunRepository) ListRuns(ctx context.Context, limit int) ([]ports.RunSummary, error) {
	if s.DB == nil {
		return nil, errors.New("sql run repository: DB is nil")
	}
	if limit <= 0 {
		limit = 20
	}

	query := `
	SELECT
		run_id,
		dataset,
		fingerprint,
		total_cost,
		total_scheduled,
		total_diverted,
		created_at
	FROM schedule_runs
	ORDER BY created_at DESC, run_id DESC
	LIMIT $1;
	`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: query schedule_runs table: %w", err)
	}
	defer rows.Close()

	runs := make([]ports.RunSummary, 0, limit)
	for rows.Next() {
		var r ports.RunSummary
		if err := rows.Scan(&r.RunID, &r.Dataset, &r.Fingerprint, &r.TotalCost, &r.TotalScheduled, &r.TotalDiverted, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("list runs: scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: row iteration: %w", err)
	}

	return runs, nil
}
