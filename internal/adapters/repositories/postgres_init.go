package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"landing-sequencer-service/internal/domain"
	"strings"
)

// Initialize the Postgres database schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createAircraftQuery := `
	CREATE TABLE IF NOT EXISTS aircraft (
		dataset TEXT NOT NULL,
		original_index INTEGER NOT NULL,
		flight_id TEXT NOT NULL,
		elt INTEGER NOT NULL,
		tlt INTEGER NOT NULL,
		llt INTEGER NOT NULL,
		early_penalty DOUBLE PRECISION NOT NULL,
		late_penalty DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (dataset, original_index)
	);
	`

	createSeparationQuery := `
	CREATE TABLE IF NOT EXISTS separations (
        dataset TEXT NOT NULL,
        lead_index INTEGER NOT NULL,
        follow_index INTEGER NOT NULL,
        separation INTEGER NOT NULL,
        PRIMARY KEY (dataset, lead_index, follow_index)
    );
	`

	createRunsQuery := `
	CREATE TABLE IF NOT EXISTS schedule_runs (
        run_id BIGSERIAL PRIMARY KEY,
        dataset TEXT NOT NULL,
        fingerprint TEXT NOT NULL,
        total_cost DOUBLE PRECISION NOT NULL,
        total_scheduled INTEGER NOT NULL,
        total_diverted INTEGER NOT NULL,
        created_at TIMESTAMPTZ NOT NULL DEFAULT now()
    );
	`

	createRunEntriesQuery := `
	CREATE TABLE IF NOT EXISTS schedule_run_entries (
        run_id BIGINT NOT NULL REFERENCES schedule_runs(run_id) ON DELETE CASCADE,
        position INTEGER NOT NULL,
        flight_id TEXT NOT NULL,
        original_index INTEGER NOT NULL,
        outcome TEXT NOT NULL,
        actual_landing_time INTEGER,
        deviation_cost DOUBLE PRECISION,
        PRIMARY KEY (run_id, position)
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_schedule_runs_created_at
    ON schedule_runs(created_at DESC);
	`

	statements := []string{
		createAircraftQuery,
		createSeparationQuery,
		createRunsQuery,
		createRunEntriesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Replace the stored copy of a dataset with ds.
func SeedDataset(ctx context.Context, db *sql.DB, ds domain.Dataset) error {
	name := strings.TrimSpace(ds.Name)
	if name == "" {
		return errors.New("seed dataset: name cannot be empty")
	}

	if err := ds.Separation.Validate(ds.Aircraft); err != nil {
		return fmt.Errorf("seed dataset %q: %w", name, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed dataset: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, q := range []string{
		`DELETE FROM separations WHERE dataset = $1;`,
		`DELETE FROM aircraft WHERE dataset = $1;`,
	} {
		if _, err := tx.ExecContext(ctx, q, name); err != nil {
			return fmt.Errorf("seed dataset: clear %q: %w", name, err)
		}
	}

	aircraftStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO aircraft (
		dataset,
		original_index,
		flight_id,
		elt,
		tlt,
		llt,
		early_penalty,
		late_penalty
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`)
	if err != nil {
		return fmt.Errorf("seed dataset: prepare aircraft insert: %w", err)
	}
	defer aircraftStmt.Close()

	for _, a := range ds.Aircraft {
		if _, err := aircraftStmt.ExecContext(ctx,
			name, a.OriginalIndex, a.FlightID, a.ELT, a.TLT, a.LLT, a.EarlyPenalty, a.LatePenalty,
		); err != nil {
			return fmt.Errorf("seed dataset: insert flight_id=%s: %w", a.FlightID, err)
		}
	}

	sepStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO separations (dataset, lead_index, follow_index, separation)
    VALUES ($1, $2, $3, $4);
	`)
	if err != nil {
		return fmt.Errorf("seed dataset: prepare separation insert: %w", err)
	}
	defer sepStmt.Close()

	n := len(ds.Aircraft)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if _, err := sepStmt.ExecContext(ctx, name, i, j, ds.Separation[i][j]); err != nil {
				return fmt.Errorf("seed dataset: insert separation[%d][%d]: %w", i, j, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed dataset: commit tx: %w", err)
	}

	return nil
}
