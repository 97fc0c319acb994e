package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"landing-sequencer-service/internal/domain"
	"landing-sequencer-service/internal/platform/obs"
)

// SQL-backed implementation of the DatasetProvider port. It serves one
// named dataset previously stored with SeedDataset.
type SQLDatasetRepository struct {
	DB      *sql.DB
	Dataset string
}

func NewSQLDatasetRepository(db *sql.DB, dataset string) *SQLDatasetRepository {
	return &SQLDatasetRepository{DB: db, Dataset: dataset}
}

// Load the aircraft in original_index order and the separation matrix.
func (s *SQLDatasetRepository) LoadDataset(ctx context.Context) (_ domain.Dataset, err error) {
	defer obs.Time(ctx, "dataset.sql.Load")(&err)

	if s.DB == nil {
		return domain.Dataset{}, errors.New("sql dataset repository: DB is nil")
	}

	aircraftQuery := `
	SELECT
		original_index,
		flight_id,
		elt,
		tlt,
		llt,
		early_penalty,
		late_penalty
	FROM aircraft
	WHERE dataset = $1
	ORDER BY original_index;
	`
	rows, err := s.DB.QueryContext(ctx, aircraftQuery, s.Dataset)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("load dataset: query aircraft table: %w", err)
	}
	defer rows.Close()

	planes := make([]domain.Aircraft, 0, 64)
	for rows.Next() {
		var a domain.Aircraft
		if err := rows.Scan(&a.OriginalIndex, &a.FlightID, &a.ELT, &a.TLT, &a.LLT, &a.EarlyPenalty, &a.LatePenalty); err != nil {
			return domain.Dataset{}, fmt.Errorf("load dataset: scan aircraft row: %w", err)
		}
		planes = append(planes, a)
	}
	if err := rows.Err(); err != nil {
		return domain.Dataset{}, fmt.Errorf("load dataset: aircraft row iteration: %w", err)
	}

	if len(planes) == 0 {
		return domain.Dataset{}, fmt.Errorf("load dataset: no aircraft stored for dataset %q", s.Dataset)
	}

	n := len(planes)
	sep := make(domain.SeparationMatrix, n)
	for i := range sep {
		sep[i] = make([]int, n)
	}

	sepQuery := `
	SELECT lead_index, follow_index, separation
    FROM separations
    WHERE dataset = $1;
	`
	sepRows, err := s.DB.QueryContext(ctx, sepQuery, s.Dataset)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("load dataset: query separations table: %w", err)
	}
	defer sepRows.Close()

	count := 0
	for sepRows.Next() {
		var i, j, v int
		if err := sepRows.Scan(&i, &j, &v); err != nil {
			return domain.Dataset{}, fmt.Errorf("load dataset: scan separation row: %w", err)
		}
		if i < 0 || i >= n || j < 0 || j >= n {
			return domain.Dataset{}, fmt.Errorf(
				"load dataset: %w: separation (%d, %d) outside %d aircraft",
				domain.ErrInvalidInputShape, i, j, n,
			)
		}
		sep[i][j] = v
		count++
	}
	if err := sepRows.Err(); err != nil {
		return domain.Dataset{}, fmt.Errorf("load dataset: separation row iteration: %w", err)
	}

	if count != n*n {
		return domain.Dataset{}, fmt.Errorf(
			"load dataset: %w: %d separation values stored, want %d",
			domain.ErrInvalidInputShape, count, n*n,
		)
	}

	return domain.Dataset{Name: s.Dataset, Aircraft: planes, Separation: sep}, nil
}
