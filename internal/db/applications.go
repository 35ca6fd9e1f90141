package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/talent-match/internal/types"
)

// -----------------------------------------------------------------------------
// Application Methods
// -----------------------------------------------------------------------------

const applicationColumns = `id, job_posting_id, candidate_id, score, fit_level, scored_at, created_at`

// CreateApplication records a candidate applying to a job posting
func (db *DB) CreateApplication(ctx context.Context, jobPostingID, candidateID uuid.UUID) (*Application, error) {
	row := db.pool.QueryRow(ctx,
		`INSERT INTO applications (job_posting_id, candidate_id)
		 VALUES ($1, $2)
		 RETURNING `+applicationColumns,
		jobPostingID, candidateID,
	)
	a, err := scanApplication(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return a, nil
}

// GetApplication retrieves an application by ID. Returns (nil, nil) when it does not exist.
func (db *DB) GetApplication(ctx context.Context, id uuid.UUID) (*Application, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`,
		id,
	)
	a, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return a, nil
}

// UpdateApplicationScore stores the overall score and fit level on an application
func (db *DB) UpdateApplicationScore(ctx context.Context, id uuid.UUID, score int, fitLevel types.FitLevel) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE applications SET score = $1, fit_level = $2, scored_at = NOW() WHERE id = $3`,
		score, string(fitLevel), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update application score: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("application not found: %s", id)
	}
	return nil
}

func scanApplication(row pgx.Row) (*Application, error) {
	var a Application
	if err := row.Scan(&a.ID, &a.JobPostingID, &a.CandidateID, &a.Score, &a.FitLevel, &a.ScoredAt, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}
