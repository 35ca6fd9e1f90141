package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/talent-match/internal/types"
)

// -----------------------------------------------------------------------------
// Job Posting Methods
// -----------------------------------------------------------------------------

const jobPostingColumns = `id, title, job_type, status, requirements, created_at, updated_at`

// JobPostingCreateInput contains the fields for creating a job posting
type JobPostingCreateInput struct {
	Title        string
	JobType      string
	Status       string
	Requirements *types.JobRequirements
}

// CreateJobPosting inserts a job posting and returns the stored record
func (db *DB) CreateJobPosting(ctx context.Context, input *JobPostingCreateInput) (*JobPosting, error) {
	requirementsJSON, err := json.Marshal(input.Requirements)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal requirements: %w", err)
	}

	status := input.Status
	if status == "" {
		status = JobStatusDraft
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO job_postings (title, job_type, status, requirements)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+jobPostingColumns,
		input.Title, input.JobType, status, requirementsJSON,
	)
	p, err := scanJobPosting(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create job posting: %w", err)
	}
	return p, nil
}

// GetJobPosting retrieves a job posting by ID. Returns (nil, nil) when it does not exist.
func (db *DB) GetJobPosting(ctx context.Context, id uuid.UUID) (*JobPosting, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+jobPostingColumns+` FROM job_postings WHERE id = $1`,
		id,
	)
	p, err := scanJobPosting(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job posting: %w", err)
	}
	return p, nil
}

// ListPublishedJobPostings retrieves published postings, restricted to ids when non-empty.
func (db *DB) ListPublishedJobPostings(ctx context.Context, ids []uuid.UUID) ([]JobPosting, error) {
	query := `SELECT ` + jobPostingColumns + ` FROM job_postings WHERE status = $1`
	args := []any{JobStatusPublished}
	if len(ids) > 0 {
		query += ` AND id = ANY($2)`
		args = append(args, ids)
	}
	query += ` ORDER BY created_at ASC, id ASC`

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list job postings: %w", err)
	}
	defer rows.Close()

	var postings []JobPosting
	for rows.Next() {
		p, err := scanJobPosting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job posting: %w", err)
		}
		postings = append(postings, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate job postings: %w", err)
	}
	return postings, nil
}

// UpdateJobPostingStatus changes the status of a job posting
func (db *DB) UpdateJobPostingStatus(ctx context.Context, id uuid.UUID, status string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE job_postings SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update job posting status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("job posting not found: %s", id)
	}
	return nil
}

// DeleteJobPosting deletes a job posting and its applications and matches (via cascade)
func (db *DB) DeleteJobPosting(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM job_postings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job posting: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("job posting not found: %s", id)
	}
	return nil
}

func scanJobPosting(row pgx.Row) (*JobPosting, error) {
	var p JobPosting
	var requirementsJSON []byte
	if err := row.Scan(&p.ID, &p.Title, &p.JobType, &p.Status, &requirementsJSON, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if len(requirementsJSON) > 0 {
		if err := json.Unmarshal(requirementsJSON, &p.Requirements); err != nil {
			return nil, fmt.Errorf("invalid requirements for job posting %s: %w", p.ID, err)
		}
	}
	return &p, nil
}
