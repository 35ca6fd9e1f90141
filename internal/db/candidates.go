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
// Candidate Methods
// -----------------------------------------------------------------------------

const candidateColumns = `id, full_name, email, profile, created_at, updated_at`

// CreateCandidate inserts a candidate and returns the stored record
func (db *DB) CreateCandidate(ctx context.Context, fullName string, email *string, profile *types.CandidateProfile) (*Candidate, error) {
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal candidate profile: %w", err)
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO candidates (full_name, email, profile)
		 VALUES ($1, $2, $3)
		 RETURNING `+candidateColumns,
		fullName, email, profileJSON,
	)
	c, err := scanCandidate(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create candidate: %w", err)
	}
	return c, nil
}

// GetCandidate retrieves a candidate by ID. Returns (nil, nil) when it does not exist.
func (db *DB) GetCandidate(ctx context.Context, id uuid.UUID) (*Candidate, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE id = $1`,
		id,
	)
	c, err := scanCandidate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return c, nil
}

// ListCandidates retrieves the candidates with the given IDs, or every candidate when ids is empty.
func (db *DB) ListCandidates(ctx context.Context, ids []uuid.UUID) ([]Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates`
	args := []any{}
	if len(ids) > 0 {
		query += ` WHERE id = ANY($1)`
		args = append(args, ids)
	}
	query += ` ORDER BY created_at ASC, id ASC`

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	var candidates []Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate candidates: %w", err)
	}
	return candidates, nil
}

// DeleteCandidate deletes a candidate and its applications and matches (via cascade)
func (db *DB) DeleteCandidate(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete candidate: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("candidate not found: %s", id)
	}
	return nil
}

func scanCandidate(row pgx.Row) (*Candidate, error) {
	var c Candidate
	var profileJSON []byte
	if err := row.Scan(&c.ID, &c.FullName, &c.Email, &profileJSON, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if len(profileJSON) > 0 {
		if err := json.Unmarshal(profileJSON, &c.Profile); err != nil {
			return nil, fmt.Errorf("invalid profile for candidate %s: %w", c.ID, err)
		}
	}
	return &c, nil
}
