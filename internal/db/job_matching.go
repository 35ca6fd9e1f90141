package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/talent-match/internal/types"
)

// -----------------------------------------------------------------------------
// Job Matching Methods
// -----------------------------------------------------------------------------

const jobMatchColumns = `job_posting_id, candidate_id, score, fit_level, criteria, recommendations,
		confidence, created_at, updated_at`

// UpsertJobMatch stores a match result. An existing row for the same (job posting, candidate)
// pair is overwritten and its updated_at refreshed.
func (db *DB) UpsertJobMatch(ctx context.Context, m *JobMatch) (*JobMatch, error) {
	criteriaJSON, err := json.Marshal(m.Criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal criteria: %w", err)
	}
	recommendations := m.Recommendations
	if recommendations == nil {
		recommendations = []string{}
	}
	recommendationsJSON, err := json.Marshal(recommendations)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO job_matching (job_posting_id, candidate_id, score, fit_level, criteria,
		                           recommendations, confidence)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (job_posting_id, candidate_id) DO UPDATE SET
		     score = EXCLUDED.score,
		     fit_level = EXCLUDED.fit_level,
		     criteria = EXCLUDED.criteria,
		     recommendations = EXCLUDED.recommendations,
		     confidence = EXCLUDED.confidence,
		     updated_at = NOW()
		 RETURNING `+jobMatchColumns,
		m.JobPostingID, m.CandidateID, m.Score, string(m.FitLevel), criteriaJSON,
		recommendationsJSON, m.Confidence,
	)
	stored, err := scanJobMatch(row)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert job match: %w", err)
	}
	return stored, nil
}

// ListJobMatches retrieves stored matches, best score first
func (db *DB) ListJobMatches(ctx context.Context, filters JobMatchFilters) ([]JobMatch, error) {
	if filters.Limit == 0 {
		filters.Limit = 50
	}

	query := `SELECT ` + jobMatchColumns + ` FROM job_matching WHERE score >= $1`
	args := []any{filters.MinScore}
	argNum := 2

	if filters.JobPostingID != uuid.Nil {
		query += fmt.Sprintf(" AND job_posting_id = $%d", argNum)
		args = append(args, filters.JobPostingID)
		argNum++
	}
	if filters.CandidateID != uuid.Nil {
		query += fmt.Sprintf(" AND candidate_id = $%d", argNum)
		args = append(args, filters.CandidateID)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY score DESC, updated_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list job matches: %w", err)
	}
	defer rows.Close()

	var matches []JobMatch
	for rows.Next() {
		m, err := scanJobMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job match: %w", err)
		}
		matches = append(matches, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate job matches: %w", err)
	}
	return matches, nil
}

func scanJobMatch(row pgx.Row) (*JobMatch, error) {
	var m JobMatch
	var fitLevel string
	var criteriaJSON, recommendationsJSON []byte
	if err := row.Scan(&m.JobPostingID, &m.CandidateID, &m.Score, &fitLevel, &criteriaJSON,
		&recommendationsJSON, &m.Confidence, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	m.FitLevel = types.FitLevel(fitLevel)
	if err := json.Unmarshal(criteriaJSON, &m.Criteria); err != nil {
		return nil, fmt.Errorf("invalid criteria: %w", err)
	}
	if len(recommendationsJSON) > 0 {
		if err := json.Unmarshal(recommendationsJSON, &m.Recommendations); err != nil {
			return nil, fmt.Errorf("invalid recommendations: %w", err)
		}
	}
	return &m, nil
}
