package server

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/talent-match/internal/batch"
	"github.com/jonathan/talent-match/internal/db"
	"github.com/jonathan/talent-match/internal/ranking"
	"github.com/jonathan/talent-match/internal/types"
)

// Store is the persistence the API reads from and writes to. *db.DB implements it.
type Store interface {
	batch.Store
	GetApplication(ctx context.Context, id uuid.UUID) (*db.Application, error)
	UpdateApplicationScore(ctx context.Context, id uuid.UUID, score int, fitLevel types.FitLevel) error
	ListJobMatches(ctx context.Context, filters db.JobMatchFilters) ([]db.JobMatch, error)
}

// Matcher scores one candidate against one job
type Matcher interface {
	Match(candidate *types.CandidateProfile, job *types.JobRequirements) types.MatchResult
}

// MatchService joins the store with the engine for the single-pair and shortlist routes.
type MatchService struct {
	store   Store
	matcher Matcher
}

// NewMatchService creates a MatchService.
func NewMatchService(store Store, matcher Matcher) *MatchService {
	return &MatchService{store: store, matcher: matcher}
}

// ScoredApplication is the outcome of scoring an application
type ScoredApplication struct {
	ApplicationID uuid.UUID         `json:"application_id"`
	JobPostingID  uuid.UUID         `json:"job_posting_id"`
	CandidateID   uuid.UUID         `json:"candidate_id"`
	Result        types.MatchResult `json:"result"`
}

// ScoreApplication matches the application's candidate against its job posting, stores the
// score on the application and upserts the full result into job_matching.
func (s *MatchService) ScoreApplication(ctx context.Context, applicationID uuid.UUID) (*ScoredApplication, error) {
	app, err := s.store.GetApplication(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load application: %w", err)
	}
	if app == nil {
		return nil, &ErrNotFound{Resource: "application", ID: applicationID.String()}
	}

	job, candidate, err := s.loadPair(ctx, app.JobPostingID, app.CandidateID)
	if err != nil {
		return nil, err
	}

	result := s.matcher.Match(&candidate.Profile, job.MatchRequirements())

	if err := s.store.UpdateApplicationScore(ctx, app.ID, result.OverallScore, result.FitLevel); err != nil {
		return nil, fmt.Errorf("failed to update application score: %w", err)
	}
	if _, err := s.store.UpsertJobMatch(ctx, db.NewJobMatch(job.ID, candidate.ID, &result)); err != nil {
		return nil, fmt.Errorf("failed to store match: %w", err)
	}

	return &ScoredApplication{
		ApplicationID: app.ID,
		JobPostingID:  job.ID,
		CandidateID:   candidate.ID,
		Result:        result,
	}, nil
}

func (s *MatchService) loadPair(ctx context.Context, jobID, candidateID uuid.UUID) (*db.JobPosting, *db.Candidate, error) {
	job, err := s.store.GetJobPosting(ctx, jobID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load job posting: %w", err)
	}
	if job == nil {
		return nil, nil, &ErrNotFound{Resource: "job posting", ID: jobID.String()}
	}

	candidate, err := s.store.GetCandidate(ctx, candidateID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load candidate: %w", err)
	}
	if candidate == nil {
		return nil, nil, &ErrNotFound{Resource: "candidate", ID: candidateID.String()}
	}
	return job, candidate, nil
}

// BestCandidates ranks every candidate against a job posting.
func (s *MatchService) BestCandidates(ctx context.Context, jobID uuid.UUID, opts ranking.Options) ([]ranking.RankedCandidate, error) {
	job, err := s.store.GetJobPosting(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to load job posting: %w", err)
	}
	if job == nil {
		return nil, &ErrNotFound{Resource: "job posting", ID: jobID.String()}
	}

	rows, err := s.store.ListCandidates(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}

	candidates := make([]ranking.Candidate, 0, len(rows))
	for i := range rows {
		candidates = append(candidates, ranking.Candidate{
			ID:      rows[i].ID,
			Name:    rows[i].FullName,
			Profile: &rows[i].Profile,
		})
	}

	return ranking.RankCandidates(s.matcher, ranking.Job{
		ID:           job.ID,
		Title:        job.Title,
		Requirements: job.MatchRequirements(),
	}, candidates, opts), nil
}

// BestJobs ranks every published job posting against a candidate.
func (s *MatchService) BestJobs(ctx context.Context, candidateID uuid.UUID, opts ranking.Options) ([]ranking.RankedJob, error) {
	candidate, err := s.store.GetCandidate(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate: %w", err)
	}
	if candidate == nil {
		return nil, &ErrNotFound{Resource: "candidate", ID: candidateID.String()}
	}

	rows, err := s.store.ListPublishedJobPostings(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load job postings: %w", err)
	}

	jobs := make([]ranking.Job, 0, len(rows))
	for i := range rows {
		jobs = append(jobs, ranking.Job{
			ID:           rows[i].ID,
			Title:        rows[i].Title,
			Requirements: rows[i].MatchRequirements(),
		})
	}

	return ranking.RankJobs(s.matcher, ranking.Candidate{
		ID:      candidate.ID,
		Name:    candidate.FullName,
		Profile: &candidate.Profile,
	}, jobs, opts), nil
}

// JobMatches returns the stored matches of a job posting, best first.
func (s *MatchService) JobMatches(ctx context.Context, jobID uuid.UUID, minScore, limit int) ([]db.JobMatch, error) {
	job, err := s.store.GetJobPosting(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to load job posting: %w", err)
	}
	if job == nil {
		return nil, &ErrNotFound{Resource: "job posting", ID: jobID.String()}
	}

	matches, err := s.store.ListJobMatches(ctx, db.JobMatchFilters{
		JobPostingID: jobID,
		MinScore:     minScore,
		Limit:        limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}
