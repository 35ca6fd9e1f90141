package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/talent-match/internal/types"
)

// Job posting status constants
const (
	JobStatusDraft     = "draft"
	JobStatusPublished = "published"
	JobStatusClosed    = "closed"
)

// Candidate represents a candidate record with its extracted profile
type Candidate struct {
	ID        uuid.UUID              `json:"id"`
	FullName  string                 `json:"full_name"`
	Email     *string                `json:"email,omitempty"`
	Profile   types.CandidateProfile `json:"profile"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// JobPosting represents a job posting with its structured requirements
type JobPosting struct {
	ID           uuid.UUID             `json:"id"`
	Title        string                `json:"title"`
	JobType      string                `json:"job_type"`
	Status       string                `json:"status"`
	Requirements types.JobRequirements `json:"requirements"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// IsPublished reports whether the posting is open for matching
func (p *JobPosting) IsPublished() bool {
	return p.Status == JobStatusPublished
}

// MatchRequirements returns the requirements with the type defaulted to the posting's job type.
func (p *JobPosting) MatchRequirements() *types.JobRequirements {
	req := p.Requirements
	if req.Type == "" {
		req.Type = p.JobType
	}
	return &req
}

// Application represents a candidate's application to a job posting
type Application struct {
	ID           uuid.UUID  `json:"id"`
	JobPostingID uuid.UUID  `json:"job_posting_id"`
	CandidateID  uuid.UUID  `json:"candidate_id"`
	Score        *int       `json:"score,omitempty"`
	FitLevel     *string    `json:"fit_level,omitempty"`
	ScoredAt     *time.Time `json:"scored_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// IsScored reports whether the application has been scored
func (a *Application) IsScored() bool {
	return a.Score != nil
}

// JobMatch is a stored match result keyed by (job posting, candidate)
type JobMatch struct {
	JobPostingID    uuid.UUID            `json:"job_posting_id"`
	CandidateID     uuid.UUID            `json:"candidate_id"`
	Score           int                  `json:"score"`
	FitLevel        types.FitLevel       `json:"fit_level"`
	Criteria        types.CategoryScores `json:"criteria"`
	Recommendations []string             `json:"recommendations"`
	Confidence      float64              `json:"confidence"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// NewJobMatch builds the stored form of a match result
func NewJobMatch(jobPostingID, candidateID uuid.UUID, result *types.MatchResult) *JobMatch {
	return &JobMatch{
		JobPostingID:    jobPostingID,
		CandidateID:     candidateID,
		Score:           result.OverallScore,
		FitLevel:        result.FitLevel,
		Criteria:        result.CategoryScores,
		Recommendations: result.Recommendations,
		Confidence:      result.Confidence,
	}
}

// JobMatchFilters holds optional filters for listing stored matches
type JobMatchFilters struct {
	JobPostingID uuid.UUID
	CandidateID  uuid.UUID
	MinScore     int
	Limit        int
}
