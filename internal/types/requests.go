package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// MatchRequest is the body of an inline (non-persisted) match request
type MatchRequest struct {
	Candidate *CandidateProfile `json:"candidate" validate:"required"`
	Job       *JobRequirements  `json:"job" validate:"required"`
}

// Validate validates the MatchRequest using the validator.
func (r *MatchRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// BatchMatchRequest restricts a batch run to the given counterpart ids.
// An empty list means every counterpart.
type BatchMatchRequest struct {
	IDs []uuid.UUID `json:"ids" validate:"max=1000"`
}

// Validate validates the BatchMatchRequest using the validator.
func (r *BatchMatchRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// RankQuery holds the shortlist parameters accepted by the best-candidates and best-jobs routes
type RankQuery struct {
	Limit    int     `validate:"gte=1,lte=100"`
	MinScore float64 `validate:"gte=0,lte=100"`
}

// Validate validates the RankQuery using the validator.
func (q *RankQuery) Validate() error {
	validate := validator.New()
	return validate.Struct(q)
}
