package server

import (
	"net/http"
	"strings"

	"github.com/jonathan/talent-match/internal/matching"
	"github.com/jonathan/talent-match/internal/types"
)

// handleMatch scores an inline candidate/job pair. Nothing is persisted.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req types.MatchRequest
	if err := decodeJSON(r, &req, false); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, validationError(err))
		return
	}

	s.jsonResponse(w, http.StatusOK, s.matcher.Match(req.Candidate, req.Job))
}

// WeightProfileResponse names the profile that was applied for a requested job type
type WeightProfileResponse struct {
	JobType string                 `json:"jobType"`
	Profile matching.WeightProfile `json:"profile"`
}

// handleWeightProfile returns the weight profile a job type resolves to
func (s *Server) handleWeightProfile(w http.ResponseWriter, r *http.Request) {
	jobType := strings.TrimSpace(r.PathValue("type"))
	s.jsonResponse(w, http.StatusOK, WeightProfileResponse{
		JobType: jobType,
		Profile: matching.WeightsFor(jobType),
	})
}
