package server

import (
	"net/http"

	"github.com/jonathan/talent-match/internal/types"
	"go.uber.org/zap"
)

// handleScoreApplication scores one application and persists the result
func (s *Server) handleScoreApplication(w http.ResponseWriter, r *http.Request) {
	applicationID, err := pathID(r, "application")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	scored, err := s.service.ScoreApplication(r.Context(), applicationID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log.Info("application scored",
		zap.String("application_id", applicationID.String()),
		zap.Int("score", scored.Result.OverallScore),
	)
	s.jsonResponse(w, http.StatusOK, scored)
}

// decodeBatchRequest reads the optional id list of a batch route
func decodeBatchRequest(r *http.Request) (*types.BatchMatchRequest, error) {
	var req types.BatchMatchRequest
	if err := decodeJSON(r, &req, true); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, validationError(err)
	}
	return &req, nil
}

// handleBatchJob matches a job posting against the listed candidates, or all of them
func (s *Server) handleBatchJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathID(r, "job posting")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	req, err := decodeBatchRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	report, err := s.runner.MatchJob(r.Context(), jobID, req.IDs)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}

// handleBatchCandidate matches a candidate against the listed published job postings, or all of them
func (s *Server) handleBatchCandidate(w http.ResponseWriter, r *http.Request) {
	candidateID, err := pathID(r, "candidate")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	req, err := decodeBatchRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	report, err := s.runner.MatchCandidate(r.Context(), candidateID, req.IDs)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}

// handleRunAll matches every candidate against every published job posting
func (s *Server) handleRunAll(w http.ResponseWriter, r *http.Request) {
	report, err := s.runner.MatchAll(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}
