package server

import (
	"net/http"

	"github.com/jonathan/talent-match/internal/db"
	"github.com/jonathan/talent-match/internal/ranking"
	"github.com/jonathan/talent-match/internal/types"
)

const defaultShortlistSize = 10

// parseRankQuery reads limit and min_score for the shortlist routes.
func parseRankQuery(r *http.Request) (ranking.Options, error) {
	minScore, err := parseQueryFloat(r, "min_score", 0)
	if err != nil {
		return ranking.Options{}, err
	}
	q := types.RankQuery{
		Limit:    parseQueryInt(r, "limit", defaultShortlistSize, 0),
		MinScore: minScore,
	}
	if err := q.Validate(); err != nil {
		return ranking.Options{}, validationError(err)
	}
	return ranking.Options{Limit: q.Limit, MinScore: q.MinScore}, nil
}

// ShortlistResponse wraps a shortlist with its size
type ShortlistResponse[T any] struct {
	Results []T `json:"results"`
	Count   int `json:"count"`
}

// handleBestCandidates ranks all candidates for a job posting
func (s *Server) handleBestCandidates(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathID(r, "job posting")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := parseRankQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	ranked, err := s.service.BestCandidates(r.Context(), jobID, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ShortlistResponse[ranking.RankedCandidate]{Results: ranked, Count: len(ranked)})
}

// handleBestJobs ranks all published job postings for a candidate
func (s *Server) handleBestJobs(w http.ResponseWriter, r *http.Request) {
	candidateID, err := pathID(r, "candidate")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := parseRankQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	ranked, err := s.service.BestJobs(r.Context(), candidateID, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ShortlistResponse[ranking.RankedJob]{Results: ranked, Count: len(ranked)})
}

// handleJobMatches lists the stored match results of a job posting
func (s *Server) handleJobMatches(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathID(r, "job posting")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	matches, err := s.service.JobMatches(r.Context(), jobID,
		parseQueryInt(r, "min_score", 0, 100), parseQueryInt(r, "limit", 50, 100))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if matches == nil {
		matches = []db.JobMatch{}
	}
	s.jsonResponse(w, http.StatusOK, ShortlistResponse[db.JobMatch]{Results: matches, Count: len(matches)})
}
