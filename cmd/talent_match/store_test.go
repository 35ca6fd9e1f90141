package main

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jonathan/talent-match/internal/db"
	"github.com/jonathan/talent-match/internal/types"
)

// memStore is an in-memory server.Store
type memStore struct {
	mu         sync.Mutex
	candidates []db.Candidate
	jobs       []db.JobPosting
	matches    []db.JobMatch
}

func (s *memStore) GetCandidate(_ context.Context, id uuid.UUID) (*db.Candidate, error) {
	for i := range s.candidates {
		if s.candidates[i].ID == id {
			c := s.candidates[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (s *memStore) GetJobPosting(_ context.Context, id uuid.UUID) (*db.JobPosting, error) {
	for i := range s.jobs {
		if s.jobs[i].ID == id {
			j := s.jobs[i]
			return &j, nil
		}
	}
	return nil, nil
}

func (s *memStore) ListCandidates(_ context.Context, ids []uuid.UUID) ([]db.Candidate, error) {
	var out []db.Candidate
	for _, c := range s.candidates {
		if len(ids) == 0 || contains(ids, c.ID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *memStore) ListPublishedJobPostings(_ context.Context, ids []uuid.UUID) ([]db.JobPosting, error) {
	var out []db.JobPosting
	for _, j := range s.jobs {
		if j.IsPublished() && (len(ids) == 0 || contains(ids, j.ID)) {
			out = append(out, j)
		}
	}
	return out, nil
}

func (s *memStore) UpsertJobMatch(_ context.Context, m *db.JobMatch) (*db.JobMatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches = append(s.matches, *m)
	return m, nil
}

func (s *memStore) GetApplication(context.Context, uuid.UUID) (*db.Application, error) {
	return nil, nil
}

func (s *memStore) UpdateApplicationScore(context.Context, uuid.UUID, int, types.FitLevel) error {
	return nil
}

func (s *memStore) ListJobMatches(context.Context, db.JobMatchFilters) ([]db.JobMatch, error) {
	return s.matches, nil
}

func contains(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func newMemStore() *memStore {
	return &memStore{
		candidates: []db.Candidate{
			{
				ID:       uuid.New(),
				FullName: "Alice Martin",
				Profile: types.CandidateProfile{
					Skills:     types.SkillSet{"languages": {"Go", "PostgreSQL"}},
					Experience: []types.Experience{{Position: "Senior Backend Engineer", Duration: "6 years"}},
					Personal:   types.Personal{Location: "Paris"},
				},
			},
			{
				ID:       uuid.New(),
				FullName: "Bob Durand",
				Profile: types.CandidateProfile{
					Skills:   types.SkillSet{"tools": {"Excel"}},
					Personal: types.Personal{Location: "Lyon"},
				},
			},
		},
		jobs: []db.JobPosting{
			{
				ID:      uuid.New(),
				Title:   "Backend Engineer",
				JobType: "developer",
				Status:  db.JobStatusPublished,
				Requirements: types.JobRequirements{
					RequiredSkills: []string{"Go", "PostgreSQL"},
					Seniority:      types.SenioritySenior,
					Location:       "Paris",
				},
			},
			{
				ID:      uuid.New(),
				Title:   "Draft Role",
				JobType: "sales",
				Status:  db.JobStatusDraft,
			},
		},
	}
}
