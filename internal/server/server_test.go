package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/talent-match/internal/batch"
	"github.com/jonathan/talent-match/internal/config"
	"github.com/jonathan/talent-match/internal/db"
	"github.com/jonathan/talent-match/internal/ranking"
	"github.com/jonathan/talent-match/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const testSecret = "test-secret"

// memStore is an in-memory Store
type memStore struct {
	mu           sync.Mutex
	candidates   []db.Candidate
	jobs         []db.JobPosting
	applications map[uuid.UUID]*db.Application
	matches      map[[2]uuid.UUID]db.JobMatch
	err          error // returned by every lookup when set
}

func newMemStore() *memStore {
	return &memStore{
		applications: make(map[uuid.UUID]*db.Application),
		matches:      make(map[[2]uuid.UUID]db.JobMatch),
	}
}

func (s *memStore) addCandidate(name string, profile types.CandidateProfile) uuid.UUID {
	id := uuid.New()
	s.candidates = append(s.candidates, db.Candidate{ID: id, FullName: name, Profile: profile})
	return id
}

func (s *memStore) addJob(title, status string, req types.JobRequirements) uuid.UUID {
	id := uuid.New()
	s.jobs = append(s.jobs, db.JobPosting{ID: id, Title: title, JobType: "developer", Status: status, Requirements: req})
	return id
}

func (s *memStore) addApplication(jobID, candidateID uuid.UUID) uuid.UUID {
	id := uuid.New()
	s.applications[id] = &db.Application{ID: id, JobPostingID: jobID, CandidateID: candidateID}
	return id
}

func (s *memStore) GetCandidate(_ context.Context, id uuid.UUID) (*db.Candidate, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.candidates {
		if s.candidates[i].ID == id {
			return &s.candidates[i], nil
		}
	}
	return nil, nil
}

func (s *memStore) GetJobPosting(_ context.Context, id uuid.UUID) (*db.JobPosting, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.jobs {
		if s.jobs[i].ID == id {
			return &s.jobs[i], nil
		}
	}
	return nil, nil
}

func (s *memStore) ListCandidates(_ context.Context, ids []uuid.UUID) ([]db.Candidate, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []db.Candidate
	for _, c := range s.candidates {
		if len(ids) == 0 || containsID(ids, c.ID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *memStore) ListPublishedJobPostings(_ context.Context, ids []uuid.UUID) ([]db.JobPosting, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []db.JobPosting
	for _, j := range s.jobs {
		if j.IsPublished() && (len(ids) == 0 || containsID(ids, j.ID)) {
			out = append(out, j)
		}
	}
	return out, nil
}

func (s *memStore) UpsertJobMatch(_ context.Context, m *db.JobMatch) (*db.JobMatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches[[2]uuid.UUID{m.JobPostingID, m.CandidateID}] = *m
	return m, nil
}

func (s *memStore) GetApplication(_ context.Context, id uuid.UUID) (*db.Application, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.applications[id], nil
}

func (s *memStore) UpdateApplicationScore(_ context.Context, id uuid.UUID, score int, fitLevel types.FitLevel) error {
	app, ok := s.applications[id]
	if !ok {
		return errors.New("application not found")
	}
	level := string(fitLevel)
	now := time.Now()
	app.Score, app.FitLevel, app.ScoredAt = &score, &level, &now
	return nil
}

func (s *memStore) ListJobMatches(_ context.Context, filters db.JobMatchFilters) ([]db.JobMatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []db.JobMatch
	for _, m := range s.matches {
		if m.JobPostingID == filters.JobPostingID && m.Score >= filters.MinScore {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if filters.Limit > 0 && len(out) > filters.Limit {
		out = out[:filters.Limit]
	}
	return out, nil
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

// fixture is a store with one published backend job, one draft job and two candidates
type fixture struct {
	store    *memStore
	jobID    uuid.UUID
	draftID  uuid.UUID
	aliceID  uuid.UUID
	bobID    uuid.UUID
	handler  http.Handler
	server   *Server
	observed *observer.ObservedLogs
}

func newFixture(t *testing.T, rl config.RateLimitConfig) *fixture {
	t.Helper()
	store := newMemStore()
	senior := types.Seniority("senior")

	f := &fixture{store: store}
	f.jobID = store.addJob("Backend Engineer", db.JobStatusPublished, types.JobRequirements{
		RequiredSkills: []string{"Go", "PostgreSQL"},
		Seniority:      senior,
		Location:       "Paris",
	})
	f.draftID = store.addJob("Draft role", db.JobStatusDraft, types.JobRequirements{RequiredSkills: []string{"Go"}})
	f.aliceID = store.addCandidate("Alice", types.CandidateProfile{
		Skills:     types.SkillSet{"backend": {"Go", "PostgreSQL", "Docker"}},
		Experience: []types.Experience{{Position: "Senior Backend Engineer", Duration: "6 years"}},
		Personal:   types.Personal{Location: "Paris"},
	})
	f.bobID = store.addCandidate("Bob", types.CandidateProfile{
		Skills:   types.SkillSet{types.UncategorizedSkills: {"Excel"}},
		Personal: types.Personal{Location: "Lyon"},
	})

	cfg := &config.Config{
		Server:    config.ServerConfig{Port: 8080},
		Batch:     config.BatchConfig{Concurrency: 2, RetryBaseDelay: time.Millisecond},
		Auth:      config.AuthConfig{JWTSecret: testSecret, JWTExpirationHours: 1},
		RateLimit: rl,
	}

	core, observed := observer.New(zapcore.InfoLevel)
	s, err := New(cfg, store, zap.New(core))
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)

	f.server, f.handler, f.observed = s, s.Handler(), observed
	return f
}

func (f *fixture) do(t *testing.T, method, path, body string, authorized bool) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if authorized {
		token, err := NewJWTService(&config.JWTConfig{Secret: testSecret, ExpirationHours: 1}).GenerateToken("tester")
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestNew_RequiresJWTSecret(t *testing.T) {
	_, err := New(&config.Config{}, newMemStore(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestHealthEndpoint(t *testing.T) {
	f := newFixture(t, config.RateLimitConfig{})

	w := f.do(t, http.MethodGet, "/health", "", false)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, w)["status"])
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestLogging(t *testing.T) {
	f := newFixture(t, config.RateLimitConfig{})

	f.do(t, http.MethodGet, "/weight-profiles/sales", "", false)

	entries := f.observed.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/weight-profiles/sales", fields["path"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
}

func TestCORSPreflight(t *testing.T) {
	f := newFixture(t, config.RateLimitConfig{})

	w := f.do(t, http.MethodOptions, "/match", "", false)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestHandleMatch(t *testing.T) {
	f := newFixture(t, config.RateLimitConfig{})

	w := f.do(t, http.MethodPost, "/match",
		`{"candidate":{"skills":{"backend":["Go"]}},"job":{"requiredSkills":["Go"]}}`, false)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := decode[types.MatchResult](t, w)
	assert.Equal(t, 100.0, result.CategoryScores.Skills.Score)
	assert.GreaterOrEqual(t, result.OverallScore, 0)
	assert.LessOrEqual(t, result.OverallScore, 100)
	assert.NotEmpty(t, result.FitLevel)
	assert.Empty(t, f.store.matches, "inline matches are never stored")
}

func TestHandleMatch_Invalid(t *testing.T) {
	f := newFixture(t, config.RateLimitConfig{})

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"malformed json", `{"candidate":`, "invalid request body"},
		{"missing job", `{"candidate":{}}`, "Job"},
		{"missing candidate", `{"job":{}}`, "Candidate"},
		{"unknown seniority", `{"candidate":{},"job":{"seniority":"wizard"}}`, "Seniority"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(t, http.MethodPost, "/match", tt.body, false)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, decode[map[string]string](t, w)["error"], tt.wantMsg)
		})
	}
}

func TestHandleWeightProfile(t *testing.T) {
	f := newFixture(t, config.RateLimitConfig{})

	w := f.do(t, http.MethodGet, "/weight-profiles/Developer", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[WeightProfileResponse](t, w)
	assert.Equal(t, "developer", resp.Profile.Name)
	assert.Equal(t, 0.45, resp.Profile.Skills)

	w = f.do(t, http.MethodGet, "/weight-profiles/astronaut", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "default", decode[WeightProfileResponse](t, w).Profile.Name)
}

func TestHandleBestCandidates(t *testing.T) {
	f := newFixture(t, config.RateLimitConfig{})

	w := f.do(t, http.MethodGet, "/job-postings/"+f.jobID.String()+"/best-candidates", "", false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[ShortlistResponse[ranking.RankedCandidate]](t, w)
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, f.aliceID, resp.Results[0].CandidateID)
	assert.Equal(t, "Alice", resp.Results[0].Name)
	assert.Greater(t, resp.Results[0].Result.OverallScore, resp.Results[1].Result.OverallScore)

	w = f.do(t, http.MethodGet, "/job-postings/"+f.jobID.String()+"/best-candidates?limit=1", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decode[ShortlistResponse[ranking.RankedCandidate]](t, w)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, f.aliceID, resp.Results[0].CandidateID)
}

func TestHandleBestCandidates_Errors(t *testing.T) {
	f := newFixture(t, config.RateLimitConfig{})

	tests := []struct {
		name string
		path string
		want int
	}{
		{"invalid id", "/job-postings/not-a-uuid/best-candidates", http.StatusBadRequest},
		{"unknown job", "/job-postings/" + uuid.NewString() + "/best-candidates", http.StatusNotFound},
		{"limit too large", "/job-postings/" + f.jobID.String() + "/best-candidates?limit=500", http.StatusBadRequest},
		{"min score not a number", "/job-postings/" + f.jobID.String() + "/best-candidates?min_score=high", http.StatusBadRequest},
		{"min score out of range", "/job-postings/" + f.jobID.String() + "/best-candidates?min_score=101", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(t, http.MethodGet, tt.path, "", false)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
			assert.NotEmpty(t, decode[map[string]string](t, w)["error"])
		})
	}
}

func TestHandleBestJobs_OnlyPublished(t *testing.T) {
	f := newFixture(t, config.RateLimitConfig{})

	w := f.do(t, http.MethodGet, "/candidates/"+f.aliceID.String()+"/best-jobs", "", false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[ShortlistResponse[ranking.RankedJob]](t, w)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, f.jobID, resp.Results[0].JobID)

	w = f.do(t, http.MethodGet, "/candidates/"+uuid.NewString()+"/best-jobs", "", false)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInternalErrorsAreGeneric(t *testing.T) {
	f := newFixture(t, config.RateLimitConfig{})
	f.store.err = errors.New("dial tcp 10.0.0.5:5432: connection refused")

	w := f.do(t, http.MethodGet, "/job-postings/"+f.jobID.String()+"/best-candidates", "", false)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", decode[map[string]string](t, w)["error"])
	assert.Equal(t, 1, f.observed.FilterMessage("request failed").Len())
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	f := newFixture(t, config.RateLimitConfig{})

	for _, path := range []string{
		"/matching/run",
		"/job-postings/" + f.jobID.String() + "/match",
		"/candidates/" + f.aliceID.String() + "/match",
		"/applications/" + uuid.NewString() + "/score",
	} {
		w := f.do(t, http.MethodPost, path, "", false)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
	assert.Empty(t, f.store.matches)
}

func TestHandleRunAll(t *testing.T) {
	f := newFixture(t, config.RateLimitConfig{})

	w := f.do(t, http.MethodPost, "/matching/run", "", true)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	report := decode[batch.Report](t, w)
	assert.Equal(t, 2, report.Processed, "one published job x two candidates")
	assert.Equal(t, 0, report.Failed)
	assert.Len(t, f.store.matches, 2)

	w = f.do(t, http.MethodGet, "/job-postings/"+f.jobID.String()+"/matches", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	matches := decode[ShortlistResponse[db.JobMatch]](t, w)
	require.Equal(t, 2, matches.Count)
	assert.Equal(t, f.aliceID, matches.Results[0].CandidateID)
}

func TestHandleJobMatches_Empty(t *testing.T) {
	f := newFixture(t, config.RateLimitConfig{})

	w := f.do(t, http.MethodGet, "/job-postings/"+f.jobID.String()+"/matches", "", false)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"results":[],"count":0}`, w.Body.String())
}

func TestHandleBatchJob(t *testing.T) {
	f := newFixture(t, config.RateLimitConfig{})
	path := "/job-postings/" + f.jobID.String() + "/match"

	w := f.do(t, http.MethodPost, path, `{"ids":["`+f.bobID.String()+`"]}`, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, decode[batch.Report](t, w).Processed)
	_, stored := f.store.matches[[2]uuid.UUID{f.jobID, f.bobID}]
	assert.True(t, stored)

	missing := uuid.NewString()
	w = f.do(t, http.MethodPost, path, `{"ids":["`+missing+`"]}`, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, decode[map[string]string](t, w)["error"], missing)

	w = f.do(t, http.MethodPost, path, `{"ids":"nope"}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleBatchCandidate(t *testing.T) {
	f := newFixture(t, config.RateLimitConfig{})

	w := f.do(t, http.MethodPost, "/candidates/"+f.aliceID.String()+"/match", "", true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, decode[batch.Report](t, w).Processed)

	// A draft posting is not a published job posting
	w = f.do(t, http.MethodPost, "/candidates/"+f.aliceID.String()+"/match",
		`{"ids":["`+f.draftID.String()+`"]}`, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleScoreApplication(t *testing.T) {
	f := newFixture(t, config.RateLimitConfig{})
	appID := f.store.addApplication(f.jobID, f.aliceID)

	w := f.do(t, http.MethodPost, "/applications/"+appID.String()+"/score", "", true)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	scored := decode[ScoredApplication](t, w)
	assert.Equal(t, appID, scored.ApplicationID)
	assert.Equal(t, f.aliceID, scored.CandidateID)

	app := f.store.applications[appID]
	require.True(t, app.IsScored())
	assert.Equal(t, scored.Result.OverallScore, *app.Score)
	assert.Equal(t, string(scored.Result.FitLevel), *app.FitLevel)

	stored, ok := f.store.matches[[2]uuid.UUID{f.jobID, f.aliceID}]
	require.True(t, ok)
	assert.Equal(t, scored.Result.OverallScore, stored.Score)
}

func TestHandleScoreApplication_NotFound(t *testing.T) {
	f := newFixture(t, config.RateLimitConfig{})

	w := f.do(t, http.MethodPost, "/applications/"+uuid.NewString()+"/score", "", true)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Application pointing at a deleted candidate
	appID := f.store.addApplication(f.jobID, uuid.New())
	w = f.do(t, http.MethodPost, "/applications/"+appID.String()+"/score", "", true)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, decode[map[string]string](t, w)["error"], "candidate not found")
}

func TestBatchRateLimit(t *testing.T) {
	f := newFixture(t, config.RateLimitConfig{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		BatchLimit:    5,
		BatchWindow:   time.Minute,
	})

	w := f.do(t, http.MethodPost, "/matching/run", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))

	w = f.do(t, http.MethodPost, "/matching/run", "", true)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "rate_limit_exceeded", decode[map[string]any](t, w)["error"])

	// Read routes use the default tier
	w = f.do(t, http.MethodGet, "/weight-profiles/data", "", false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "100", w.Header().Get("X-RateLimit-Limit"))
}
