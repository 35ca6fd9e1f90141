// Package batch runs the matching engine over many (job posting, candidate) pairs and
// stores every result. Pairs are independent: a failed pair is counted and logged, and
// never stops the others.
package batch

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/talent-match/internal/db"
	"github.com/jonathan/talent-match/internal/logger"
	"github.com/jonathan/talent-match/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RetryBaseDelay is the default base duration for exponential backoff between upsert
// attempts. Tests override this to avoid real sleeps.
var RetryBaseDelay = 200 * time.Millisecond

const (
	defaultConcurrency = 4
	defaultMaxRetries  = 3
)

// Store is the persistence the runner reads pairs from and writes results to
type Store interface {
	GetCandidate(ctx context.Context, id uuid.UUID) (*db.Candidate, error)
	GetJobPosting(ctx context.Context, id uuid.UUID) (*db.JobPosting, error)
	ListCandidates(ctx context.Context, ids []uuid.UUID) ([]db.Candidate, error)
	ListPublishedJobPostings(ctx context.Context, ids []uuid.UUID) ([]db.JobPosting, error)
	UpsertJobMatch(ctx context.Context, m *db.JobMatch) (*db.JobMatch, error)
}

// Matcher scores one candidate against one job
type Matcher interface {
	Match(candidate *types.CandidateProfile, job *types.JobRequirements) types.MatchResult
}

// ErrNotFound indicates a job posting or candidate named in a batch does not exist
type ErrNotFound struct {
	Resource string
	ID       uuid.UUID
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// PairError records why one pair could not be stored
type PairError struct {
	JobPostingID uuid.UUID `json:"job_posting_id"`
	CandidateID  uuid.UUID `json:"candidate_id"`
	Error        string    `json:"error"`
}

// Report summarizes a batch run
type Report struct {
	Processed int         `json:"processed"`
	Failed    int         `json:"failed"`
	Errors    []PairError `json:"errors"`
}

// Runner matches pairs with bounded parallelism
type Runner struct {
	Store          Store
	Matcher        Matcher
	Logger         *zap.Logger
	Concurrency    int           // parallel pairs; values below 1 mean 1
	MaxRetries     int           // extra upsert attempts per pair
	RetryBaseDelay time.Duration // zero means the package RetryBaseDelay
}

// NewRunner returns a Runner with the default concurrency and retry count.
func NewRunner(store Store, matcher Matcher, log *zap.Logger) *Runner {
	return &Runner{
		Store:       store,
		Matcher:     matcher,
		Logger:      logger.WithFields(log),
		Concurrency: defaultConcurrency,
		MaxRetries:  defaultMaxRetries,
	}
}

type pair struct {
	job       *db.JobPosting
	candidate *db.Candidate
}

// MatchJob matches one job posting against the given candidates, or every candidate
// when candidateIDs is empty.
func (r *Runner) MatchJob(ctx context.Context, jobID uuid.UUID, candidateIDs []uuid.UUID) (*Report, error) {
	job, err := r.Store.GetJobPosting(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to load job posting: %w", err)
	}
	if job == nil {
		return nil, &ErrNotFound{Resource: "job posting", ID: jobID}
	}

	candidates, err := r.Store.ListCandidates(ctx, candidateIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}
	if id, ok := firstMissing(candidateIDs, candidates, func(c db.Candidate) uuid.UUID { return c.ID }); !ok {
		return nil, &ErrNotFound{Resource: "candidate", ID: id}
	}

	pairs := make([]pair, 0, len(candidates))
	for i := range candidates {
		pairs = append(pairs, pair{job: job, candidate: &candidates[i]})
	}
	return r.run(ctx, pairs)
}

// MatchCandidate matches one candidate against the given published job postings, or
// every published posting when jobIDs is empty.
func (r *Runner) MatchCandidate(ctx context.Context, candidateID uuid.UUID, jobIDs []uuid.UUID) (*Report, error) {
	candidate, err := r.Store.GetCandidate(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate: %w", err)
	}
	if candidate == nil {
		return nil, &ErrNotFound{Resource: "candidate", ID: candidateID}
	}

	jobs, err := r.Store.ListPublishedJobPostings(ctx, jobIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load job postings: %w", err)
	}
	if id, ok := firstMissing(jobIDs, jobs, func(j db.JobPosting) uuid.UUID { return j.ID }); !ok {
		return nil, &ErrNotFound{Resource: "published job posting", ID: id}
	}

	pairs := make([]pair, 0, len(jobs))
	for i := range jobs {
		pairs = append(pairs, pair{job: &jobs[i], candidate: candidate})
	}
	return r.run(ctx, pairs)
}

// MatchAll matches every candidate against every published job posting.
func (r *Runner) MatchAll(ctx context.Context) (*Report, error) {
	jobs, err := r.Store.ListPublishedJobPostings(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load job postings: %w", err)
	}
	candidates, err := r.Store.ListCandidates(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}

	pairs := make([]pair, 0, len(jobs)*len(candidates))
	for i := range jobs {
		for j := range candidates {
			pairs = append(pairs, pair{job: &jobs[i], candidate: &candidates[j]})
		}
	}
	return r.run(ctx, pairs)
}

func (r *Runner) run(ctx context.Context, pairs []pair) (*Report, error) {
	log := logger.WithFields(r.Logger)
	report := &Report{Errors: []PairError{}}
	start := time.Now()

	var mu sync.Mutex
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.Concurrency, 1))

	for _, p := range pairs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			result := r.Matcher.Match(&p.candidate.Profile, p.job.MatchRequirements())
			err := r.storeWithRetry(gCtx, db.NewJobMatch(p.job.ID, p.candidate.ID, &result))

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Failed++
				report.Errors = append(report.Errors, PairError{
					JobPostingID: p.job.ID,
					CandidateID:  p.candidate.ID,
					Error:        err.Error(),
				})
				log.Error("failed to store match",
					append(logger.PairFields(p.job.ID, p.candidate.ID), zap.Error(err))...)
				return nil
			}
			report.Processed++
			log.Debug("stored match",
				append(logger.PairFields(p.job.ID, p.candidate.ID), zap.Int("score", result.OverallScore))...)
			return nil
		})
	}

	err := g.Wait()

	sort.Slice(report.Errors, func(i, j int) bool {
		a, b := report.Errors[i], report.Errors[j]
		if a.JobPostingID != b.JobPostingID {
			return a.JobPostingID.String() < b.JobPostingID.String()
		}
		return a.CandidateID.String() < b.CandidateID.String()
	})

	log.Info("batch matching finished",
		zap.Int("pairs", len(pairs)),
		zap.Int("processed", report.Processed),
		zap.Int("failed", report.Failed),
		zap.Duration("elapsed", time.Since(start)),
	)

	if err != nil {
		return report, fmt.Errorf("batch matching interrupted: %w", err)
	}
	return report, nil
}

// storeWithRetry upserts m, retrying with exponential backoff: base, 2*base, 4*base...
func (r *Runner) storeWithRetry(ctx context.Context, m *db.JobMatch) error {
	base := r.RetryBaseDelay
	if base <= 0 {
		base = RetryBaseDelay
	}

	for attempt := 0; ; attempt++ {
		_, err := r.Store.UpsertJobMatch(ctx, m)
		if err == nil {
			return nil
		}
		if attempt >= r.MaxRetries {
			return fmt.Errorf("upsert failed after %d attempts: %w", attempt+1, err)
		}

		backoff := time.Duration(math.Pow(2, float64(attempt))) * base
		logger.WithFields(r.Logger).Warn("retrying match upsert",
			append(logger.PairFields(m.JobPostingID, m.CandidateID),
				zap.Int("attempt", attempt+1), zap.Duration("backoff", backoff), zap.Error(err))...)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
}

// firstMissing returns the first requested id absent from found. ok is true when all
// requested ids were found.
func firstMissing[T any](requested []uuid.UUID, found []T, id func(T) uuid.UUID) (uuid.UUID, bool) {
	seen := make(map[uuid.UUID]struct{}, len(found))
	for _, f := range found {
		seen[id(f)] = struct{}{}
	}
	for _, want := range requested {
		if _, ok := seen[want]; !ok {
			return want, false
		}
	}
	return uuid.Nil, true
}
