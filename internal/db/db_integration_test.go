//go:build integration

package db

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/talent-match/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	db, err := Connect(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations(ctx))
	return db
}

func TestIntegration_MatchingFlow(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	email := "integration-" + uuid.NewString() + "@test.example.com"
	candidate, err := db.CreateCandidate(ctx, "Test Candidate", &email, &types.CandidateProfile{
		Skills:   types.SkillSet{"languages": {"Go"}},
		Personal: types.Personal{Location: "Paris"},
	})
	require.NoError(t, err)
	defer func() { _ = db.DeleteCandidate(ctx, candidate.ID) }()

	posting, err := db.CreateJobPosting(ctx, &JobPostingCreateInput{
		Title:        "Go Developer",
		JobType:      "developer",
		Status:       JobStatusPublished,
		Requirements: &types.JobRequirements{RequiredSkills: []string{"Go"}, Seniority: types.SeniorityMid},
	})
	require.NoError(t, err)
	defer func() { _ = db.DeleteJobPosting(ctx, posting.ID) }()

	t.Run("round trips candidate profile", func(t *testing.T) {
		got, err := db.GetCandidate(ctx, candidate.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, []string{"Go"}, got.Profile.Skills.Flatten())
		assert.Equal(t, "Paris", got.Profile.Personal.Location)
	})

	t.Run("missing rows return nil", func(t *testing.T) {
		c, err := db.GetCandidate(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, c)

		p, err := db.GetJobPosting(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("lists published postings", func(t *testing.T) {
		postings, err := db.ListPublishedJobPostings(ctx, []uuid.UUID{posting.ID})
		require.NoError(t, err)
		require.Len(t, postings, 1)
		assert.Equal(t, types.SeniorityMid, postings[0].Requirements.Seniority)
	})

	t.Run("application scoring", func(t *testing.T) {
		app, err := db.CreateApplication(ctx, posting.ID, candidate.ID)
		require.NoError(t, err)
		assert.False(t, app.IsScored())

		require.NoError(t, db.UpdateApplicationScore(ctx, app.ID, 77, types.FitGood))

		got, err := db.GetApplication(ctx, app.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Score)
		assert.Equal(t, 77, *got.Score)
		assert.Equal(t, "good", *got.FitLevel)
		assert.NotNil(t, got.ScoredAt)
	})

	t.Run("upsert overwrites existing match", func(t *testing.T) {
		first, err := db.UpsertJobMatch(ctx, &JobMatch{
			JobPostingID: posting.ID, CandidateID: candidate.ID,
			Score: 60, FitLevel: types.FitFair, Confidence: 0.5,
			Recommendations: []string{"first"},
		})
		require.NoError(t, err)

		second, err := db.UpsertJobMatch(ctx, &JobMatch{
			JobPostingID: posting.ID, CandidateID: candidate.ID,
			Score: 90, FitLevel: types.FitExcellent, Confidence: 0.7,
			Recommendations: []string{"second"},
		})
		require.NoError(t, err)
		assert.Equal(t, 90, second.Score)
		assert.Equal(t, first.CreatedAt, second.CreatedAt)
		assert.False(t, second.UpdatedAt.Before(first.UpdatedAt))

		matches, err := db.ListJobMatches(ctx, JobMatchFilters{JobPostingID: posting.ID})
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, []string{"second"}, matches[0].Recommendations)
		assert.Equal(t, types.FitExcellent, matches[0].FitLevel)
	})
}
