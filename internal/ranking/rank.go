// Package ranking builds shortlists: one job scored against many candidates, or one
// candidate scored against many jobs.
package ranking

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/talent-match/internal/matching"
	"github.com/jonathan/talent-match/internal/types"
)

// Matcher scores one candidate against one job
type Matcher interface {
	Match(candidate *types.CandidateProfile, job *types.JobRequirements) types.MatchResult
}

// Candidate is a candidate profile with its identity
type Candidate struct {
	ID      uuid.UUID
	Name    string
	Profile *types.CandidateProfile
}

// Job is a job's requirements with its identity
type Job struct {
	ID           uuid.UUID
	Title        string
	Requirements *types.JobRequirements
}

// Options bound a shortlist. A Limit of 0 keeps every entry.
type Options struct {
	Limit    int
	MinScore float64
}

// RankedCandidate is one entry of a job's candidate shortlist
type RankedCandidate struct {
	CandidateID   uuid.UUID         `json:"candidate_id"`
	Name          string            `json:"name,omitempty"`
	Result        types.MatchResult `json:"result"`
	SkillOverlap  float64           `json:"skill_overlap"`
	OverlapSkills []string          `json:"overlap_skills,omitempty"`
	Notes         string            `json:"notes"`
}

// RankedJob is one entry of a candidate's job shortlist
type RankedJob struct {
	JobID         uuid.UUID         `json:"job_posting_id"`
	Title         string            `json:"title,omitempty"`
	Result        types.MatchResult `json:"result"`
	SkillOverlap  float64           `json:"skill_overlap"`
	OverlapSkills []string          `json:"overlap_skills,omitempty"`
	Notes         string            `json:"notes"`
}

// RankCandidates scores every candidate against job and returns them sorted by overall
// score (descending), ties broken by candidate id.
func RankCandidates(m Matcher, job Job, candidates []Candidate, opts Options) []RankedCandidate {
	ranked := make([]RankedCandidate, 0, len(candidates))
	for _, c := range candidates {
		result := m.Match(c.Profile, job.Requirements)
		if float64(result.OverallScore) < opts.MinScore {
			continue
		}
		overlap, skills := skillOverlap(c.Profile, job.Requirements)
		ranked = append(ranked, RankedCandidate{
			CandidateID:   c.ID,
			Name:          c.Name,
			Result:        result,
			SkillOverlap:  overlap,
			OverlapSkills: skills,
			Notes:         generateNotes(&result, overlap, skills),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Result.OverallScore != ranked[j].Result.OverallScore {
			return ranked[i].Result.OverallScore > ranked[j].Result.OverallScore
		}
		return ranked[i].CandidateID.String() < ranked[j].CandidateID.String()
	})
	return truncate(ranked, opts.Limit)
}

// RankJobs scores candidate against every job and returns them sorted by overall
// score (descending), ties broken by job id.
func RankJobs(m Matcher, candidate Candidate, jobs []Job, opts Options) []RankedJob {
	ranked := make([]RankedJob, 0, len(jobs))
	for _, j := range jobs {
		result := m.Match(candidate.Profile, j.Requirements)
		if float64(result.OverallScore) < opts.MinScore {
			continue
		}
		overlap, skills := skillOverlap(candidate.Profile, j.Requirements)
		ranked = append(ranked, RankedJob{
			JobID:         j.ID,
			Title:         j.Title,
			Result:        result,
			SkillOverlap:  overlap,
			OverlapSkills: skills,
			Notes:         generateNotes(&result, overlap, skills),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Result.OverallScore != ranked[j].Result.OverallScore {
			return ranked[i].Result.OverallScore > ranked[j].Result.OverallScore
		}
		return ranked[i].JobID.String() < ranked[j].JobID.String()
	})
	return truncate(ranked, opts.Limit)
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

// skillOverlap is the quick legacy overlap figure shown next to the full score.
func skillOverlap(profile *types.CandidateProfile, job *types.JobRequirements) (float64, []string) {
	if profile == nil || job == nil {
		return 0, nil
	}
	return matching.LegacyOverlap(job.RequiredSkills, profile.Skills.Flatten())
}

// generateNotes creates a brief explanation of the ranking.
func generateNotes(result *types.MatchResult, overlap float64, skills []string) string {
	var parts []string

	// Skill overlap description
	switch {
	case len(skills) == 0:
		parts = append(parts, "No skill overlap")
	case overlap >= 0.7:
		parts = append(parts, fmt.Sprintf("Strong skill overlap (%s)", strings.Join(skills, ", ")))
	case overlap >= 0.4:
		parts = append(parts, fmt.Sprintf("Moderate skill overlap (%s)", strings.Join(skills, ", ")))
	default:
		parts = append(parts, fmt.Sprintf("Weak skill overlap (%s)", strings.Join(skills, ", ")))
	}

	parts = append(parts, fmt.Sprintf("Fit: %s (%d)", result.FitLevel, result.OverallScore))

	if len(result.Strengths) > 0 {
		parts = append(parts, "Strongest: "+string(result.Strengths[0].Category))
	}
	if len(result.Weaknesses) > 0 {
		parts = append(parts, "Weakest: "+string(result.Weaknesses[0].Category))
	}

	return strings.Join(parts, ". ")
}
