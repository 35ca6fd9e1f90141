package matching

import (
	"math"

	"github.com/jonathan/talent-match/internal/types"
)

// ScoreSkills matches every required skill against the candidate's flattened skill list.
// A required skill counts as matched when its best similarity exceeds TechnicalSkillThreshold.
// Preferred skills are reported as evidence only and do not move the score.
func ScoreSkills(matcher SkillMatcher, candidate *types.CandidateProfile, job *types.JobRequirements) types.SkillsScore {
	candidateSkills := candidate.Skills.Flatten()
	score := scoreSkillList(job.RequiredSkills, func(required string) bool {
		return matcher.Match(required, candidateSkills).Score > TechnicalSkillThreshold
	})

	for _, preferred := range job.PreferredSkills {
		if matcher.Match(preferred, candidateSkills).Score > TechnicalSkillThreshold {
			score.PreferredMatched = append(score.PreferredMatched, preferred)
		}
	}
	return score
}

// ScoreSoftSkills matches required soft skills against the candidate's soft skills.
// Every candidate soft skill is compared, with no containment pre-filter, and a
// similarity of at least SoftSkillThreshold counts as matched.
func ScoreSoftSkills(candidate *types.CandidateProfile, job *types.JobRequirements) types.SkillsScore {
	candidateSoft := candidate.Skills.SoftSkills()
	var matcher FullComparisonMatcher
	return scoreSkillList(job.SoftSkills, func(required string) bool {
		return matcher.Match(required, candidateSoft).Score >= SoftSkillThreshold
	})
}

// scoreSkillList splits required into matched and missing. With nothing required the
// score and confidence are both 0.
func scoreSkillList(required []string, matched func(string) bool) types.SkillsScore {
	result := types.SkillsScore{
		Matched: []string{},
		Missing: []string{},
	}

	for _, skill := range required {
		if matched(skill) {
			result.Matched = append(result.Matched, skill)
		} else {
			result.Missing = append(result.Missing, skill)
		}
	}

	total := float64(len(required))
	hits := float64(len(result.Matched))
	if total > 0 {
		result.Score = round2(hits / total * 100)
	}
	result.Confidence = round2(hits / math.Max(total, 1))
	return result
}
