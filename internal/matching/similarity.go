// Package matching scores a candidate profile against a job's requirements.
//
// The engine is a set of pure functions: six category sub-scorers feed a weighted
// aggregator, whose output feeds the fit-level and recommendation generator.
// Nothing in this package performs I/O or keeps state between calls.
package matching

import (
	"strings"
	"unicode/utf8"
)

// Similarity thresholds above which a candidate skill counts as a match
const (
	TechnicalSkillThreshold = 0.7
	SoftSkillThreshold      = 0.6
	LegacySkillThreshold    = 0.8
)

// SkillMatch is the best candidate skill found for one required skill
type SkillMatch struct {
	Required string  `json:"required"`
	Matched  string  `json:"matched,omitempty"` // empty when nothing qualified
	Score    float64 `json:"score"`
}

// SkillMatcher finds the closest candidate skill for a required skill
type SkillMatcher interface {
	Match(required string, candidateSkills []string) SkillMatch
}

// ContainmentMatcher compares a required skill only against candidate skills that
// contain it or are contained by it. Unrelated tokens score 0 without an edit-distance
// comparison, which trades recall for precision.
type ContainmentMatcher struct{}

// Match implements SkillMatcher.
func (ContainmentMatcher) Match(required string, candidateSkills []string) SkillMatch {
	result := SkillMatch{Required: required}
	req := fold(required)
	if req == "" {
		return result
	}

	for _, skill := range candidateSkills {
		if fold(skill) == req {
			return SkillMatch{Required: required, Matched: skill, Score: 1.0}
		}
	}

	for _, skill := range candidateSkills {
		s := fold(skill)
		if s == "" || !(strings.Contains(s, req) || strings.Contains(req, s)) {
			continue
		}
		if sim := Similarity(req, s); sim > result.Score {
			result.Score = sim
			result.Matched = skill
		}
	}
	return result
}

// FullComparisonMatcher compares a required skill against every candidate skill.
type FullComparisonMatcher struct{}

// Match implements SkillMatcher.
func (FullComparisonMatcher) Match(required string, candidateSkills []string) SkillMatch {
	result := SkillMatch{Required: required}
	req := fold(required)
	if req == "" {
		return result
	}

	for _, skill := range candidateSkills {
		s := fold(skill)
		if s == "" {
			continue
		}
		if s == req {
			return SkillMatch{Required: required, Matched: skill, Score: 1.0}
		}
		if sim := Similarity(req, s); sim > result.Score {
			result.Score = sim
			result.Matched = skill
		}
	}
	return result
}

// LegacyOverlap is the older skill-overlap heuristic: every required skill is compared
// against the whole candidate list and counts when similarity reaches 0.8.
// Returns the fraction of required skills covered (0-1) and the covered names.
func LegacyOverlap(required, candidateSkills []string) (float64, []string) {
	if len(required) == 0 {
		return 0.0, nil
	}

	var covered []string
	var matcher FullComparisonMatcher
	for _, skill := range required {
		if m := matcher.Match(skill, candidateSkills); m.Score >= LegacySkillThreshold {
			covered = append(covered, skill)
		}
	}
	return float64(len(covered)) / float64(len(required)), covered
}

// Similarity returns the normalized edit-distance similarity of a and b, case-insensitively:
// 1 - levenshtein(a, b) / max(len(a), len(b)).
func Similarity(a, b string) float64 {
	a, b = fold(a), fold(b)
	if a == b {
		return 1.0
	}
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1.0
	}
	return 1.0 - float64(Levenshtein(a, b))/float64(longest)
}

// Levenshtein returns the edit distance between a and b, counted in runes.
func Levenshtein(a, b string) int {
	ar, br := []rune(a), []rune(b)
	if len(ar) == 0 {
		return len(br)
	}
	if len(br) == 0 {
		return len(ar)
	}

	prev := make([]int, len(br)+1)
	curr := make([]int, len(br)+1)
	for j := range prev {
		prev[j] = j
	}

	for i, ca := range ar {
		curr[0] = i + 1
		for j, cb := range br {
			cost := 1
			if ca == cb {
				cost = 0
			}
			curr[j+1] = min(curr[j]+1, prev[j+1]+1, prev[j]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(br)]
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
