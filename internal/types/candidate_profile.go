// Package types provides type definitions for structured data used throughout the talent-match system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"sort"
	"strings"
)

// UncategorizedSkills is the SkillSet key holding skills without a category.
const UncategorizedSkills = "uncategorized"

// softSkillCategories are the SkillSet keys read as the candidate's soft skills.
var softSkillCategories = []string{"soft", "soft_skills"}

// SkillSet maps a skill category (e.g. "languages", "frameworks") to the skills listed under it.
type SkillSet map[string][]string

// Flatten returns every skill in the set. Categories are visited in sorted order with the
// uncategorized list last, so the result is stable for a given input.
func (s SkillSet) Flatten() []string {
	if len(s) == 0 {
		return nil
	}

	categories := make([]string, 0, len(s))
	for category := range s {
		if category == UncategorizedSkills {
			continue
		}
		categories = append(categories, category)
	}
	sort.Strings(categories)
	categories = append(categories, UncategorizedSkills)

	var flat []string
	for _, category := range categories {
		for _, skill := range s[category] {
			if strings.TrimSpace(skill) == "" {
				continue
			}
			flat = append(flat, skill)
		}
	}
	return flat
}

// SoftSkills returns the skills listed under the soft-skill categories.
// When none are present the full flattened list is returned instead.
func (s SkillSet) SoftSkills() []string {
	var soft []string
	for _, category := range softSkillCategories {
		for _, skill := range s[category] {
			if strings.TrimSpace(skill) != "" {
				soft = append(soft, skill)
			}
		}
	}
	if len(soft) == 0 {
		return s.Flatten()
	}
	return soft
}

// Experience is a single entry of a candidate's role history
type Experience struct {
	Position string `json:"position"`
	Company  string `json:"company,omitempty"`
	Duration string `json:"duration,omitempty"` // free text, e.g. "3 years", "18 months"
}

// Education is a single entry of a candidate's education history
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
}

// Personal holds the candidate's personal preferences relevant to matching
type Personal struct {
	Location          string       `json:"location,omitempty"`
	SalaryExpectation *SalaryRange `json:"salaryExpectation,omitempty"`
}

// CandidateProfile is the structured CV produced by the extraction collaborator.
// The engine only reads it; every field may be absent.
type CandidateProfile struct {
	Skills     SkillSet     `json:"skills,omitempty"`
	Experience []Experience `json:"experience,omitempty"`
	Education  []Education  `json:"education,omitempty"`
	Personal   Personal     `json:"personal"`
}
