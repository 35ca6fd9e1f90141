package matching

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/talent-match/internal/types"
)

const (
	strengthThreshold = 80.0
	weaknessThreshold = 50.0
)

// Summary is everything derived from the category scores and the overall score
type Summary struct {
	FitLevel        types.FitLevel
	Strengths       []types.Strength
	Weaknesses      []types.Weakness
	Recommendations []string
	Confidence      float64
}

// FitLevelFor maps an overall score onto the fit ladder. Lower bounds are inclusive.
func FitLevelFor(overall int) types.FitLevel {
	switch {
	case overall >= 90:
		return types.FitExcellent
	case overall >= 80:
		return types.FitVeryGood
	case overall >= 70:
		return types.FitGood
	case overall >= 60:
		return types.FitFair
	case overall >= 50:
		return types.FitPoor
	default:
		return types.FitVeryPoor
	}
}

var strengthDescriptions = map[types.Category]string{
	types.CategorySkills:     "Strong technical skill match",
	types.CategoryExperience: "Experience level fits the role",
	types.CategoryEducation:  "Education meets the requirements",
	types.CategorySoftSkills: "Good interpersonal skill fit",
	types.CategoryLocation:   "Location is compatible",
	types.CategorySalary:     "Salary expectations are aligned",
}

var weaknessDescriptions = map[types.Category]string{
	types.CategorySkills:     "Several required skills are missing",
	types.CategoryExperience: "Experience is below what the role needs",
	types.CategoryEducation:  "Education is below the required level",
	types.CategorySoftSkills: "Few of the expected soft skills were found",
	types.CategoryLocation:   "Location does not fit the job",
	types.CategorySalary:     "Salary expectations are out of range",
}

var weaknessSuggestions = map[types.Category]string{
	types.CategorySkills:     "Train on the missing technologies or check for equivalent experience",
	types.CategoryExperience: "Consider a more junior opening or a mentoring plan",
	types.CategoryEducation:  "Weigh certifications or equivalent professional experience",
	types.CategorySoftSkills: "Probe teamwork and communication during the interview",
	types.CategoryLocation:   "Discuss relocation or remote work options",
	types.CategorySalary:     "Clarify the compensation package early",
}

// Summarize derives the fit level, strengths, weaknesses, recommendations and confidence.
func Summarize(scores *types.CategoryScores, overall int) Summary {
	summary := Summary{
		FitLevel:        FitLevelFor(overall),
		Strengths:       []types.Strength{},
		Weaknesses:      []types.Weakness{},
		Recommendations: []string{},
	}

	confidence := 0.0
	for _, c := range types.Categories {
		score := scores.Score(c)
		switch {
		case score >= strengthThreshold:
			summary.Strengths = append(summary.Strengths, types.Strength{
				Category:    c,
				Score:       score,
				Description: strengthDescriptions[c],
			})
		case score < weaknessThreshold:
			summary.Weaknesses = append(summary.Weaknesses, types.Weakness{
				Category:    c,
				Score:       score,
				Description: weaknessDescriptions[c],
				Suggestion:  weaknessSuggestions[c],
			})
		}
		confidence += scores.Confidence(c)
	}

	sort.SliceStable(summary.Strengths, func(i, j int) bool {
		return summary.Strengths[i].Score > summary.Strengths[j].Score
	})
	sort.SliceStable(summary.Weaknesses, func(i, j int) bool {
		return summary.Weaknesses[i].Score < summary.Weaknesses[j].Score
	})

	summary.Recommendations = append(categoryRecommendations(scores), closingRemark(overall))
	summary.Confidence = round2(clamp(confidence/float64(len(types.Categories)), 0, 1))
	return summary
}

func categoryRecommendations(s *types.CategoryScores) []string {
	recs := []string{}

	if s.Skills.Score < 70 && len(s.Skills.Missing) > 0 {
		recs = append(recs, "Missing skills: "+strings.Join(s.Skills.Missing, ", "))
	}
	if s.Experience.Score < 60 {
		if s.Experience.RequiredYears != nil {
			recs = append(recs, fmt.Sprintf("Insufficient experience: %s years vs %s required",
				formatYears(s.Experience.Years), formatYears(*s.Experience.RequiredYears)))
		} else {
			recs = append(recs, fmt.Sprintf("Experience level (%s) is below the expected seniority", s.Experience.Seniority))
		}
	}
	if s.Education.Score < 60 {
		if s.Education.RequiredLevel != "" {
			recs = append(recs, fmt.Sprintf("Education: %s level vs %s required", s.Education.Level, s.Education.RequiredLevel))
		} else {
			recs = append(recs, "Education field differs from the one requested")
		}
	}
	if s.SoftSkills.Score < 60 && len(s.SoftSkills.Missing) > 0 {
		recs = append(recs, "Soft skills to assess: "+strings.Join(s.SoftSkills.Missing, ", "))
	}
	if s.Location.Score < 50 {
		recs = append(recs, "Location mismatch: discuss relocation or remote work")
	}
	if s.Salary.Score < 50 {
		recs = append(recs, "Salary expectations do not fit the offered range")
	}
	return recs
}

func closingRemark(overall int) string {
	switch {
	case overall >= 80:
		return "Excellent match: recommend moving forward"
	case overall >= 60:
		return "Fair match: worth a screening interview"
	default:
		return "Weak match: needs improvement before moving forward"
	}
}

func formatYears(y float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.1f", y), "0"), ".")
}
