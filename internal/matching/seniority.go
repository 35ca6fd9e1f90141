package matching

import "github.com/jonathan/talent-match/internal/types"

// ExperienceProfile is the analyzed role history of a candidate
type ExperienceProfile struct {
	TotalYears float64         `json:"totalYears"`
	Seniority  types.Seniority `json:"seniority"`
}

// seniorityBonus is indexed [detected][required] in SeniorityLevels order.
// Under-qualification costs more than over-qualification.
var seniorityBonus = [4][4]int{
	//           junior mid senior lead
	/* junior */ {10, -10, -20, -30},
	/* mid    */ {5, 10, -10, -20},
	/* senior */ {0, 10, 10, -10},
	/* lead   */ {-5, 5, 10, 10},
}

// Analyzer derives total years and a seniority level from role history
type Analyzer struct {
	extractor FeatureExtractor
}

// NewAnalyzer returns an Analyzer reading text features through extractor.
func NewAnalyzer(extractor FeatureExtractor) *Analyzer {
	return &Analyzer{extractor: extractor}
}

// Analyze sums the parsed durations and detects the seniority level.
// Titles are scanned level by level, junior first, and the first level named by any
// entry wins. Without any keyword hit the level is inferred from total years.
func (a *Analyzer) Analyze(experience []types.Experience) ExperienceProfile {
	total := 0.0
	for _, exp := range experience {
		total += a.extractor.DurationYears(exp.Duration)
	}

	return ExperienceProfile{
		TotalYears: total,
		Seniority:  a.detectSeniority(experience, total),
	}
}

func (a *Analyzer) detectSeniority(experience []types.Experience, totalYears float64) types.Seniority {
	for _, level := range types.SeniorityLevels {
		for _, exp := range experience {
			if a.extractor.HasSeniority(exp.Position, level) {
				return level
			}
		}
	}
	return SeniorityFromYears(totalYears)
}

// SeniorityFromYears maps years of experience to a level: 8+ lead, 5+ senior, 2+ mid.
func SeniorityFromYears(years float64) types.Seniority {
	switch {
	case years >= 8:
		return types.SeniorityLead
	case years >= 5:
		return types.SenioritySenior
	case years >= 2:
		return types.SeniorityMid
	default:
		return types.SeniorityJunior
	}
}

// SeniorityBonus returns the score adjustment for a detected level against a required one.
// An unknown level on either side yields 0.
func SeniorityBonus(detected, required types.Seniority) int {
	d, r := detected.Index(), required.Index()
	if d < 0 || r < 0 {
		return 0
	}
	return seniorityBonus[d][r]
}
