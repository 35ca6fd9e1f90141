package types

import "fmt"

// Category identifies one of the six scoring criteria
type Category string

// The six scoring categories
const (
	CategorySkills     Category = "skills"
	CategoryExperience Category = "experience"
	CategoryEducation  Category = "education"
	CategorySoftSkills Category = "softSkills"
	CategoryLocation   Category = "location"
	CategorySalary     Category = "salary"
)

// Categories lists every scoring category in reporting order
var Categories = []Category{
	CategorySkills,
	CategoryExperience,
	CategoryEducation,
	CategorySoftSkills,
	CategoryLocation,
	CategorySalary,
}

// ParseCategory validates a category name
func ParseCategory(name string) (Category, error) {
	for _, c := range Categories {
		if string(c) == name {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category: %q", name)
}

// FitLevel is the discrete label summarizing an overall score
type FitLevel string

// Fit levels, best first
const (
	FitExcellent FitLevel = "excellent"
	FitVeryGood  FitLevel = "very_good"
	FitGood      FitLevel = "good"
	FitFair      FitLevel = "fair"
	FitPoor      FitLevel = "poor"
	FitVeryPoor  FitLevel = "very_poor"
)

// FitLevels lists every fit level, best first
var FitLevels = []FitLevel{FitExcellent, FitVeryGood, FitGood, FitFair, FitPoor, FitVeryPoor}

// SkillsScore is the evidence for a list-based category (skills and soft skills)
type SkillsScore struct {
	Score            float64  `json:"score"`
	Matched          []string `json:"matched"`
	Missing          []string `json:"missing"`
	PreferredMatched []string `json:"preferredMatched,omitempty"`
	Confidence       float64  `json:"confidence"`
}

// ExperienceScore is the evidence for the experience category
type ExperienceScore struct {
	Score             float64   `json:"score"`
	Years             float64   `json:"years"`
	Seniority         Seniority `json:"seniority"`
	RequiredYears     *float64  `json:"requiredYears,omitempty"`
	RequiredSeniority Seniority `json:"requiredSeniority,omitempty"`
	SeniorityBonus    int       `json:"seniorityBonus"`
	Confidence        float64   `json:"confidence"`
}

// EducationScore is the evidence for the education category
type EducationScore struct {
	Score         float64 `json:"score"`
	Level         string  `json:"level"`
	Field         string  `json:"field,omitempty"`
	RequiredLevel string  `json:"requiredLevel,omitempty"`
	LevelScore    float64 `json:"levelScore"`
	FieldScore    float64 `json:"fieldScore"`
	Confidence    float64 `json:"confidence"`
}

// PreferenceScore is the evidence for location and salary
type PreferenceScore struct {
	Score      float64 `json:"score"`
	Match      bool    `json:"match"`
	Reason     string  `json:"reason,omitempty"`
	Confidence float64 `json:"confidence"`
}

// CategoryScores holds one score per category. The set of categories is closed.
type CategoryScores struct {
	Skills     SkillsScore     `json:"skills"`
	Experience ExperienceScore `json:"experience"`
	Education  EducationScore  `json:"education"`
	SoftSkills SkillsScore     `json:"softSkills"`
	Location   PreferenceScore `json:"location"`
	Salary     PreferenceScore `json:"salary"`
}

// Score returns the 0-100 score of category c.
func (s *CategoryScores) Score(c Category) float64 {
	switch c {
	case CategorySkills:
		return s.Skills.Score
	case CategoryExperience:
		return s.Experience.Score
	case CategoryEducation:
		return s.Education.Score
	case CategorySoftSkills:
		return s.SoftSkills.Score
	case CategoryLocation:
		return s.Location.Score
	case CategorySalary:
		return s.Salary.Score
	default:
		panic(fmt.Sprintf("unknown category %q", c))
	}
}

// Confidence returns the 0-1 confidence of category c.
func (s *CategoryScores) Confidence(c Category) float64 {
	switch c {
	case CategorySkills:
		return s.Skills.Confidence
	case CategoryExperience:
		return s.Experience.Confidence
	case CategoryEducation:
		return s.Education.Confidence
	case CategorySoftSkills:
		return s.SoftSkills.Confidence
	case CategoryLocation:
		return s.Location.Confidence
	case CategorySalary:
		return s.Salary.Confidence
	default:
		panic(fmt.Sprintf("unknown category %q", c))
	}
}

// Strength is a category that scored well
type Strength struct {
	Category    Category `json:"category"`
	Score       float64  `json:"score"`
	Description string   `json:"description"`
}

// Weakness is a category that scored poorly, with a suggested improvement
type Weakness struct {
	Category    Category `json:"category"`
	Score       float64  `json:"score"`
	Description string   `json:"description"`
	Suggestion  string   `json:"suggestion"`
}

// MatchResult is the full outcome of matching one candidate against one job
type MatchResult struct {
	OverallScore    int            `json:"overallScore"`
	CategoryScores  CategoryScores `json:"categoryScores"`
	FitLevel        FitLevel       `json:"fitLevel"`
	Strengths       []Strength     `json:"strengths"`
	Weaknesses      []Weakness     `json:"weaknesses"`
	Recommendations []string       `json:"recommendations"`
	Confidence      float64        `json:"confidence"`
}
