package matching

import (
	"strings"

	"github.com/jonathan/talent-match/internal/types"
)

// EducationLevel is an ordinal education tier
type EducationLevel int

// Education levels, lowest first
const (
	EducationNone EducationLevel = iota
	EducationVocational
	EducationBachelor
	EducationMaster
	EducationDoctorate
)

var educationLevelNames = map[EducationLevel]string{
	EducationNone:       "none",
	EducationVocational: "vocational",
	EducationBachelor:   "bachelor",
	EducationMaster:     "master",
	EducationDoctorate:  "doctorate",
}

func (l EducationLevel) String() string {
	if name, ok := educationLevelNames[l]; ok {
		return name
	}
	return "none"
}

// relatedFields maps a field of study to fields that are considered close to it
var relatedFields = map[string][]string{
	"computer science":       {"software engineering", "computer engineering", "information technology", "informatique", "cs"},
	"software engineering":   {"computer science", "computer engineering", "informatique", "cs"},
	"data science":           {"statistics", "mathematics", "computer science", "machine learning"},
	"statistics":             {"mathematics", "data science", "economics"},
	"mathematics":            {"statistics", "physics", "computer science"},
	"electrical engineering": {"computer engineering", "electronics"},
	"business":               {"management", "business administration", "economics", "finance", "marketing"},
	"marketing":              {"communication", "business", "commerce"},
	"design":                 {"graphic design", "arts", "fine arts", "architecture", "ux"},
}

const relatedFieldScore = 70.0

// ScoreEducation averages a level score and a field-relevance score.
func ScoreEducation(extractor FeatureExtractor, candidate *types.CandidateProfile, job *types.JobRequirements) types.EducationScore {
	level, field := highestEducation(extractor, candidate.Education)
	required := requiredEducationLevel(extractor, job.Education)

	levelScore := 100.0
	if required > EducationNone && level < required {
		levelScore = float64(level) / float64(required) * underQualifiedCeiling
	}

	fieldScore := neutralScore
	if !job.Education.AnyField() {
		fieldScore = fieldRelevance(job.Education.Field, candidate.Education)
	}

	result := types.EducationScore{
		Score:      round2((levelScore + fieldScore) / 2),
		Level:      level.String(),
		Field:      field,
		LevelScore: round2(levelScore),
		FieldScore: round2(fieldScore),
		Confidence: defaultConfidence,
	}
	if required > EducationNone {
		result.RequiredLevel = required.String()
	}
	return result
}

// highestEducation returns the highest level found and the field of that entry.
func highestEducation(extractor FeatureExtractor, education []types.Education) (EducationLevel, string) {
	best := EducationNone
	field := ""
	for _, edu := range education {
		level := extractor.EducationLevel(edu.Institution + " " + edu.Degree)
		if level > best || (field == "" && level == best) {
			best = level
			field = edu.Field
		}
	}
	return best, field
}

// requiredEducationLevel resolves the job's level by name, then by keyword scan.
func requiredEducationLevel(extractor FeatureExtractor, req *types.EducationRequirement) EducationLevel {
	if req == nil {
		return EducationNone
	}
	name := strings.ToLower(strings.TrimSpace(req.Level))
	if name == "" || name == types.AnyEducation {
		return EducationNone
	}
	for level, levelName := range educationLevelNames {
		if name == levelName {
			return level
		}
	}
	return extractor.EducationLevel(name)
}

// fieldRelevance scores the best candidate field against the required one:
// 100 on an exact match, otherwise the higher of edit-distance similarity and
// the related-field floor.
func fieldRelevance(required string, education []types.Education) float64 {
	req := fold(required)
	best := 0.0
	for _, edu := range education {
		f := fold(edu.Field)
		if f == "" {
			continue
		}
		if f == req {
			return 100
		}
		score := Similarity(req, f) * 100
		if isRelatedField(req, f) {
			score = max(score, relatedFieldScore)
		}
		best = max(best, score)
	}
	return best
}

// isRelatedField matches whole words only, so "cs" does not hit "physics".
func isRelatedField(required, field string) bool {
	padded := " " + field + " "
	for _, r := range relatedFields[required] {
		if strings.Contains(padded, " "+r+" ") {
			return true
		}
	}
	return false
}
