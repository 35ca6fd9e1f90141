package matching

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/talent-match/internal/types"
)

// FeatureExtractor pulls structured features out of free-text profile fields.
// The default implementation is keyword and regex driven.
type FeatureExtractor interface {
	// DurationYears parses a free-text duration into years; 0 when unparseable.
	DurationYears(duration string) float64
	// HasSeniority reports whether a job title signals the given seniority level.
	HasSeniority(title string, level types.Seniority) bool
	// EducationLevel returns the highest education level named in the text.
	EducationLevel(text string) EducationLevel
}

var (
	// The count must not start inside another number; "10+" and the integer part of "1.5" count.
	yearsPattern  = regexp.MustCompile(`(?i)(?:^|[^\d.,])(\d+)(?:[.,]\d+)?\s*\+?\s*(?:years?|yrs?|ans?)\b`)
	monthsPattern = regexp.MustCompile(`(?i)(?:^|[^\d.,])(\d+)(?:[.,]\d+)?\s*\+?\s*(?:months?|mois)\b`)
)

// seniorityKeywords lists the title terms for each level. Levels are checked junior first.
var seniorityKeywords = map[types.Seniority][]string{
	types.SeniorityJunior: {"junior", "jr", "entry-level", "entry level", "intern", "internship", "trainee", "graduate", "apprentice", "débutant"},
	types.SeniorityMid:    {"mid-level", "mid level", "intermediate", "confirmed", "confirmé", "associate"},
	types.SenioritySenior: {"senior", "sr", "expert", "principal", "staff", "specialist"},
	types.SeniorityLead:   {"lead", "manager", "head", "director", "chief", "vp", "cto", "responsable", "team leader"},
}

// educationKeywords lists degree terms for each level, checked highest first.
var educationKeywords = []struct {
	level    EducationLevel
	keywords []string
}{
	{EducationDoctorate, []string{"phd", "ph.d", "doctorate", "doctoral", "doctorat", "dphil"}},
	{EducationMaster, []string{"master", "masters", "msc", "m.sc", "mba", "meng", "m.eng", "ingénieur", "engineering school", "grande école"}},
	{EducationBachelor, []string{"bachelor", "bachelors", "bsc", "b.sc", "b.a", "beng", "licence", "undergraduate", "university", "université", "college"}},
	{EducationVocational, []string{"vocational", "diploma", "certificate", "bts", "dut", "associate degree", "technical school", "bootcamp", "apprenticeship"}},
}

// KeywordExtractor is the default FeatureExtractor
type KeywordExtractor struct {
	seniority map[types.Seniority]*regexp.Regexp
	education []*regexp.Regexp // parallel to educationKeywords
}

// NewKeywordExtractor compiles the keyword tables into word-boundary patterns.
func NewKeywordExtractor() *KeywordExtractor {
	e := &KeywordExtractor{seniority: make(map[types.Seniority]*regexp.Regexp, len(seniorityKeywords))}
	for level, words := range seniorityKeywords {
		e.seniority[level] = wordPattern(words)
	}
	for _, entry := range educationKeywords {
		e.education = append(e.education, wordPattern(entry.keywords))
	}
	return e
}

// DurationYears implements FeatureExtractor. A year count wins over a month count.
func (e *KeywordExtractor) DurationYears(duration string) float64 {
	if m := yearsPattern.FindStringSubmatch(duration); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return float64(n)
		}
	}
	if m := monthsPattern.FindStringSubmatch(duration); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return float64(n) / 12.0
		}
	}
	return 0
}

// HasSeniority implements FeatureExtractor.
func (e *KeywordExtractor) HasSeniority(title string, level types.Seniority) bool {
	re, ok := e.seniority[level]
	if !ok {
		return false
	}
	return re.MatchString(title)
}

// EducationLevel implements FeatureExtractor.
func (e *KeywordExtractor) EducationLevel(text string) EducationLevel {
	if strings.TrimSpace(text) == "" {
		return EducationNone
	}
	for i, re := range e.education {
		if re.MatchString(text) {
			return educationKeywords[i].level
		}
	}
	return EducationNone
}

// wordPattern builds a case-insensitive alternation matched on word boundaries.
// Boundaries are spelled out because \b is ASCII-only in RE2.
func wordPattern(words []string) *regexp.Regexp {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}])(?:` + strings.Join(quoted, "|") + `)(?:$|[^\p{L}\p{N}])`)
}
