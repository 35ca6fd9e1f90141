package matching

import (
	"strings"

	"github.com/jonathan/talent-match/internal/types"
)

// Location tiers
const (
	locationExact  = 100.0
	locationMetro  = 90.0
	locationRegion = 70.0
	locationOther  = 30.0
)

// metroAreas maps a metro area to the place names that belong to it
var metroAreas = map[string][]string{
	"paris":         {"paris", "la défense", "la defense", "boulogne-billancourt", "issy-les-moulineaux", "neuilly-sur-seine", "levallois-perret", "saint-denis", "montreuil", "nanterre", "courbevoie"},
	"lyon":          {"lyon", "villeurbanne", "vénissieux", "venissieux", "bron", "écully", "ecully"},
	"marseille":     {"marseille", "aix-en-provence", "aubagne"},
	"london":        {"london", "croydon", "canary wharf", "westminster", "shoreditch"},
	"new york":      {"new york", "nyc", "manhattan", "brooklyn", "queens", "jersey city", "hoboken"},
	"san francisco": {"san francisco", "sf", "oakland", "berkeley", "palo alto", "mountain view", "san jose", "sunnyvale", "menlo park"},
	"berlin":        {"berlin", "potsdam"},
	"toronto":       {"toronto", "mississauga", "markham"},
}

// regions maps a broad region to the metros and place names inside it
var regions = map[string][]string{
	"île-de-france":              {"île-de-france", "ile-de-france", "idf", "paris", "versailles", "massy", "créteil", "creteil", "cergy", "évry", "evry"},
	"auvergne-rhône-alpes":       {"auvergne-rhône-alpes", "rhône-alpes", "rhone-alpes", "lyon", "grenoble", "saint-étienne", "saint-etienne", "annecy", "clermont-ferrand"},
	"provence-alpes-côte d'azur": {"provence", "paca", "marseille", "nice", "toulon", "sophia antipolis", "cannes", "avignon"},
	"england":                    {"england", "london", "manchester", "birmingham", "bristol", "leeds", "cambridge", "oxford"},
	"new york state":             {"new york state", "new york", "albany", "buffalo", "rochester"},
	"california":                 {"california", "ca", "san francisco", "los angeles", "san diego", "sacramento", "bay area"},
	"germany":                    {"germany", "deutschland", "berlin", "munich", "münchen", "hamburg", "frankfurt", "cologne", "köln"},
	"ontario":                    {"ontario", "toronto", "ottawa", "waterloo"},
}

var remoteTerms = []string{"remote", "télétravail", "teletravail", "anywhere", "work from home", "wfh"}

// ScoreLocation compares the candidate's location with the job's.
// Remote jobs and exact or containing matches score 100, the same metro area 90,
// the same region 70, anything else 30. A missing side is neutral (50).
func ScoreLocation(candidate *types.CandidateProfile, job *types.JobRequirements) types.PreferenceScore {
	result := types.PreferenceScore{Confidence: defaultConfidence}

	jobLoc := fold(job.Location)
	candLoc := fold(candidate.Personal.Location)

	switch {
	case job.Remote || containsAny(jobLoc, remoteTerms):
		result.Score, result.Reason = locationExact, "remote allowed"
	case jobLoc == "" || candLoc == "":
		result.Score, result.Reason = neutralScore, "location not specified"
	case jobLoc == candLoc || wordContains(jobLoc, candLoc) || wordContains(candLoc, jobLoc):
		result.Score, result.Reason = locationExact, "same location"
	case sharesArea(metroAreas, jobLoc, candLoc):
		result.Score, result.Reason = locationMetro, "same metro area"
	case sharesArea(regions, jobLoc, candLoc):
		result.Score, result.Reason = locationRegion, "same region"
	default:
		result.Score, result.Reason = locationOther, "different location"
	}

	result.Match = result.Score >= locationRegion
	return result
}

// sharesArea reports whether a and b both name a place inside one area of the table.
func sharesArea(table map[string][]string, a, b string) bool {
	for _, places := range table {
		if containsPlace(a, places) && containsPlace(b, places) {
			return true
		}
	}
	return false
}

func containsPlace(location string, places []string) bool {
	for _, p := range places {
		if wordContains(location, p) {
			return true
		}
	}
	return false
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if wordContains(s, t) {
			return true
		}
	}
	return false
}

// wordContains reports whether term occurs in s delimited by non-letters.
// Short aliases such as "ca" or "sf" must not hit inside longer words.
func wordContains(s, term string) bool {
	if s == "" || term == "" {
		return false
	}
	for start := 0; ; {
		i := strings.Index(s[start:], term)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(term)
		if boundary(s, i-1) && boundary(s, end) {
			return true
		}
		start = i + 1
	}
}

func boundary(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return true
	}
	c := s[i]
	return !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c >= 0x80)
}
