package matching

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/talent-match/internal/types"
)

// salaryNumberPattern matches a number with thousands groups ("45,000", "45.000", "1,200,000"),
// a single space-separated group ("45 000"), or a decimal ("45.5"), followed by an optional
// "k" multiplier. Space groups stop after one so "50 000 100 000" stays two amounts.
var salaryNumberPattern = regexp.MustCompile(`(?i)(\d{1,3}(?:[,.]\d{3})+|\d{1,3}[ \x{00a0}]\d{3}|\d+(?:[.,]\d{1,2})?)\s*(k)?`)

// ScoreSalary scores the overlap between the job's salary range and the candidate's
// expectation as overlap / combined span. A point range that falls inside the other
// range scores 100. Either side missing or unparseable is neutral (50).
func ScoreSalary(candidate *types.CandidateProfile, job *types.JobRequirements) types.PreferenceScore {
	result := types.PreferenceScore{Confidence: defaultConfidence}

	jobMin, jobMax, jobOK := ParseSalary(job.Salary)
	candMin, candMax, candOK := ParseSalary(candidate.Personal.SalaryExpectation)
	if !jobOK || !candOK {
		result.Score, result.Reason = neutralScore, "salary not specified"
		return result
	}

	if (jobMin == jobMax && within(jobMin, candMin, candMax)) ||
		(candMin == candMax && within(candMin, jobMin, jobMax)) {
		result.Score, result.Match, result.Reason = 100, true, "expectation within range"
		return result
	}

	overlap := min(jobMax, candMax) - max(jobMin, candMin)
	span := max(jobMax, candMax) - min(jobMin, candMin)
	if overlap <= 0 || span <= 0 {
		result.Score, result.Reason = 0, "ranges do not overlap"
		return result
	}

	result.Score = round2(clamp(overlap/span*100, 0, 100))
	result.Match = true
	result.Reason = "ranges overlap"
	return result
}

// ParseSalary extracts a [min, max] range. Structured bounds win over free text; in text
// the first two numbers found are used and a single number is a point range.
func ParseSalary(r *types.SalaryRange) (lo, hi float64, ok bool) {
	if r.IsEmpty() {
		return 0, 0, false
	}

	switch {
	case r.Min != nil && r.Max != nil:
		lo, hi = *r.Min, *r.Max
	case r.Min != nil:
		lo, hi = *r.Min, *r.Min
	case r.Max != nil:
		lo, hi = *r.Max, *r.Max
	default:
		nums := parseSalaryNumbers(r.Text, 2)
		switch len(nums) {
		case 0:
			return 0, 0, false
		case 1:
			lo, hi = nums[0], nums[0]
		default:
			lo, hi = nums[0], nums[1]
		}
	}

	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi, true
}

// parseSalaryNumbers returns up to limit numbers from text. In "45-55k" the "k" of the
// second number also applies to the first.
func parseSalaryNumbers(text string, limit int) []float64 {
	var nums []float64
	thousands := false
	for _, m := range salaryNumberPattern.FindAllStringSubmatch(text, limit) {
		n, err := parseSalaryNumber(m[1])
		if err != nil {
			continue
		}
		if m[2] != "" {
			n *= 1000
			thousands = true
		}
		nums = append(nums, n)
	}
	if thousands {
		for i, n := range nums {
			if n < 1000 {
				nums[i] = n * 1000
			}
		}
	}
	return nums
}

// parseSalaryNumber strips thousands separators. A separator followed by exactly three
// digits is a thousands separator, anything else is a decimal point.
func parseSalaryNumber(s string) (float64, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\u00a0' {
			return -1
		}
		return r
	}, s)

	if i := strings.LastIndexAny(cleaned, ".,"); i >= 0 && len(cleaned)-i-1 != 3 {
		cleaned = strings.NewReplacer(",", "", ".", "").Replace(cleaned[:i]) + "." + cleaned[i+1:]
	} else {
		cleaned = strings.NewReplacer(",", "", ".", "").Replace(cleaned)
	}
	return strconv.ParseFloat(cleaned, 64)
}

func within(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}
