package matching

import (
	"fmt"
	"strings"

	"github.com/jonathan/talent-match/internal/types"
)

// DefaultProfileName names the profile used for unknown or missing job types
const DefaultProfileName = "default"

// WeightProfile assigns a weight to each scoring category. Weights need not sum to 1.
// Availability is reserved: no scorer produces an availability score, so it is never
// part of the aggregate.
type WeightProfile struct {
	Name         string  `json:"name"`
	Skills       float64 `json:"skills"`
	Experience   float64 `json:"experience"`
	Education    float64 `json:"education"`
	SoftSkills   float64 `json:"softSkills"`
	Location     float64 `json:"location"`
	Salary       float64 `json:"salary"`
	Availability float64 `json:"availability"`
}

// Weight returns the weight of category c.
func (w WeightProfile) Weight(c types.Category) float64 {
	switch c {
	case types.CategorySkills:
		return w.Skills
	case types.CategoryExperience:
		return w.Experience
	case types.CategoryEducation:
		return w.Education
	case types.CategorySoftSkills:
		return w.SoftSkills
	case types.CategoryLocation:
		return w.Location
	case types.CategorySalary:
		return w.Salary
	default:
		panic(fmt.Sprintf("unknown category %q", c))
	}
}

var defaultProfile = WeightProfile{
	Name:         DefaultProfileName,
	Skills:       0.35,
	Experience:   0.25,
	Education:    0.15,
	SoftSkills:   0.10,
	Location:     0.05,
	Salary:       0.05,
	Availability: 0.05,
}

var weightProfiles = map[string]WeightProfile{
	"developer": {
		Name:         "developer",
		Skills:       0.45,
		Experience:   0.25,
		Education:    0.10,
		SoftSkills:   0.05,
		Location:     0.05,
		Salary:       0.05,
		Availability: 0.05,
	},
	"manager": {
		Name:         "manager",
		Skills:       0.15,
		Experience:   0.35,
		Education:    0.10,
		SoftSkills:   0.25,
		Location:     0.05,
		Salary:       0.05,
		Availability: 0.05,
	},
	"designer": {
		Name:         "designer",
		Skills:       0.40,
		Experience:   0.20,
		Education:    0.10,
		SoftSkills:   0.15,
		Location:     0.05,
		Salary:       0.05,
		Availability: 0.05,
	},
	"sales": {
		Name:         "sales",
		Skills:       0.15,
		Experience:   0.25,
		Education:    0.05,
		SoftSkills:   0.35,
		Location:     0.10,
		Salary:       0.05,
		Availability: 0.05,
	},
	"data": {
		Name:         "data",
		Skills:       0.40,
		Experience:   0.20,
		Education:    0.20,
		SoftSkills:   0.05,
		Location:     0.05,
		Salary:       0.05,
		Availability: 0.05,
	},
}

// WeightsFor returns the weight profile for a job type, case-insensitively.
// Unknown or empty types get the default profile.
func WeightsFor(jobType string) WeightProfile {
	if p, ok := weightProfiles[strings.ToLower(strings.TrimSpace(jobType))]; ok {
		return p
	}
	return defaultProfile
}

// ProfileNames lists the known job types, excluding the default.
func ProfileNames() []string {
	return []string{"developer", "manager", "designer", "sales", "data"}
}
