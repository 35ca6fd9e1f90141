package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Seniority is a discrete experience tier
type Seniority string

// Seniority levels, lowest first
const (
	SeniorityJunior Seniority = "junior"
	SeniorityMid    Seniority = "mid"
	SenioritySenior Seniority = "senior"
	SeniorityLead   Seniority = "lead"
)

// SeniorityLevels lists the levels in ascending order
var SeniorityLevels = []Seniority{SeniorityJunior, SeniorityMid, SenioritySenior, SeniorityLead}

// Index returns the position of s in SeniorityLevels, or -1 for an unknown level.
func (s Seniority) Index() int {
	for i, level := range SeniorityLevels {
		if level == s {
			return i
		}
	}
	return -1
}

// Valid reports whether s is one of the four known levels
func (s Seniority) Valid() bool {
	return s.Index() >= 0
}

// AnyEducation is the sentinel accepted in place of an education requirement object.
const AnyEducation = "any"

// EducationRequirement describes the minimum education level and preferred field of a job.
// An empty or "any" Level places no requirement on the level; likewise for Field.
type EducationRequirement struct {
	Level string `json:"level,omitempty"` // none, vocational, bachelor, master, doctorate, any
	Field string `json:"field,omitempty"`
}

// UnmarshalJSON accepts either the string "any" or a {level, field} object.
func (e *EducationRequirement) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		e.Level = s
		if strings.EqualFold(strings.TrimSpace(s), AnyEducation) {
			e.Field = AnyEducation
		}
		return nil
	}

	type plain EducationRequirement
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("invalid education requirement: %w", err)
	}
	*e = EducationRequirement(p)
	return nil
}

// AnyField reports whether the requirement accepts any field of study
func (e *EducationRequirement) AnyField() bool {
	if e == nil {
		return true
	}
	f := strings.ToLower(strings.TrimSpace(e.Field))
	return f == "" || f == AnyEducation
}

// JobRequirements is the structured requirement set of a job posting
type JobRequirements struct {
	Type            string                `json:"type,omitempty"` // job family used for weight selection
	RequiredSkills  []string              `json:"requiredSkills,omitempty"`
	PreferredSkills []string              `json:"preferredSkills,omitempty"`
	Experience      *float64              `json:"experience,omitempty"` // required years
	Seniority       Seniority             `json:"seniority,omitempty" validate:"omitempty,oneof=junior mid senior lead"`
	Education       *EducationRequirement `json:"education,omitempty"`
	SoftSkills      []string              `json:"softSkills,omitempty"`
	Location        string                `json:"location,omitempty"`
	Remote          bool                  `json:"remote,omitempty"`
	Salary          *SalaryRange          `json:"salary,omitempty"`
}
