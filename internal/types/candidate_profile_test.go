package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillSet_Flatten(t *testing.T) {
	s := SkillSet{
		UncategorizedSkills: {"Git"},
		"languages":         {"Go", " "},
		"frameworks":        {"React"},
	}
	assert.Equal(t, []string{"React", "Go", "Git"}, s.Flatten())
	assert.Nil(t, SkillSet(nil).Flatten())
}

func TestSkillSet_SoftSkills(t *testing.T) {
	s := SkillSet{"soft": {"Empathy"}, "soft_skills": {"Leadership"}, "languages": {"Go"}}
	assert.Equal(t, []string{"Empathy", "Leadership"}, s.SoftSkills())

	s = SkillSet{"languages": {"Go"}}
	assert.Equal(t, []string{"Go"}, s.SoftSkills())
}

func TestSalaryRange_UnmarshalJSON(t *testing.T) {
	var p Personal

	require.NoError(t, json.Unmarshal([]byte(`{"salaryExpectation": "45k-55k"}`), &p))
	assert.Equal(t, "45k-55k", p.SalaryExpectation.Text)

	require.NoError(t, json.Unmarshal([]byte(`{"salaryExpectation": 60000}`), &p))
	require.NotNil(t, p.SalaryExpectation.Min)
	assert.Equal(t, 60000.0, *p.SalaryExpectation.Min)
	assert.Equal(t, 60000.0, *p.SalaryExpectation.Max)

	require.NoError(t, json.Unmarshal([]byte(`{"salaryExpectation": {"min": 40000, "max": 50000}}`), &p))
	assert.Equal(t, 40000.0, *p.SalaryExpectation.Min)
	assert.Equal(t, 50000.0, *p.SalaryExpectation.Max)
	assert.Empty(t, p.SalaryExpectation.Text)

	assert.Error(t, json.Unmarshal([]byte(`{"salaryExpectation": true}`), &p))
}

func TestSalaryRange_IsEmpty(t *testing.T) {
	var nilRange *SalaryRange
	assert.True(t, nilRange.IsEmpty())
	assert.True(t, (&SalaryRange{}).IsEmpty())
	assert.False(t, (&SalaryRange{Text: "50k"}).IsEmpty())
}

func TestEducationRequirement_UnmarshalJSON(t *testing.T) {
	var job JobRequirements

	require.NoError(t, json.Unmarshal([]byte(`{"education": "any"}`), &job))
	require.NotNil(t, job.Education)
	assert.Equal(t, AnyEducation, job.Education.Level)
	assert.True(t, job.Education.AnyField())

	job = JobRequirements{}
	require.NoError(t, json.Unmarshal([]byte(`{"education": {"level": "master", "field": "Statistics"}}`), &job))
	assert.Equal(t, "master", job.Education.Level)
	assert.False(t, job.Education.AnyField())

	var nilReq *EducationRequirement
	assert.True(t, nilReq.AnyField())
}

func TestSeniority(t *testing.T) {
	assert.Equal(t, 2, SenioritySenior.Index())
	assert.True(t, SeniorityLead.Valid())
	assert.False(t, Seniority("principal").Valid())
	assert.False(t, Seniority("").Valid())
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("softSkills")
	require.NoError(t, err)
	assert.Equal(t, CategorySoftSkills, c)

	_, err = ParseCategory("availability")
	assert.Error(t, err)
}
