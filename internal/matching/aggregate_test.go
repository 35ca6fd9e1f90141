package matching

import (
	"testing"

	"github.com/jonathan/talent-match/internal/types"
	"github.com/stretchr/testify/assert"
)

func scoresOf(skills, experience, education, soft, location, salary float64) *types.CategoryScores {
	return &types.CategoryScores{
		Skills:     types.SkillsScore{Score: skills},
		Experience: types.ExperienceScore{Score: experience},
		Education:  types.EducationScore{Score: education},
		SoftSkills: types.SkillsScore{Score: soft},
		Location:   types.PreferenceScore{Score: location},
		Salary:     types.PreferenceScore{Score: salary},
	}
}

func TestWeightsFor(t *testing.T) {
	assert.Equal(t, WeightsFor(""), WeightsFor("unknown_type"))
	assert.Equal(t, DefaultProfileName, WeightsFor("unknown_type").Name)
	assert.Equal(t, "developer", WeightsFor(" Developer ").Name)

	dev := WeightsFor("developer")
	for _, c := range types.Categories {
		if c != types.CategorySkills {
			assert.Greater(t, dev.Skills, dev.Weight(c))
		}
	}

	mgr := WeightsFor("manager")
	assert.Greater(t, mgr.Experience, mgr.Skills)
	assert.Greater(t, mgr.SoftSkills, mgr.Skills)

	for _, name := range ProfileNames() {
		assert.Equal(t, name, WeightsFor(name).Name)
	}
}

func TestWeightProfile_WeightPanicsOnUnknownCategory(t *testing.T) {
	assert.Panics(t, func() { WeightsFor("").Weight("availability") })
}

func TestAggregate(t *testing.T) {
	t.Run("default profile ignores availability", func(t *testing.T) {
		// (80*.35 + 60*.25 + 100*.15 + 0*.10 + 100*.05 + 100*.05) / .95 = 71.58
		got := Aggregate(scoresOf(80, 60, 100, 0, 100, 100), WeightsFor(""))
		assert.Equal(t, 72, got)
	})

	t.Run("zero weight is excluded from the denominator", func(t *testing.T) {
		w := WeightProfile{Skills: 1, Experience: 0}
		assert.Equal(t, 80, Aggregate(scoresOf(80, 0, 0, 0, 0, 0), w))
	})

	t.Run("no weights", func(t *testing.T) {
		assert.Equal(t, 0, Aggregate(scoresOf(80, 80, 80, 80, 80, 80), WeightProfile{}))
	})

	t.Run("uniform scores", func(t *testing.T) {
		for _, name := range append(ProfileNames(), "") {
			assert.Equal(t, 65, Aggregate(scoresOf(65, 65, 65, 65, 65, 65), WeightsFor(name)))
		}
	})
}
