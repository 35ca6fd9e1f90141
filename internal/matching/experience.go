package matching

import "github.com/jonathan/talent-match/internal/types"

const (
	// underQualifiedCeiling caps the base score of a candidate below the required years
	underQualifiedCeiling = 80.0
	neutralScore          = 50.0
	defaultConfidence     = 0.5
)

// ScoreExperience compares analyzed years against the required years and adds the
// seniority bonus. Without a years requirement the base is neutral (50).
func ScoreExperience(analyzer *Analyzer, candidate *types.CandidateProfile, job *types.JobRequirements) types.ExperienceScore {
	profile := analyzer.Analyze(candidate.Experience)

	base := neutralScore
	if job.Experience != nil {
		base = experienceBase(profile.TotalYears, *job.Experience)
	}

	bonus := 0
	if job.Seniority.Valid() {
		bonus = SeniorityBonus(profile.Seniority, job.Seniority)
	}

	return types.ExperienceScore{
		Score:             round2(clamp(base+float64(bonus), 0, 100)),
		Years:             round2(profile.TotalYears),
		Seniority:         profile.Seniority,
		RequiredYears:     job.Experience,
		RequiredSeniority: job.Seniority,
		SeniorityBonus:    bonus,
		Confidence:        defaultConfidence,
	}
}

// experienceBase is the years-ratio score before the seniority bonus.
func experienceBase(years, required float64) float64 {
	if required <= 0 {
		return 100
	}
	ratio := years / required
	if years >= required {
		return min(100, ratio*100)
	}
	return max(0, ratio*underQualifiedCeiling)
}
