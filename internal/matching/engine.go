package matching

import "github.com/jonathan/talent-match/internal/types"

// Engine scores a candidate profile against a job's requirements.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	extractor FeatureExtractor
	analyzer  *Analyzer
	matcher   SkillMatcher
}

// NewEngine returns an Engine with the keyword feature extractor and the containment matcher.
func NewEngine() *Engine {
	return NewEngineWith(NewKeywordExtractor(), ContainmentMatcher{})
}

// NewEngineWith returns an Engine using the given extractor and skill matcher.
func NewEngineWith(extractor FeatureExtractor, matcher SkillMatcher) *Engine {
	return &Engine{
		extractor: extractor,
		analyzer:  NewAnalyzer(extractor),
		matcher:   matcher,
	}
}

// Score runs the six category scorers.
func (e *Engine) Score(candidate *types.CandidateProfile, job *types.JobRequirements) types.CategoryScores {
	if candidate == nil {
		candidate = &types.CandidateProfile{}
	}
	if job == nil {
		job = &types.JobRequirements{}
	}

	return types.CategoryScores{
		Skills:     ScoreSkills(e.matcher, candidate, job),
		Experience: ScoreExperience(e.analyzer, candidate, job),
		Education:  ScoreEducation(e.extractor, candidate, job),
		SoftSkills: ScoreSoftSkills(candidate, job),
		Location:   ScoreLocation(candidate, job),
		Salary:     ScoreSalary(candidate, job),
	}
}

// Match scores every category, aggregates with the job type's weight profile and
// summarizes the result. It never fails; missing data yields neutral scores.
func (e *Engine) Match(candidate *types.CandidateProfile, job *types.JobRequirements) types.MatchResult {
	scores := e.Score(candidate, job)

	jobType := ""
	if job != nil {
		jobType = job.Type
	}
	overall := Aggregate(&scores, WeightsFor(jobType))
	summary := Summarize(&scores, overall)

	return types.MatchResult{
		OverallScore:    overall,
		CategoryScores:  scores,
		FitLevel:        summary.FitLevel,
		Strengths:       summary.Strengths,
		Weaknesses:      summary.Weaknesses,
		Recommendations: summary.Recommendations,
		Confidence:      summary.Confidence,
	}
}
