package services

import (
	"math"

	"alfredoptarigan/cv-screener/internal/models"
)

const (
	recommendThreshold = 80
	considerThreshold  = 50
)

// Reconciler rescores a decoded completion against the caller's skill
// requirements. The model's own matchScore and decision are discarded.
type Reconciler struct {
	matcher SkillMatcher
}

func NewReconciler(matcher SkillMatcher) *Reconciler {
	if matcher == nil {
		matcher = SubstringMatcher{}
	}
	return &Reconciler{matcher: matcher}
}

func (r *Reconciler) Reconcile(payload *AnalysisPayload, requirements []models.SkillRequirement) (*models.CandidateResult, error) {
	rawSkills, err := payload.SkillList()
	if err != nil {
		return nil, err
	}

	skills := make([]models.SkillObservation, 0, len(rawSkills))
	totalWeightedScore, totalMaxWeight := 0, 0

	for _, raw := range rawSkills {
		weight := models.DefaultSkillWeight
		if req, ok := r.matcher.Match(raw.Name.String(), requirements); ok {
			weight = req.Weight
		}

		obs := toObservation(raw)
		obs.Weight = &weight

		totalWeightedScore += obs.Score * weight
		totalMaxWeight += 100 * weight

		skills = append(skills, obs)
	}

	matchScore := ComputeMatchScore(totalWeightedScore, totalMaxWeight)

	return &models.CandidateResult{
		CandidateName:     payload.CandidateName.String(),
		YearsOfExperience: payload.YearsOfExperience.String(),
		Summary:           payload.Summary.String(),
		Skills:            skills,
		MatchScore:        matchScore,
		Decision:          Classify(matchScore),
	}, nil
}

// PassThrough builds a result from the model's own score and decision, for
// requests made without a requirement list.
func PassThrough(payload *AnalysisPayload) *models.CandidateResult {
	var skills []models.SkillObservation
	if rawSkills, err := payload.SkillList(); err == nil {
		skills = make([]models.SkillObservation, 0, len(rawSkills))
		for _, raw := range rawSkills {
			skills = append(skills, toObservation(raw))
		}
	}
	if skills == nil {
		skills = []models.SkillObservation{}
	}

	return &models.CandidateResult{
		CandidateName:     payload.CandidateName.String(),
		YearsOfExperience: payload.YearsOfExperience.String(),
		Summary:           payload.Summary.String(),
		Skills:            skills,
		MatchScore:        clampPercent(payload.ModelScore()),
		Decision:          models.Decision(payload.ModelDecision()),
	}
}

// ComputeMatchScore returns round((totalWeightedScore / totalMaxWeight) * 100),
// or 0 when there is no weight at all. The product is taken before the
// division so exact halves stay exact in floating point.
func ComputeMatchScore(totalWeightedScore, totalMaxWeight int) int {
	if totalMaxWeight <= 0 {
		return 0
	}
	return int(math.Round(float64(totalWeightedScore) * 100 / float64(totalMaxWeight)))
}

// Classify maps a match score to its decision band. Lower bounds are
// inclusive.
func Classify(matchScore int) models.Decision {
	switch {
	case matchScore >= recommendThreshold:
		return models.DecisionRecommended
	case matchScore >= considerThreshold:
		return models.DecisionConsider
	default:
		return models.DecisionReject
	}
}

func toObservation(raw RawSkill) models.SkillObservation {
	return models.SkillObservation{
		Name:        raw.Name.String(),
		Evidence:    raw.Evidence.String(),
		Proficiency: clampPercent(raw.Proficiency.value()),
		Score:       clampPercent(raw.Score.value()),
	}
}

func clampPercent(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	return int(math.Round(math.Max(0, math.Min(100, v))))
}
