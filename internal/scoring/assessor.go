package scoring

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lgu-hrmd/pds-screener/internal/models"
)

// assessmentNamespace seeds deterministic assessment IDs per (candidate, job)
// pair.
var assessmentNamespace = uuid.MustParse("5d1be7c3-8a0f-49d2-b4ce-6e9a27f301dd")

// Recommendation tier thresholds on the final percentage.
const (
	tierHighly       = 80.0
	tierRecommended  = 70.0
	tierReservations = 60.0
)

// Assessor scores candidate profiles against job requirement profiles. The
// embedder is optional: without one (or when it fails) the assessor degrades
// to pure rule-based scoring and says so in the result's provenance.
type Assessor struct {
	embedder Embedder
	logger   *zap.Logger
	now      func() time.Time
}

// NewAssessor builds an assessor. embedder may be nil for rule-only scoring.
func NewAssessor(embedder Embedder, logger *zap.Logger) *Assessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assessor{embedder: embedder, logger: logger, now: time.Now}
}

// WithClock replaces the time source. Tests use it for reproducible
// experience-years and timestamps.
func (a *Assessor) WithClock(now func() time.Time) *Assessor {
	a.now = now
	return a
}

// Assess computes the full breakdown for one (candidate, job) pair.
// manualPotential is the evaluator-supplied potential/performance component,
// clipped to its cap and excluded from automatic recomputation. The profile
// is never mutated.
func (a *Assessor) Assess(ctx context.Context, profile *models.CandidateProfile, job *models.JobRequirementProfile, manualPotential float64) *models.AssessmentResult {
	now := a.now()

	breakdown := models.ScoreBreakdown{
		Education: models.CategoryScore{
			Criterion: models.CriterionEducation,
			Rule:      scoreEducation(profile, job),
			Max:       MaxEducation,
		},
		Experience: models.CategoryScore{
			Criterion: models.CriterionExperience,
			Rule:      scoreExperience(profile, job, now),
			Max:       MaxExperience,
		},
		Training: models.CategoryScore{
			Criterion: models.CriterionTraining,
			Rule:      scoreTraining(profile, job),
			Max:       MaxTraining,
		},
		Eligibility: models.CategoryScore{
			Criterion: models.CriterionEligibility,
			Rule:      scoreEligibility(profile, job),
			Max:       MaxEligibility,
		},
		Accomplishments: models.CategoryScore{
			Criterion: models.CriterionAccomplishments,
			Rule:      scoreAccomplishments(profile),
			Max:       MaxAccomplishments,
		},
		Potential: clip(manualPotential, MaxPotential),
	}

	hybrid := false
	var diags []models.Diagnostic
	if a.embedder != nil {
		hybrid, diags = a.applySemanticBoosts(ctx, profile, job, &breakdown)
	}
	provenance := models.ProvenanceRuleOnly
	if hybrid {
		provenance = models.ProvenanceHybrid
	}

	var total float64
	for _, cat := range breakdown.Categories() {
		// A failed or skipped boost leaves the rule score untouched.
		if !hybrid || cat.Boosted < cat.Rule {
			cat.Boosted = cat.Rule
			cat.Similarity = 0
		}
		cat.Final = cat.Boosted
		total += cat.Final
	}
	total += breakdown.Potential
	total = clip(total, 100)

	result := &models.AssessmentResult{
		ID:             uuid.NewSHA1(assessmentNamespace, []byte(profile.ID+"|"+job.Title)).String(),
		CandidateID:    profile.ID,
		JobTitle:       job.Title,
		Total:          total,
		Breakdown:      breakdown,
		Recommendation: recommendationTier(total),
		Provenance:     provenance,
		Diagnostics:    diags,
		GeneratedAt:    now,
	}

	a.logger.Debug("assessment computed",
		zap.String("candidate_id", profile.ID),
		zap.String("job_title", job.Title),
		zap.Float64("total", total),
		zap.String("provenance", provenance),
		zap.String("recommendation", result.Recommendation),
	)
	return result
}

// applySemanticBoosts embeds the per-category candidate text and the job
// requirement text and raises each boostable category by the bounded
// similarity booster. Any embedding failure degrades the whole assessment to
// rule-only scoring; the failure is logged and surfaced as a diagnostic on
// the result, never raised as an error.
func (a *Assessor) applySemanticBoosts(ctx context.Context, profile *models.CandidateProfile, job *models.JobRequirementProfile, breakdown *models.ScoreBreakdown) (bool, []models.Diagnostic) {
	jobVec, err := a.embedder.Embed(ctx, jobText(job))
	if err != nil {
		a.logger.Warn("embedding unavailable, falling back to rule-based scores",
			zap.String("candidate_id", profile.ID), zap.Error(err))
		return false, []models.Diagnostic{{
			Code:   models.DiagEmbeddingUnavailable,
			Detail: err.Error(),
		}}
	}

	boostable := []struct {
		cat  *models.CategoryScore
		text string
	}{
		{&breakdown.Education, educationText(profile)},
		{&breakdown.Experience, experienceText(profile)},
		{&breakdown.Training, trainingText(profile)},
	}

	for _, b := range boostable {
		if b.cat.Rule == 0 || strings.TrimSpace(b.text) == "" {
			b.cat.Boosted = b.cat.Rule
			continue
		}
		vec, err := a.embedder.Embed(ctx, b.text)
		if err != nil {
			a.logger.Warn("embedding unavailable for category, keeping rule score",
				zap.String("criterion", b.cat.Criterion), zap.Error(err))
			b.cat.Boosted = b.cat.Rule
			return false, []models.Diagnostic{{
				Code:   models.DiagEmbeddingUnavailable,
				Field:  b.cat.Criterion,
				Detail: err.Error(),
			}}
		}
		b.cat.Similarity = cosineSimilarity(vec, jobVec)
		b.cat.Boosted = semanticBoost(b.cat.Rule, b.cat.Max, b.cat.Similarity)
	}
	return true, nil
}

func recommendationTier(total float64) string {
	switch {
	case total >= tierHighly:
		return models.TierHighlyRecommended
	case total >= tierRecommended:
		return models.TierRecommended
	case total >= tierReservations:
		return models.TierReservations
	default:
		return models.TierNotRecommended
	}
}

// Per-category concatenated text fed to the embedder.

func educationText(p *models.CandidateProfile) string {
	var sb strings.Builder
	for _, e := range p.Education {
		sb.WriteString(e.Degree)
		sb.WriteString(" ")
		sb.WriteString(e.School)
		sb.WriteString(" ")
		sb.WriteString(e.Honors)
		sb.WriteString("\n")
	}
	return sb.String()
}

func experienceText(p *models.CandidateProfile) string {
	var sb strings.Builder
	for _, e := range p.Experience {
		sb.WriteString(e.Position)
		sb.WriteString(" ")
		sb.WriteString(e.Organization)
		sb.WriteString("\n")
	}
	return sb.String()
}

func trainingText(p *models.CandidateProfile) string {
	var sb strings.Builder
	for _, t := range p.Training {
		sb.WriteString(t.Title)
		sb.WriteString(" ")
		sb.WriteString(t.Provider)
		sb.WriteString("\n")
	}
	return sb.String()
}

func jobText(job *models.JobRequirementProfile) string {
	parts := []string{job.Title, job.Category, job.Description}
	parts = append(parts, job.EducationKeywords...)
	parts = append(parts, job.ExperienceKeywords...)
	parts = append(parts, job.TrainingKeywords...)
	return strings.Join(parts, " ")
}
