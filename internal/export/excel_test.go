package export

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/lgu-hrmd/pds-screener/internal/models"
	"github.com/lgu-hrmd/pds-screener/internal/screener"
)

func sampleReport() screener.Report {
	assessment := &models.AssessmentResult{
		ID:          "assess-1",
		CandidateID: "cand-1",
		JobTitle:    "IT Officer",
		Total:       76.8,
		Breakdown: models.ScoreBreakdown{
			Education: models.CategoryScore{
				Criterion: models.CriterionEducation, Rule: 37, Boosted: 40, Final: 40, Max: 40,
			},
			Experience: models.CategoryScore{
				Criterion: models.CriterionExperience, Rule: 15, Boosted: 18, Final: 18, Max: 20,
			},
			Training: models.CategoryScore{
				Criterion: models.CriterionTraining, Rule: 4, Boosted: 4.8, Final: 4.8, Max: 10,
			},
			Eligibility: models.CategoryScore{
				Criterion: models.CriterionEligibility, Rule: 10, Boosted: 10, Final: 10, Max: 10,
			},
			Accomplishments: models.CategoryScore{
				Criterion: models.CriterionAccomplishments, Rule: 4, Boosted: 4, Final: 4, Max: 5,
			},
		},
		Recommendation: models.TierRecommended,
		Provenance:     models.ProvenanceHybrid,
		Diagnostics: []models.Diagnostic{
			{Code: models.DiagEmbeddingUnavailable, Detail: "quota exhausted"},
		},
		GeneratedAt: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}

	extraction := &models.ExtractionResult{
		Profile: &models.CandidateProfile{
			ID:       "cand-1",
			Personal: models.PersonalInfo{FirstName: "Juan", Surname: "Dela Cruz"},
		},
		Diagnostics: []models.Diagnostic{
			{Code: models.DiagSectionNotFound, Section: "family_background",
				Detail: "no header variant matched within the scan window"},
		},
		Confidence: models.ConfidenceMedium,
	}

	return screener.Report{
		JobTitle: "IT Officer",
		Results: []screener.Result{
			{Name: "juan.xlsx", Rank: 1, Extraction: extraction, Assessment: assessment},
			{Name: "broken.xlsx", Err: errors.New("unsupported format")},
		},
		Screened:    1,
		Rejected:    1,
		GeneratedAt: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestExportToExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, ExportToExcel(sampleReport(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t,
		[]string{"Summary", "Ranked Candidates", "Score Breakdown"},
		f.GetSheetList())

	position, err := f.GetCellValue("Summary", "B3")
	require.NoError(t, err)
	assert.Equal(t, "IT Officer", position)

	name, err := f.GetCellValue("Ranked Candidates", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Juan Dela Cruz", name)

	total, err := f.GetCellValue("Ranked Candidates", "C2")
	require.NoError(t, err)
	assert.Equal(t, "76.80", total)

	criterion, err := f.GetCellValue("Score Breakdown", "B2")
	require.NoError(t, err)
	assert.Equal(t, models.CriterionEducation, criterion)

	diags, err := f.GetCellValue("Score Breakdown", "H2")
	require.NoError(t, err)
	assert.Contains(t, diags, "family_background")
	assert.Contains(t, diags, "embedding_unavailable")
}

func TestExportToExcel_AppendsExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report")
	require.NoError(t, ExportToExcel(sampleReport(), path))

	_, err := excelize.OpenFile(path + ".xlsx")
	require.NoError(t, err)
}
