package screener

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/lgu-hrmd/pds-screener/internal/models"
	"github.com/lgu-hrmd/pds-screener/internal/scoring"
)

func pdsWorkbook(t *testing.T, rows [][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", "C1"))
	for r, row := range rows {
		for c, v := range row {
			if v == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("C1", cell, v))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func strongCandidate(t *testing.T) []byte {
	return pdsWorkbook(t, [][]string{
		{"I. PERSONAL INFORMATION"},
		{"SURNAME", "DELA CRUZ"},
		{"FIRST NAME", "JUAN"},
		{"III. EDUCATIONAL BACKGROUND"},
		{"COLLEGE", "University of the Philippines", "BS Information Technology", "2006", "2010", "Graduated", "2010"},
		{"GRADUATE STUDIES", "UP Open University", "Master of Information Technology", "2012", "2015"},
		{"IV. CIVIL SERVICE ELIGIBILITY"},
		{"Career Service Professional", "85.23"},
		{"V. WORK EXPERIENCE"},
		{"01/2015", "Present", "Information Systems Analyst", "Provincial IT Office", "30000", "SG-16", "Permanent", "Y"},
	})
}

func weakCandidate(t *testing.T) []byte {
	return pdsWorkbook(t, [][]string{
		{"I. PERSONAL INFORMATION"},
		{"SURNAME", "REYES"},
		{"III. EDUCATIONAL BACKGROUND"},
		{"SECONDARY", "Rizal High School", "2002", "2006"},
	})
}

func itOfficerJob() *models.JobRequirementProfile {
	return &models.JobRequirementProfile{
		Title:             "IT Officer",
		Category:          "Information Technology",
		EducationKeywords: []string{"information technology"},
	}
}

func newTestScreener() *Screener {
	return New(scoring.NewAssessor(nil, nil), nil, nil, 4)
}

func TestScreen_BatchIsolation(t *testing.T) {
	inputs := []Input{
		{Name: "weak.xlsx", Ext: "xlsx", Data: weakCandidate(t)},
		{Name: "broken.xlsx", Ext: "xlsx", Data: []byte("not a workbook")},
		{Name: "strong.xlsx", Ext: "xlsx", Data: strongCandidate(t)},
	}

	results := newTestScreener().Screen(context.Background(), inputs, itOfficerJob())
	require.Len(t, results, 3)

	// One result per input, in input order.
	assert.Equal(t, "weak.xlsx", results[0].Name)
	assert.Equal(t, "broken.xlsx", results[1].Name)
	assert.Equal(t, "strong.xlsx", results[2].Name)

	// The broken document fails alone; the rest of the batch is assessed.
	require.ErrorIs(t, results[1].Err, models.ErrUnsupportedFormat)
	assert.Nil(t, results[1].Assessment)
	assert.Zero(t, results[1].Rank)

	require.NotNil(t, results[0].Assessment)
	require.NotNil(t, results[2].Assessment)
	assert.Greater(t, results[2].Assessment.Total, results[0].Assessment.Total)
	assert.Equal(t, 1, results[2].Rank)
	assert.Equal(t, 2, results[0].Rank)
}

func TestScreen_Deterministic(t *testing.T) {
	inputs := []Input{
		{Name: "strong.xlsx", Ext: "xlsx", Data: strongCandidate(t)},
		{Name: "weak.xlsx", Ext: "xlsx", Data: weakCandidate(t)},
	}
	s := newTestScreener()

	first := s.Screen(context.Background(), inputs, itOfficerJob())
	second := s.Screen(context.Background(), inputs, itOfficerJob())

	require.Len(t, second, 2)
	for i := range first {
		assert.Equal(t, first[i].Extraction.Profile.ID, second[i].Extraction.Profile.ID)
		assert.Equal(t, first[i].Assessment.ID, second[i].Assessment.ID)
		assert.Equal(t, first[i].Assessment.Total, second[i].Assessment.Total)
		assert.Equal(t, first[i].Rank, second[i].Rank)
	}
}

func TestScreen_OverridesApplyOnRescreen(t *testing.T) {
	inputs := []Input{{Name: "strong.xlsx", Ext: "xlsx", Data: strongCandidate(t)}}
	s := newTestScreener()

	baseline := s.Screen(context.Background(), inputs, itOfficerJob())
	require.Len(t, baseline, 1)
	candID := baseline[0].Extraction.Profile.ID
	total := baseline[0].Assessment.Total

	s.Overrides().Set(candID, models.CriterionPotential, 0, 15, "panel interview")
	adjusted := s.Screen(context.Background(), inputs, itOfficerJob())
	assert.InDelta(t, total+15, adjusted[0].Assessment.Total, 1e-9)

	require.NoError(t, s.Overrides().Reset(candID, models.CriterionPotential))
	restored := s.Screen(context.Background(), inputs, itOfficerJob())
	assert.InDelta(t, total, restored[0].Assessment.Total, 1e-9)
}

func TestBuildReport(t *testing.T) {
	inputs := []Input{
		{Name: "weak.xlsx", Ext: "xlsx", Data: weakCandidate(t)},
		{Name: "broken.xlsx", Ext: "xlsx", Data: []byte("junk")},
		{Name: "strong.xlsx", Ext: "xlsx", Data: strongCandidate(t)},
	}
	results := newTestScreener().Screen(context.Background(), inputs, itOfficerJob())
	report := BuildReport("IT Officer", results)

	assert.Equal(t, "IT Officer", report.JobTitle)
	assert.Equal(t, 2, report.Screened)
	assert.Equal(t, 1, report.Rejected)
	assert.False(t, report.GeneratedAt.IsZero())

	// Ranked candidates first, rejected documents last.
	require.Len(t, report.Results, 3)
	assert.Equal(t, "strong.xlsx", report.Results[0].Name)
	assert.Equal(t, "weak.xlsx", report.Results[1].Name)
	assert.Equal(t, "broken.xlsx", report.Results[2].Name)
}
