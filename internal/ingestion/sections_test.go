package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateSheetSections(t *testing.T) {
	rows := [][]string{
		{"CS Form No. 212"},
		{"I. PERSONAL INFORMATION"},
		{"SURNAME", "DELA CRUZ"},
		{"III. EDUCATIONAL BACKGROUND"},
		{"COLLEGE", "UP"},
		{"IV. CIVIL SERVICE ELIGIBILITY"},
	}
	anchors := locateSheetSections(rows)

	require.Contains(t, anchors, SectionPersonal)
	require.Contains(t, anchors, SectionEducation)
	require.Contains(t, anchors, SectionEligibility)
	assert.Equal(t, 1, anchors[SectionPersonal])
	assert.Equal(t, 3, anchors[SectionEducation])
	assert.Equal(t, 5, anchors[SectionEligibility])
	assert.NotContains(t, anchors, SectionExperience)
}

func TestLocateTextSections_AndSlice(t *testing.T) {
	text := "PERSONAL INFORMATION\nsurname here\n" +
		"EDUCATIONAL BACKGROUND\ncollege line\n" +
		"WORK EXPERIENCE\njob line\n"
	anchors := locateTextSections(text)

	require.Contains(t, anchors, SectionEducation)
	slice := sectionSlice(text, anchors, SectionEducation)
	assert.Contains(t, slice, "college line")
	assert.NotContains(t, slice, "job line")
	assert.NotContains(t, slice, "surname here")

	assert.Empty(t, sectionSlice(text, anchors, SectionReferences))
}

func TestIsSectionBoundary(t *testing.T) {
	assert.True(t, isSectionBoundary([]string{"", "V. WORK EXPERIENCE"}, SectionEligibility))
	// A section's own header is not a boundary for itself.
	assert.False(t, isSectionBoundary([]string{"V. WORK EXPERIENCE"}, SectionExperience))
	assert.False(t, isSectionBoundary([]string{"Career Service Professional", "85.23"}, SectionEligibility))
}
