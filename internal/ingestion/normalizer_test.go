package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgu-hrmd/pds-screener/internal/models"
)

func TestParseHours(t *testing.T) {
	tests := []struct {
		in   string
		want *float64
	}{
		{"24", f64(24)},
		{"16.5 hours", f64(16.5)},
		{"8 hrs", f64(8)},
		{"N/A", nil},
		{"", nil},
		{"unknown", nil},
	}
	for _, tt := range tests {
		got := parseHours(tt.in)
		if tt.want == nil {
			assert.Nil(t, got, "input %q", tt.in)
			continue
		}
		require.NotNil(t, got, "input %q", tt.in)
		assert.Equal(t, *tt.want, *got, "input %q", tt.in)
	}
}

func f64(v float64) *float64 { return &v }

func TestParseYear(t *testing.T) {
	y := parseYear("Graduated 2015")
	require.NotNil(t, y)
	assert.Equal(t, 2015, *y)

	assert.Nil(t, parseYear("Cum Laude"))
	assert.Nil(t, parseYear(""))
	// Out-of-century numbers are not years.
	assert.Nil(t, parseYear("1234"))
}

func TestIsAffirmative(t *testing.T) {
	for _, s := range []string{"Y", "y", "Yes", "YES", "true", "1", "Government"} {
		assert.True(t, isAffirmative(s), "input %q", s)
	}
	for _, s := range []string{"N", "no", "", "private"} {
		assert.False(t, isAffirmative(s), "input %q", s)
	}
}

func TestNormalizePersonal_KeyVariants(t *testing.T) {
	p := normalizePersonal(rawEntry{
		"surname":    "Dela Cruz",
		"first_name": "Juan",
		"gender":     "f",
		"mobile":     "09171234567",
		"tin":        "123-456-789",
	})
	assert.Equal(t, "Dela Cruz", p.Surname)
	assert.Equal(t, "Female", p.Sex)
	assert.Equal(t, "09171234567", p.MobileNo)
	assert.Equal(t, "123-456-789", p.TINNo)
	// Placeholder-valued and missing keys normalize to empty.
	assert.Empty(t, p.Email)
}

func TestNormalizeExperience_RequiresPositionAndOrganization(t *testing.T) {
	entries := normalizeExperience([]rawEntry{
		{"position": "Clerk", "organization": "LGU Pasig", "government_service": "Y"},
		{"position": "Clerk"},
		{"organization": "LGU Pasig"},
		{"position": "N/A", "organization": "LGU Pasig"},
	})
	require.Len(t, entries, 1)
	assert.Equal(t, "Clerk", entries[0].Position)
	assert.True(t, entries[0].GovernmentService)
}

func TestNormalizeEducation_DegreeTypeFallback(t *testing.T) {
	entries := normalizeEducation([]rawEntry{
		// Explicit degree_type from the neighborhood search wins.
		{"level": "Graduate", "school": "UP", "degree": "units earned", "degree_type": "doctorate"},
		// Otherwise classified from the degree text.
		{"level": "Graduate", "school": "UP", "degree": "Master of Management"},
		// Non-graduate rungs never carry a degree type.
		{"level": "College", "school": "UP", "degree": "BS Math"},
	})
	require.Len(t, entries, 3)
	assert.Equal(t, models.DegreeDoctorate, entries[0].DegreeType)
	assert.Equal(t, models.DegreeMasters, entries[1].DegreeType)
	assert.Equal(t, models.DegreeNone, entries[2].DegreeType)
}

func TestNormalizeTrainingAndVoluntary_DropNameless(t *testing.T) {
	training := normalizeTraining([]rawEntry{
		{"title": "Records Management", "hours": "16"},
		{"hours": "8"},
	})
	require.Len(t, training, 1)
	require.NotNil(t, training[0].Hours)
	assert.Equal(t, 16.0, *training[0].Hours)

	vols := normalizeVoluntary([]rawEntry{
		{"organization": "Red Cross", "position": "Volunteer"},
		{"position": "Volunteer"},
	})
	require.Len(t, vols, 1)
	assert.Equal(t, "Red Cross", vols[0].Organization)
}
