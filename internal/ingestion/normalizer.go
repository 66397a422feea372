package ingestion

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/lgu-hrmd/pds-screener/internal/models"
)

// Key-name variants observed across layouts. All variant handling lives here:
// no component downstream of the normalizer sees raw entries.
var (
	schoolKeys       = []string{"school", "school_name", "name_of_school", "institution"}
	degreeKeys       = []string{"degree", "course", "degree_course", "basic_education"}
	positionKeys     = []string{"position", "position_title", "designation"}
	organizationKeys = []string{"organization", "agency", "company", "department", "office", "employer"}
	eligibilityKeys  = []string{"eligibility", "name", "title"}
	trainingTitleKey = []string{"title", "training_title", "program", "seminar"}
	providerKeys     = []string{"provider", "conducted_by", "sponsor", "sponsored_by"}
	hoursKeys        = []string{"hours", "no_of_hours", "number_of_hours"}
	dateFromKeys     = []string{"date_from", "from", "period_from", "inclusive_date_from"}
	dateToKeys       = []string{"date_to", "to", "period_to", "inclusive_date_to"}
)

var reNumeric = regexp.MustCompile(`\d+(?:\.\d+)?`)

// parseHours coerces an hour cell to a number. Cast failure yields nil, never
// an error: one malformed cell must not abort the extraction.
func parseHours(s string) *float64 {
	m := reNumeric.FindString(s)
	if m == "" {
		return nil
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return nil
	}
	if f < 0 {
		return nil
	}
	return &f
}

// parseYear coerces a graduation-year cell, nil on failure.
func parseYear(s string) *int {
	m := reYear.FindString(s)
	if m == "" {
		return nil
	}
	y, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return &y
}

// isAffirmative reads the Y/N government-service column.
func isAffirmative(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true", "1":
		return true
	}
	return strings.Contains(strings.ToLower(s), "gov")
}

// cleanValue strips placeholders down to the empty string.
func cleanValue(s string) string {
	if isPlaceholder(s) {
		return ""
	}
	return strings.TrimSpace(s)
}

func normalizePersonal(raw rawEntry) models.PersonalInfo {
	get := func(keys ...string) string { return cleanValue(firstValue(raw, keys...)) }
	return models.PersonalInfo{
		Surname:        get("surname", "last_name"),
		FirstName:      get("first_name", "given_name"),
		MiddleName:     get("middle_name"),
		DateOfBirth:    get("date_of_birth", "birth_date", "dob"),
		PlaceOfBirth:   get("place_of_birth", "birth_place"),
		Sex:            normalizeSex(get("sex", "gender")),
		CivilStatus:    get("civil_status"),
		Citizenship:    get("citizenship"),
		Email:          get("email", "email_address"),
		MobileNo:       get("mobile_no", "mobile", "cellphone"),
		TelephoneNo:    get("telephone_no", "telephone", "tel_no"),
		Residential:    get("residential_address"),
		Permanent:      get("permanent_address"),
		GSISNo:         get("gsis_no", "gsis"),
		PagIbigNo:      get("pagibig_no", "pag_ibig"),
		PhilHealthNo:   get("philhealth_no", "philhealth"),
		SSSNo:          get("sss_no", "sss"),
		TINNo:          get("tin_no", "tin"),
		AgencyEmployee: get("agency_employee_no", "agency_no"),
	}
}

func normalizeSex(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "male":
		return "Male"
	case "f", "female":
		return "Female"
	}
	return cleanValue(s)
}

func normalizeEducation(raws []rawEntry) []models.EducationEntry {
	entries := make([]models.EducationEntry, 0, len(raws))
	for _, raw := range raws {
		e := models.EducationEntry{
			Level:      models.EducationLevel(firstValue(raw, "level")),
			School:     cleanValue(firstValue(raw, schoolKeys...)),
			Degree:     cleanValue(firstValue(raw, degreeKeys...)),
			PeriodFrom: cleanValue(firstValue(raw, dateFromKeys...)),
			PeriodTo:   cleanValue(firstValue(raw, dateToKeys...)),
			Honors:     cleanValue(firstValue(raw, "honors", "honors_received", "scholarship")),
		}
		e.YearGraduated = parseYear(firstValue(raw, "year_graduated", "year"))
		e.DegreeType = models.DegreeNone
		if e.Level == models.LevelGraduate {
			if dt := raw["degree_type"]; dt != "" {
				e.DegreeType = models.DegreeType(dt)
			} else {
				e.DegreeType = models.DegreeType(classifyDegreeType(e.Degree))
			}
		}
		entries = append(entries, e)
	}
	return entries
}

func normalizeExperience(raws []rawEntry) []models.ExperienceEntry {
	entries := make([]models.ExperienceEntry, 0, len(raws))
	for _, raw := range raws {
		e := models.ExperienceEntry{
			Position:          cleanValue(firstValue(raw, positionKeys...)),
			Organization:      cleanValue(firstValue(raw, organizationKeys...)),
			DateFrom:          cleanValue(firstValue(raw, dateFromKeys...)),
			DateTo:            cleanValue(firstValue(raw, dateToKeys...)),
			SalaryGrade:       cleanValue(firstValue(raw, "salary_grade", "sg")),
			Status:            cleanValue(firstValue(raw, "status", "status_of_appointment")),
			GovernmentService: isAffirmative(firstValue(raw, "government_service", "govt_service")),
		}
		// Position and organization must both be present for the entry to
		// count toward experience.
		if e.Position == "" || e.Organization == "" {
			continue
		}
		entries = append(entries, e)
	}
	return entries
}

func normalizeEligibility(raws []rawEntry) []models.EligibilityEntry {
	entries := make([]models.EligibilityEntry, 0, len(raws))
	for _, raw := range raws {
		e := models.EligibilityEntry{
			Name:      cleanValue(firstValue(raw, eligibilityKeys...)),
			Rating:    cleanValue(firstValue(raw, "rating", "score")),
			ExamDate:  cleanValue(firstValue(raw, "exam_date", "date_of_examination")),
			ExamPlace: cleanValue(firstValue(raw, "exam_place", "place_of_examination")),
			LicenseNo: cleanValue(firstValue(raw, "license_no", "license")),
		}
		if e.Name == "" {
			continue
		}
		entries = append(entries, e)
	}
	return entries
}

func normalizeTraining(raws []rawEntry) []models.TrainingEntry {
	entries := make([]models.TrainingEntry, 0, len(raws))
	for _, raw := range raws {
		e := models.TrainingEntry{
			Title:    cleanValue(firstValue(raw, trainingTitleKey...)),
			Type:     cleanValue(firstValue(raw, "type", "type_of_ld", "ld_type")),
			Provider: cleanValue(firstValue(raw, providerKeys...)),
			DateFrom: cleanValue(firstValue(raw, dateFromKeys...)),
			DateTo:   cleanValue(firstValue(raw, dateToKeys...)),
		}
		e.Hours = parseHours(firstValue(raw, hoursKeys...))
		if e.Title == "" {
			continue
		}
		entries = append(entries, e)
	}
	return entries
}

func normalizeVoluntary(raws []rawEntry) []models.VolunteerEntry {
	entries := make([]models.VolunteerEntry, 0, len(raws))
	for _, raw := range raws {
		e := models.VolunteerEntry{
			Organization: cleanValue(firstValue(raw, organizationKeys...)),
			Position:     cleanValue(firstValue(raw, positionKeys...)),
			DateFrom:     cleanValue(firstValue(raw, dateFromKeys...)),
			DateTo:       cleanValue(firstValue(raw, dateToKeys...)),
		}
		e.Hours = parseHours(firstValue(raw, hoursKeys...))
		if e.Organization == "" {
			continue
		}
		entries = append(entries, e)
	}
	return entries
}

func normalizeReferences(raws []rawEntry) []models.ReferenceEntry {
	entries := make([]models.ReferenceEntry, 0, len(raws))
	for _, raw := range raws {
		e := models.ReferenceEntry{
			Name:      cleanValue(firstValue(raw, "name", "reference_name")),
			Address:   cleanValue(firstValue(raw, "address")),
			Telephone: cleanValue(firstValue(raw, "telephone", "tel_no", "contact")),
		}
		if e.Name == "" {
			continue
		}
		entries = append(entries, e)
	}
	return entries
}
