package ingestion

import (
	"regexp"
	"strings"
)

// rawEntry is one extracted-but-unnormalized record. Key names vary with the
// source layout; only the normalizer maps them to the canonical schema.
type rawEntry map[string]string

// placeholders are the values encoders type into cells they mean to leave
// empty. Field values are trimmed, lowercased and separator-stripped before
// the membership check.
var placeholders = map[string]struct{}{
	"":               {},
	"n/a":            {},
	"na":             {},
	"none":           {},
	"null":           {},
	"nil":            {},
	"-":              {},
	"--":             {},
	"___":            {},
	"not applicable": {},
}

var reSeparators = regexp.MustCompile(`^[\s\-_.*=]+$`)

// normalizeFieldValue trims, lowercases and collapses a field for placeholder
// matching.
func normalizeFieldValue(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if reSeparators.MatchString(v) {
		return ""
	}
	return v
}

// isPlaceholder reports whether a single field carries no real value.
func isPlaceholder(v string) bool {
	_, ok := placeholders[normalizeFieldValue(v)]
	return ok
}

// mastersKeywords and doctorateKeywords classify graduate study rows. Checked
// against lowercased degree text.
var (
	mastersKeywords = []string{
		"master", "masteral", "m.a.", "m.s.", "ma ", "ms ", "mba", "mpa", "msc",
		"m.sc", "maed", "m.ed", "mit", "mtech",
	}
	doctorateKeywords = []string{
		"doctor", "doctoral", "doctorate", "ph.d", "phd", "d.sc", "dsc", "edd",
		"ed.d", "dba", "dpa", "juris doctor",
	}
	graduateDegreeKeywords = append(append([]string{}, mastersKeywords...), doctorateKeywords...)
)

// containsAnyKeyword reports whether s (lowercased) contains one of the
// keywords.
func containsAnyKeyword(s string, keywords []string) bool {
	s = strings.ToLower(s)
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// classifyDegreeType resolves graduate degree text to masters or doctorate.
// Doctorate wins when both families match ("Doctor of Philosophy" also
// contains no masters keyword, but "Master... Doctor..." concatenations do
// occur in merged cells).
func classifyDegreeType(degreeText string) string {
	if containsAnyKeyword(degreeText, doctorateKeywords) {
		return "doctorate"
	}
	if containsAnyKeyword(degreeText, mastersKeywords) {
		return "masters"
	}
	return "none"
}

// eligibilityAllow are phrases and patterns that identify genuine
// civil-service eligibilities. Matching is case-insensitive substring.
var eligibilityAllow = []string{
	"career service", "professional", "sub-professional", "subprofessional",
	"csc", "civil service", "ra 1080", "r.a. 1080", "pd 907", "p.d. 907",
	"ra 6850", "board exam", "board passer", "bar exam", "licensure",
	"let passer", "let ", "teacher", "board of", "barangay official",
	"honor graduate", "eligibility", "cse", "cs prof", "cs sub",
	"driver", "stenographer", "penology", "fire officer", "police",
}

var (
	// reDateShaped rejects values that are really exam dates landing in the
	// eligibility column: 05/12/2019, 2019-05-12, "May 12, 2019", bare years.
	reDateShaped = regexp.MustCompile(`^\s*(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4}|\d{4}[/\-.]\d{1,2}[/\-.]\d{1,2}|\d{4})\s*$`)
	reMonthWord  = regexp.MustCompile(`(?i)^\s*(january|february|march|april|may|june|july|august|september|october|november|december)\b[\s\d,.]*$`)
	// reNumberShaped rejects ratings and license numbers mistaken for names.
	reNumberShaped = regexp.MustCompile(`^\s*[\d\s.,%\-/]+\s*$`)
)

// isEligibilityName accepts a string as a plausible civil-service eligibility
// label. The bias is conservative: date-shaped, number-shaped and unmatched
// strings are rejected, because a false eligibility inflates the score by a
// full category.
func isEligibilityName(s string) bool {
	if isPlaceholder(s) {
		return false
	}
	if reDateShaped.MatchString(s) || reMonthWord.MatchString(s) || reNumberShaped.MatchString(s) {
		return false
	}
	return containsAnyKeyword(s, eligibilityAllow)
}

// isValidEntry decides whether an extracted entry survives into the profile.
// The general rule: any non-placeholder field keeps the entry. Graduate
// education and eligibility are stricter, because those categories carry the
// largest score weights and attract false positives (orphaned
// graduate-studies rows, exam dates in the name column).
func isValidEntry(entry rawEntry, section Section) bool {
	switch section {
	case SectionEligibility:
		return isEligibilityName(firstValue(entry, "eligibility", "name", "title"))
	case SectionEducation:
		if strings.EqualFold(entry["level"], "Graduate") {
			return isValidGraduateEntry(entry)
		}
	}
	for k, v := range entry {
		if k == "level" {
			continue
		}
		if !isPlaceholder(v) {
			return true
		}
	}
	return false
}

// isValidGraduateEntry requires a recognized degree keyword, or a real school
// name plus at least one other populated field.
func isValidGraduateEntry(entry rawEntry) bool {
	degree := firstValue(entry, "degree", "course", "degree_course")
	if containsAnyKeyword(degree, graduateDegreeKeywords) {
		return true
	}
	school := firstValue(entry, "school", "school_name", "institution")
	if isPlaceholder(school) || reNumberShaped.MatchString(school) {
		return false
	}
	others := 0
	for k, v := range entry {
		switch k {
		case "level", "school", "school_name", "institution":
			continue
		}
		if !isPlaceholder(v) {
			others++
		}
	}
	return others >= 1
}

// firstValue returns the first non-empty value among the given keys.
func firstValue(entry rawEntry, keys ...string) string {
	for _, k := range keys {
		if v, ok := entry[k]; ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
