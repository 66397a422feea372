package ingestion

import (
	"sort"
	"strings"

	"github.com/lgu-hrmd/pds-screener/internal/models"
)

// fieldValidator accepts or rejects a candidate cell value for one scalar
// field.
type fieldValidator func(string) bool

func validAny(s string) bool { return !isPlaceholder(s) }

func validEmail(s string) bool {
	return strings.Contains(s, "@") && strings.Contains(s, ".")
}

func validPhone(s string) bool {
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 7
}

func validDate(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) < 4 {
		return false
	}
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

func validSex(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "female", "m", "f":
		return true
	}
	return false
}

// scalarProbes are the cell offsets tried, in order, after a label cell is
// found: right, two right, directly below, three right. Encoders merge label
// cells unpredictably, so the value rarely sits in a fixed offset.
var scalarProbes = [][2]int{{0, 1}, {0, 2}, {1, 0}, {0, 3}}

// findLabelCell scans the grid for the first cell containing any of the
// label variants.
func findLabelCell(rows [][]string, labels []string, maxRows int) (int, int, bool) {
	limit := len(rows)
	if maxRows > 0 && limit > maxRows {
		limit = maxRows
	}
	for r := 0; r < limit; r++ {
		for c := 0; c < len(rows[r]) && c < sectionScanCols; c++ {
			cell := strings.ToLower(rows[r][c])
			if cell == "" {
				continue
			}
			for _, label := range labels {
				if strings.Contains(cell, label) {
					return r, c, true
				}
			}
		}
	}
	return 0, 0, false
}

// probeAdjacent returns the first probe-cell value passing the validator.
func probeAdjacent(rows [][]string, r, c int, valid fieldValidator) string {
	for _, off := range scalarProbes {
		pr, pc := r+off[0], c+off[1]
		if pr >= len(rows) || pc >= len(rows[pr]) {
			continue
		}
		v := strings.TrimSpace(rows[pr][pc])
		if v == "" || isPlaceholder(v) {
			continue
		}
		// Skip cells that are themselves labels.
		if strings.HasSuffix(v, ":") {
			continue
		}
		if valid(v) {
			return v
		}
	}
	return ""
}

// personalField couples a raw key with its label variants and validator.
type personalField struct {
	key    string
	labels []string
	valid  fieldValidator
}

var personalFields = []personalField{
	{"surname", []string{"surname"}, validAny},
	{"first_name", []string{"first name"}, validAny},
	{"middle_name", []string{"middle name"}, validAny},
	{"date_of_birth", []string{"date of birth", "birth date"}, validDate},
	{"place_of_birth", []string{"place of birth"}, validAny},
	{"sex", []string{"sex", "gender"}, validSex},
	{"civil_status", []string{"civil status"}, validAny},
	{"citizenship", []string{"citizenship"}, validAny},
	{"email", []string{"e-mail", "email"}, validEmail},
	{"mobile_no", []string{"mobile no", "mobile"}, validPhone},
	{"telephone_no", []string{"telephone"}, validPhone},
	{"residential_address", []string{"residential address"}, validAny},
	{"permanent_address", []string{"permanent address"}, validAny},
	{"gsis_no", []string{"gsis"}, validAny},
	{"pagibig_no", []string{"pag-ibig", "pagibig"}, validAny},
	{"philhealth_no", []string{"philhealth"}, validAny},
	{"sss_no", []string{"sss"}, validAny},
	{"tin_no", []string{"tin"}, validAny},
	{"agency_employee_no", []string{"agency employee"}, validAny},
}

// extractPersonalSheet pulls the scalar fields of the personal information
// section with label + adjacent-cell probes.
func extractPersonalSheet(rows [][]string, res *models.ExtractionResult) rawEntry {
	entry := rawEntry{}
	for _, f := range personalFields {
		r, c, ok := findLabelCell(rows, f.labels, sectionScanRows)
		if !ok {
			continue
		}
		v := probeAdjacent(rows, r, c, f.valid)
		if v == "" {
			res.Warn(models.DiagFieldExtraction, string(SectionPersonal), f.key,
				"label found at row %d but no adjacent value passed validation", r+1)
			continue
		}
		entry[f.key] = v
	}
	return entry
}

// educationLevelAnchors locate each rung's row in the educational background
// table.
var educationLevelAnchors = []struct {
	level  models.EducationLevel
	labels []string
}{
	{models.LevelElementary, []string{"elementary"}},
	{models.LevelSecondary, []string{"secondary"}},
	{models.LevelVocational, []string{"vocational", "trade course"}},
	{models.LevelCollege, []string{"college"}},
	{models.LevelGraduate, []string{"graduate studies", "graduate"}},
}

// educationFieldOrder is the form's column order after the level label.
var educationFieldOrder = []string{
	"school", "degree", "period_from", "period_to", "units", "year_graduated", "honors",
}

// graduateSearchCols bounds the degree-type neighborhood search around a
// graduate row.
const graduateSearchCols = 14

// levelLabelCols bounds the level-anchor search to the leftmost columns.
// Level labels sit in column A of the form; a wider search would let a
// "Graduated" units cell anchor the graduate rung.
const levelLabelCols = 3

// extractEducationSheet reads one row per level anchor. Values usually sit on
// the anchor row itself; a sparse anchor row falls through to the next row,
// which merged-cell exports produce.
func extractEducationSheet(rows [][]string, anchor int, res *models.ExtractionResult) []rawEntry {
	var entries []rawEntry
	end := educationSectionEnd(rows, anchor)

	for _, la := range educationLevelAnchors {
		r, c, ok := findLevelRow(rows, anchor, end, la.labels)
		if !ok {
			continue
		}
		values := rowValuesAfter(rows[r], c)
		if len(values) < 2 && r+1 < end {
			values = append(values, rowValuesAfter(rows[r+1], 0)...)
		}
		if len(values) == 0 {
			continue
		}
		entry := rawEntry{"level": string(la.level)}
		for i, v := range values {
			if i >= len(educationFieldOrder) {
				break
			}
			entry[educationFieldOrder[i]] = v
		}
		if la.level == models.LevelGraduate {
			if classifyDegreeType(entry["degree"]) == "none" {
				if dt := searchDegreeTypeNeighborhood(rows, r); dt != "none" {
					entry["degree_type"] = dt
				}
			}
		}
		if !isValidEntry(entry, SectionEducation) {
			res.Warn(models.DiagInvalidEntryRejected, string(SectionEducation), "",
				"%s row rejected as placeholder or unsupported graduate entry", la.level)
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// findLevelRow finds the level label between the section anchor and its end.
// The first match wins; the label must start the cell so that column-header
// text ("highest level/units earned") does not anchor a rung.
func findLevelRow(rows [][]string, start, end int, labels []string) (int, int, bool) {
	for r := start; r < end && r < len(rows); r++ {
		for c := 0; c < len(rows[r]) && c < levelLabelCols; c++ {
			cell := strings.ToLower(strings.TrimSpace(rows[r][c]))
			for _, label := range labels {
				if strings.HasPrefix(cell, label) {
					return r, c, true
				}
			}
		}
	}
	return 0, 0, false
}

// educationSectionEnd returns the row where the next section begins.
func educationSectionEnd(rows [][]string, anchor int) int {
	end := anchor + tableRowBudget
	if end > len(rows) {
		end = len(rows)
	}
	for r := anchor + 1; r < end; r++ {
		if isSectionBoundary(rows[r], SectionEducation) {
			return r
		}
	}
	return end
}

// searchDegreeTypeNeighborhood scans one row above through one row below the
// graduate anchor, up to graduateSearchCols columns, for masters or doctorate
// keywords. Catches degree text that landed in a units or honors column.
func searchDegreeTypeNeighborhood(rows [][]string, r int) string {
	for dr := -1; dr <= 1; dr++ {
		rr := r + dr
		if rr < 0 || rr >= len(rows) {
			continue
		}
		for c := 0; c < len(rows[rr]) && c < graduateSearchCols; c++ {
			if dt := classifyDegreeType(rows[rr][c]); dt != "none" {
				return dt
			}
		}
	}
	return "none"
}

// tableSpec drives the generic positional reader for one tabular section.
type tableSpec struct {
	section    Section
	fieldOrder []string
	budget     int
}

var (
	eligibilityTable = tableSpec{
		section:    SectionEligibility,
		fieldOrder: []string{"eligibility", "rating", "exam_date", "exam_place", "license_no"},
		budget:     12,
	}
	experienceTable = tableSpec{
		section: SectionExperience,
		fieldOrder: []string{
			"date_from", "date_to", "position", "organization",
			"monthly_salary", "salary_grade", "status", "government_service",
		},
		budget: 40,
	}
	trainingTable = tableSpec{
		section:    SectionTraining,
		fieldOrder: []string{"title", "date_from", "date_to", "hours", "type", "provider"},
		budget:     30,
	}
	voluntaryTable = tableSpec{
		section:    SectionVoluntary,
		fieldOrder: []string{"organization", "date_from", "date_to", "hours", "position"},
		budget:     15,
	}
	referencesTable = tableSpec{
		section:    SectionReferences,
		fieldOrder: []string{"name", "address", "telephone"},
		budget:     6,
	}
)

// tableRowBudget bounds any positional read that finds no boundary.
const tableRowBudget = 60

// maxConsecutiveBlank rows before a table read gives up.
const maxConsecutiveBlank = 5

// columnHeaderKeywords mark the header rows between a section anchor and its
// data. Phrases are chosen to be distinctly header-ish; short words like
// "from" and "to" match only as whole cells. A row with two or more hits is
// skipped as a header.
var columnHeaderKeywords = []string{
	"rating", "date of exam", "place of exam", "license",
	"position title", "monthly salary", "salary grade",
	"status of appointment", "gov't service", "govt service",
	"title of learning", "number of hours", "type of ld", "conducted/",
	"sponsored by", "name of school", "basic education", "period of attendance",
	"year graduated", "scholarship", "write in full",
	"name & address", "nature of work", "inclusive dates", "tel. no",
}

var columnHeaderExact = []string{"from", "to", "honors received"}

func isColumnHeaderRow(row []string) bool {
	hits := 0
	for _, cell := range row {
		lower := strings.ToLower(strings.TrimSpace(cell))
		if lower == "" {
			continue
		}
		matched := false
		for _, kw := range columnHeaderKeywords {
			if strings.Contains(lower, kw) {
				matched = true
				break
			}
		}
		if !matched {
			for _, kw := range columnHeaderExact {
				if lower == kw {
					matched = true
					break
				}
			}
		}
		if matched {
			hits++
		}
	}
	return hits >= 2
}

// extractTableSheet reads the rows following a section anchor into ordered
// raw entries. Header rows directly under the anchor are skipped; reading
// stops at the next section's anchor text, after the table's row budget, or
// after a run of blank rows.
func extractTableSheet(rows [][]string, anchor int, spec tableSpec, res *models.ExtractionResult) []rawEntry {
	var entries []rawEntry
	blanks := 0
	read := 0

	for r := anchor + 1; r < len(rows); r++ {
		if isSectionBoundary(rows[r], spec.section) {
			break
		}
		if read == 0 && isColumnHeaderRow(rows[r]) {
			continue
		}
		values := rowValuesAfter(rows[r], -1)
		if len(values) == 0 {
			blanks++
			if blanks >= maxConsecutiveBlank {
				break
			}
			continue
		}
		blanks = 0
		read++
		if read > spec.budget {
			break
		}

		entry := rawEntry{}
		for i, v := range values {
			if i >= len(spec.fieldOrder) {
				break
			}
			entry[spec.fieldOrder[i]] = v
		}
		if !isValidEntry(entry, spec.section) {
			res.Warn(models.DiagInvalidEntryRejected, string(spec.section), "",
				"row %d rejected: %s", r+1, summarizeEntry(entry))
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// rowValuesAfter collects the trimmed non-empty cells of a row after the
// given column.
func rowValuesAfter(row []string, col int) []string {
	var values []string
	for c := col + 1; c < len(row); c++ {
		v := strings.TrimSpace(row[c])
		if v != "" {
			values = append(values, v)
		}
	}
	return values
}

// summarizeEntry renders a short audit string for a rejected entry. Fields
// are sorted so the same input bytes always produce the same detail string.
func summarizeEntry(entry rawEntry) string {
	var parts []string
	for k, v := range entry {
		if strings.TrimSpace(v) != "" {
			parts = append(parts, k+"="+v)
		}
	}
	if len(parts) == 0 {
		return "all fields empty"
	}
	sort.Strings(parts)
	if len(parts) > 4 {
		parts = parts[:4]
	}
	return strings.Join(parts, " ")
}
