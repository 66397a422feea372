package ingestion

import "strings"

// Section names the logical parts of the form.
type Section string

const (
	SectionPersonal    Section = "personal_information"
	SectionFamily      Section = "family_background"
	SectionEducation   Section = "educational_background"
	SectionEligibility Section = "civil_service_eligibility"
	SectionExperience  Section = "work_experience"
	SectionVoluntary   Section = "voluntary_work"
	SectionTraining    Section = "learning_and_development"
	SectionOtherInfo   Section = "other_information"
	SectionReferences  Section = "references"
)

// allSections in form order. The locator reports a diagnostic for each one it
// cannot find; extraction of the others continues.
var allSections = []Section{
	SectionPersonal,
	SectionFamily,
	SectionEducation,
	SectionEligibility,
	SectionExperience,
	SectionVoluntary,
	SectionTraining,
	SectionOtherInfo,
	SectionReferences,
}

// sectionAnchors lists the header phrases that mark the start of each
// section, most conventional first. Matching is case-insensitive substring:
// the form numbers its headers ("III. EDUCATIONAL BACKGROUND") and encoders
// retype them freely.
var sectionAnchors = map[Section][]string{
	SectionPersonal:    {"personal information"},
	SectionFamily:      {"family background"},
	SectionEducation:   {"educational background", "educational attainment"},
	SectionEligibility: {"civil service eligibility", "eligibility"},
	SectionExperience:  {"work experience"},
	SectionVoluntary:   {"voluntary work"},
	SectionTraining:    {"learning and development", "l&d interventions", "training programs attended", "trainings attended"},
	SectionOtherInfo:   {"other information"},
	SectionReferences:  {"references"},
}

// sectionScanRows and sectionScanCols bound the spreadsheet anchor search.
// Four-sheet workbooks concatenate to well under this budget; the bound keeps
// pathological sheets from dominating extraction time.
const (
	sectionScanRows = 400
	sectionScanCols = 30
)

// SheetAnchors maps each located section to the index of the row containing
// its header within the flattened row view.
type SheetAnchors map[Section]int

// locateSheetSections scans a bounded window of the flattened rows for every
// section's header variants and records the first hit per section.
func locateSheetSections(rows [][]string) SheetAnchors {
	anchors := make(SheetAnchors)
	limit := len(rows)
	if limit > sectionScanRows {
		limit = sectionScanRows
	}
	for r := 0; r < limit; r++ {
		cols := len(rows[r])
		if cols > sectionScanCols {
			cols = sectionScanCols
		}
		for c := 0; c < cols; c++ {
			cell := strings.ToLower(rows[r][c])
			if cell == "" {
				continue
			}
			for _, sec := range allSections {
				if _, ok := anchors[sec]; ok {
					continue
				}
				if matchesAnchor(cell, sectionAnchors[sec]) {
					anchors[sec] = r
				}
			}
		}
	}
	return anchors
}

// TextAnchors maps each located section to its byte offset in the text.
type TextAnchors map[Section]int

// locateTextSections finds the first occurrence of each section's header in
// the whole extracted text.
func locateTextSections(text string) TextAnchors {
	lower := strings.ToLower(text)
	anchors := make(TextAnchors)
	for _, sec := range allSections {
		for _, variant := range sectionAnchors[sec] {
			if idx := strings.Index(lower, variant); idx >= 0 {
				if cur, ok := anchors[sec]; !ok || idx < cur {
					anchors[sec] = idx
				}
			}
		}
	}
	return anchors
}

// sectionSlice returns the text between a section's anchor and the next
// located section's anchor (or end of text).
func sectionSlice(text string, anchors TextAnchors, sec Section) string {
	start, ok := anchors[sec]
	if !ok {
		return ""
	}
	end := len(text)
	for _, other := range allSections {
		if other == sec {
			continue
		}
		if off, ok := anchors[other]; ok && off > start && off < end {
			end = off
		}
	}
	return text[start:end]
}

func matchesAnchor(cell string, variants []string) bool {
	for _, v := range variants {
		if strings.Contains(cell, v) {
			return true
		}
	}
	return false
}

// isSectionBoundary reports whether a row contains any other section's header
// text. Positional table readers stop there.
func isSectionBoundary(row []string, current Section) bool {
	for _, cell := range row {
		lower := strings.ToLower(cell)
		if lower == "" {
			continue
		}
		for _, sec := range allSections {
			if sec == current {
				continue
			}
			if matchesAnchor(lower, sectionAnchors[sec]) {
				return true
			}
		}
	}
	return false
}
