package ingestion

import (
	"regexp"
	"strings"

	"github.com/lgu-hrmd/pds-screener/internal/models"
)

// contextWindow is the character radius scanned around a matched label when
// every pattern in a cascade fails.
const contextWindow = 120

// textField is one scalar field extracted from document text: an ordered
// regex cascade, most specific first, plus the label and validator the
// context-window fallback uses.
type textField struct {
	key      string
	label    string
	patterns []*regexp.Regexp
	valid    fieldValidator
}

var personalTextFields = []textField{
	{
		key: "surname", label: "surname",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?im)^2\.\s*surname\s*[:\-]?\s*([A-Za-zÑñ'. -]{2,40})$`),
			regexp.MustCompile(`(?im)surname\s*[:\-]?\s*([A-Za-zÑñ'. -]{2,40})$`),
		},
		valid: validAny,
	},
	{
		key: "first_name", label: "first name",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?im)first\s*name\s*[:\-]?\s*([A-Za-zÑñ'. -]{2,40})$`),
		},
		valid: validAny,
	},
	{
		key: "middle_name", label: "middle name",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?im)middle\s*name\s*[:\-]?\s*([A-Za-zÑñ'. -]{2,40})$`),
		},
		valid: validAny,
	},
	{
		key: "date_of_birth", label: "date of birth",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?im)date\s+of\s+birth\s*[:\-]?\s*(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})`),
			regexp.MustCompile(`(?im)date\s+of\s+birth\s*[:\-]?\s*([A-Za-z]+\s+\d{1,2},?\s+\d{4})`),
		},
		valid: validDate,
	},
	{
		key: "place_of_birth", label: "place of birth",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?im)place\s+of\s+birth\s*[:\-]?\s*([A-Za-zÑñ,.' -]{3,60})$`),
		},
		valid: validAny,
	},
	{
		key: "sex", label: "sex",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?im)\bsex\s*[:\-]?\s*(male|female)\b`),
		},
		valid: validSex,
	},
	{
		key: "civil_status", label: "civil status",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?im)civil\s+status\s*[:\-]?\s*(single|married|widowed|separated|annulled|solo parent)`),
		},
		valid: validAny,
	},
	{
		key: "citizenship", label: "citizenship",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?im)citizenship\s*[:\-]?\s*([A-Za-z ]{3,30})$`),
		},
		valid: validAny,
	},
	{
		key: "email", label: "e-mail",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?im)e-?mail(?:\s*address)?\s*[:\-]?\s*([\w.+-]+@[\w.-]+\.\w{2,})`),
			regexp.MustCompile(`([\w.+-]+@[\w.-]+\.\w{2,})`),
		},
		valid: validEmail,
	},
	{
		key: "mobile_no", label: "mobile",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?im)mobile\s*(?:no\.?)?\s*[:\-]?\s*(\+?[\d][\d ()-]{6,15})`),
		},
		valid: validPhone,
	},
	{
		key: "telephone_no", label: "telephone",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?im)tel(?:ephone)?\.?\s*(?:no\.?)?\s*[:\-]?\s*(\+?[\d][\d ()-]{5,15})`),
		},
		valid: validPhone,
	},
	{
		key: "gsis_no", label: "gsis",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?im)gsis\s*(?:id)?\s*(?:no\.?)?\s*[:\-]?\s*([\d-]{6,20})`),
		},
		valid: validPhone,
	},
	{
		key: "tin_no", label: "tin",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?im)\btin\s*(?:no\.?)?\s*[:\-]?\s*([\d-]{6,20})`),
		},
		valid: validPhone,
	},
}

// applyCascade tries every pattern in order and returns the first capture.
func applyCascade(text string, patterns []*regexp.Regexp) string {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); len(m) > 1 {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// contextFallback scans a window around the label for the first
// whitespace-separated token the validator accepts. Used only when the whole
// cascade failed.
func contextFallback(text, label string, valid fieldValidator) string {
	idx := strings.Index(strings.ToLower(text), label)
	if idx < 0 {
		return ""
	}
	start := idx - contextWindow
	if start < 0 {
		start = 0
	}
	end := idx + len(label) + contextWindow
	if end > len(text) {
		end = len(text)
	}
	for _, tok := range strings.Fields(text[start:end]) {
		tok = strings.Trim(tok, ":;,")
		if tok == "" || isPlaceholder(tok) {
			continue
		}
		if strings.Contains(strings.ToLower(label), strings.ToLower(tok)) {
			continue
		}
		if valid(tok) {
			return tok
		}
	}
	return ""
}

// extractPersonalText resolves the scalar personal fields from document text.
// Cascade failure leaves the field unset and records a diagnostic, never an
// error.
func extractPersonalText(text string, res *models.ExtractionResult) rawEntry {
	entry := rawEntry{}
	for _, f := range personalTextFields {
		if v := applyCascade(text, f.patterns); v != "" {
			entry[f.key] = v
			continue
		}
		if v := contextFallback(text, f.label, f.valid); v != "" {
			entry[f.key] = v
			continue
		}
		res.Warn(models.DiagFieldExtraction, string(SectionPersonal), f.key,
			"no pattern matched and context fallback found nothing")
	}
	return entry
}

var (
	reYear      = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	reRating    = regexp.MustCompile(`\b\d{2,3}(?:\.\d+)?%?\b`)
	reExamDate  = regexp.MustCompile(`\b\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4}\b`)
	reHoursText = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(?:hours|hrs?)\b`)
	reChunkGap  = regexp.MustCompile(`\s{2,}|\t|\s[|]\s`)
)

// splitChunks breaks a text line on column-ish gaps.
func splitChunks(line string) []string {
	var chunks []string
	for _, c := range reChunkGap.Split(line, -1) {
		c = strings.TrimSpace(c)
		if c != "" {
			chunks = append(chunks, c)
		}
	}
	return chunks
}

var textLevelPatterns = []struct {
	level models.EducationLevel
	re    *regexp.Regexp
}{
	{models.LevelGraduate, regexp.MustCompile(`(?im)^graduate(?:\s+studies)?\b[\s:–-]*(.*)$`)},
	{models.LevelCollege, regexp.MustCompile(`(?im)^college\b[\s:–-]*(.*)$`)},
	{models.LevelVocational, regexp.MustCompile(`(?im)^vocational(?:\s*/?\s*trade\s+course)?\b[\s:–-]*(.*)$`)},
	{models.LevelSecondary, regexp.MustCompile(`(?im)^secondary\b[\s:–-]*(.*)$`)},
	{models.LevelElementary, regexp.MustCompile(`(?im)^elementary\b[\s:–-]*(.*)$`)},
}

// extractEducationText reads the education slice line-anchored per level:
// the first chunk after the level word is the school, the second the degree,
// and the last four-digit year the graduation year.
func extractEducationText(slice string, res *models.ExtractionResult) []rawEntry {
	var entries []rawEntry
	for _, lp := range textLevelPatterns {
		m := lp.re.FindStringSubmatch(slice)
		if m == nil {
			continue
		}
		rest := strings.TrimSpace(m[1])
		if rest == "" {
			continue
		}
		entry := rawEntry{"level": string(lp.level)}
		chunks := splitChunks(rest)
		if len(chunks) > 0 {
			entry["school"] = chunks[0]
		}
		if len(chunks) > 1 {
			entry["degree"] = chunks[1]
		}
		if years := reYear.FindAllString(rest, -1); len(years) > 0 {
			entry["year_graduated"] = years[len(years)-1]
		}
		if lp.level == models.LevelGraduate {
			if dt := classifyDegreeType(rest); dt != "none" {
				entry["degree_type"] = dt
			}
		}
		if !isValidEntry(entry, SectionEducation) {
			res.Warn(models.DiagInvalidEntryRejected, string(SectionEducation), "",
				"%s line rejected: %q", lp.level, rest)
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// extractEligibilityText treats each line of the eligibility slice as a
// candidate entry. The name is the line with rating and date tokens stripped;
// the allow/reject lexicons make the final call.
func extractEligibilityText(slice string, res *models.ExtractionResult) []rawEntry {
	var entries []rawEntry
	for _, line := range strings.Split(slice, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || matchesAnchor(strings.ToLower(line), sectionAnchors[SectionEligibility]) {
			continue
		}
		name := line
		var rating, examDate string
		if d := reExamDate.FindString(line); d != "" {
			examDate = d
			name = strings.Replace(name, d, "", 1)
		}
		if r := reRating.FindString(name); r != "" {
			rating = r
			name = strings.Replace(name, r, "", 1)
		}
		name = strings.Trim(strings.TrimSpace(name), "-–|,")
		entry := rawEntry{"eligibility": name, "rating": rating, "exam_date": examDate}
		if !isValidEntry(entry, SectionEligibility) {
			if name != "" {
				res.Warn(models.DiagInvalidEntryRejected, string(SectionEligibility), "",
					"line rejected by eligibility lexicon: %q", line)
			}
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

var reGovtService = regexp.MustCompile(`(?i)\bgov(?:'?t|ernment)?\b.*\b(y|yes)\b$`)

var experienceLinePatterns = []*regexp.Regexp{
	// "01/2018 - 12/2020  Administrative Aide  Office of the Mayor"
	regexp.MustCompile(`^(\d{1,2}[/\-.]\d{2,4}|\d{4})\s*[-–]\s*(present|\d{1,2}[/\-.]\d{2,4}|\d{4})\s+(.{3,60}?)\s{2,}(.{3,80})$`),
	// "Administrative Aide, Office of the Mayor (2018-2020)"
	regexp.MustCompile(`^(.{3,60}?),\s*(.{3,80}?)\s*\((\d{4})\s*[-–]\s*(present|\d{4})\)$`),
}

// extractExperienceText parses the experience slice line by line through the
// pattern cascade, falling back to two-chunk lines read as position and
// organization.
func extractExperienceText(slice string, res *models.ExtractionResult) []rawEntry {
	var entries []rawEntry
	for _, line := range strings.Split(slice, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || matchesAnchor(strings.ToLower(line), sectionAnchors[SectionExperience]) {
			continue
		}

		var entry rawEntry
		if m := experienceLinePatterns[0].FindStringSubmatch(line); m != nil {
			entry = rawEntry{"date_from": m[1], "date_to": m[2], "position": m[3], "organization": m[4]}
		} else if m := experienceLinePatterns[1].FindStringSubmatch(line); m != nil {
			entry = rawEntry{"position": m[1], "organization": m[2], "date_from": m[3], "date_to": m[4]}
		} else if chunks := splitChunks(line); len(chunks) >= 2 && !reNumberShaped.MatchString(chunks[0]) {
			entry = rawEntry{"position": chunks[0], "organization": chunks[1]}
		} else {
			continue
		}
		if strings.Contains(strings.ToLower(line), "government") || reGovtService.MatchString(line) {
			entry["government_service"] = "Y"
		}
		if !isValidEntry(entry, SectionExperience) {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// extractTrainingText parses training lines: the title is everything before
// the hour count; lines without any hour or date signal are skipped.
func extractTrainingText(slice string, res *models.ExtractionResult) []rawEntry {
	var entries []rawEntry
	for _, line := range strings.Split(slice, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || matchesAnchor(strings.ToLower(line), sectionAnchors[SectionTraining]) {
			continue
		}
		hoursMatch := reHoursText.FindStringSubmatchIndex(line)
		dateMatch := reExamDate.FindStringIndex(line)
		if hoursMatch == nil && dateMatch == nil {
			continue
		}

		entry := rawEntry{}
		titleEnd := len(line)
		if hoursMatch != nil {
			entry["hours"] = line[hoursMatch[2]:hoursMatch[3]]
			if hoursMatch[0] < titleEnd {
				titleEnd = hoursMatch[0]
			}
		}
		if dateMatch != nil {
			entry["date_from"] = line[dateMatch[0]:dateMatch[1]]
			if dateMatch[0] < titleEnd {
				titleEnd = dateMatch[0]
			}
		}
		title := strings.Trim(strings.TrimSpace(line[:titleEnd]), "-–|,")
		if title == "" {
			continue
		}
		entry["title"] = title
		if !isValidEntry(entry, SectionTraining) {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// extractVoluntaryText reads two-chunk lines as organization and position.
func extractVoluntaryText(slice string, res *models.ExtractionResult) []rawEntry {
	var entries []rawEntry
	for _, line := range strings.Split(slice, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || matchesAnchor(strings.ToLower(line), sectionAnchors[SectionVoluntary]) {
			continue
		}
		chunks := splitChunks(line)
		if len(chunks) < 2 {
			continue
		}
		entry := rawEntry{"organization": chunks[0], "position": chunks[1]}
		if m := reHoursText.FindStringSubmatch(line); m != nil {
			entry["hours"] = m[1]
		}
		if !isValidEntry(entry, SectionVoluntary) {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// extractReferencesText reads reference lines as name plus optional address
// and phone chunks.
func extractReferencesText(slice string, res *models.ExtractionResult) []rawEntry {
	var entries []rawEntry
	for _, line := range strings.Split(slice, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || matchesAnchor(strings.ToLower(line), sectionAnchors[SectionReferences]) {
			continue
		}
		chunks := splitChunks(line)
		if len(chunks) == 0 || reNumberShaped.MatchString(chunks[0]) {
			continue
		}
		entry := rawEntry{"name": chunks[0]}
		if len(chunks) > 1 {
			entry["address"] = chunks[1]
		}
		if len(chunks) > 2 {
			entry["telephone"] = chunks[2]
		}
		if !isValidEntry(entry, SectionReferences) {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}
