package ingestion

import (
	"github.com/google/uuid"

	"github.com/lgu-hrmd/pds-screener/internal/models"
)

// candidateNamespace seeds deterministic profile IDs: identical source bytes
// always yield the same candidate ID, keeping extraction idempotent.
var candidateNamespace = uuid.MustParse("9f2c1a84-4b7d-4e21-9b6f-3a5cf0d8e712")

// Extract runs the whole pipeline over raw document bytes: load, locate
// sections, extract per modality, validate, normalize. The result always
// carries a profile; non-fatal problems accumulate as diagnostics. The only
// error returned is models.ErrUnsupportedFormat (wrapped).
func Extract(data []byte, ext string) (*models.ExtractionResult, error) {
	doc, err := Load(data, ext)
	if err != nil {
		return nil, err
	}

	res := &models.ExtractionResult{}
	profile := &models.CandidateProfile{
		ID: uuid.NewSHA1(candidateNamespace, data).String(),
	}

	switch doc.Modality {
	case ModalitySpreadsheet:
		extractFromSheets(doc, profile, res)
	case ModalityText:
		extractFromText(doc.Text, profile, res)
	}

	res.Profile = profile
	res.Confidence = computeConfidence(res)
	return res, nil
}

func extractFromSheets(doc *Document, profile *models.CandidateProfile, res *models.ExtractionResult) {
	rows := doc.AllRows()
	anchors := locateSheetSections(rows)

	for _, sec := range allSections {
		if _, ok := anchors[sec]; !ok {
			res.Warn(models.DiagSectionNotFound, string(sec), "",
				"no header variant matched within the scan window")
		}
	}

	// Personal info fields are label-anchored rather than section-anchored:
	// encoders scatter them across merged cells well past the header row.
	profile.Personal = normalizePersonal(extractPersonalSheet(rows, res))

	if r, ok := anchors[SectionEducation]; ok {
		profile.Education = normalizeEducation(extractEducationSheet(rows, r, res))
	}
	if r, ok := anchors[SectionEligibility]; ok {
		profile.Eligibility = normalizeEligibility(extractTableSheet(rows, r, eligibilityTable, res))
	}
	if r, ok := anchors[SectionExperience]; ok {
		profile.Experience = normalizeExperience(extractTableSheet(rows, r, experienceTable, res))
	}
	if r, ok := anchors[SectionTraining]; ok {
		profile.Training = normalizeTraining(extractTableSheet(rows, r, trainingTable, res))
	}
	if r, ok := anchors[SectionVoluntary]; ok {
		profile.Voluntary = normalizeVoluntary(extractTableSheet(rows, r, voluntaryTable, res))
	}
	if r, ok := anchors[SectionReferences]; ok {
		profile.References = normalizeReferences(extractTableSheet(rows, r, referencesTable, res))
	}
}

func extractFromText(text string, profile *models.CandidateProfile, res *models.ExtractionResult) {
	anchors := locateTextSections(text)

	for _, sec := range allSections {
		if _, ok := anchors[sec]; !ok {
			res.Warn(models.DiagSectionNotFound, string(sec), "",
				"no header variant found in document text")
		}
	}

	profile.Personal = normalizePersonal(extractPersonalText(text, res))

	if s := sectionSlice(text, anchors, SectionEducation); s != "" {
		profile.Education = normalizeEducation(extractEducationText(s, res))
	}
	if s := sectionSlice(text, anchors, SectionEligibility); s != "" {
		profile.Eligibility = normalizeEligibility(extractEligibilityText(s, res))
	}
	if s := sectionSlice(text, anchors, SectionExperience); s != "" {
		profile.Experience = normalizeExperience(extractExperienceText(s, res))
	}
	if s := sectionSlice(text, anchors, SectionTraining); s != "" {
		profile.Training = normalizeTraining(extractTrainingText(s, res))
	}
	if s := sectionSlice(text, anchors, SectionVoluntary); s != "" {
		profile.Voluntary = normalizeVoluntary(extractVoluntaryText(s, res))
	}
	if s := sectionSlice(text, anchors, SectionReferences); s != "" {
		profile.References = normalizeReferences(extractReferencesText(s, res))
	}
}

// computeConfidence grades an extraction by how much of the form was found.
func computeConfidence(res *models.ExtractionResult) models.Confidence {
	missing := res.CountCode(models.DiagSectionNotFound)
	fields := res.CountCode(models.DiagFieldExtraction)
	switch {
	case missing == 0 && fields <= 3:
		return models.ConfidenceHigh
	case missing >= 4:
		return models.ConfidenceLow
	default:
		return models.ConfidenceMedium
	}
}
