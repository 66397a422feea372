package models

import "time"

// EducationLevel identifies one of the rungs of the PDS educational background section.
type EducationLevel string

const (
	LevelElementary EducationLevel = "Elementary"
	LevelSecondary  EducationLevel = "Secondary"
	LevelVocational EducationLevel = "Vocational"
	LevelCollege    EducationLevel = "College"
	LevelGraduate   EducationLevel = "Graduate"
)

// DegreeType classifies graduate-level studies.
type DegreeType string

const (
	DegreeNone      DegreeType = "none"
	DegreeMasters   DegreeType = "masters"
	DegreeDoctorate DegreeType = "doctorate"
)

// PersonalInfo holds the identity, contact and government ID fields of page one
// of the form.
type PersonalInfo struct {
	Surname        string `json:"surname"`
	FirstName      string `json:"first_name"`
	MiddleName     string `json:"middle_name"`
	DateOfBirth    string `json:"date_of_birth"`
	PlaceOfBirth   string `json:"place_of_birth"`
	Sex            string `json:"sex"`
	CivilStatus    string `json:"civil_status"`
	Citizenship    string `json:"citizenship"`
	Email          string `json:"email"`
	MobileNo       string `json:"mobile_no"`
	TelephoneNo    string `json:"telephone_no"`
	Residential    string `json:"residential_address"`
	Permanent      string `json:"permanent_address"`
	GSISNo         string `json:"gsis_no"`
	PagIbigNo      string `json:"pagibig_no"`
	PhilHealthNo   string `json:"philhealth_no"`
	SSSNo          string `json:"sss_no"`
	TINNo          string `json:"tin_no"`
	AgencyEmployee string `json:"agency_employee_no"`
}

// FullName joins the name parts, skipping blanks.
func (p PersonalInfo) FullName() string {
	name := p.FirstName
	if p.MiddleName != "" {
		if name != "" {
			name += " "
		}
		name += p.MiddleName
	}
	if p.Surname != "" {
		if name != "" {
			name += " "
		}
		name += p.Surname
	}
	return name
}

// EducationEntry is one row of the educational background table.
type EducationEntry struct {
	Level         EducationLevel `json:"level"`
	School        string         `json:"school"`
	Degree        string         `json:"degree"`
	DegreeType    DegreeType     `json:"degree_type"`
	PeriodFrom    string         `json:"period_from"`
	PeriodTo      string         `json:"period_to"`
	YearGraduated *int           `json:"year_graduated"`
	Honors        string         `json:"honors"`
}

// ExperienceEntry is one row of the work experience table. Position and
// Organization must both be present for the entry to count.
type ExperienceEntry struct {
	Position          string `json:"position"`
	Organization      string `json:"organization"`
	DateFrom          string `json:"date_from"`
	DateTo            string `json:"date_to"`
	SalaryGrade       string `json:"salary_grade"`
	Status            string `json:"status"`
	GovernmentService bool   `json:"government_service"`
}

// EligibilityEntry is one civil-service eligibility row.
type EligibilityEntry struct {
	Name      string `json:"name"`
	Rating    string `json:"rating"`
	ExamDate  string `json:"exam_date"`
	ExamPlace string `json:"exam_place"`
	LicenseNo string `json:"license_no"`
}

// TrainingEntry is one learning and development intervention row. Hours is nil
// when the source cell could not be parsed as a number.
type TrainingEntry struct {
	Title    string   `json:"title"`
	Hours    *float64 `json:"hours"`
	Type     string   `json:"type"`
	Provider string   `json:"provider"`
	DateFrom string   `json:"date_from"`
	DateTo   string   `json:"date_to"`
}

// VolunteerEntry is one voluntary work row.
type VolunteerEntry struct {
	Organization string   `json:"organization"`
	Position     string   `json:"position"`
	Hours        *float64 `json:"hours"`
	DateFrom     string   `json:"date_from"`
	DateTo       string   `json:"date_to"`
}

// ReferenceEntry is one character reference row.
type ReferenceEntry struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Telephone string `json:"telephone"`
}

// CandidateProfile is the canonical snapshot produced by extraction. It is
// immutable once built and re-derivable from the same source bytes.
type CandidateProfile struct {
	ID          string             `json:"id"`
	Personal    PersonalInfo       `json:"personal"`
	Education   []EducationEntry   `json:"education"`
	Experience  []ExperienceEntry  `json:"experience"`
	Training    []TrainingEntry    `json:"training"`
	Eligibility []EligibilityEntry `json:"eligibility"`
	Voluntary   []VolunteerEntry   `json:"voluntary"`
	References  []ReferenceEntry   `json:"references"`
}

func educationRank(e EducationEntry) int {
	switch e.Level {
	case LevelGraduate:
		if e.DegreeType == DegreeDoctorate {
			return 6
		}
		return 5
	case LevelCollege:
		return 4
	case LevelVocational:
		return 3
	case LevelSecondary:
		return 2
	case LevelElementary:
		return 1
	}
	return 0
}

// HighestEducation returns the best education entry by level, preferring
// doctorate over masters within the graduate rung. Returns nil when the
// profile has no education entries.
func (c *CandidateProfile) HighestEducation() *EducationEntry {
	var best *EducationEntry
	for i := range c.Education {
		if best == nil || educationRank(c.Education[i]) > educationRank(*best) {
			best = &c.Education[i]
		}
	}
	return best
}

// JobRequirementProfile describes the position a candidate is assessed
// against. Keyword lists drive the per-category relevance bonuses.
type JobRequirementProfile struct {
	Title               string         `json:"title"`
	Category            string         `json:"category"`
	EducationLevel      EducationLevel `json:"education_level"`
	ExperienceYears     float64        `json:"experience_years"`
	EducationKeywords   []string       `json:"education_keywords"`
	ExperienceKeywords  []string       `json:"experience_keywords"`
	TrainingKeywords    []string       `json:"training_keywords"`
	EligibilityKeywords []string       `json:"eligibility_keywords"`
	Description         string         `json:"description"`
}

// Criterion names used by the breakdown and the override store.
const (
	CriterionEducation       = "education"
	CriterionExperience      = "experience"
	CriterionTraining        = "training"
	CriterionEligibility     = "eligibility"
	CriterionAccomplishments = "accomplishments"
	CriterionPotential       = "potential"
)

// CategoryScore is one assessment dimension. Rule is the deterministic score,
// Boosted the value after the semantic booster, Final the value after any
// override substitution. Rule <= Boosted <= Max always holds.
type CategoryScore struct {
	Criterion  string  `json:"criterion"`
	Rule       float64 `json:"rule"`
	Similarity float64 `json:"similarity"`
	Boosted    float64 `json:"boosted"`
	Final      float64 `json:"final"`
	Max        float64 `json:"max"`
	Overridden bool    `json:"overridden"`
}

// ScoreBreakdown carries every category of one assessment.
type ScoreBreakdown struct {
	Education       CategoryScore `json:"education"`
	Experience      CategoryScore `json:"experience"`
	Training        CategoryScore `json:"training"`
	Eligibility     CategoryScore `json:"eligibility"`
	Accomplishments CategoryScore `json:"accomplishments"`
	// Potential is the evaluator-supplied manual component, never recomputed.
	Potential float64 `json:"potential"`
}

// Categories returns the automatic categories in presentation order.
func (b *ScoreBreakdown) Categories() []*CategoryScore {
	return []*CategoryScore{
		&b.Education, &b.Experience, &b.Training, &b.Eligibility, &b.Accomplishments,
	}
}

// Provenance of an assessment: whether the semantic booster participated.
const (
	ProvenanceRuleOnly = "rule-only"
	ProvenanceHybrid   = "hybrid"
)

// Recommendation tiers derived from the final percentage.
const (
	TierHighlyRecommended = "Highly Recommended"
	TierRecommended       = "Recommended"
	TierReservations      = "Consider with Reservations"
	TierNotRecommended    = "Not Recommended"
)

// AssessmentResult is the outcome of scoring one candidate against one job.
// It never mutates the underlying CandidateProfile. Diagnostics carries
// non-fatal scoring conditions, such as an embedding backend failure that
// degraded the assessment to rule-only scoring.
type AssessmentResult struct {
	ID             string         `json:"id"`
	CandidateID    string         `json:"candidate_id"`
	JobTitle       string         `json:"job_title"`
	Total          float64        `json:"total"`
	Breakdown      ScoreBreakdown `json:"breakdown"`
	Recommendation string         `json:"recommendation"`
	Provenance     string         `json:"provenance"`
	Diagnostics    []Diagnostic   `json:"diagnostics,omitempty"`
	GeneratedAt    time.Time      `json:"generated_at"`
}

// Override is an evaluator-supplied replacement for one computed category
// score. The computed baseline is never overwritten; overrides are applied at
// read time and removing one restores the system value exactly.
type Override struct {
	CandidateID   string    `json:"candidate_id"`
	Criterion     string    `json:"criterion"`
	OriginalScore float64   `json:"original_score"`
	OverrideScore float64   `json:"override_score"`
	Reason        string    `json:"reason"`
	CreatedAt     time.Time `json:"created_at"`
}
