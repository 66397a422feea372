package scoring

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/lgu-hrmd/pds-screener/internal/models"
)

// Category maxima. One consistent cap scheme is used everywhere; every
// sub-score is clipped to its cap before summation and the total to 100.
const (
	MaxEducation       = 40.0
	MaxExperience      = 20.0
	MaxTraining        = 10.0
	MaxEligibility     = 10.0
	MaxAccomplishments = 5.0
	MaxPotential       = 15.0
)

// Education base points by highest attained level.
const (
	baseDoctorate  = 40.0
	baseMasters    = 35.0
	baseCollege    = 30.0
	baseVocational = 15.0
	baseSecondary  = 10.0
	baseElementary = 5.0
)

// educationRelevanceMax bounds the keyword-overlap bonus within the
// education cap.
const educationRelevanceMax = 10.0

// Experience formula constants: points per year of service capped, a flat
// government-service bonus, and a position keyword-overlap bonus.
const (
	experiencePerYear     = 2.0
	experienceYearsCapPts = 12.0
	experienceGovtBonus   = 3.0
	experienceKeywordMax  = 5.0
)

// Training: 2 points per qualifying program plus a relevance bonus, all
// within the cap.
const (
	trainingPerProgram = 2.0
	trainingKeywordMax = 4.0
)

// Eligibility: full credit for a professional / career-service match,
// partial credit for any other valid entry.
const (
	eligibilityFull    = 10.0
	eligibilityPartial = 5.0
)

// professionalEligibility phrases grant full eligibility credit. "bar exam"
// rather than "bar": a bare "bar" would also match "Barangay Official".
var professionalEligibility = []string{
	"professional", "career service", "board", "bar exam", "licensure", "ra 1080",
}

var reWord = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// normalizeTokens lowercases, strips punctuation and splits into word tokens.
func normalizeTokens(s string) []string {
	s = strings.ToLower(s)
	var tokens []string
	for _, t := range reWord.Split(s, -1) {
		if len(t) >= 3 {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// keywordOverlap counts job keywords appearing in the candidate text. Both
// sides are token-normalized; multi-word keywords match as substrings of the
// normalized text.
func keywordOverlap(text string, keywords []string) int {
	normalized := " " + strings.Join(normalizeTokens(text), " ") + " "
	matches := 0
	for _, kw := range keywords {
		kwNorm := strings.Join(normalizeTokens(kw), " ")
		if kwNorm == "" {
			continue
		}
		if strings.Contains(normalized, " "+kwNorm+" ") {
			matches++
		}
	}
	return matches
}

func clip(v, max float64) float64 {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// scoreEducation awards a base by the highest attained level plus up to
// educationRelevanceMax for degree/school overlap with the job's education
// keywords.
func scoreEducation(profile *models.CandidateProfile, job *models.JobRequirementProfile) float64 {
	best := profile.HighestEducation()
	if best == nil {
		return 0
	}

	var base float64
	switch best.Level {
	case models.LevelGraduate:
		if best.DegreeType == models.DegreeDoctorate {
			base = baseDoctorate
		} else {
			base = baseMasters
		}
	case models.LevelCollege:
		base = baseCollege
	case models.LevelVocational:
		base = baseVocational
	case models.LevelSecondary:
		base = baseSecondary
	case models.LevelElementary:
		base = baseElementary
	}

	var text strings.Builder
	for _, e := range profile.Education {
		text.WriteString(e.Degree)
		text.WriteString(" ")
		text.WriteString(e.School)
		text.WriteString(" ")
	}
	bonus := clip(float64(keywordOverlap(text.String(), job.EducationKeywords))*2, educationRelevanceMax)

	return clip(base+bonus, MaxEducation)
}

var reYearToken = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// entryYears estimates the length of one experience entry from the years in
// its date fields. An entry whose dates cannot be parsed counts as one year
// rather than zero: the row was valid enough to survive the validator.
func entryYears(e models.ExperienceEntry, nowYear int) float64 {
	from := reYearToken.FindString(e.DateFrom)
	if from == "" {
		return 1
	}
	fromY, err := strconv.Atoi(from)
	if err != nil {
		return 1
	}

	toY := nowYear
	if !strings.Contains(strings.ToLower(e.DateTo), "present") {
		if to := reYearToken.FindString(e.DateTo); to != "" {
			if y, err := strconv.Atoi(to); err == nil {
				toY = y
			}
		}
	}
	years := float64(toY - fromY)
	if years < 0 {
		return 1
	}
	if years == 0 {
		return 0.5
	}
	return years
}

// scoreExperience awards points per year of service (capped), a flat bonus
// for government service, and a position/job-title keyword-overlap bonus.
func scoreExperience(profile *models.CandidateProfile, job *models.JobRequirementProfile, now time.Time) float64 {
	if len(profile.Experience) == 0 {
		return 0
	}

	var years float64
	govt := false
	var positions strings.Builder
	for _, e := range profile.Experience {
		years += entryYears(e, now.Year())
		govt = govt || e.GovernmentService
		positions.WriteString(e.Position)
		positions.WriteString(" ")
	}

	score := clip(years*experiencePerYear, experienceYearsCapPts)
	if govt {
		score += experienceGovtBonus
	}

	keywords := append([]string{}, job.ExperienceKeywords...)
	keywords = append(keywords, strings.Fields(job.Title)...)
	score += clip(float64(keywordOverlap(positions.String(), keywords)), experienceKeywordMax)

	return clip(score, MaxExperience)
}

// scoreTraining awards per qualifying program plus a title relevance bonus.
func scoreTraining(profile *models.CandidateProfile, job *models.JobRequirementProfile) float64 {
	if len(profile.Training) == 0 {
		return 0
	}

	score := clip(float64(len(profile.Training))*trainingPerProgram, MaxTraining)

	var titles strings.Builder
	for _, t := range profile.Training {
		titles.WriteString(t.Title)
		titles.WriteString(" ")
	}
	score += clip(float64(keywordOverlap(titles.String(), job.TrainingKeywords)), trainingKeywordMax)

	return clip(score, MaxTraining)
}

// scoreEligibility gives full credit for a professional or career-service
// eligibility, partial credit for any other valid entry.
func scoreEligibility(profile *models.CandidateProfile, job *models.JobRequirementProfile) float64 {
	if len(profile.Eligibility) == 0 {
		return 0
	}

	required := append([]string{}, professionalEligibility...)
	required = append(required, job.EligibilityKeywords...)
	for _, e := range profile.Eligibility {
		lower := strings.ToLower(e.Name)
		for _, kw := range required {
			if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
				return eligibilityFull
			}
		}
	}
	return eligibilityPartial
}

// scoreAccomplishments is the small automatic component: honors, voluntary
// work and complete references each contribute, clipped to the cap. The
// larger potential/performance component is evaluator-supplied and never
// recomputed here.
func scoreAccomplishments(profile *models.CandidateProfile) float64 {
	var score float64
	for _, e := range profile.Education {
		if e.Honors != "" {
			score += 2
			break
		}
	}
	if len(profile.Voluntary) > 0 {
		score += 2
	}
	if len(profile.References) >= 3 {
		score += 1
	}
	return clip(score, MaxAccomplishments)
}
