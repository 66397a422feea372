// Package screener orchestrates batch screening: extract every submitted
// document, assess each resulting profile against one job requirement
// profile, and rank the outcomes. Documents are independent; one bad file
// never aborts the batch.
package screener

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lgu-hrmd/pds-screener/internal/ingestion"
	"github.com/lgu-hrmd/pds-screener/internal/models"
	"github.com/lgu-hrmd/pds-screener/internal/scoring"
)

// Input is one document submitted for screening. Name is a display label
// (usually the file name); Ext the declared extension.
type Input struct {
	Name string
	Ext  string
	Data []byte
}

// Result is the outcome for one input. Err is set only for fatal per-document
// failures (unsupported format); Extraction and Assessment are nil in that
// case. Rank is 1-based among successfully assessed candidates, 0 otherwise.
type Result struct {
	Name       string
	Rank       int
	Extraction *models.ExtractionResult
	Assessment *models.AssessmentResult
	Err        error
}

// Screener screens batches of PDS documents against job requirement
// profiles.
type Screener struct {
	assessor  *scoring.Assessor
	overrides *scoring.OverrideStore
	logger    *zap.Logger
	workers   int
}

// New creates a screener. workers bounds extraction/scoring concurrency.
func New(assessor *scoring.Assessor, overrides *scoring.OverrideStore, logger *zap.Logger, workers int) *Screener {
	if logger == nil {
		logger = zap.NewNop()
	}
	if workers <= 0 {
		workers = 4
	}
	if overrides == nil {
		overrides = scoring.NewOverrideStore()
	}
	return &Screener{assessor: assessor, overrides: overrides, logger: logger, workers: workers}
}

// Overrides exposes the override store so callers can set and reset
// evaluator overrides between report reads.
func (s *Screener) Overrides() *scoring.OverrideStore {
	return s.overrides
}

// Screen processes every input concurrently and returns exactly one result
// per input, in input order, ranked by total score. The only per-document
// error that surfaces in Result.Err is a fatal load failure; everything else
// degrades to diagnostics inside the extraction result.
func (s *Screener) Screen(ctx context.Context, inputs []Input, job *models.JobRequirementProfile) []Result {
	results := make([]Result, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, in := range inputs {
		g.Go(func() error {
			results[i] = s.screenOne(gctx, in, job)
			return nil
		})
	}
	// Workers never return errors; the group is used for limit and context.
	_ = g.Wait()

	s.rank(results)
	return results
}

func (s *Screener) screenOne(ctx context.Context, in Input, job *models.JobRequirementProfile) Result {
	start := time.Now()

	extraction, err := ingestion.Extract(in.Data, in.Ext)
	if err != nil {
		s.logger.Warn("document rejected",
			zap.String("name", in.Name), zap.Error(err))
		return Result{Name: in.Name, Err: err}
	}

	assessment := s.assessor.Assess(ctx, extraction.Profile, job, 0)
	s.overrides.Apply(assessment)

	s.logger.Info("candidate screened",
		zap.String("name", in.Name),
		zap.String("candidate_id", extraction.Profile.ID),
		zap.Float64("total", assessment.Total),
		zap.String("confidence", string(extraction.Confidence)),
		zap.Int("diagnostics", len(extraction.Diagnostics)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return Result{Name: in.Name, Extraction: extraction, Assessment: assessment}
}

// rank assigns 1-based ranks by descending total among assessed candidates.
func (s *Screener) rank(results []Result) {
	idx := make([]int, 0, len(results))
	for i := range results {
		if results[i].Assessment != nil {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return results[idx[a]].Assessment.Total > results[idx[b]].Assessment.Total
	})
	for rank, i := range idx {
		results[i].Rank = rank + 1
	}
}

// Report is a ranked view of one screening batch.
type Report struct {
	JobTitle    string    `json:"job_title"`
	Results     []Result  `json:"results"`
	Screened    int       `json:"screened"`
	Rejected    int       `json:"rejected"`
	GeneratedAt time.Time `json:"generated_at"`
}

// BuildReport orders a batch's results by rank (rejected documents last, in
// input order) and wraps them with batch-level counts.
func BuildReport(jobTitle string, results []Result) Report {
	ordered := make([]Result, len(results))
	copy(ordered, results)
	sort.SliceStable(ordered, func(a, b int) bool {
		ra, rb := ordered[a].Rank, ordered[b].Rank
		if ra == 0 {
			return false
		}
		if rb == 0 {
			return true
		}
		return ra < rb
	})

	report := Report{JobTitle: jobTitle, Results: ordered, GeneratedAt: time.Now()}
	for _, r := range results {
		if r.Err != nil {
			report.Rejected++
		} else {
			report.Screened++
		}
	}
	return report
}
