package scoring

import (
	"fmt"
	"sync"
	"time"

	"github.com/lgu-hrmd/pds-screener/internal/models"
)

// OverrideStore keeps evaluator overrides keyed by (candidate, criterion).
// The computed baseline is never overwritten: overrides substitute at read
// time, so resetting one restores the exact system value. Persistence belongs
// to callers; this store is the in-process working set. Last write wins per
// key.
type OverrideStore struct {
	mu        sync.RWMutex
	overrides map[overrideKey]models.Override
}

type overrideKey struct {
	candidateID string
	criterion   string
}

// NewOverrideStore creates an empty store.
func NewOverrideStore() *OverrideStore {
	return &OverrideStore{overrides: make(map[overrideKey]models.Override)}
}

// Set records an override for one criterion. original is the system-computed
// value being displaced, kept for audit and display.
func (s *OverrideStore) Set(candidateID, criterion string, original, override float64, reason string) models.Override {
	o := models.Override{
		CandidateID:   candidateID,
		Criterion:     criterion,
		OriginalScore: original,
		OverrideScore: override,
		Reason:        reason,
		CreatedAt:     time.Now(),
	}
	s.mu.Lock()
	s.overrides[overrideKey{candidateID, criterion}] = o
	s.mu.Unlock()
	return o
}

// Get returns the active override for a criterion, if any.
func (s *OverrideStore) Get(candidateID, criterion string) (models.Override, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.overrides[overrideKey{candidateID, criterion}]
	return o, ok
}

// List returns every active override for a candidate.
func (s *OverrideStore) List(candidateID string) []models.Override {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Override
	for k, o := range s.overrides {
		if k.candidateID == candidateID {
			out = append(out, o)
		}
	}
	return out
}

// Reset removes an override, returning models.ErrOverrideNotFound if the
// criterion has none. After a reset, Apply reproduces the system-computed
// value exactly.
func (s *OverrideStore) Reset(candidateID, criterion string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := overrideKey{candidateID, criterion}
	if _, ok := s.overrides[k]; !ok {
		return fmt.Errorf("%w: candidate %s criterion %s", models.ErrOverrideNotFound, candidateID, criterion)
	}
	delete(s.overrides, k)
	return nil
}

// Apply rewrites the Final values of an assessment from its intact baseline:
// each category's Final becomes the override value (clipped to the category
// cap) when one is active, the boosted system value otherwise, and the total
// is re-summed. Calling Apply repeatedly is idempotent.
func (s *OverrideStore) Apply(result *models.AssessmentResult) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total float64
	for _, cat := range result.Breakdown.Categories() {
		cat.Final = cat.Boosted
		cat.Overridden = false
		if o, ok := s.overrides[overrideKey{result.CandidateID, cat.Criterion}]; ok {
			cat.Final = clip(o.OverrideScore, cat.Max)
			cat.Overridden = true
		}
		total += cat.Final
	}

	potential := result.Breakdown.Potential
	if o, ok := s.overrides[overrideKey{result.CandidateID, models.CriterionPotential}]; ok {
		potential = clip(o.OverrideScore, MaxPotential)
	}
	total += potential

	result.Total = clip(total, 100)
	result.Recommendation = recommendationTier(result.Total)
}
