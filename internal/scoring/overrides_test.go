package scoring

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgu-hrmd/pds-screener/internal/models"
)

func TestOverrideStore_SetGetList(t *testing.T) {
	s := NewOverrideStore()

	o := s.Set("cand-1", models.CriterionEducation, 37, 40, "verified transcript")
	assert.Equal(t, "cand-1", o.CandidateID)
	assert.Equal(t, 37.0, o.OriginalScore)
	assert.Equal(t, 40.0, o.OverrideScore)
	assert.False(t, o.CreatedAt.IsZero())

	got, ok := s.Get("cand-1", models.CriterionEducation)
	require.True(t, ok)
	assert.Equal(t, "verified transcript", got.Reason)

	_, ok = s.Get("cand-1", models.CriterionTraining)
	assert.False(t, ok)

	s.Set("cand-1", models.CriterionPotential, 0, 12, "panel interview")
	assert.Len(t, s.List("cand-1"), 2)
	assert.Empty(t, s.List("cand-2"))
}

func TestOverrideStore_LastWriteWins(t *testing.T) {
	s := NewOverrideStore()
	s.Set("cand-1", models.CriterionTraining, 4, 6, "first")
	s.Set("cand-1", models.CriterionTraining, 4, 8, "second")

	got, ok := s.Get("cand-1", models.CriterionTraining)
	require.True(t, ok)
	assert.Equal(t, 8.0, got.OverrideScore)
	assert.Equal(t, "second", got.Reason)
	assert.Len(t, s.List("cand-1"), 1)
}

func TestOverrideStore_ApplyAndReset(t *testing.T) {
	a := NewAssessor(nil, nil).WithClock(fixedNow)
	res := a.Assess(context.Background(), itCandidate(), itOfficerJob(), 0)
	baselineTotal := res.Total
	baselineEducation := res.Breakdown.Education.Final

	s := NewOverrideStore()
	s.Set(res.CandidateID, models.CriterionEducation, baselineEducation, 55, "credential review")
	s.Apply(res)

	// 55 clips to the education cap of 40.
	assert.InDelta(t, 40.0, res.Breakdown.Education.Final, 1e-9)
	assert.True(t, res.Breakdown.Education.Overridden)
	// The computed baseline survives underneath.
	assert.InDelta(t, baselineEducation, res.Breakdown.Education.Boosted, 1e-9)
	assert.InDelta(t, baselineTotal+3, res.Total, 1e-9)

	// Apply is idempotent.
	s.Apply(res)
	assert.InDelta(t, baselineTotal+3, res.Total, 1e-9)

	// Reset restores the system-computed value exactly.
	require.NoError(t, s.Reset(res.CandidateID, models.CriterionEducation))
	s.Apply(res)
	assert.False(t, res.Breakdown.Education.Overridden)
	assert.InDelta(t, baselineEducation, res.Breakdown.Education.Final, 1e-9)
	assert.InDelta(t, baselineTotal, res.Total, 1e-9)

	// Resetting again reports the sentinel.
	err := s.Reset(res.CandidateID, models.CriterionEducation)
	require.ErrorIs(t, err, models.ErrOverrideNotFound)
}

func TestOverrideStore_PotentialOverride(t *testing.T) {
	a := NewAssessor(nil, nil).WithClock(fixedNow)
	res := a.Assess(context.Background(), itCandidate(), itOfficerJob(), 0)
	baseline := res.Total

	s := NewOverrideStore()
	s.Set(res.CandidateID, models.CriterionPotential, 0, 99, "panel interview")
	s.Apply(res)

	// Potential clips to its own cap of 15.
	assert.InDelta(t, baseline+MaxPotential, res.Total, 1e-9)
	assert.Equal(t, models.TierHighlyRecommended, res.Recommendation)

	require.NoError(t, s.Reset(res.CandidateID, models.CriterionPotential))
	s.Apply(res)
	assert.InDelta(t, baseline, res.Total, 1e-9)
}

func TestOverrideStore_ConcurrentAccess(t *testing.T) {
	s := NewOverrideStore()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Set("cand-1", models.CriterionTraining, 4, 8, "race")
			s.Get("cand-1", models.CriterionTraining)
			s.List("cand-1")
		}()
	}
	wg.Wait()

	got, ok := s.Get("cand-1", models.CriterionTraining)
	require.True(t, ok)
	assert.Equal(t, 8.0, got.OverrideScore)
}
