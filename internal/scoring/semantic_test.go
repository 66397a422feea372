package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite clamps to zero", []float32{1, 0}, []float32{-1, 0}, 0},
		{"mismatched lengths", []float32{1, 2}, []float32{1, 2, 3}, 0},
		{"empty", nil, nil, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, cosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestSemanticBoost(t *testing.T) {
	// Half similarity adds half the boost fraction.
	assert.InDelta(t, 11.0, semanticBoost(10, 40, 0.5), 1e-9)

	// Zero similarity leaves the rule score untouched.
	assert.InDelta(t, 10.0, semanticBoost(10, 40, 0), 1e-9)

	// The booster never exceeds the category cap.
	assert.InDelta(t, 40.0, semanticBoost(39, 40, 1), 1e-9)

	// A zero rule score stays zero regardless of similarity.
	assert.Zero(t, semanticBoost(0, 40, 1))
}

func TestSemanticBoost_Bounds(t *testing.T) {
	// rule <= boosted <= max across a grid of inputs.
	for rule := 0.0; rule <= 40; rule += 2.5 {
		for sim := 0.0; sim <= 1; sim += 0.125 {
			b := semanticBoost(rule, 40, sim)
			assert.GreaterOrEqual(t, b, rule)
			assert.LessOrEqual(t, b, 40.0)
		}
	}
}
