package scoring

import (
	"context"
	"math"
)

// Embedder turns text into a sentence embedding. Implementations must be
// safe for concurrent use: the model is loaded once per process and shared
// by every scoring call.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// boostFraction bounds how much the semantic similarity can add on top of a
// rule score: at most 20% of the rule score itself, and never past the
// category cap.
const boostFraction = 0.20

// cosineSimilarity computes the cosine of two embeddings, clamped to [0,1].
// Mismatched or empty vectors score zero.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if sim < 0 {
		return 0
	}
	if sim > 1 {
		return 1
	}
	return sim
}

// semanticBoost raises a rule score by the similarity between candidate text
// and job text. It can only raise, never lower, and never exceeds the cap:
// rule <= boosted <= max.
func semanticBoost(rule, max, similarity float64) float64 {
	boosted := rule + rule*boostFraction*similarity
	if boosted > max {
		return max
	}
	return boosted
}
