package classify

import (
	"math"

	"github.com/alos-ai/alos/libs/shipment-engine/internal/catalog"
)

// cosineSimilarity computes dot(a, b) / (|a| * |b|). Mismatched lengths or a
// zero-norm vector score 0, which the decision policy treats as very low
// confidence rather than an error.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
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

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// bestMatch selects the catalog entry with maximum cosine similarity to the
// query embedding. Ties break by catalog insertion order: the first entry
// wins, keeping the result deterministic when two descriptions are
// equidistant in embedding space.
func bestMatch(query []float32, entries []catalog.Entry) (catalog.Entry, float64) {
	best := entries[0]
	bestScore := cosineSimilarity(query, entries[0].Embedding)

	for _, e := range entries[1:] {
		if score := cosineSimilarity(query, e.Embedding); score > bestScore {
			best = e
			bestScore = score
		}
	}

	return best, bestScore
}
