// Package vectormath provides the similarity arithmetic shared by the
// vector index implementations.
package vectormath

import "math"

// Cosine returns the cosine similarity of two vectors. Mismatched
// lengths or zero vectors yield 0, the "no similarity" score, so a
// malformed entry ranks last instead of crashing a search.
func Cosine(a, b []float32) float64 {
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
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
