package search

import (
	"math"
	"sort"
)

// scored pairs a catalog row with its similarity to the query
type scored struct {
	Index int
	Score float64
}

// CosineSimilarity calculates the cosine similarity between two vectors.
// Norms are recomputed here rather than assumed, so callers may pass
// vectors that are not unit length.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

// rankTopK scores every candidate row against the query vector and returns
// at most k strictly-positive matches, ordered by descending score with
// ascending row index as the tie-break. A zero query vector or an empty
// candidate set yields an empty result.
func rankTopK(query []float64, rows [][]float64, k int) []scored {
	if k <= 0 {
		return nil
	}

	var results []scored
	for i, row := range rows {
		if row == nil {
			continue // suppressed candidate, e.g. the query item itself
		}
		score := CosineSimilarity(query, row)
		if score > 0 {
			results = append(results, scored{Index: i, Score: score})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Index < results[j].Index
	})

	if len(results) > k {
		results = results[:k]
	}
	return results
}
