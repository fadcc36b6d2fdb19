package index

import (
	"context"
	"fmt"
	"sort"

	"github.com/procopilot/procopilot/internal/embedding"
)

// Search embeds the query with the given provider and returns the k nearest
// chunks. Scores are negated squared-L2 distances, sorted descending, so
// callers always see higher-is-better ordering. k is clamped to the index
// size. The provider must be the same model the index was built with; an
// index of dimensionality D only accepts query vectors of dimensionality D.
func (idx *VectorIndex) Search(ctx context.Context, provider embedding.Provider, query string, k int) ([]SearchResult, error) {
	vec, err := provider.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	return idx.SearchVector(vec, k)
}

// SearchVector returns the k nearest chunks to the given query vector.
func (idx *VectorIndex) SearchVector(query []float32, k int) ([]SearchResult, error) {
	if len(query) != idx.Dimensions {
		return nil, fmt.Errorf("query dimension mismatch: got %d, want %d", len(query), idx.Dimensions)
	}
	if k > idx.Len() {
		k = idx.Len()
	}
	if k <= 0 {
		return nil, nil
	}

	results := make([]SearchResult, 0, idx.Len())
	for i, vec := range idx.Vectors {
		c := idx.Chunks[i]
		results = append(results, SearchResult{
			Text:    c.Text,
			Title:   c.Title,
			Page:    c.Page,
			Score:   -squaredL2(query, vec),
			ChunkID: c.ChunkID,
		})
	}

	// Highest score (smallest distance) first.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results[:k], nil
}

// squaredL2 computes the squared Euclidean distance between two vectors.
func squaredL2(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}
