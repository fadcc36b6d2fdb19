package rag

import (
	"math"

	"github.com/procopilot/procopilot/internal/index"
)

// FormatCitations converts search results into user-facing citations,
// preserving input order (results arrive similarity-sorted). Scores are
// normalized to [0,1]: negated distances via 1/(1+|score|), already
// normalized similarities passed through.
func FormatCitations(results []index.SearchResult) []Citation {
	citations := make([]Citation, 0, len(results))
	for _, r := range results {
		citation := Citation{
			Title: r.Title,
			Page:  r.Page,
			Score: roundScore(NormalizeScore(r.Score)),
		}
		if citation.Title == "" {
			citation.Title = "Unknown"
		}
		if r.Page <= 0 {
			citation.Page = "N/A"
		}
		citations = append(citations, citation)
	}
	return citations
}

// NormalizeScore maps a raw score to a similarity in [0,1]. Negative values
// are negated distances and convert via 1/(1+|s|); non-negative values are
// already similarities and pass through unchanged.
func NormalizeScore(raw float64) float64 {
	if raw < 0 {
		return 1.0 / (1.0 + math.Abs(raw))
	}
	return raw
}

// roundScore rounds to 3 decimal places.
func roundScore(s float64) float64 {
	return math.Round(s*1000) / 1000
}
