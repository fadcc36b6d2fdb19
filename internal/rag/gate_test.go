package rag

import (
	"testing"

	"github.com/procopilot/procopilot/internal/index"
)

func resultsWithScore(score float64) []index.SearchResult {
	return []index.SearchResult{
		{Text: "some content", Title: "manual", Page: 1, Score: score, ChunkID: "manual_p1_c0"},
	}
}

func TestConfident_EmptyResults(t *testing.T) {
	queries := []string{"", "temperature range", "tell me about unicorns"}
	for _, q := range queries {
		if Confident(nil, q, DefaultScoreThreshold) {
			t.Errorf("Confident(nil, %q) = true, want false", q)
		}
		if Confident([]index.SearchResult{}, q, DefaultScoreThreshold) {
			t.Errorf("Confident([], %q) = true, want false", q)
		}
	}
}

func TestConfident_NegatedDistanceBranch(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		query string
		want  bool
	}{
		{
			// similarity = 1/(1+0.1) ~= 0.909 >= 0.5
			name:  "close match with domain query passes",
			score: -0.1,
			query: "what is the temperature range",
			want:  true,
		},
		{
			// similarity = 1/(1+3) = 0.25 < 0.5
			name:  "distant match with domain query fails",
			score: -3.0,
			query: "what is the temperature range",
			want:  false,
		},
		{
			// similarity = 1/(1+0.5) ~= 0.667: above base 0.5 but below the
			// off-domain 0.8
			name:  "moderate match passes on-domain",
			score: -0.5,
			query: "pump flow troubleshooting",
			want:  true,
		},
		{
			name:  "moderate match fails off-domain",
			score: -0.5,
			query: "tell me about unicorns",
			want:  false,
		},
		{
			// similarity ~= 0.909 >= 0.8: even off-domain queries pass when
			// the neighbor is this close
			name:  "very close match passes even off-domain",
			score: -0.1,
			query: "tell me about unicorns",
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Confident(resultsWithScore(tt.score), tt.query, DefaultScoreThreshold)
			if got != tt.want {
				t.Errorf("Confident(score=%v, query=%q) = %v, want %v", tt.score, tt.query, got, tt.want)
			}
		})
	}
}

func TestConfident_NormalizedSimilarityBranch(t *testing.T) {
	tests := []struct {
		name      string
		score     float64
		query     string
		threshold float64
		want      bool
	}{
		{
			name:      "default threshold effectively always passes",
			score:     0.05,
			query:     "temperature range",
			threshold: DefaultScoreThreshold,
			want:      true,
		},
		{
			name:      "configured threshold rejects weak similarity",
			score:     0.1,
			query:     "temperature range",
			threshold: 0.35,
			want:      false,
		},
		{
			name:      "configured threshold accepts strong similarity",
			score:     0.5,
			query:     "temperature range",
			threshold: 0.35,
			want:      true,
		},
		{
			name:      "off-domain query overrides configured threshold",
			score:     0.5,
			query:     "favorite ice cream flavor",
			threshold: -2.0,
			want:      false,
		},
		{
			name:      "zero score uses the similarity branch",
			score:     0.0,
			query:     "temperature range",
			threshold: 0.35,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Confident(resultsWithScore(tt.score), tt.query, tt.threshold)
			if got != tt.want {
				t.Errorf("Confident(score=%v, query=%q, threshold=%v) = %v, want %v",
					tt.score, tt.query, tt.threshold, got, tt.want)
			}
		})
	}
}

func TestConfident_OnlyTopResultMatters(t *testing.T) {
	results := []index.SearchResult{
		{Text: "weak", Title: "a", Page: 1, Score: -5.0, ChunkID: "a1"},
		{Text: "strong", Title: "b", Page: 1, Score: -0.01, ChunkID: "b1"},
	}

	// The strong second result must not rescue a weak top result.
	if Confident(results, "temperature range", DefaultScoreThreshold) {
		t.Error("Confident() = true, want false when only trailing results are strong")
	}
}

func TestHasDomainContext(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"what is the normal operating range", true},
		{"PUMP failure modes", true},
		{"tell me about unicorns", false},
		{"", false},
		{"temperatures", false}, // exact token match only
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := hasDomainContext(tt.query); got != tt.want {
				t.Errorf("hasDomainContext(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}
