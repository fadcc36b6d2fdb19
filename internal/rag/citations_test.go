package rag

import (
	"testing"

	"github.com/procopilot/procopilot/internal/index"
)

func TestNormalizeScore(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  float64
	}{
		{"distance of two", -2.0, 1.0 / 3.0},
		{"small distance", -0.1, 1.0 / 1.1},
		{"already a similarity", 0.85, 0.85},
		{"zero passes through", 0, 0},
		{"perfect similarity", 1.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeScore(tt.score)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("NormalizeScore(%v) = %v, want %v", tt.score, got, tt.want)
			}
		})
	}
}

func TestFormatCitations(t *testing.T) {
	results := []index.SearchResult{
		{Title: "pump_manual", Page: 3, Score: -2.0},
		{Title: "", Page: 0, Score: 0.85},
		{Title: "valve_manual", Page: 7, Score: -0.1},
	}

	got := FormatCitations(results)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}

	// Scores are normalized and rounded to three decimals; retrieval order
	// is preserved.
	if got[0].Title != "pump_manual" || got[0].Page != 3 || got[0].Score != 0.333 {
		t.Errorf("citation 0 = %+v", got[0])
	}
	if got[1].Title != "Unknown" || got[1].Page != "N/A" || got[1].Score != 0.85 {
		t.Errorf("citation 1 = %+v", got[1])
	}
	if got[2].Title != "valve_manual" || got[2].Page != 7 || got[2].Score != 0.909 {
		t.Errorf("citation 2 = %+v", got[2])
	}
}

func TestFormatCitations_Empty(t *testing.T) {
	got := FormatCitations(nil)
	if got == nil {
		t.Fatal("FormatCitations(nil) = nil, want empty slice")
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}
