package alarm

import (
	"context"
	"fmt"
	"time"

	"github.com/procopilot/procopilot/internal/rag"
)

// Asker answers a free-text question against the document index. Satisfied
// by *rag.Engine.
type Asker interface {
	Ask(ctx context.Context, query string) rag.AskResult
}

// ExplainResult combines the data-side summary with document-based
// guidance. The two halves degrade independently: a data problem still
// reports what is known, a retrieval problem still reports the data
// summary.
type ExplainResult struct {
	SummaryFromData string         `json:"summary_from_data"`
	Answer          string         `json:"answer"`
	Citations       []rag.Citation `json:"citations"`
}

// Analyzer runs the alarm explanation pipeline against a Store and an
// Asker.
type Analyzer struct {
	store *Store
	asker Asker
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(store *Store, asker Asker) *Analyzer {
	return &Analyzer{store: store, asker: asker}
}

// Explain analyzes a tag over a time window and pairs the statistics with
// procedural guidance retrieved from the manuals. Missing data yields a
// fail-closed result rather than an error: the caller always gets a
// well-formed explanation of what could not be done.
func (a *Analyzer) Explain(ctx context.Context, tag string, start, end time.Time) (*ExplainResult, error) {
	count, err := a.store.Count()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return &ExplainResult{
			SummaryFromData: "No alarm data available.",
			Answer:          "Cannot provide guidance without alarm data.",
			Citations:       []rag.Citation{},
		}, nil
	}

	records, err := a.store.Slice(tag, start, end)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return &ExplainResult{
			SummaryFromData: fmt.Sprintf("No data found for %s in the specified time range.", tag),
			Answer:          "Cannot analyze - no data available for this tag and time period.",
			Citations:       []rag.Citation{},
		}, nil
	}

	summary := Summarize(records)
	dataSummary := FormatSummary(summary, tag)

	guidance := a.asker.Ask(ctx, GuidanceQuery(tag, summary))
	citations := guidance.Citations
	if citations == nil {
		citations = []rag.Citation{}
	}

	return &ExplainResult{
		SummaryFromData: dataSummary,
		Answer:          guidance.Answer,
		Citations:       citations,
	}, nil
}
