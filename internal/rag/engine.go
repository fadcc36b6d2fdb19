package rag

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/procopilot/procopilot/internal/embedding"
	"github.com/procopilot/procopilot/internal/index"
)

// DefaultRetrievalK is the number of chunks retrieved per query.
const DefaultRetrievalK = 5

// DefaultScoreThreshold is the gate threshold for scores that arrive
// already normalized. The default of -2 effectively always passes; the
// negated-distance branch of the gate carries its own stricter threshold.
const DefaultScoreThreshold = -2.0

// Engine runs the ask pipeline. It owns the embedding provider and the
// vector index for its lifetime; the index is loaded lazily on first use
// and cached. Rebuilds replace the persisted files and require a new
// Engine; nothing here mutates a loaded index.
type Engine struct {
	provider       embedding.Provider
	indexPath      string
	metadataPath   string
	retrievalK     int
	scoreThreshold float64
	idx            *index.VectorIndex
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithRetrievalK sets how many chunks are retrieved per query.
func WithRetrievalK(k int) EngineOption {
	return func(e *Engine) {
		if k > 0 {
			e.retrievalK = k
		}
	}
}

// WithScoreThreshold sets the gate threshold for pre-normalized scores.
func WithScoreThreshold(t float64) EngineOption {
	return func(e *Engine) {
		e.scoreThreshold = t
	}
}

// WithIndex supplies an already loaded index, skipping the lazy load.
func WithIndex(idx *index.VectorIndex) EngineOption {
	return func(e *Engine) {
		e.idx = idx
	}
}

// NewEngine creates an Engine that reads its index from the given pair of
// paths.
func NewEngine(provider embedding.Provider, indexPath, metadataPath string, opts ...EngineOption) *Engine {
	e := &Engine{
		provider:       provider,
		indexPath:      indexPath,
		metadataPath:   metadataPath,
		retrievalK:     DefaultRetrievalK,
		scoreThreshold: DefaultScoreThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ensureIndex loads and caches the persisted index.
func (e *Engine) ensureIndex() (*index.VectorIndex, error) {
	if e.idx != nil {
		return e.idx, nil
	}
	idx, err := index.Load(e.indexPath, e.metadataPath)
	if err != nil {
		return nil, err
	}
	e.idx = idx
	return idx, nil
}

// Retrieve returns the k most similar chunks for a query.
func (e *Engine) Retrieve(ctx context.Context, query string) ([]index.SearchResult, error) {
	idx, err := e.ensureIndex()
	if err != nil {
		return nil, err
	}
	return idx.Search(ctx, e.provider, query, e.retrievalK)
}

// Ask runs the full pipeline: retrieve, gate, extract, cite. It always
// returns a well-formed result; failures surface as tagged outcomes with
// safe default responses, never as errors to the caller.
func (e *Engine) Ask(ctx context.Context, query string) AskResult {
	results, err := e.Retrieve(ctx, query)
	if err != nil {
		if errors.Is(err, index.ErrIndexNotFound) {
			return AskResult{
				Outcome:   OutcomeNoData,
				Answer:    noIndexMessage,
				Citations: []Citation{},
			}
		}
		fmt.Fprintf(os.Stderr, "warning: retrieval failed: %v\n", err)
		return AskResult{
			Outcome:   OutcomeError,
			Answer:    errorMessage,
			Citations: []Citation{},
		}
	}

	if !Confident(results, query, e.scoreThreshold) {
		return AskResult{
			Outcome:   OutcomeAbstain,
			Answer:    abstainMessage,
			Citations: []Citation{},
		}
	}

	context := FormatContext(results)
	answer := Synthesize(query, context)
	citations := FormatCitations(results)

	return AskResult{
		Outcome:   OutcomeAnswered,
		Answer:    answer,
		Citations: citations,
	}
}
