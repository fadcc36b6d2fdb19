package index

import (
	"context"
	"fmt"
	"time"

	"github.com/procopilot/procopilot/internal/chunk"
	"github.com/procopilot/procopilot/internal/embedding"
)

// EmbedBatchSize is how many chunk texts are embedded per batch. Batching
// bounds memory during large rebuilds and gives progress reporting a
// reasonable granularity.
const EmbedBatchSize = 32

// ProgressReporter receives progress updates during index building.
type ProgressReporter interface {
	// OnProgress is called with the current progress.
	OnProgress(current, total int)
}

// ProgressFunc is a function adapter for ProgressReporter.
type ProgressFunc func(current, total int)

// OnProgress implements ProgressReporter.
func (f ProgressFunc) OnProgress(current, total int) {
	f(current, total)
}

// Builder constructs a vector index from document chunks.
type Builder struct {
	provider embedding.Provider
	progress ProgressReporter
}

// BuildStats contains statistics from index building.
type BuildStats struct {
	ChunksIndexed int           `json:"chunks_indexed"`
	Duration      time.Duration `json:"duration"`
}

// NewBuilder creates a new index builder.
func NewBuilder(provider embedding.Provider) *Builder {
	return &Builder{provider: provider}
}

// SetProgressReporter sets the progress reporter for the builder.
func (b *Builder) SetProgressReporter(reporter ProgressReporter) {
	b.progress = reporter
}

// Build embeds every chunk and assembles the search structure. It fails if
// no chunks are supplied or any embedding request fails; a partially built
// index is never returned.
func (b *Builder) Build(ctx context.Context, chunks []chunk.Chunk) (*VectorIndex, *BuildStats, error) {
	startTime := time.Now()

	if len(chunks) == 0 {
		return nil, nil, ErrNoChunks
	}

	idx := &VectorIndex{
		Version:    CurrentIndexVersion,
		ModelName:  b.provider.ModelName(),
		Dimensions: b.provider.Dimensions(),
		CreatedAt:  time.Now(),
		Vectors:    make([][]float32, 0, len(chunks)),
		Chunks:     chunks,
	}

	total := len(chunks)
	for start := 0; start < total; start += EmbedBatchSize {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		default:
		}

		end := start + EmbedBatchSize
		if end > total {
			end = total
		}

		texts := make([]string, 0, end-start)
		for _, c := range chunks[start:end] {
			texts = append(texts, c.Text)
		}

		vectors, err := b.provider.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, nil, fmt.Errorf("embedding chunks %d-%d: %w", start, end-1, err)
		}
		idx.Vectors = append(idx.Vectors, vectors...)

		if b.progress != nil {
			b.progress.OnProgress(end, total)
		}
	}

	idx.BuildDurationMs = time.Since(startTime).Milliseconds()

	stats := &BuildStats{
		ChunksIndexed: len(chunks),
		Duration:      time.Since(startTime),
	}

	return idx, stats, nil
}
