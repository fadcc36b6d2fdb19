// Package embedding provides vector embedding generation for text.
package embedding

import "context"

// Provider generates embeddings from text. A provider is deterministic for
// a fixed model: the same text always yields the same vector, and every
// vector it produces has Dimensions() elements.
type Provider interface {
	// Embed generates an embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts, one vector per
	// input, in input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// ModelName returns the name of the embedding model.
	ModelName() string

	// Dimensions returns the expected vector dimensions.
	Dimensions() int
}
