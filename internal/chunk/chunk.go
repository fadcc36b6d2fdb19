// Package chunk provides the retrieval unit type and the text chunking
// algorithm that turns cleaned manual text into bounded, citable pieces.
package chunk

import (
	"fmt"
	"regexp"
	"strings"
)

// Chunk is a bounded unit of document text with page and title provenance.
// Chunks are immutable once created.
type Chunk struct {
	Text    string `json:"text"`
	Title   string `json:"title"`    // Document identifier (filename stem)
	Page    int    `json:"page"`     // 1-based page number in the source document
	ChunkID string `json:"chunk_id"` // Unique within a corpus: title_p<page>_c<ordinal>
}

// ID builds the canonical chunk identifier from title, page and ordinal.
func ID(title string, page, ordinal int) string {
	return fmt.Sprintf("%s_p%d_c%d", title, page, ordinal)
}

var (
	whitespaceRun   = regexp.MustCompile(`\s+`)
	nonPrintable    = regexp.MustCompile(`[^\x20-\x7E]`)
	spaceBeforeStop = regexp.MustCompile(`\s+([.!?])`)
)

// Clean normalizes extracted text: whitespace runs collapse to a single
// space, non-printable-ASCII characters become spaces, and whitespace
// before sentence punctuation is removed. PDF extraction produces irregular
// spacing and artifacts that hurt both embeddings and readability.
func Clean(text string) string {
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = nonPrintable.ReplaceAllString(text, " ")
	text = spaceBeforeStop.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
