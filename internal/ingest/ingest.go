package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/procopilot/procopilot/internal/chunk"
)

// Ingestor turns PDF manuals into overlapping text chunks ready for
// indexing.
type Ingestor struct {
	chunkSize    int
	chunkOverlap int
}

// Stats summarizes an ingestion run.
type Stats struct {
	Documents int `json:"documents"`
	Chunks    int `json:"chunks"`
}

// NewIngestor creates an Ingestor with the given chunking parameters.
func NewIngestor(chunkSize, chunkOverlap int) *Ingestor {
	return &Ingestor{chunkSize: chunkSize, chunkOverlap: chunkOverlap}
}

// CreateChunks splits a document's pages into chunks. The ordinal in each
// chunk ID runs across the whole document, not per page, so IDs stay
// unique within a document. The returned flag reports whether any page hit
// the chunker's iteration bound.
func (in *Ingestor) CreateChunks(pages []PageText, title string) ([]chunk.Chunk, bool) {
	var chunks []chunk.Chunk
	var anyTruncated bool
	ordinal := 0

	for _, page := range pages {
		texts, truncated := chunk.Split(page.Text, in.chunkSize, in.chunkOverlap)
		if truncated {
			anyTruncated = true
		}
		for _, text := range texts {
			chunks = append(chunks, chunk.Chunk{
				Text:    text,
				Title:   title,
				Page:    page.Page,
				ChunkID: chunk.ID(title, page.Page, ordinal),
			})
			ordinal++
		}
	}

	return chunks, anyTruncated
}

// File ingests a single PDF. The document title is the filename without
// its extension.
func (in *Ingestor) File(path string) ([]chunk.Chunk, error) {
	pages, err := ExtractPages(path)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, nil
	}

	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	chunks, truncated := in.CreateChunks(pages, title)
	if truncated {
		fmt.Fprintf(os.Stderr, "warning: chunking hit the iteration bound for %s; output may be truncated\n", title)
	}
	return chunks, nil
}

// Directory ingests every PDF in a directory, in filename order. Documents
// that fail to extract are skipped with a warning rather than aborting the
// run. Returns all chunks plus run statistics.
func (in *Ingestor) Directory(dir string) ([]chunk.Chunk, *Stats, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("reading pdf directory: %w", err)
	}

	var pdfs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			pdfs = append(pdfs, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(pdfs)

	stats := &Stats{}
	var all []chunk.Chunk
	for _, path := range pdfs {
		chunks, err := in.File(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: skipping %s: %v\n", path, err)
			continue
		}
		if len(chunks) == 0 {
			fmt.Fprintf(os.Stderr, "warning: no text extracted from %s\n", path)
			continue
		}
		all = append(all, chunks...)
		stats.Documents++
	}
	stats.Chunks = len(all)

	return all, stats, nil
}
