package ingest

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"

	"github.com/procopilot/procopilot/internal/chunk"
)

// PageText is the cleaned text of a single PDF page. Page numbers are
// 1-based and preserved for citations.
type PageText struct {
	Page int
	Text string
}

// ExtractPages extracts text from a PDF file page by page. Pages that
// fail to extract are skipped with a warning; pages with no content are
// dropped. Page-by-page extraction keeps page numbers attached to text so
// citations can point at the right page.
func ExtractPages(path string) ([]PageText, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	var pages []PageText
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to extract page %d from %s: %v\n", i, path, err)
			continue
		}

		cleaned := chunk.Clean(text)
		if cleaned == "" {
			continue
		}
		pages = append(pages, PageText{Page: i, Text: cleaned})
	}

	return pages, nil
}
