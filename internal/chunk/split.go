package chunk

import (
	"regexp"
	"strings"
)

const (
	// MaxChunks bounds the number of splitting iterations. Pathological
	// inputs can snap repeatedly to the same sentence boundary; without a
	// hard stop the loop never terminates.
	MaxChunks = 1000

	// boundaryWindow is how far back from a tentative cut to look for a
	// sentence ending.
	boundaryWindow = 50
)

// sentenceBoundary matches a sentence ending followed by whitespace.
var sentenceBoundary = regexp.MustCompile(`[.!?]\s+`)

// Split divides text into overlapping chunks of at most roughly size
// characters, preferring to cut at sentence boundaries. It is a pure
// function of its inputs and always terminates. The returned chunks are
// trimmed and never empty. The second return value reports whether the
// iteration bound was hit and trailing text was dropped.
func Split(text string, size, overlap int) ([]string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}

	if len(text) <= size {
		return []string{text}, false
	}

	var chunks []string
	start := 0
	count := 0

	for start < len(text) && count < MaxChunks {
		end := start + size
		if end > len(text) {
			end = len(text)
		}

		// Prefer a sentence boundary in the last boundaryWindow characters
		// so chunks do not cut mid-sentence.
		if end < len(text) {
			searchStart := end - boundaryWindow
			if searchStart < start {
				searchStart = start
			}
			matches := sentenceBoundary.FindAllStringIndex(text[searchStart:end], -1)
			if len(matches) > 0 {
				last := matches[len(matches)-1]
				end = searchStart + last[1]
			}
		}

		if c := strings.TrimSpace(text[start:end]); c != "" {
			chunks = append(chunks, c)
		}

		// Advance, forcing progress when overlap or boundary snapping would
		// move the window backwards or keep it in place.
		next := end - overlap
		if next <= start {
			step := size / 2
			if step < 1 {
				step = 1
			}
			next = start + step
		}
		start = next
		count++

		// When less than half a chunk remains, emit it and stop.
		if len(text)-start < size/2 {
			remaining := strings.TrimSpace(text[start:])
			if remaining != "" && !contains(chunks, remaining) {
				chunks = append(chunks, remaining)
			}
			break
		}
	}

	return chunks, count >= MaxChunks
}

func contains(chunks []string, s string) bool {
	for _, c := range chunks {
		if c == s {
			return true
		}
	}
	return false
}
