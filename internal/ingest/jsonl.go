package ingest

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/procopilot/procopilot/internal/chunk"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

// SaveChunks writes all chunks to a JSONL file atomically, one JSON object
// per line. Uses temp file + rename so a crash never leaves a half-written
// chunks file.
func SaveChunks(path string, chunks []chunk.Chunk) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, ".tmp-*.jsonl")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	w := bufio.NewWriter(tmpFile)
	enc := json.NewEncoder(w)
	for i, c := range chunks {
		if err := enc.Encode(c); err != nil {
			tmpFile.Close()
			return fmt.Errorf("encoding chunk %d: %w", i, err)
		}
	}

	if err := w.Flush(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("flushing temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}

	success = true
	return nil
}

// LoadChunks reads all chunks from a JSONL file. A missing file returns an
// empty slice, matching an empty corpus.
func LoadChunks(path string) ([]chunk.Chunk, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening chunks file: %w", err)
	}
	defer f.Close()

	var chunks []chunk.Chunk
	scanner := bufio.NewScanner(f)

	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var c chunk.Chunk
		if err := json.Unmarshal(line, &c); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		chunks = append(chunks, c)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading chunks file: %w", err)
	}

	return chunks, nil
}
