// Package index provides an exact nearest-neighbor vector index over
// document chunks, with on-disk persistence.
package index

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/procopilot/procopilot/internal/chunk"
)

// Errors returned by index operations.
var (
	ErrIndexNotFound      = errors.New("index unavailable")
	ErrNoChunks           = errors.New("no chunks available to build index")
	ErrUnsupportedVersion = errors.New("unsupported index version")
)

// CurrentIndexVersion is the format version for compatibility checking.
// Increment this when making breaking changes to the persisted format.
const CurrentIndexVersion = 1

// VectorIndex holds embeddings for all indexed chunks. Vector position i
// always corresponds to Chunks[i]; the two lists are persisted together and
// never modified after build, so concurrent reads are safe.
type VectorIndex struct {
	// Version is the format version for compatibility checking.
	Version int

	// Metadata about the index
	ModelName       string    // e.g., "all-minilm:l6-v2"
	Dimensions      int       // 384 for all-minilm
	CreatedAt       time.Time // When the index was built
	BuildDurationMs int64     // Time to build in milliseconds

	// Vectors are the chunk embeddings, parallel to Chunks.
	Vectors [][]float32

	// Chunks is the metadata list, parallel to Vectors.
	Chunks []chunk.Chunk
}

// SearchResult is a single retrieval hit. It is the one tagged result type
// flowing through the pipeline; all fields are populated at the retrieval
// boundary.
type SearchResult struct {
	Text    string  `json:"text"`
	Title   string  `json:"title"`
	Page    int     `json:"page"`
	Score   float64 `json:"score"` // Negated squared-L2 distance; higher is better
	ChunkID string  `json:"chunk_id"`
}

// Len returns the number of indexed vectors.
func (idx *VectorIndex) Len() int {
	return len(idx.Vectors)
}

// persistedStructure is the on-disk form of the search structure, without
// the chunk metadata (which is stored in its own file).
type persistedStructure struct {
	Version         int
	ModelName       string
	Dimensions      int
	CreatedAt       time.Time
	BuildDurationMs int64
	Vectors         [][]float32
}

// Save persists the search structure and the chunk metadata list to the
// given pair of paths. Each file is written to a temp file first, then
// renamed for atomicity.
func (idx *VectorIndex) Save(indexPath, metadataPath string) error {
	structure := persistedStructure{
		Version:         idx.Version,
		ModelName:       idx.ModelName,
		Dimensions:      idx.Dimensions,
		CreatedAt:       idx.CreatedAt,
		BuildDurationMs: idx.BuildDurationMs,
		Vectors:         idx.Vectors,
	}
	if err := writeGob(indexPath, structure); err != nil {
		return fmt.Errorf("saving search structure: %w", err)
	}
	if err := writeGob(metadataPath, idx.Chunks); err != nil {
		return fmt.Errorf("saving chunk metadata: %w", err)
	}
	return nil
}

// Load reads a persisted index. Both files must exist; a missing file
// yields ErrIndexNotFound.
func Load(indexPath, metadataPath string) (*VectorIndex, error) {
	var structure persistedStructure
	if err := readGob(indexPath, &structure); err != nil {
		return nil, err
	}

	var chunks []chunk.Chunk
	if err := readGob(metadataPath, &chunks); err != nil {
		return nil, err
	}

	if structure.Version != CurrentIndexVersion {
		return nil, fmt.Errorf("%w: got %d, want %d (rebuild with 'pc index build')",
			ErrUnsupportedVersion, structure.Version, CurrentIndexVersion)
	}
	if len(structure.Vectors) != len(chunks) {
		return nil, fmt.Errorf("corrupt index: %d vectors but %d chunks", len(structure.Vectors), len(chunks))
	}

	return &VectorIndex{
		Version:         structure.Version,
		ModelName:       structure.ModelName,
		Dimensions:      structure.Dimensions,
		CreatedAt:       structure.CreatedAt,
		BuildDurationMs: structure.BuildDurationMs,
		Vectors:         structure.Vectors,
		Chunks:          chunks,
	}, nil
}

// writeGob encodes v to path via a temp file and rename.
func writeGob(path string, v any) error {
	tempPath := path + ".tmp"
	f, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	enc := gob.NewEncoder(f)
	if err := enc.Encode(v); err != nil {
		f.Close()
		os.Remove(tempPath)
		return fmt.Errorf("encoding: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("closing file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}

// readGob decodes path into v. Missing files map to ErrIndexNotFound.
func readGob(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrIndexNotFound
		}
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	dec := gob.NewDecoder(f)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

// Exists reports whether both persisted index files are present.
func Exists(indexPath, metadataPath string) bool {
	if _, err := os.Stat(indexPath); err != nil {
		return false
	}
	if _, err := os.Stat(metadataPath); err != nil {
		return false
	}
	return true
}
