// Package config handles workspace layout and configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents workspace configuration stored in .procopilot/config.yml.
// Zero-valued fields fall back to defaults when loaded.
type Config struct {
	ChunkSize      int     `yaml:"chunk_size,omitempty" json:"chunk_size"`           // Characters per chunk
	ChunkOverlap   int     `yaml:"chunk_overlap,omitempty" json:"chunk_overlap"`     // Overlap between consecutive chunks
	RetrievalK     int     `yaml:"retrieval_k,omitempty" json:"retrieval_k"`         // Results returned per query
	ScoreThreshold float64 `yaml:"score_threshold,omitempty" json:"score_threshold"` // Gate threshold for pre-normalized scores
	OllamaURL      string  `yaml:"ollama_url,omitempty" json:"ollama_url"`           // Ollama API base URL
	EmbeddingModel string  `yaml:"embedding_model,omitempty" json:"embedding_model"` // Embedding model name
	Dimensions     int     `yaml:"dimensions,omitempty" json:"dimensions"`           // Embedding vector dimensions
	AlarmCSV       string  `yaml:"alarm_csv,omitempty" json:"alarm_csv,omitempty"`   // Path to the alarm history CSV
}

const (
	ProcopilotDir = ".procopilot"
	ConfigFile    = "config.yml"
	ChunksFile    = "chunks.jsonl"
	CacheDir      = "cache"
	IndexFile     = "index.gob"
	MetadataFile  = "chunks.gob"
	AlarmDBFile   = "alarms.db"
)

// Default configuration values.
const (
	DefaultChunkSize      = 600
	DefaultChunkOverlap   = 100
	DefaultRetrievalK     = 5
	DefaultScoreThreshold = -2.0
	DefaultOllamaURL      = "http://localhost:11434"
	DefaultEmbeddingModel = "all-minilm:l6-v2"
	DefaultDimensions     = 384
)

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		ChunkSize:      DefaultChunkSize,
		ChunkOverlap:   DefaultChunkOverlap,
		RetrievalK:     DefaultRetrievalK,
		ScoreThreshold: DefaultScoreThreshold,
		OllamaURL:      DefaultOllamaURL,
		EmbeddingModel: DefaultEmbeddingModel,
		Dimensions:     DefaultDimensions,
	}
}

// ProcopilotPath returns the path to the .procopilot directory from a root path.
func ProcopilotPath(root string) string {
	return filepath.Join(root, ProcopilotDir)
}

// ConfigPath returns the path to config.yml from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, ProcopilotDir, ConfigFile)
}

// ChunksPath returns the path to chunks.jsonl from a root path.
func ChunksPath(root string) string {
	return filepath.Join(root, ProcopilotDir, ChunksFile)
}

// CachePath returns the path to the cache directory from a root path.
func CachePath(root string) string {
	return filepath.Join(root, ProcopilotDir, CacheDir)
}

// IndexPath returns the path to the persisted search structure from a root path.
func IndexPath(root string) string {
	return filepath.Join(root, ProcopilotDir, CacheDir, IndexFile)
}

// MetadataPath returns the path to the persisted chunk metadata from a root path.
func MetadataPath(root string) string {
	return filepath.Join(root, ProcopilotDir, CacheDir, MetadataFile)
}

// AlarmDBPath returns the path to the alarm query cache from a root path.
func AlarmDBPath(root string) string {
	return filepath.Join(root, ProcopilotDir, CacheDir, AlarmDBFile)
}

// IsWorkspace checks if the given path contains a procopilot workspace.
func IsWorkspace(root string) bool {
	info, err := os.Stat(ProcopilotPath(root))
	return err == nil && info.IsDir()
}

// FindWorkspace walks up from the given path to find a procopilot workspace.
// Returns the workspace root path or an error if not found.
func FindWorkspace(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsWorkspace(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a procopilot workspace (no .procopilot directory found)")
		}
		abs = parent
	}
}

// Init creates the workspace layout under the given root.
func Init(root string) error {
	if err := os.MkdirAll(CachePath(root), 0755); err != nil {
		return fmt.Errorf("creating workspace directories: %w", err)
	}
	return nil
}

// Load reads configuration for the workspace at the given root.
// Resolution order: defaults, then config.yml, then environment variables
// (a workspace .env file is loaded first if present).
func Load(root string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(ConfigPath(root))
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Missing .env is fine; explicit environment still applies.
	_ = godotenv.Load(filepath.Join(root, ".env"))
	cfg.applyEnv()

	if cfg.ChunkSize <= 0 {
		return nil, fmt.Errorf("invalid chunk_size: %d", cfg.ChunkSize)
	}
	if cfg.ChunkOverlap < 0 {
		return nil, fmt.Errorf("invalid chunk_overlap: %d", cfg.ChunkOverlap)
	}

	return cfg, nil
}

// Save writes configuration to the workspace at the given root.
func (c *Config) Save(root string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// applyEnv overrides config fields from PC_* environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("PC_CHUNK_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.ChunkSize = n
		}
	}
	if v := os.Getenv("PC_CHUNK_OVERLAP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.ChunkOverlap = n
		}
	}
	if v := os.Getenv("PC_RETRIEVAL_K"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RetrievalK = n
		}
	}
	if v := os.Getenv("PC_SCORE_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.ScoreThreshold = f
		}
	}
	if v := os.Getenv("PC_OLLAMA_URL"); v != "" {
		c.OllamaURL = v
	}
	if v := os.Getenv("PC_EMBEDDING_MODEL"); v != "" {
		c.EmbeddingModel = v
	}
	if v := os.Getenv("PC_DIMENSIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Dimensions = n
		}
	}
	if v := os.Getenv("PC_ALARM_CSV"); v != "" {
		c.AlarmCSV = v
	}
}
