package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.ChunkSize != DefaultChunkSize {
		t.Errorf("ChunkSize = %d, want %d", cfg.ChunkSize, DefaultChunkSize)
	}
	if cfg.ChunkOverlap != DefaultChunkOverlap {
		t.Errorf("ChunkOverlap = %d, want %d", cfg.ChunkOverlap, DefaultChunkOverlap)
	}
	if cfg.RetrievalK != DefaultRetrievalK {
		t.Errorf("RetrievalK = %d, want %d", cfg.RetrievalK, DefaultRetrievalK)
	}
	if cfg.ScoreThreshold != DefaultScoreThreshold {
		t.Errorf("ScoreThreshold = %v, want %v", cfg.ScoreThreshold, DefaultScoreThreshold)
	}
	if cfg.EmbeddingModel != DefaultEmbeddingModel {
		t.Errorf("EmbeddingModel = %s, want %s", cfg.EmbeddingModel, DefaultEmbeddingModel)
	}
}

func TestPaths(t *testing.T) {
	root := "/some/workspace"

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"config", ConfigPath(root), "/some/workspace/.procopilot/config.yml"},
		{"chunks", ChunksPath(root), "/some/workspace/.procopilot/chunks.jsonl"},
		{"index", IndexPath(root), "/some/workspace/.procopilot/cache/index.gob"},
		{"metadata", MetadataPath(root), "/some/workspace/.procopilot/cache/chunks.gob"},
		{"alarmdb", AlarmDBPath(root), "/some/workspace/.procopilot/cache/alarms.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != filepath.FromSlash(tt.want) {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestFindWorkspace(t *testing.T) {
	tmpDir := t.TempDir()
	wsDir := filepath.Join(tmpDir, "plant")
	nestedDir := filepath.Join(wsDir, "a", "b")

	if err := os.MkdirAll(filepath.Join(wsDir, ProcopilotDir), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(nestedDir, 0755); err != nil {
		t.Fatal(err)
	}

	found, err := FindWorkspace(nestedDir)
	if err != nil {
		t.Fatalf("FindWorkspace() error = %v", err)
	}
	if found != wsDir {
		t.Errorf("FindWorkspace() = %q, want %q", found, wsDir)
	}

	found, err = FindWorkspace(wsDir)
	if err != nil {
		t.Fatalf("FindWorkspace() error = %v", err)
	}
	if found != wsDir {
		t.Errorf("FindWorkspace() = %q, want %q", found, wsDir)
	}
}

func TestFindWorkspace_NotFound(t *testing.T) {
	tmpDir := t.TempDir()

	if _, err := FindWorkspace(tmpDir); err == nil {
		t.Error("FindWorkspace() expected error for directory without workspace")
	}
}

func TestLoad_Defaults(t *testing.T) {
	tmpDir := t.TempDir()
	if err := Init(tmpDir); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ChunkSize != DefaultChunkSize {
		t.Errorf("ChunkSize = %d, want default %d", cfg.ChunkSize, DefaultChunkSize)
	}
	if cfg.OllamaURL != DefaultOllamaURL {
		t.Errorf("OllamaURL = %s, want default %s", cfg.OllamaURL, DefaultOllamaURL)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	if err := Init(tmpDir); err != nil {
		t.Fatal(err)
	}

	yml := "chunk_size: 400\nretrieval_k: 3\nembedding_model: nomic-embed-text\n"
	if err := os.WriteFile(ConfigPath(tmpDir), []byte(yml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ChunkSize != 400 {
		t.Errorf("ChunkSize = %d, want 400", cfg.ChunkSize)
	}
	if cfg.RetrievalK != 3 {
		t.Errorf("RetrievalK = %d, want 3", cfg.RetrievalK)
	}
	if cfg.EmbeddingModel != "nomic-embed-text" {
		t.Errorf("EmbeddingModel = %s, want nomic-embed-text", cfg.EmbeddingModel)
	}
	// Unset keys keep their defaults.
	if cfg.ChunkOverlap != DefaultChunkOverlap {
		t.Errorf("ChunkOverlap = %d, want default %d", cfg.ChunkOverlap, DefaultChunkOverlap)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	tmpDir := t.TempDir()
	if err := Init(tmpDir); err != nil {
		t.Fatal(err)
	}

	yml := "chunk_size: 400\n"
	if err := os.WriteFile(ConfigPath(tmpDir), []byte(yml), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("PC_CHUNK_SIZE", "250")
	t.Setenv("PC_SCORE_THRESHOLD", "0.4")

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ChunkSize != 250 {
		t.Errorf("ChunkSize = %d, want env override 250", cfg.ChunkSize)
	}
	if cfg.ScoreThreshold != 0.4 {
		t.Errorf("ScoreThreshold = %v, want env override 0.4", cfg.ScoreThreshold)
	}
}

func TestLoad_InvalidChunkSize(t *testing.T) {
	tmpDir := t.TempDir()
	if err := Init(tmpDir); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(ConfigPath(tmpDir), []byte("chunk_size: -5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(tmpDir); err == nil {
		t.Error("Load() expected error for negative chunk_size")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	if err := Init(tmpDir); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	cfg.AlarmCSV = "data/alarms.csv"
	cfg.RetrievalK = 8
	if err := cfg.Save(tmpDir); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.AlarmCSV != "data/alarms.csv" {
		t.Errorf("AlarmCSV = %q, want %q", loaded.AlarmCSV, "data/alarms.csv")
	}
	if loaded.RetrievalK != 8 {
		t.Errorf("RetrievalK = %d, want 8", loaded.RetrievalK)
	}
}
