package ingest

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/procopilot/procopilot/internal/chunk"
)

func TestCreateChunks_OrdinalRunsAcrossPages(t *testing.T) {
	in := NewIngestor(600, 100)
	pages := []PageText{
		{Page: 1, Text: "Startup procedure for the reactor cooling system."},
		{Page: 2, Text: "Shutdown procedure for the reactor cooling system."},
	}

	chunks, truncated := in.CreateChunks(pages, "ops_manual")
	if truncated {
		t.Fatal("truncated = true, want false")
	}
	if len(chunks) != 2 {
		t.Fatalf("len(chunks) = %d, want 2", len(chunks))
	}

	if chunks[0].ChunkID != "ops_manual_p1_c0" {
		t.Errorf("chunks[0].ChunkID = %q, want %q", chunks[0].ChunkID, "ops_manual_p1_c0")
	}
	if chunks[1].ChunkID != "ops_manual_p2_c1" {
		t.Errorf("chunks[1].ChunkID = %q, want %q", chunks[1].ChunkID, "ops_manual_p2_c1")
	}
	if chunks[1].Page != 2 {
		t.Errorf("chunks[1].Page = %d, want 2", chunks[1].Page)
	}
	if chunks[0].Title != "ops_manual" {
		t.Errorf("chunks[0].Title = %q, want %q", chunks[0].Title, "ops_manual")
	}
}

func TestCreateChunks_SplitsLongPages(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 40; i++ {
		sb.WriteString("The pressure transmitter must be inspected for corrosion every month. ")
	}

	in := NewIngestor(200, 50)
	chunks, truncated := in.CreateChunks([]PageText{{Page: 3, Text: sb.String()}}, "maint_manual")
	if truncated {
		t.Fatal("truncated = true, want false")
	}
	if len(chunks) < 2 {
		t.Fatalf("len(chunks) = %d, want multiple chunks for a long page", len(chunks))
	}
	for i, c := range chunks {
		if c.Page != 3 {
			t.Errorf("chunks[%d].Page = %d, want 3", i, c.Page)
		}
		want := chunk.ID("maint_manual", 3, i)
		if c.ChunkID != want {
			t.Errorf("chunks[%d].ChunkID = %q, want %q", i, c.ChunkID, want)
		}
	}
}

func TestCreateChunks_EmptyPages(t *testing.T) {
	in := NewIngestor(600, 100)
	chunks, truncated := in.CreateChunks(nil, "empty_manual")
	if len(chunks) != 0 || truncated {
		t.Errorf("CreateChunks(nil) = %d chunks, truncated %v; want none", len(chunks), truncated)
	}
}

func TestSaveLoadChunks_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chunks.jsonl")
	chunks := []chunk.Chunk{
		{Text: "Normal Operating Range: 80-95 C", Title: "temp_manual", Page: 1, ChunkID: "temp_manual_p1_c0"},
		{Text: "High Alarm Setpoint: 100 C", Title: "temp_manual", Page: 2, ChunkID: "temp_manual_p2_c1"},
	}

	if err := SaveChunks(path, chunks); err != nil {
		t.Fatalf("SaveChunks() error = %v", err)
	}

	got, err := LoadChunks(path)
	if err != nil {
		t.Fatalf("LoadChunks() error = %v", err)
	}
	if len(got) != len(chunks) {
		t.Fatalf("len = %d, want %d", len(got), len(chunks))
	}
	for i := range chunks {
		if got[i] != chunks[i] {
			t.Errorf("chunk %d = %+v, want %+v", i, got[i], chunks[i])
		}
	}
}

func TestSaveChunks_OverwritesPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chunks.jsonl")

	first := []chunk.Chunk{{Text: "old", Title: "a", Page: 1, ChunkID: "a_p1_c0"}}
	if err := SaveChunks(path, first); err != nil {
		t.Fatalf("SaveChunks() error = %v", err)
	}

	second := []chunk.Chunk{{Text: "new", Title: "b", Page: 1, ChunkID: "b_p1_c0"}}
	if err := SaveChunks(path, second); err != nil {
		t.Fatalf("SaveChunks() error = %v", err)
	}

	got, err := LoadChunks(path)
	if err != nil {
		t.Fatalf("LoadChunks() error = %v", err)
	}
	if len(got) != 1 || got[0].ChunkID != "b_p1_c0" {
		t.Errorf("got = %+v, want only the second write", got)
	}
}

func TestLoadChunks_MissingFile(t *testing.T) {
	got, err := LoadChunks(filepath.Join(t.TempDir(), "absent.jsonl"))
	if err != nil {
		t.Fatalf("LoadChunks() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestDirectory_MissingDir(t *testing.T) {
	in := NewIngestor(600, 100)
	if _, _, err := in.Directory(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("Directory() error = nil, want error for missing directory")
	}
}

func TestDirectory_NoPDFs(t *testing.T) {
	in := NewIngestor(600, 100)
	chunks, stats, err := in.Directory(t.TempDir())
	if err != nil {
		t.Fatalf("Directory() error = %v", err)
	}
	if len(chunks) != 0 || stats.Documents != 0 || stats.Chunks != 0 {
		t.Errorf("got %d chunks, stats %+v; want empty run", len(chunks), stats)
	}
}
