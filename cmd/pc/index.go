package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/procopilot/procopilot/internal/config"
	"github.com/procopilot/procopilot/internal/embedding"
	"github.com/procopilot/procopilot/internal/index"
	"github.com/procopilot/procopilot/internal/ingest"
)

var noProgress bool

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.AddCommand(indexBuildCmd)
	indexCmd.AddCommand(indexStatusCmd)

	indexBuildCmd.Flags().BoolVar(&noProgress, "no-progress", false, "Suppress progress output")
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the document search index",
	Long:  `Commands for building and inspecting the vector search index.`,
}

// newProvider builds the embedding provider from workspace configuration.
func newProvider(cfg *config.Config) *embedding.OllamaProvider {
	return embedding.NewOllamaProvider(
		embedding.WithBaseURL(cfg.OllamaURL),
		embedding.WithModel(cfg.EmbeddingModel),
		embedding.WithDimensions(cfg.Dimensions),
	)
}

// mustCheckOllama verifies the Ollama server and model are reachable.
func mustCheckOllama(ctx context.Context, provider *embedding.OllamaProvider) {
	if err := provider.IsAvailable(ctx); err != nil {
		exitWithError(ExitDataError, "Ollama is not running\n\nStart Ollama with 'ollama serve' or install from https://ollama.ai")
	}

	hasModel, err := provider.HasModel(ctx)
	if err != nil {
		exitWithError(ExitError, "checking model availability: %v", err)
	}
	if !hasModel {
		exitWithError(ExitModelNotFound, "Embedding model '%s' not found\n\nRun 'ollama pull %s' to download it.", provider.ModelName(), provider.ModelName())
	}
}

// IndexBuildResponse is the response for the index build command.
type IndexBuildResponse struct {
	Status          string  `json:"status"`
	ChunksIndexed   int     `json:"chunks_indexed"`
	DurationSeconds float64 `json:"duration_seconds"`
	Model           string  `json:"model"`
}

var indexBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build or rebuild the vector index",
	Long: `Build or rebuild the vector index from the ingested chunks.

Requires Ollama to be running with the embedding model available.
Run 'ollama pull all-minilm:l6-v2' to download the model.`,
	RunE: runIndexBuild,
}

func runIndexBuild(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)

	chunks, err := ingest.LoadChunks(config.ChunksPath(root))
	if err != nil {
		exitWithError(ExitDataError, "loading chunks: %v", err)
	}
	if len(chunks) == 0 {
		exitWithError(ExitDataError, "no chunks to index (run 'pc ingest' first)")
	}

	provider := newProvider(cfg)
	mustCheckOllama(ctx, provider)

	builder := index.NewBuilder(provider)
	if !noProgress && humanOutput {
		builder.SetProgressReporter(index.ProgressFunc(func(current, total int) {
			fmt.Fprintf(os.Stderr, "\rEmbedding chunks... %d/%d", current, total)
		}))
		fmt.Fprintf(os.Stderr, "Building vector index...\n")
	}

	idx, stats, err := builder.Build(ctx, chunks)
	if err != nil {
		exitWithError(ExitError, "building index: %v", err)
	}

	if err := idx.Save(config.IndexPath(root), config.MetadataPath(root)); err != nil {
		exitWithError(ExitError, "saving index: %v", err)
	}

	if humanOutput {
		if !noProgress {
			fmt.Fprintf(os.Stderr, "\r%s\r", "                                                  ")
		}
		outputHuman("Build complete:\n")
		outputHuman("  Chunks indexed: %d\n", stats.ChunksIndexed)
		outputHuman("  Time elapsed: %s\n", formatDuration(stats.Duration))
		outputHuman("  Model: %s\n", provider.ModelName())
	} else {
		outputJSON(IndexBuildResponse{
			Status:          "complete",
			ChunksIndexed:   stats.ChunksIndexed,
			DurationSeconds: stats.Duration.Seconds(),
			Model:           provider.ModelName(),
		})
	}

	return nil
}

// IndexStatusResponse is the response for the index status command.
type IndexStatusResponse struct {
	Status        string `json:"status"`
	ChunksIndexed int    `json:"chunks_indexed"`
	ChunksStored  int    `json:"chunks_stored"`
	Model         string `json:"model"`
	Dimensions    int    `json:"dimensions"`
	Created       string `json:"created"`
}

var indexStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show vector index status",
	Long:  `Report the size, model, and freshness of the vector index.`,
	RunE:  runIndexStatus,
}

func runIndexStatus(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()

	idx, err := index.Load(config.IndexPath(root), config.MetadataPath(root))
	if err != nil {
		if errors.Is(err, index.ErrIndexNotFound) {
			exitWithError(ExitConfigError, "Vector index not found\n\nRun 'pc index build' to create the index.")
		}
		exitWithError(ExitError, "loading index: %v", err)
	}

	chunks, err := ingest.LoadChunks(config.ChunksPath(root))
	if err != nil {
		exitWithError(ExitDataError, "loading chunks: %v", err)
	}

	status := "ready"
	if idx.Len() != len(chunks) {
		status = "stale"
	}

	if humanOutput {
		outputHuman("Index status: %s\n", status)
		outputHuman("  Chunks indexed: %d\n", idx.Len())
		outputHuman("  Chunks stored: %d\n", len(chunks))
		outputHuman("  Model: %s (%d dims)\n", idx.ModelName, idx.Dimensions)
		outputHuman("  Created: %s\n", idx.CreatedAt.Format(time.RFC3339))
		if status == "stale" {
			outputHuman("\nRun 'pc index build' to refresh the index.\n")
		}
	} else {
		outputJSON(IndexStatusResponse{
			Status:        status,
			ChunksIndexed: idx.Len(),
			ChunksStored:  len(chunks),
			Model:         idx.ModelName,
			Dimensions:    idx.Dimensions,
			Created:       idx.CreatedAt.Format(time.RFC3339),
		})
	}
	return nil
}
