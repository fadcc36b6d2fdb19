package main

import (
	"github.com/spf13/cobra"

	"github.com/procopilot/procopilot/internal/config"
	"github.com/procopilot/procopilot/internal/ingest"
)

func init() {
	rootCmd.AddCommand(ingestCmd)
}

// IngestResponse is the response for the ingest command.
type IngestResponse struct {
	Status    string `json:"status"`
	Documents int    `json:"documents"`
	Chunks    int    `json:"chunks"`
	Path      string `json:"path"`
}

var ingestCmd = &cobra.Command{
	Use:   "ingest <pdf-dir>",
	Short: "Extract and chunk PDF manuals",
	Long: `Extract text from every PDF in a directory, page by page, split it
into overlapping chunks, and persist the chunks to the workspace.

Chunks replace any previous ingestion. Run 'pc index build' afterwards
to make the new chunks searchable.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)

	ingestor := ingest.NewIngestor(cfg.ChunkSize, cfg.ChunkOverlap)
	chunks, stats, err := ingestor.Directory(args[0])
	if err != nil {
		exitWithError(ExitDataError, "ingesting %s: %v", args[0], err)
	}
	if len(chunks) == 0 {
		exitWithError(ExitDataError, "no text extracted from any PDF in %s", args[0])
	}

	chunksPath := config.ChunksPath(root)
	if err := ingest.SaveChunks(chunksPath, chunks); err != nil {
		exitWithError(ExitError, "saving chunks: %v", err)
	}

	if humanOutput {
		outputHuman("Ingested %d documents into %d chunks\nSaved to %s\n",
			stats.Documents, stats.Chunks, chunksPath)
	} else {
		outputJSON(IngestResponse{
			Status:    "ingested",
			Documents: stats.Documents,
			Chunks:    stats.Chunks,
			Path:      chunksPath,
		})
	}
	return nil
}
