package main

import (
	"github.com/spf13/cobra"

	"github.com/procopilot/procopilot/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect workspace configuration",
}

// ConfigShowResponse is the response for the config show command.
type ConfigShowResponse struct {
	Workspace string         `json:"workspace"`
	Config    *config.Config `json:"config"`
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Show the configuration the workspace resolves to after applying
config.yml, .env, and PC_* environment overrides.`,
	RunE: runConfigShow,
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)

	if humanOutput {
		outputHuman("Workspace: %s\n", root)
		outputHuman("  chunk_size: %d\n", cfg.ChunkSize)
		outputHuman("  chunk_overlap: %d\n", cfg.ChunkOverlap)
		outputHuman("  retrieval_k: %d\n", cfg.RetrievalK)
		outputHuman("  score_threshold: %g\n", cfg.ScoreThreshold)
		outputHuman("  ollama_url: %s\n", cfg.OllamaURL)
		outputHuman("  embedding_model: %s\n", cfg.EmbeddingModel)
		outputHuman("  dimensions: %d\n", cfg.Dimensions)
	} else {
		outputJSON(ConfigShowResponse{Workspace: root, Config: cfg})
	}
	return nil
}
