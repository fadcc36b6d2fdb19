package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/procopilot/procopilot/internal/config"
	"github.com/procopilot/procopilot/internal/rag"
)

func init() {
	rootCmd.AddCommand(askCmd)
}

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question about the ingested manuals",
	Long: `Answer a question from the indexed technical manuals.

Retrieval is semantic: the question is embedded and matched against the
chunk index. When no sufficiently relevant material exists, the answer
says so instead of guessing. Citations point at the source manual and
page for every answered question.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	query := strings.TrimSpace(args[0])
	if query == "" {
		exitWithError(ExitError, "question cannot be empty")
	}

	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)

	engine := rag.NewEngine(newProvider(cfg),
		config.IndexPath(root), config.MetadataPath(root),
		rag.WithRetrievalK(cfg.RetrievalK),
		rag.WithScoreThreshold(cfg.ScoreThreshold),
	)

	result := engine.Ask(ctx, query)

	if humanOutput {
		printAskResult(result)
	} else {
		outputJSON(result)
	}
	return nil
}

func printAskResult(result rag.AskResult) {
	outputHuman("%s\n", result.Answer)
	if len(result.Citations) > 0 {
		outputHuman("\nSources:\n")
		for i, c := range result.Citations {
			outputHuman("  %d. %s, page %v (%.3f)\n", i+1, c.Title, c.Page, c.Score)
		}
	}
}
