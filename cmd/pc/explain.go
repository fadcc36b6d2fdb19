package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/procopilot/procopilot/internal/alarm"
	"github.com/procopilot/procopilot/internal/config"
	"github.com/procopilot/procopilot/internal/rag"
)

var (
	explainStart string
	explainEnd   string
)

func init() {
	rootCmd.AddCommand(explainCmd)

	explainCmd.Flags().StringVar(&explainStart, "start", "", "Window start (ISO 8601)")
	explainCmd.Flags().StringVar(&explainEnd, "end", "", "Window end (ISO 8601)")
	explainCmd.MarkFlagRequired("start")
	explainCmd.MarkFlagRequired("end")
}

var explainCmd = &cobra.Command{
	Use:   "explain <tag>",
	Short: "Explain a tag's alarm episode with data and manual guidance",
	Long: `Analyze one process tag over a time window and pair the statistics
with procedural guidance retrieved from the ingested manuals.

The data summary covers value range, trend, and alarm transitions. The
guidance query is built from what the data shows: the worst alarm state
and the trend direction steer the document search.`,
	Args: cobra.ExactArgs(1),
	RunE: runExplain,
}

func runExplain(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	tag := args[0]
	start := parseTimeFlag("start", explainStart)
	end := parseTimeFlag("end", explainEnd)
	if end.Before(start) {
		exitWithError(ExitDataError, "--end must not be before --start")
	}

	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)

	store := mustOpenAlarmStore(root)
	defer store.Close()

	engine := rag.NewEngine(newProvider(cfg),
		config.IndexPath(root), config.MetadataPath(root),
		rag.WithRetrievalK(cfg.RetrievalK),
		rag.WithScoreThreshold(cfg.ScoreThreshold),
	)
	analyzer := alarm.NewAnalyzer(store, engine)

	result, err := analyzer.Explain(ctx, tag, start, end)
	if err != nil {
		exitWithError(ExitError, "explaining %s: %v", tag, err)
	}

	if humanOutput {
		outputHuman("%s\n\nGuidance:\n%s\n", result.SummaryFromData, result.Answer)
		if len(result.Citations) > 0 {
			outputHuman("\nSources:\n")
			for i, c := range result.Citations {
				outputHuman("  %d. %s, page %v (%.3f)\n", i+1, c.Title, c.Page, c.Score)
			}
		}
	} else {
		outputJSON(result)
	}
	return nil
}
