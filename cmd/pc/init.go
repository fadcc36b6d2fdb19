package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/procopilot/procopilot/internal/config"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new procopilot workspace",
	Long: `Initialize a procopilot workspace in the current directory.

Creates:
  .procopilot/
  ├── config.yml      # Default config
  ├── chunks.jsonl    # Empty chunk store
  └── cache/          # Derived data (index, alarm db)`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root, exitCode := getWorkspaceRoot()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	if config.IsWorkspace(root) {
		exitWithError(ExitError, "directory already contains a procopilot workspace")
	}

	if err := config.Init(root); err != nil {
		exitWithError(ExitError, "initializing workspace: %v", err)
	}

	cfg := config.Default()
	if err := cfg.Save(root); err != nil {
		exitWithError(ExitError, "writing config: %v", err)
	}

	chunksFile, err := os.Create(config.ChunksPath(root))
	if err != nil {
		exitWithError(ExitError, "creating chunks.jsonl: %v", err)
	}
	chunksFile.Close()

	if humanOutput {
		outputHuman("Initialized procopilot workspace in %s\n", config.ProcopilotPath(root))
	} else {
		outputJSON(StatusResponse{Status: "initialized", Path: config.ProcopilotPath(root)})
	}
	return nil
}
