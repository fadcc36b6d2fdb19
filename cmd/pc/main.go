// Package main provides the pc CLI entry point.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/procopilot/procopilot/internal/config"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pc",
	Short: "Process copilot for technical manuals and alarm data",
	Long: `pc answers questions about industrial process equipment from the
technical manuals you ingest, and explains alarm episodes by pairing
time-series statistics with procedural guidance from those manuals.

Documents are chunked into a local workspace and indexed with embeddings
from a local Ollama server. All commands output JSON by default for easy
integration with other tools.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

// getWorkspaceRoot returns the directory to treat as the search origin for
// workspace discovery. PC_ROOT overrides the working directory.
func getWorkspaceRoot() (string, int) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", outputError(ExitError, "getting current directory: %v", err)
	}

	if root := os.Getenv("PC_ROOT"); root != "" {
		cwd = root
	}

	return cwd, 0
}

// mustFindWorkspace locates the workspace root or exits.
func mustFindWorkspace() string {
	start, exitCode := getWorkspaceRoot()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	root, err := config.FindWorkspace(start)
	if err != nil {
		exitWithError(ExitConfigError, "not in a procopilot workspace (run 'pc init' first)")
	}
	return root
}

// mustLoadConfig loads the workspace configuration or exits.
func mustLoadConfig(root string) *config.Config {
	cfg, err := config.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "loading configuration: %v", err)
	}
	return cfg
}
