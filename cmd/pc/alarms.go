package main

import (
	"github.com/spf13/cobra"

	"github.com/procopilot/procopilot/internal/alarm"
	"github.com/procopilot/procopilot/internal/config"
)

var (
	alarmStart string
	alarmEnd   string
)

func init() {
	rootCmd.AddCommand(alarmsCmd)
	alarmsCmd.AddCommand(alarmsImportCmd)
	alarmsCmd.AddCommand(alarmsSummaryCmd)

	alarmsSummaryCmd.Flags().StringVar(&alarmStart, "start", "", "Window start (ISO 8601)")
	alarmsSummaryCmd.Flags().StringVar(&alarmEnd, "end", "", "Window end (ISO 8601)")
	alarmsSummaryCmd.MarkFlagRequired("start")
	alarmsSummaryCmd.MarkFlagRequired("end")
}

var alarmsCmd = &cobra.Command{
	Use:   "alarms",
	Short: "Manage and analyze alarm history",
	Long:  `Commands for importing alarm history and summarizing tag behavior.`,
}

// mustOpenAlarmStore opens the workspace alarm database or exits.
func mustOpenAlarmStore(root string) *alarm.Store {
	store, err := alarm.Open(config.AlarmDBPath(root))
	if err != nil {
		exitWithError(ExitError, "opening alarm database: %v", err)
	}
	return store
}

// AlarmImportResponse is the response for the alarms import command.
type AlarmImportResponse struct {
	Status   string   `json:"status"`
	Imported int      `json:"imported"`
	Tags     []string `json:"tags"`
}

var alarmsImportCmd = &cobra.Command{
	Use:   "import [csv-file]",
	Short: "Import alarm history from CSV",
	Long: `Import an alarm history CSV into the workspace alarm database.

The CSV must carry timestamp, tag, value, and alarm_state columns.
Import replaces any previously imported history; malformed rows are
skipped with a warning. Without an argument the configured alarm_csv
path is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAlarmsImport,
}

func runAlarmsImport(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()

	csvPath := ""
	if len(args) == 1 {
		csvPath = args[0]
	} else {
		cfg := mustLoadConfig(root)
		csvPath = cfg.AlarmCSV
	}
	if csvPath == "" {
		exitWithError(ExitError, "no CSV file given and no alarm_csv configured")
	}

	store := mustOpenAlarmStore(root)
	defer store.Close()

	imported, err := store.ImportCSV(csvPath)
	if err != nil {
		exitWithError(ExitDataError, "importing %s: %v", csvPath, err)
	}

	tags, err := store.Tags()
	if err != nil {
		exitWithError(ExitError, "listing tags: %v", err)
	}
	if tags == nil {
		tags = []string{}
	}

	if humanOutput {
		outputHuman("Imported %d alarm records covering %d tags\n", imported, len(tags))
	} else {
		outputJSON(AlarmImportResponse{Status: "imported", Imported: imported, Tags: tags})
	}
	return nil
}

// AlarmSummaryResponse is the response for the alarms summary command.
type AlarmSummaryResponse struct {
	Tag     string         `json:"tag"`
	Summary *alarm.Summary `json:"summary"`
	Text    string         `json:"text"`
}

var alarmsSummaryCmd = &cobra.Command{
	Use:   "summary <tag>",
	Short: "Summarize a tag's alarm history over a time window",
	Long: `Compute summary statistics for one process tag over a time window:
value range, trend, alarm state counts, and state transitions.`,
	Args: cobra.ExactArgs(1),
	RunE: runAlarmsSummary,
}

func runAlarmsSummary(cmd *cobra.Command, args []string) error {
	tag := args[0]
	start := parseTimeFlag("start", alarmStart)
	end := parseTimeFlag("end", alarmEnd)
	if end.Before(start) {
		exitWithError(ExitDataError, "--end must not be before --start")
	}

	root := mustFindWorkspace()
	store := mustOpenAlarmStore(root)
	defer store.Close()

	records, err := store.Slice(tag, start, end)
	if err != nil {
		exitWithError(ExitError, "querying alarms: %v", err)
	}

	summary := alarm.Summarize(records)
	text := alarm.FormatSummary(summary, tag)

	if humanOutput {
		outputHuman("%s\n", text)
	} else {
		outputJSON(AlarmSummaryResponse{Tag: tag, Summary: summary, Text: text})
	}
	return nil
}
