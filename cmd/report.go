package cmd

import (
	"context"
	"fmt"

	"track-matcher/core/config"
	"track-matcher/core/dataset"
	"track-matcher/core/logger"
	"track-matcher/feature/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var reportSlack bool

// reportCmd compares two station snapshot CSVs.
var reportCmd = &cobra.Command{
	Use:   "report <yesterday.csv> <today.csv>",
	Short: "Compare two station snapshots and report the changes",
	Long: `Compare two station snapshot CSVs and print one [UPDATE] line per
changed station, sorted by station name. Duplicate station rows are summed
and a seconds column is converted to hours.

With --slack the report is also posted to Slack using SLACK_WEBHOOK_URL or,
as a fallback, SLACK_BOT_TOKEN plus SLACK_CHANNEL from the environment.

Examples:
  # Print changes between two snapshots
  track-matcher report yesterday.csv today.csv

  # Also post them to Slack
  track-matcher report yesterday.csv today.csv --slack`,
	Args: cobra.ExactArgs(2),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&reportSlack, "slack", false, "Also post the report to Slack")
	RootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	// Config load also pulls in the .env file the Slack credentials live in.
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&logger.Config{Level: "info", Format: "console"})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	prev, err := loadSnapshotFile(args[0])
	if err != nil {
		return err
	}
	curr, err := loadSnapshotFile(args[1])
	if err != nil {
		return err
	}

	changes := report.Diff(prev, curr)
	if len(changes) == 0 {
		fmt.Println("[info] no changes.")
	}
	for _, line := range changes {
		fmt.Println(line)
	}

	if !reportSlack {
		return nil
	}

	notifier := report.NewNotifier(cfg.Slack, l)

	title := fmt.Sprintf("*Station Updates:* %s → %s",
		dataset.BaseName(args[0]), dataset.BaseName(args[1]))
	if err := notifier.Post(context.Background(), title, changes); err != nil {
		return fmt.Errorf("slack post failed: %w", err)
	}
	l.Info("Report delivered", zap.Int("changes", len(changes)))
	return nil
}

func loadSnapshotFile(path string) (report.Snapshot, error) {
	ds, err := dataset.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return report.LoadSnapshot(ds)
}
