package cmd

import (
	"context"
	"fmt"
	"time"

	"track-matcher/core/dataset"
	"track-matcher/core/logger"
	"track-matcher/feature/procure"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	procureLimit int
	procureDelay time.Duration
)

// procureCmd opens Amazon search tabs for unmatched tracks.
var procureCmd = &cobra.Command{
	Use:   "procure <not_found.csv>",
	Short: "Open Amazon Digital Music searches for unmatched tracks",
	Long: `Open one Amazon Digital Music search tab per row of a CSV, typically
a not-found result file from a match run. Rows without a track or artist are
skipped.

Examples:
  # Open a tab per unmatched track
  track-matcher procure playlist_not_found.csv

  # Only the first 10, without pauses
  track-matcher procure playlist_not_found.csv --limit 10 --delay 0`,
	Args: cobra.ExactArgs(1),
	RunE: runProcure,
}

func init() {
	procureCmd.Flags().IntVar(&procureLimit, "limit", 0, "Maximum number of tabs to open (0: no limit)")
	procureCmd.Flags().DurationVar(&procureDelay, "delay", 500*time.Millisecond, "Pause between tabs")
	RootCmd.AddCommand(procureCmd)
}

func runProcure(cmd *cobra.Command, args []string) error {
	l, err := logger.New(&logger.Config{Level: "info", Format: "console"})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	ds, err := dataset.ReadFile(args[0])
	if err != nil {
		return err
	}

	svc := procure.NewService(l)
	opened, err := svc.OpenSearches(context.Background(), ds, procure.Options{
		Limit: procureLimit,
		Delay: procureDelay,
	})
	if err != nil {
		return err
	}
	l.Info("Procurement run finished", zap.Int("opened", opened))
	return nil
}
