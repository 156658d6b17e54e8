package cmd

import (
	"context"
	"fmt"
	"time"

	"track-matcher/core/config"
	"track-matcher/core/database"
	"track-matcher/core/logger"

	"github.com/spf13/cobra"
)

var historyLimit int

// historyCmd lists recent matching runs.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent matching runs",
	Long: `List the most recent matching runs recorded in the history database,
newest first.

Examples:
  track-matcher history
  track-matcher history --limit 50`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Number of runs to show")
	RootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}

	runs, err := database.NewRunStore(db).Recent(context.Background(), historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	for _, run := range runs {
		fmt.Printf("%s  %s -> %s  total=%d matched=%d unmatched=%d failed=%d min_score=%.2f %s\n",
			run.CompletedAt.Format(time.RFC3339),
			run.Curation,
			run.Library,
			run.Total,
			run.Matched,
			run.Unmatched,
			run.Failed,
			run.MinScore,
			time.Duration(run.DurationMS)*time.Millisecond,
		)
	}
	return nil
}
