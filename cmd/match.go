package cmd

import (
	"context"
	"fmt"
	"time"

	"track-matcher/core/config"
	"track-matcher/core/database"
	"track-matcher/core/logger"
	"track-matcher/core/matching"
	"track-matcher/core/storage"
	"track-matcher/feature/matchrun"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	matchLibrary  string
	matchOutDir   string
	matchMinScore float64
	matchTrim     bool
	matchWorkers  int
	matchNoDB     bool
)

// matchCmd runs the matching pipeline from the command line.
var matchCmd = &cobra.Command{
	Use:   "match <curation.csv> [more.csv ...]",
	Short: "Match curation track lists against the library",
	Long: `Match one or more curation CSV files against a library CSV.

For every curation file two result files are written: <name>_matched.csv with
the resolved library rows and similarity scores, and <name>_not_found.csv with
the rows no library track reached the score threshold for. Datasets may be
local paths or s3://bucket/key references.

Examples:
  # Single playlist against a local library
  track-matcher match playlist.csv --library library.csv

  # Several playlists, results into one directory
  track-matcher match a.csv b.csv c.csv --library library.csv --out results/

  # Looser threshold with aggressive edition-tail trimming
  track-matcher match playlist.csv --library library.csv --min-score 0.8 --aggressive

  # Library in object storage
  track-matcher match playlist.csv --library s3://datasets/library.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVar(&matchLibrary, "library", "", "Library CSV (local path or s3://bucket/key)")
	matchCmd.Flags().StringVar(&matchOutDir, "out", "", "Directory for result files (default: next to each curation file)")
	matchCmd.Flags().Float64Var(&matchMinScore, "min-score", 0, "Override the fuzzy match threshold")
	matchCmd.Flags().BoolVar(&matchTrim, "aggressive", false, "Trim edition tails (remaster, live, radio edit) during normalization")
	matchCmd.Flags().IntVar(&matchWorkers, "concurrency", 0, "Override the worker count")
	matchCmd.Flags().BoolVar(&matchNoDB, "no-history", false, "Skip recording the run in the history database")
	_ = matchCmd.MarkFlagRequired("library")

	RootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	mcfg := cfg.Matching
	if matchMinScore > 0 {
		mcfg.MinScore = matchMinScore
	}
	if matchWorkers > 0 {
		mcfg.Concurrency = matchWorkers
	}
	if matchTrim {
		mcfg.AggressiveTrim = true
	}

	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to create storage client: %w", err)
	}

	runs := openRunStore(l, cfg, matchNoDB)

	svc := matchrun.NewService(store, mcfg, l, runs)
	results, err := svc.Run(context.Background(), matchrun.RunRequest{
		Library:   matchLibrary,
		Curations: args,
		OutDir:    matchOutDir,
		Progress:  logProgress(l),
	})
	for _, r := range results {
		l.Info("Result files written",
			zap.String("curation", r.Curation),
			zap.String("matched", r.MatchedPath),
			zap.String("not_found", r.UnmatchedPath),
		)
	}
	if err != nil {
		return err
	}

	return nil
}

// openRunStore connects the optional history database. Failures degrade to a
// warning, matching runs proceed without history.
func openRunStore(l *zap.Logger, cfg *config.Config, disabled bool) *database.RunStore {
	if disabled {
		return nil
	}
	db, err := database.Connect(cfg.Database)
	if err != nil {
		l.Warn("Optional history database unavailable", zap.Error(err))
		return nil
	}
	return database.NewRunStore(db)
}

// logProgress reports engine progress through the logger.
func logProgress(l *zap.Logger) matching.ProgressFunc {
	return func(done, total int, elapsed, eta time.Duration) {
		l.Info("Matching progress",
			zap.Int("done", done),
			zap.Int("total", total),
			zap.Duration("elapsed", elapsed.Round(time.Millisecond)),
			zap.Duration("eta", eta.Round(time.Millisecond)),
		)
	}
}
