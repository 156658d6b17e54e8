package matching

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultConcurrency = 8
	progressBatch      = 100
)

// ProgressFunc receives progress updates during a run: rows completed so
// far, total rows, elapsed time and estimated time remaining. It is a
// side-channel observer and must return quickly.
type ProgressFunc func(done, total int, elapsed, eta time.Duration)

// Engine runs the matcher over a whole curation dataset with a bounded
// worker pool. The library index is shared read-only across workers; each
// worker owns its scoring state and writes into its own result slot, so the
// output is deterministic for fixed inputs at any concurrency.
type Engine struct {
	cfg    Config
	logger *zap.Logger
}

// NewEngine creates an Engine. A nil logger falls back to a no-op logger.
func NewEngine(cfg Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{cfg: cfg, logger: logger}
}

// Run matches every curation row against the index and partitions the
// results into matched and unmatched, each preserving the original row
// order. An empty index is a fatal condition reported before any row is
// dispatched; per-row failures are recovered and recorded as unmatched.
func (e *Engine) Run(ctx context.Context, rows []*Record, idx *Index, progress ProgressFunc) (*Result, error) {
	if idx == nil || idx.Size() == 0 {
		return nil, fmt.Errorf("library index is empty, nothing to match against")
	}
	if !e.cfg.IsValidDedupPolicy() {
		return nil, fmt.Errorf("invalid dedup policy %q", e.cfg.DedupPolicy)
	}

	concurrency := e.cfg.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	start := time.Now()
	total := len(rows)
	results := make([]MatchResult, total)
	var done atomic.Int64
	var failed atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i := range rows {
		i := i
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			results[i] = e.matchSafely(rows[i], idx, &failed)

			n := done.Add(1)
			if progress != nil && (n%progressBatch == 0 || n == int64(total)) {
				elapsed := time.Since(start)
				avg := elapsed / time.Duration(n)
				eta := avg * time.Duration(int64(total)-n)
				progress(int(n), total, elapsed, eta)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{}
	for _, r := range results {
		if r.Matched {
			res.Matched = append(res.Matched, r)
		} else {
			res.Unmatched = append(res.Unmatched, r)
		}
	}
	res.Summary = Summary{
		Total:     total,
		Matched:   len(res.Matched),
		Unmatched: len(res.Unmatched),
		Failed:    int(failed.Load()),
		Elapsed:   time.Since(start),
	}
	return res, nil
}

// matchSafely shields the run from unexpected per-row failures: a panicking
// row is recorded as unmatched with its raw fields intact and surfaced in
// the run diagnostics instead of crashing the whole run.
func (e *Engine) matchSafely(row *Record, idx *Index, failed *atomic.Int64) (result MatchResult) {
	defer func() {
		if r := recover(); r != nil {
			failed.Add(1)
			e.logger.Error("row matching failed, recording as unmatched",
				zap.String("track", row.Track),
				zap.String("artist", row.Artist),
				zap.Any("panic", r),
			)
			result = MatchResult{Row: row}
		}
	}()
	return MatchOne(row, idx, e.cfg)
}
