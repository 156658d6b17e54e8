package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MatchRun is one row of the run-history table: a single curation file
// matched against a library file, with its outcome counters.
type MatchRun struct {
	ID          uint   `gorm:"primaryKey"`
	RunID       string `gorm:"uniqueIndex;size:36"`
	Library     string `gorm:"index"`
	Curation    string `gorm:"index"`
	Total       int
	Matched     int
	Unmatched   int
	Failed      int
	MinScore    float64
	Aggressive  bool
	DurationMS  int64
	StartedAt   time.Time
	CompletedAt time.Time
}

// RunStore persists and queries match runs.
type RunStore struct {
	db *gorm.DB
}

// NewRunStore wraps a connected database.
func NewRunStore(db *gorm.DB) *RunStore {
	return &RunStore{db: db}
}

// Record inserts a completed run, assigning a run ID when the caller did not.
func (s *RunStore) Record(ctx context.Context, run *MatchRun) error {
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to record match run: %w", err)
	}
	return nil
}

// Recent returns the latest runs, newest first.
func (s *RunStore) Recent(ctx context.Context, limit int) ([]MatchRun, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []MatchRun
	err := s.db.WithContext(ctx).
		Order("completed_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load match runs: %w", err)
	}
	return runs, nil
}
