package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	t.Run("Invalid Path", func(t *testing.T) {
		cfg := Config{
			Path: filepath.Join(t.TempDir(), "missing", "nested", "runs.db"),
		}

		// The parent directory does not exist, so the open must fail.
		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("Creates And Migrates", func(t *testing.T) {
		cfg := Config{Path: filepath.Join(t.TempDir(), "runs.db")}

		db, err := Connect(cfg)
		require.NoError(t, err)
		require.NotNil(t, db)
		assert.True(t, db.Migrator().HasTable(&MatchRun{}))
	})
}

func TestRunStore(t *testing.T) {
	db, err := Connect(Config{Path: filepath.Join(t.TempDir(), "runs.db")})
	require.NoError(t, err)
	store := NewRunStore(db)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		err := store.Record(ctx, &MatchRun{
			Library:     "library",
			Curation:    "playlist",
			Total:       100,
			Matched:     90 + i,
			Unmatched:   10 - i,
			MinScore:    0.85,
			StartedAt:   base,
			CompletedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	runs, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	// Newest first.
	assert.Equal(t, 92, runs[0].Matched)
	assert.Equal(t, 91, runs[1].Matched)
	assert.NotEmpty(t, runs[0].RunID)
	assert.NotEqual(t, runs[0].RunID, runs[1].RunID)

	all, err := store.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
