// Package database persists the match run history.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly configure
// a SQLite database holding one row per completed matching run.
//
// # Connect
//
// The Connect function opens (and creates if needed) the database file and
// migrates the MatchRun schema. History is optional: callers degrade
// gracefully when the database cannot be opened.
//
// # Run History
//
// RunStore records a summary row per curation file processed (counters,
// threshold, duration) and serves the recent runs back, newest first.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Run history disabled", zap.Error(err))
//	}
//
//	store := database.NewRunStore(db)
//	runs, err := store.Recent(ctx, 20)
package database
