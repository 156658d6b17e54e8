package database

// Config holds configuration for the run-history database.
type Config struct {
	// Path is the SQLite database file. ":memory:" keeps history for the
	// lifetime of the process only.
	Path string `mapstructure:"path" default:"track-matcher.db"`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
