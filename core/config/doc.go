// Package config provides configuration management for the Track Matcher.
//
// It utilizes Viper for loading configuration from environment variables,
// a .env file, and command-line flags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, upload limit)
//   - Database: SQLite run-history location
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: Logging level and format
//   - Matching: scoring weights, threshold and concurrency
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Matching.MinScore)
package config
