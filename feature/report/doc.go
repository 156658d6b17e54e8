// Package report compares station snapshot CSVs and posts the changes.
//
// A snapshot row carries a station name, a song count and a duration in
// hours or seconds. Snapshots aggregate duplicate stations by summing, and
// the diff between two snapshots yields one [UPDATE] line per changed
// station, sorted by station name.
//
// Changes can be posted to Slack through an incoming webhook or, as a
// fallback, a bot token plus channel with long messages split into chunks.
// Without Slack credentials the notifier degrades to a logging no-op.
package report
