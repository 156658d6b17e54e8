// Package matchrun drives the track matching runs.
//
// It wires the matching engine to datasets on disk or in object storage: the
// service loads the library and curation CSVs, resolves their columns, builds
// the library index once, runs the engine per curation dataset and writes the
// matched / not-found result files. When the run-history database is
// configured, every completed dataset is recorded there.
//
// # Components
//
//   - Service: dataset loading, record conversion, run orchestration,
//     result writing, history recording.
//   - Handler: HTTP surface (POST /match) matching an uploaded curation CSV
//     against the library the server was started with.
//   - Feature: loader.Feature wrapper registering the handler routes.
//
// # Output Contract
//
// Matched rows carry the curation fields, the winning library fields, the
// library mediaid, every similarity component rounded to three decimals and
// the match type. Unmatched rows carry the curation fields only.
package matchrun
