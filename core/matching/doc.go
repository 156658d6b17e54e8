// Package matching implements entity resolution between a track library and
// curation datasets.
//
// # Design
//
// Matching proceeds in three tiers per curation row:
//
//  1. Exact album key: "{clean_track} - {clean_artist} - {clean_album}"
//  2. Exact key: "{clean_track} - {clean_artist}"
//  3. Fuzzy scan over a blocked candidate pool
//
// Blocking partitions the library by clean artist and by the artist's first
// token so fuzzy comparison touches a small candidate set instead of the
// full cross product. Candidates are scored with a weighted blend of
// character-level similarity, token-set similarity and token overlap; the
// best candidate above the configured threshold wins, ties keeping the
// first-seen candidate.
//
// The character-level primitives are delegated to github.com/adrg/strutil;
// this package only parameterizes and combines them.
//
// # Concurrency
//
// The Index is built once, single-threaded, then shared read-only by the
// Engine's worker pool. Workers write into disjoint slots of a
// position-indexed result slice, which makes output ordering deterministic
// for fixed inputs regardless of the worker count.
package matching
