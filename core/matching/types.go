package matching

import (
	"math"
	"time"
)

// Record represents a single track row prepared for matching.
// The raw input row is kept untouched for output passthrough; the canonical
// fields are derived once at construction time and never mutated afterwards.
type Record struct {
	// Raw is the original row as read from the source, keyed by column name.
	Raw map[string]string

	// Track, Artist and Album are the raw values of the detected columns.
	// Album is the empty string when the source has no album column.
	Track  string
	Artist string
	Album  string

	// CleanTrack, CleanArtist and CleanAlbum are the normalized forms used
	// for comparison and index keys.
	CleanTrack  string
	CleanArtist string
	CleanAlbum  string

	// MediaID is the opaque library identifier, empty when absent.
	MediaID string
}

// NewRecord builds a Record from a raw row and its resolved field values.
// Normalization of the canonical fields is a pure function of the raw value
// and the aggressive flag.
func NewRecord(raw map[string]string, track, artist, album, mediaID string, aggressive bool) *Record {
	return &Record{
		Raw:         raw,
		Track:       track,
		Artist:      artist,
		Album:       album,
		CleanTrack:  Normalize(track, aggressive),
		CleanArtist: Normalize(artist, aggressive),
		CleanAlbum:  Normalize(album, aggressive),
		MediaID:     mediaID,
	}
}

// Match type classifications, in decreasing priority order.
const (
	MatchExactAlbum = "exact_album"
	MatchExact      = "exact"
	MatchFuzzyAlbum = "fuzzy_album"
	MatchFuzzy      = "fuzzy"
)

// ScoreBreakdown holds the individual similarity signals computed for a
// curation/library pair. Album components are zero when either side has no
// usable album value.
type ScoreBreakdown struct {
	RatioTitle  float64 `json:"ratio_title"`
	RatioArtist float64 `json:"ratio_artist"`
	RatioAlbum  float64 `json:"ratio_album"`
	NgramTitle  float64 `json:"ngram_title"`
	NgramArtist float64 `json:"ngram_artist"`
	NgramAlbum  float64 `json:"ngram_album"`
}

// Rounded returns a copy with every component rounded to three decimal
// places, the precision used in output tables.
func (s ScoreBreakdown) Rounded() ScoreBreakdown {
	return ScoreBreakdown{
		RatioTitle:  Round3(s.RatioTitle),
		RatioArtist: Round3(s.RatioArtist),
		RatioAlbum:  Round3(s.RatioAlbum),
		NgramTitle:  Round3(s.NgramTitle),
		NgramArtist: Round3(s.NgramArtist),
		NgramAlbum:  Round3(s.NgramAlbum),
	}
}

// Round3 rounds a score component to three decimal places.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// MatchResult is the immutable outcome of matching one curation row.
// When Matched is false only Row is populated.
type MatchResult struct {
	// Row is the curation record this result belongs to.
	Row *Record

	// Matched reports whether a library record was selected.
	Matched bool

	// Library is the selected library record, nil when unmatched.
	Library *Record

	// MatchType is one of the Match* constants, empty when unmatched.
	MatchType string

	// Scores holds the similarity signals for the selected pair.
	Scores ScoreBreakdown
}

// Summary provides aggregate counts for one matching run.
type Summary struct {
	// Total is the number of curation rows processed.
	Total int `json:"total"`

	// Matched counts rows that resolved to a library record.
	Matched int `json:"matched"`

	// Unmatched counts rows with no library record above threshold.
	Unmatched int `json:"unmatched"`

	// Failed counts rows that were recovered from a per-row failure and
	// recorded as unmatched.
	Failed int `json:"failed"`

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration `json:"-"`
}

// Result bundles the two output partitions of a matching run.
// Both partitions preserve the original curation row order.
type Result struct {
	Matched   []MatchResult
	Unmatched []MatchResult
	Summary   Summary
}
