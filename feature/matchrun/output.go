package matchrun

import (
	"strconv"

	"track-matcher/core/dataset"
	"track-matcher/core/matching"
)

// MatchedColumns is the header of the matched result file. The order is part
// of the output contract consumers parse.
var MatchedColumns = []string{
	"track", "artist", "album",
	"matched_track", "matched_artist", "matched_album", "mediaid",
	"ratio_title", "ratio_artist", "ratio_album",
	"ngram_title", "ngram_artist", "ngram_album",
	"match_type",
}

// UnmatchedColumns is the header of the not-found result file.
var UnmatchedColumns = []string{"track", "artist", "album"}

// BuildOutputs converts a run result into the matched and not-found result
// datasets, preserving the engine's row order.
func BuildOutputs(name string, res *matching.Result) (matched, unmatched *dataset.Dataset) {
	matched = &dataset.Dataset{
		Name:    name + "_matched",
		Headers: MatchedColumns,
		Rows:    make([]dataset.Row, 0, len(res.Matched)),
	}
	for _, m := range res.Matched {
		scores := m.Scores.Rounded()
		matched.Rows = append(matched.Rows, dataset.Row{
			"track":          m.Row.Track,
			"artist":         m.Row.Artist,
			"album":          m.Row.Album,
			"matched_track":  m.Library.Track,
			"matched_artist": m.Library.Artist,
			"matched_album":  m.Library.Album,
			"mediaid":        m.Library.MediaID,
			"ratio_title":    formatScore(scores.RatioTitle),
			"ratio_artist":   formatScore(scores.RatioArtist),
			"ratio_album":    formatScore(scores.RatioAlbum),
			"ngram_title":    formatScore(scores.NgramTitle),
			"ngram_artist":   formatScore(scores.NgramArtist),
			"ngram_album":    formatScore(scores.NgramAlbum),
			"match_type":     m.MatchType,
		})
	}

	unmatched = &dataset.Dataset{
		Name:    name + "_not_found",
		Headers: UnmatchedColumns,
		Rows:    make([]dataset.Row, 0, len(res.Unmatched)),
	}
	for _, m := range res.Unmatched {
		unmatched.Rows = append(unmatched.Rows, dataset.Row{
			"track":  m.Row.Track,
			"artist": m.Row.Artist,
			"album":  m.Row.Album,
		})
	}
	return matched, unmatched
}

// formatScore renders an already rounded score with three decimals.
func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
