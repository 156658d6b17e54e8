package dataset

import (
	"fmt"
	"strings"
)

// Header vocabularies for the canonical columns. Matching is exact on the
// lowercased header first, then falls back to substring so headers like
// "Track Name" still resolve.
var (
	trackColumns  = []string{"track", "tracks", "song", "song_name", "song title", "song_title"}
	artistColumns = []string{"artist", "artists", "artist_name"}
	albumColumns  = []string{"album", "album_name", "album title", "album_title"}

	// mediaIDColumn is the library identifier carried through to the output.
	mediaIDColumn = "mediaid"
)

// Columns holds the detected original header names for the canonical fields.
// Album and MediaID are empty when the dataset has no such column.
type Columns struct {
	Track   string
	Artist  string
	Album   string
	MediaID string
}

// HasAlbum reports whether an album column was detected.
func (c Columns) HasAlbum() bool {
	return c.Album != ""
}

// Detect resolves the canonical columns of a dataset. Track and artist are
// mandatory; a dataset without them cannot be matched.
func Detect(d *Dataset) (Columns, error) {
	track, err := findColumn(trackColumns, d.Headers)
	if err != nil {
		return Columns{}, fmt.Errorf("dataset %s: track column: %w", d.Name, err)
	}
	artist, err := findColumn(artistColumns, d.Headers)
	if err != nil {
		return Columns{}, fmt.Errorf("dataset %s: artist column: %w", d.Name, err)
	}

	cols := Columns{Track: track, Artist: artist}
	if album, err := findColumn(albumColumns, d.Headers); err == nil {
		cols.Album = album
	}
	if id, err := findColumn([]string{mediaIDColumn}, d.Headers); err == nil {
		cols.MediaID = id
	}
	return cols, nil
}

// findColumn returns the original header matching one of the candidate
// names: exact lowercased match wins over the softer substring pass.
func findColumn(names, headers []string) (string, error) {
	lowered := make(map[string]string, len(headers))
	for _, h := range headers {
		lowered[strings.ToLower(strings.TrimSpace(h))] = h
	}
	for _, name := range names {
		if original, ok := lowered[name]; ok {
			return original, nil
		}
	}
	for _, h := range headers {
		lh := strings.ToLower(strings.TrimSpace(h))
		for _, name := range names {
			if strings.Contains(lh, name) {
				return h, nil
			}
		}
	}
	return "", fmt.Errorf("no column matching %v in %v", names, headers)
}
