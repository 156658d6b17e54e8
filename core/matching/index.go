package matching

import "strings"

// Index holds the lookup structures built from the library dataset: two
// exact-key maps for O(1) hits and two blocking maps that restrict fuzzy
// comparison to a small candidate set. It is built once, before any worker
// starts, and shared read-only afterwards.
type Index struct {
	exact      map[string]*Record
	exactAlbum map[string]*Record
	byArtist   map[string][]*Record
	byToken    map[string][]*Record
	size       int
}

// ExactKey returns the "{clean_track} - {clean_artist}" lookup key for a
// record.
func ExactKey(r *Record) string {
	return r.CleanTrack + " - " + r.CleanArtist
}

// ExactAlbumKey returns the "{clean_track} - {clean_artist} - {clean_album}"
// lookup key for a record.
func ExactAlbumKey(r *Record) string {
	return ExactKey(r) + " - " + r.CleanAlbum
}

// firstToken returns the first whitespace-delimited token of a clean artist.
// The empty string is a valid block key for records without an artist.
func firstToken(cleanArtist string) string {
	if cleanArtist == "" {
		return ""
	}
	return strings.Split(cleanArtist, " ")[0]
}

// BuildIndex performs a single pass over the library records, filling the
// exact-key maps and both blocking maps. Duplicate exact keys collapse
// according to cfg.DedupPolicy; every record always lands in the artist
// block for its own clean artist and in the first-token block for the first
// token of that artist.
func BuildIndex(records []*Record, cfg Config) *Index {
	idx := &Index{
		exact:      make(map[string]*Record, len(records)),
		exactAlbum: make(map[string]*Record, len(records)),
		byArtist:   make(map[string][]*Record),
		byToken:    make(map[string][]*Record),
		size:       len(records),
	}
	firstWins := cfg.DedupPolicy == DedupFirstWins
	for _, r := range records {
		key := ExactKey(r)
		albumKey := ExactAlbumKey(r)
		if firstWins {
			if _, ok := idx.exact[key]; !ok {
				idx.exact[key] = r
			}
			if _, ok := idx.exactAlbum[albumKey]; !ok {
				idx.exactAlbum[albumKey] = r
			}
		} else {
			idx.exact[key] = r
			idx.exactAlbum[albumKey] = r
		}

		idx.byArtist[r.CleanArtist] = append(idx.byArtist[r.CleanArtist], r)
		tok := firstToken(r.CleanArtist)
		idx.byToken[tok] = append(idx.byToken[tok], r)
	}
	return idx
}

// Size returns the number of library records the index was built from.
func (i *Index) Size() int {
	return i.size
}

// Exact looks up a library record by its track+artist key.
func (i *Index) Exact(key string) (*Record, bool) {
	r, ok := i.exact[key]
	return r, ok
}

// ExactAlbum looks up a library record by its track+artist+album key.
func (i *Index) ExactAlbum(key string) (*Record, bool) {
	r, ok := i.exactAlbum[key]
	return r, ok
}

// ArtistBlock returns the library records sharing the given clean artist.
func (i *Index) ArtistBlock(cleanArtist string) []*Record {
	return i.byArtist[cleanArtist]
}

// TokenBlock returns the library records whose clean artist starts with the
// given first token.
func (i *Index) TokenBlock(token string) []*Record {
	return i.byToken[token]
}
