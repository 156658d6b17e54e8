package matching

// Dedup policies for duplicate exact keys in the library.
const (
	// DedupLastWins keeps the last-seen record per exact key. This is the
	// historical behavior: duplicate tracks with identical title and artist
	// collapse to whichever was read last.
	DedupLastWins = "last-wins"
	// DedupFirstWins keeps the first-seen record per exact key.
	DedupFirstWins = "first-wins"
)

// Config holds the tunable parameters of the matching core.
// Weights are not required to sum to 1; the score is an unnormalized
// weighted sum and MinScore must be tuned against that scale.
type Config struct {
	// MinScore is the minimum fuzzy score to count as a match.
	MinScore float64 `mapstructure:"min_score" default:"0.85"`
	// TitleWeight is the weight of title similarity.
	TitleWeight float64 `mapstructure:"title_weight" default:"0.35"`
	// ArtistWeight is the weight of artist similarity.
	ArtistWeight float64 `mapstructure:"artist_weight" default:"0.45"`
	// NgramWeight is the combined weight of the title and artist n-gram
	// overlaps, split evenly between the two.
	NgramWeight float64 `mapstructure:"ngram_weight" default:"0.20"`
	// AlbumWeight is the additional album contribution, applied only when
	// both sides carry a usable album value.
	AlbumWeight float64 `mapstructure:"album_weight" default:"0.20"`
	// AggressiveTrim enables conservative edition-tail trimming
	// (remaster/live/etc) during normalization.
	AggressiveTrim bool `mapstructure:"aggressive_trim" default:"false"`
	// Concurrency is the number of parallel matching workers.
	Concurrency int `mapstructure:"concurrency" default:"8"`
	// MinBlockSize extends the candidate pool with the first-token block
	// when the artist block has fewer candidates than this. Zero extends
	// only when the artist block is empty.
	MinBlockSize int `mapstructure:"min_block_size" default:"0"`
	// DedupPolicy selects how duplicate exact keys collapse.
	DedupPolicy string `mapstructure:"dedup_policy" default:"last-wins"`
}

// IsValidDedupPolicy checks if the configured dedup policy is valid.
func (c Config) IsValidDedupPolicy() bool {
	switch c.DedupPolicy {
	case DedupLastWins, DedupFirstWins, "":
		return true
	default:
		return false
	}
}

// Score combines a score breakdown into one weighted value.
// The n-gram weight is split evenly between the title and artist overlaps;
// the album term contributes only when an album signal is present.
func (c Config) Score(s ScoreBreakdown) float64 {
	ngramEach := 0.0
	if c.NgramWeight > 0 {
		ngramEach = c.NgramWeight / 2.0
	}
	score := c.TitleWeight*s.RatioTitle +
		c.ArtistWeight*s.RatioArtist +
		ngramEach*s.NgramTitle +
		ngramEach*s.NgramArtist
	if s.RatioAlbum > 0 || s.NgramAlbum > 0 {
		score += c.AlbumWeight * (s.RatioAlbum + s.NgramAlbum) / 2.0
	}
	return score
}
