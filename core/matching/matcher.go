package matching

// computeScores evaluates all similarity signals between a curation row and
// a library candidate. Album components stay zero unless both sides carry a
// non-empty cleaned album.
func computeScores(row, lib *Record, aggressive bool) ScoreBreakdown {
	s := ScoreBreakdown{
		RatioTitle:  FieldSimilarity(row.CleanTrack, lib.CleanTrack),
		RatioArtist: FieldSimilarity(row.CleanArtist, lib.CleanArtist),
		NgramTitle:  NgramOverlap(row.Track, lib.Track, aggressive),
		NgramArtist: NgramOverlap(row.Artist, lib.Artist, aggressive),
	}
	if row.CleanAlbum != "" && lib.CleanAlbum != "" {
		s.RatioAlbum = FieldSimilarity(row.CleanAlbum, lib.CleanAlbum)
		s.NgramAlbum = NgramOverlap(row.Album, lib.Album, aggressive)
	}
	return s
}

// MatchOne resolves a single curation row against the library index.
//
// Lookup proceeds in strict priority order: the exact album key (when the
// row has an album), then the exact track+artist key, then a fuzzy scan over
// the blocked candidate pool. Exact hits bypass the score threshold; their
// score breakdown is still computed for observability.
func MatchOne(row *Record, idx *Index, cfg Config) MatchResult {
	if row.CleanAlbum != "" {
		if lib, ok := idx.ExactAlbum(ExactAlbumKey(row)); ok {
			return MatchResult{
				Row:       row,
				Matched:   true,
				Library:   lib,
				MatchType: MatchExactAlbum,
				Scores:    computeScores(row, lib, cfg.AggressiveTrim),
			}
		}
	}

	if lib, ok := idx.Exact(ExactKey(row)); ok {
		return MatchResult{
			Row:       row,
			Matched:   true,
			Library:   lib,
			MatchType: MatchExact,
			Scores:    computeScores(row, lib, cfg.AggressiveTrim),
		}
	}

	return matchFuzzy(row, idx, cfg)
}

// matchFuzzy scans the deduplicated candidate pool from the blocking
// indexes and keeps the best-scoring candidate. Ties keep the first-seen
// candidate, so iteration order makes the outcome deterministic.
func matchFuzzy(row *Record, idx *Index, cfg Config) MatchResult {
	candidates := idx.ArtistBlock(row.CleanArtist)
	threshold := cfg.MinBlockSize
	if threshold < 1 {
		threshold = 1
	}
	if len(candidates) < threshold {
		candidates = append(candidates[:len(candidates):len(candidates)],
			idx.TokenBlock(firstToken(row.CleanArtist))...)
	}

	var best *Record
	var bestScores ScoreBreakdown
	bestScore := 0.0

	// Dedup by canonical pair, not identity: structurally identical library
	// rows collapse to one comparison.
	seen := make(map[string]struct{}, len(candidates))
	for _, lib := range candidates {
		dedupKey := lib.CleanTrack + "\x00" + lib.CleanArtist
		if _, ok := seen[dedupKey]; ok {
			continue
		}
		seen[dedupKey] = struct{}{}

		scores := computeScores(row, lib, cfg.AggressiveTrim)
		score := cfg.Score(scores)
		if score > bestScore {
			bestScore = score
			best = lib
			bestScores = scores
		}
	}

	if best != nil && bestScore >= cfg.MinScore {
		matchType := MatchFuzzy
		if bestScores.RatioAlbum > 0 || bestScores.NgramAlbum > 0 {
			matchType = MatchFuzzyAlbum
		}
		return MatchResult{
			Row:       row,
			Matched:   true,
			Library:   best,
			MatchType: matchType,
			Scores:    bestScores,
		}
	}

	return MatchResult{Row: row}
}
