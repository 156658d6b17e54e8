package matching

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// Edition tails after a dash or colon: " - remaster 2011", ": live",
	// "- radio edit" and similar. Applied only in aggressive mode.
	editionTailPattern = regexp.MustCompile(`(?i)\s*[-:–—]\s*(single|remaster(ed)?( \d{2,4})?|remix|mix|live|radio edit|explicit|clean|version|deluxe).*$`)

	// Anything enclosed in parentheses or square brackets, non-greedy.
	bracketPattern = regexp.MustCompile(`\s*[(\[].*?[)\]]`)

	// Feature tails like "feat. Dua Lipa" through end of string.
	featPattern = regexp.MustCompile(`(?i)feat\.? .*`)

	// Everything that is not an ASCII letter, digit or space.
	punctPattern = regexp.MustCompile(`[^a-zA-Z0-9 ]`)
)

// decompose strips diacritical marks after canonical decomposition.
var decompose = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// asciiFold decomposes the input, drops combining marks and removes every
// rune that has no ASCII representation.
func asciiFold(s string) string {
	folded, _, err := transform.String(decompose, s)
	if err != nil {
		folded = s
	}
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Normalize converts a raw text field into its canonical comparable form:
// diacritics stripped, bracketed annotations and feature tails removed,
// "&" spelled out, punctuation dropped, trimmed and lowercased. When
// aggressive is true a trailing edition annotation (remaster/live/etc after
// a dash or colon) is trimmed first.
//
// The function is pure and total: any input, including empty or pure
// punctuation, yields a deterministic result, possibly the empty string.
func Normalize(raw string, aggressive bool) string {
	s := raw
	// Tail trim runs on the raw string: en/em-dash separators would not
	// survive the ASCII fold.
	if aggressive {
		s = editionTailPattern.ReplaceAllString(s, "")
	}
	s = asciiFold(s)
	s = bracketPattern.ReplaceAllString(s, "")
	s = featPattern.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "&", "and")
	s = punctPattern.ReplaceAllString(s, "")
	return strings.ToLower(strings.TrimSpace(s))
}

// TokenSet returns the set of whitespace-delimited tokens of the normalized
// form of raw. Empty input yields an empty set.
func TokenSet(raw string, aggressive bool) map[string]struct{} {
	fields := strings.Fields(Normalize(raw, aggressive))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
