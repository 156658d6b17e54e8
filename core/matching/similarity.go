package matching

import (
	"sort"
	"strings"

	"github.com/adrg/strutil/metrics"
)

// indel is the Levenshtein metric configured for insert/delete-style ratios:
// a substitution costs as much as one deletion plus one insertion.
var indel = func() *metrics.Levenshtein {
	m := metrics.NewLevenshtein()
	m.CaseSensitive = false
	m.InsertCost = 1
	m.DeleteCost = 1
	m.ReplaceCost = 2
	return m
}()

// charRatio returns the character-level similarity of two strings in [0,1]:
// the edit distance normalized by the combined length. Identical strings
// score 1; either side empty scores 0.
func charRatio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	total := len([]rune(a)) + len([]rune(b))
	return 1 - float64(indel.Distance(a, b))/float64(total)
}

// tokenSetRatio returns a similarity in [0,1] that is invariant to word
// order and lenient towards repeated or extra tokens. It compares the sorted
// token intersection against each side's remainder and keeps the best of the
// pairwise character ratios.
func tokenSetRatio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	tokensA := uniqueSorted(strings.Fields(a))
	tokensB := uniqueSorted(strings.Fields(b))

	inB := make(map[string]struct{}, len(tokensB))
	for _, t := range tokensB {
		inB[t] = struct{}{}
	}
	inA := make(map[string]struct{}, len(tokensA))
	for _, t := range tokensA {
		inA[t] = struct{}{}
	}

	var common, onlyA, onlyB []string
	for _, t := range tokensA {
		if _, ok := inB[t]; ok {
			common = append(common, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for _, t := range tokensB {
		if _, ok := inA[t]; !ok {
			onlyB = append(onlyB, t)
		}
	}

	base := strings.Join(common, " ")
	full := func(rest []string) string {
		if len(rest) == 0 {
			return base
		}
		if base == "" {
			return strings.Join(rest, " ")
		}
		return base + " " + strings.Join(rest, " ")
	}
	sideA := full(onlyA)
	sideB := full(onlyB)

	if sideA == sideB {
		return 1
	}
	best := charRatio(sideA, sideB)
	if r := charRatio(base, sideA); r > best {
		best = r
	}
	if r := charRatio(base, sideB); r > best {
		best = r
	}
	return best
}

func uniqueSorted(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := tokens[:0]
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// FieldSimilarity blends the character-level ratio and the token-set ratio
// of two cleaned strings into one symmetric similarity in [0,1]. Either side
// empty yields 0: two absent values never count as a match.
func FieldSimilarity(cleanA, cleanB string) float64 {
	if cleanA == "" || cleanB == "" {
		return 0
	}
	return (charRatio(cleanA, cleanB) + tokenSetRatio(cleanA, cleanB)) / 2.0
}

// NgramOverlap returns the Jaccard-style overlap of the two token sets,
// |intersection| / max(|A|,|B|). The raw fields are re-normalized here so
// the overlap carries its own aggressive-trim sensitivity. Returns 0 when
// either token set is empty.
func NgramOverlap(rawA, rawB string, aggressive bool) float64 {
	setA := TokenSet(rawA, aggressive)
	setB := TokenSet(rawB, aggressive)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	shared := 0
	for t := range setA {
		if _, ok := setB[t]; ok {
			shared++
		}
	}
	maxLen := len(setA)
	if len(setB) > maxLen {
		maxLen = len(setB)
	}
	return float64(shared) / float64(maxLen)
}
