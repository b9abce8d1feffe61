package identity

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// MinSimilarity is the floor below which a candidate is not considered a
// match. Mirrors the league's historical cutoff of 60/100.
const MinSimilarity = 0.6

// Match pairs a canonical name with its similarity to the query, in [0, 1].
type Match struct {
	Name  string
	Score float64
}

// Resolve fuzzy-matches one free-text query against canonical names and
// returns the candidates at or above MinSimilarity, best first. An exact
// match (after normalization) is the only way to score 1.0. An empty result
// means no match; callers treat that as a soft failure.
func Resolve(query string, candidates []string) []Match {
	nq := normalize(query)
	if nq == "" {
		return nil
	}

	matches := make([]Match, 0, 4)
	for _, candidate := range candidates {
		score := similarity(nq, normalize(candidate))
		if score >= MinSimilarity {
			matches = append(matches, Match{Name: candidate, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Name < matches[j].Name
	})
	return matches
}

// Best returns the single best match for a query, if any.
func Best(query string, candidates []string) (Match, bool) {
	matches := Resolve(query, candidates)
	if len(matches) == 0 {
		return Match{}, false
	}
	return matches[0], true
}

// generational and credential suffixes that provider rosters append
// inconsistently.
var nameSuffixes = map[string]struct{}{
	"jr": {}, "sr": {}, "ii": {}, "iii": {}, "iv": {}, "v": {},
}

func normalize(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == ' ', r == '-':
			sb.WriteByte(' ')
		}
		// Periods, apostrophes, and the rest drop out entirely.
	}

	tokens := strings.Fields(sb.String())
	kept := tokens[:0]
	for _, tok := range tokens {
		if _, isSuffix := nameSuffixes[tok]; isSuffix && len(kept) > 0 {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

// similarity blends a whole-string edit distance with a token-level partial
// score, so "Mahomes" still lands on "Patrick Mahomes". The token path is
// capped below 1.0: only a full normalized match is certain.
func similarity(query, candidate string) float64 {
	if query == "" || candidate == "" {
		return 0
	}
	if query == candidate {
		return 1
	}

	full := levenshteinSimilarity(query, candidate)

	// Substring containment approximates a partial match: "buf" against
	// "buffalo". Too-short needles would match almost anything.
	if len(query) >= 3 && len(candidate) >= 3 &&
		(strings.Contains(candidate, query) || strings.Contains(query, candidate)) && full < 0.9 {
		full = 0.9
	}

	queryTokens := strings.Fields(query)
	candidateTokens := strings.Fields(candidate)
	var tokenTotal float64
	for _, qt := range queryTokens {
		best := 0.0
		for _, ct := range candidateTokens {
			if s := levenshteinSimilarity(qt, ct); s > best {
				best = s
			}
		}
		tokenTotal += best
	}
	token := tokenTotal / float64(len(queryTokens)) * 0.95

	if token > full {
		return token
	}
	return full
}

func levenshteinSimilarity(a, b string) float64 {
	longer := len(a)
	if len(b) > longer {
		longer = len(b)
	}
	if longer == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longer)
}
