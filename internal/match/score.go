package match

import (
	"sort"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// DefaultMinScore is the minimum similarity for accepting a fuzzy match.
const DefaultMinScore = 0.6

// Candidate is one ranked fuzzy-match result.
type Candidate struct {
	// Value is the matched candidate string, verbatim.
	Value string
	// Score is the normalized similarity in [0, 1]; 1 means identical
	// after normalization.
	Score float64
}

// Similarity computes a normalized edit-distance similarity between two
// names after separator/case normalization. 1.0 means identical.
func Similarity(a, b string) float64 {
	na := NormalizeForCompare(a)
	nb := NormalizeForCompare(b)

	if na == nb {
		return 1.0
	}

	if len(na) == 0 || len(nb) == 0 {
		return 0.0
	}

	distance := levenshtein.DistanceForStrings([]rune(na), []rune(nb), levenshtein.DefaultOptions)

	maxLen := len([]rune(na))
	if l := len([]rune(nb)); l > maxLen {
		maxLen = l
	}

	return 1.0 - float64(distance)/float64(maxLen)
}

// Rank scores every candidate against the query and returns them sorted
// by score descending, ties broken alphabetically for determinism.
func Rank(query string, candidates []string) []Candidate {
	ranked := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		ranked = append(ranked, Candidate{Value: c, Score: Similarity(query, c)})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}

		return ranked[i].Value < ranked[j].Value
	})

	return ranked
}

// Best returns the highest-scoring candidate at or above DefaultMinScore.
func Best(query string, candidates []string) (Candidate, bool) {
	return BestAbove(query, candidates, DefaultMinScore)
}

// BestAbove returns the highest-scoring candidate at or above the given
// minimum score, or false if none qualifies.
func BestAbove(query string, candidates []string, minScore float64) (Candidate, bool) {
	ranked := Rank(query, candidates)
	if len(ranked) == 0 || ranked[0].Score < minScore {
		return Candidate{}, false
	}

	return ranked[0], true
}
