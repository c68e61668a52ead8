package match

import (
	"testing"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		minScore float64
		maxScore float64
	}{
		// Identical after normalization
		{"Heritage Resource", "HERITAGE_RESOURCE", 1.0, 1.0},
		{"Actor", "actor", 1.0, 1.0},

		// Close variants
		{"Heritage Resource", "Heritage Resources", 0.9, 1.0},
		{"Historic Event", "Historical Event", 0.8, 1.0},

		// Unrelated names
		{"Actor", "Heritage Resource", 0.0, 0.4},

		// Empty input
		{"", "Actor", 0.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			score := Similarity(tt.a, tt.b)
			if score < tt.minScore || score > tt.maxScore {
				t.Errorf("Similarity(%q, %q) = %f, want within [%f, %f]",
					tt.a, tt.b, score, tt.minScore, tt.maxScore)
			}
		})
	}
}

func TestBest(t *testing.T) {
	candidates := []string{"Actor", "Heritage Resource", "Historic Event"}

	best, ok := Best("ACTOR", candidates)
	if !ok {
		t.Fatal("expected a match for ACTOR")
	}

	if best.Value != "Actor" {
		t.Errorf("expected Actor, got %q", best.Value)
	}

	if best.Score != 1.0 {
		t.Errorf("expected score 1.0, got %f", best.Score)
	}
}

func TestBestBelowThreshold(t *testing.T) {
	candidates := []string{"Heritage Resource", "Historic Event"}

	if _, ok := Best("Cadastral Zone", candidates); ok {
		t.Error("expected no match below the minimum score")
	}
}

func TestBestEmptyCandidates(t *testing.T) {
	if _, ok := Best("Actor", nil); ok {
		t.Error("expected no match with no candidates")
	}
}

func TestRankDeterministicTieBreak(t *testing.T) {
	// Both candidates are equally distant from the query; ordering must
	// be alphabetical so repeated runs agree.
	ranked := Rank("ab", []string{"ax", "ay"})

	if len(ranked) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(ranked))
	}

	if ranked[0].Value != "ax" || ranked[1].Value != "ay" {
		t.Errorf("expected alphabetical tie-break, got %q then %q",
			ranked[0].Value, ranked[1].Value)
	}
}
