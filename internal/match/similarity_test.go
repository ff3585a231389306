package match

import "testing"

func TestSimilarityBounds(t *testing.T) {
	cases := []struct {
		a, b string
		want float64
	}{
		{"", "", 0},
		{"   ", "\t", 0},
		{"office rent", "office rent", 1},
		{"Office Rent", "office rent", 1}, // case-insensitive
		{"office rent jan", "office rent", 2.0 / 3.0},
		{"alpha beta", "gamma delta", 0},
		{"rent rent rent", "rent", 1}, // frequency is ignored
	}
	for i, tc := range cases {
		if got := Similarity(tc.a, tc.b); got != tc.want {
			t.Errorf("case %d: Similarity(%q, %q) = %v, want %v", i, tc.a, tc.b, got, tc.want)
		}
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	a, b := "bank fee international", "fee international wire"
	if Similarity(a, b) != Similarity(b, a) {
		t.Fatal("similarity must be symmetric")
	}
}

func TestSimilarityEmptyAgainstNonEmpty(t *testing.T) {
	if got := Similarity("", "office rent"); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}
