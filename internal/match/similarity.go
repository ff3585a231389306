// Package match scores description similarity and finds probable duplicate
// entries for credit card imports.
package match

import "strings"

// Similarity returns the Jaccard index of the two descriptions' token sets,
// a symmetric score in [0,1]. Tokens are lower-cased and split on
// whitespace; only token identity matters, not position or frequency.
// Two empty token sets score 0.
func Similarity(a, b string) float64 {
	first := tokenSet(a)
	second := tokenSet(b)

	union := len(second)
	intersection := 0
	for token := range first {
		if _, ok := second[token]; ok {
			intersection++
		} else {
			union++
		}
	}

	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(s))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
