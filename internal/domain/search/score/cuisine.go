// Package score computes cuisine relevance between a query and a record.
package score

import "github.com/kailas-cloud/tablefinder/internal/domain/restaurant"

// MatchCount returns |requested ∩ stored| with set semantics: every requested
// cuisine counts at most once, however often it is repeated.
func MatchCount(requested []string, stored restaurant.CuisineSet) int {
	if len(requested) == 0 || stored.Len() == 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(requested))
	n := 0
	for _, c := range requested {
		key := restaurant.FoldCuisine(c)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if stored.Has(key) {
			n++
		}
	}
	return n
}

// MatchCountString scores against a raw delimited cuisine string.
func MatchCountString(requested []string, raw string) int {
	return MatchCount(requested, restaurant.ParseCuisines(raw))
}
