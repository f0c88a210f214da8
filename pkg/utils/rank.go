package utils

import (
	"cmp"
	"slices"
)

// RankBy returns a new slice ordered by descending score. Items with equal
// scores keep their original (discovery) order. The input is never modified.
func RankBy[T any, S cmp.Ordered](items []T, score func(T) S) []T {
	type scored struct {
		item  T
		score S
	}

	ranked := make([]scored, len(items))
	for i, item := range items {
		ranked[i] = scored{item: item, score: score(item)}
	}

	slices.SortStableFunc(ranked, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})

	out := make([]T, len(ranked))
	for i, r := range ranked {
		out[i] = r.item
	}
	return out
}
