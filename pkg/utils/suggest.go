package utils

import "sort"

// Levenshtein returns the edit distance between a and b.
func Levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

// Suggest returns up to max candidates within edit distance 3 of name,
// closest first and alphabetical on ties. Exact matches are skipped.
func Suggest(name string, candidates []string, max int) []string {
	type scored struct {
		name string
		dist int
	}

	var hits []scored
	for _, c := range candidates {
		if d := Levenshtein(name, c); d > 0 && d <= 3 {
			hits = append(hits, scored{c, d})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].dist == hits[j].dist {
			return hits[i].name < hits[j].name
		}
		return hits[i].dist < hits[j].dist
	})

	out := make([]string, 0, max)
	for i := 0; i < len(hits) && i < max; i++ {
		out = append(out, hits[i].name)
	}
	return out
}
