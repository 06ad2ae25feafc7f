package match

import "sort"

// Levenshtein computes the edit distance between two strings.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	if len(a) > len(b) {
		a, b = b, a
	}

	if len(a) == 0 {
		return len(b)
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(a)]
}

// Suggest returns up to limit names from have that are close to want after
// normalization, closest first. Ties keep the order of have.
func Suggest(want string, have []string, limit int) []string {
	type scored struct {
		name string
		dist int
	}

	norm := NormalizeIdent(want)
	budget := max(1, len(norm)/3)

	var hits []scored

	for _, name := range have {
		d := Levenshtein(norm, NormalizeIdent(name))
		if d <= budget {
			hits = append(hits, scored{name: name, dist: d})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].dist < hits[j].dist
	})

	out := make([]string, 0, min(limit, len(hits)))
	for i := 0; i < len(hits) && i < limit; i++ {
		out = append(out, hits[i].name)
	}

	return out
}
