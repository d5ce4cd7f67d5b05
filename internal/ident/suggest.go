package ident

// Levenshtein computes the edit distance between two identifiers: the minimum
// number of single-byte insertions, deletions or substitutions.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	if len(a) == 0 {
		return len(b)
	}

	if len(b) == 0 {
		return len(a)
	}

	// Keep a as the shorter string so the rows stay small
	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			curr[i] = min(
				prev[i]+1,      // deletion
				curr[i-1]+1,    // insertion
				prev[i-1]+cost, // substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[len(a)]
}

// Suggest returns the candidate closest to name, if it is close enough to be
// a plausible typo: at most one edit per three characters, and at least one.
// Exact matches are not suggestions. Ties go to the earlier candidate.
func Suggest(name string, candidates []string) (string, bool) {
	limit := max(1, len(name)/3)

	best, bestDist := "", limit+1

	for _, c := range candidates {
		d := Levenshtein(name, c)
		if d == 0 {
			continue
		}

		if d < bestDist {
			best, bestDist = c, d
		}
	}

	return best, best != ""
}
