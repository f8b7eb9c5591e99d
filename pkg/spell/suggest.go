// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package spell

// Suggest returns the candidate closest to word, or "" when none is close
// enough to be a likely misspelling. Ties go to the earliest candidate.
func Suggest(word string, candidates []string) string {
	best := ""
	bestDist := maxDistance(word) + 1

	for _, candidate := range candidates {
		dist := distance(word, candidate)
		if dist < bestDist {
			best, bestDist = candidate, dist
		}
	}
	return best
}

func maxDistance(word string) int {
	if n := len([]rune(word)) / 3; n > 2 {
		return n
	}
	return 2
}

// distance is the Levenshtein distance between a and b.
func distance(a, b string) int {
	ar, br := []rune(a), []rune(b)

	prev := make([]int, len(br)+1)
	curr := make([]int, len(br)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ar); i++ {
		curr[0] = i
		for j := 1; j <= len(br); j++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(br)]
}
