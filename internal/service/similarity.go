package service

// similarityRatio returns the Ratcliff/Obershelp ratio 2*M/T over runes, where M is the
// number of characters in recursively matched longest common substrings.
func similarityRatio(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 1
	}
	return 2 * float64(matchedRunes(a, b)) / float64(total)
}

// symmetricSimilarity evaluates the ratio in both argument orders and keeps the best.
func symmetricSimilarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	forward := similarityRatio(ra, rb)
	if backward := similarityRatio(rb, ra); backward > forward {
		return backward
	}
	return forward
}

func matchedRunes(a, b []rune) int {
	i, j, size := longestCommonSubstring(a, b)
	if size == 0 {
		return 0
	}
	return size + matchedRunes(a[:i], b[:j]) + matchedRunes(a[i+size:], b[j+size:])
}

// longestCommonSubstring returns the earliest longest block shared by a and b.
func longestCommonSubstring(a, b []rune) (int, int, int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	bestI, bestJ, best := 0, 0, 0
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
				if curr[j] > best {
					best = curr[j]
					bestI, bestJ = i-best, j-best
				}
			} else {
				curr[j] = 0
			}
		}
		prev, curr = curr, prev
	}
	return bestI, bestJ, best
}
