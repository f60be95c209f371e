// ABOUTME: Text normalization and edit-distance scoring for fuzzy matching
// ABOUTME: Uses NFKC and Unicode case folding so "HELLO" and "hello" score equal
package match

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Normalize folds case, applies NFKC and collapses whitespace
func Normalize(s string) string {
	s = norm.NFKC.String(s)
	// Casers are stateful, so one per call
	s = cases.Fold().String(s)
	return strings.Join(strings.Fields(s), " ")
}

// Ratio returns the similarity of a and b in [0, 1] from their
// normalized Levenshtein distance. Two empty strings are identical.
func Ratio(a, b string) float64 {
	ra, rb := []rune(Normalize(a)), []rune(Normalize(b))
	longest := max(len(ra), len(rb))
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshteinDistance(ra, rb))/float64(longest)
}

// levenshteinDistance counts single-rune insertions, deletions and substitutions
func levenshteinDistance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Keep b as the shorter slice so the rows stay small
	if len(a) < len(b) {
		a, b = b, a
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
