// ABOUTME: Closest matcher picks the known statement with the highest edit-distance ratio
// ABOUTME: Default matcher; needs no network and no state
package match

import (
	"context"
)

// ClosestMatcher selects the candidate most similar to the input
type ClosestMatcher struct {
	threshold float64
}

// NewClosestMatcher creates a matcher that rejects candidates scoring below threshold.
// A threshold of 0 always matches when there is at least one candidate.
func NewClosestMatcher(threshold float64) *ClosestMatcher {
	return &ClosestMatcher{threshold: threshold}
}

// Match returns the best scoring candidate. Ties keep the earliest candidate.
func (m *ClosestMatcher) Match(ctx context.Context, input string, candidates []string) (string, bool, error) {
	best, score := "", -1.0
	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return "", false, err
		}
		if r := Ratio(input, candidate); r > score {
			best, score = candidate, r
		}
	}

	if score < 0 || score < m.threshold {
		return "", false, nil
	}
	return best, true, nil
}
