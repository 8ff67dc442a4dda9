package fixer

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// MatchThreshold is the title similarity at or above which a search
// result counts as a confident match.
const MatchThreshold = 0.75

// Similarity returns the case-insensitive sequence-similarity ratio
// between two titles, in [0, 1]. The measure is continuous and
// symmetric: identical strings score 1.0 after lowercasing, fully
// disjoint strings score 0.0.
func Similarity(a, b string) float64 {
	sa := strings.Split(strings.ToLower(a), "")
	sb := strings.Split(strings.ToLower(b), "")
	return difflib.NewMatcher(sa, sb).Ratio()
}
