package parsing

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// DefaultFuzzyThreshold is the minimum Levenshtein similarity for two keywords to match.
// Tuned empirically; override through Matcher rather than editing the constant.
const DefaultFuzzyThreshold = 0.80

// minContainmentLen is the shortest normalized form allowed to match by substring containment
const minContainmentLen = 3

// KeywordsMatch reports whether a and b refer to the same keyword: equal normalized forms,
// one containing the other, or Levenshtein similarity at or above threshold. Symmetric.
func KeywordsMatch(a, b string, threshold float64) bool {
	na := NormalizeKeyword(a)
	nb := NormalizeKeyword(b)
	return normalizedMatch(na, nb, threshold)
}

// normalizedMatch is KeywordsMatch for inputs that are already normalized
func normalizedMatch(na, nb string, threshold float64) bool {
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}

	shorter, longer := na, nb
	if utf8.RuneCountInString(shorter) > utf8.RuneCountInString(longer) {
		shorter, longer = longer, shorter
	}
	if utf8.RuneCountInString(shorter) >= minContainmentLen && strings.Contains(longer, shorter) {
		return true
	}

	return SimilarityRatio(na, nb) >= threshold
}

// SimilarityRatio returns 1 - editDistance/maxLen over runes, in [0,1]
func SimilarityRatio(a, b string) float64 {
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1
	}
	distance := levenshtein.ComputeDistance(a, b)
	return 1 - float64(distance)/float64(maxLen)
}

// Matcher performs fuzzy keyword matching with a configurable threshold
type Matcher struct {
	Threshold float64
}

// NewMatcher returns a Matcher; a non-positive threshold selects DefaultFuzzyThreshold
func NewMatcher(threshold float64) Matcher {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultFuzzyThreshold
	}
	return Matcher{Threshold: threshold}
}

// Match reports whether a and b match under the matcher's threshold
func (m Matcher) Match(a, b string) bool {
	return KeywordsMatch(a, b, m.threshold())
}

// MatchNormalized is Match for inputs already passed through NormalizeKeyword
func (m Matcher) MatchNormalized(na, nb string) bool {
	return normalizedMatch(na, nb, m.threshold())
}

// MatchAny reports whether term matches any of the normalized candidates
func (m Matcher) MatchAny(term string, candidates []string) bool {
	n := NormalizeKeyword(term)
	for _, c := range candidates {
		if normalizedMatch(n, c, m.threshold()) {
			return true
		}
	}
	return false
}

func (m Matcher) threshold() float64 {
	if m.Threshold <= 0 {
		return DefaultFuzzyThreshold
	}
	return m.Threshold
}
