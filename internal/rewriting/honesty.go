// Package rewriting scores tailored resume bullets against the original resume and flags
// rewrites that are weakly backed or that add content the original does not support.
package rewriting

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-guard/internal/parsing"
	"github.com/jonathan/resume-guard/internal/types"
)

// DefaultHonestyThreshold is the minimum similarity a tailored bullet needs against its best
// original bullet to count as supported
const DefaultHonestyThreshold = 0.20

const reasonNoOriginalRole = "no matching role in original resume"

// Scanner classifies tailored bullets against the original experience
type Scanner struct {
	Threshold float64
	Matcher   parsing.Matcher
}

// NewScanner returns a Scanner. Non-positive thresholds select the defaults.
func NewScanner(threshold, fuzzyThreshold float64) *Scanner {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultHonestyThreshold
	}
	return &Scanner{
		Threshold: threshold,
		Matcher:   parsing.NewMatcher(fuzzyThreshold),
	}
}

// Scan classifies tailored bullets with the default thresholds
func Scan(original, tailored []types.Role) types.HonestyReport {
	return NewScanner(DefaultHonestyThreshold, parsing.DefaultFuzzyThreshold).Scan(original, tailored)
}

// Scan classifies every tailored bullet. A bullet is supported iff its best similarity against
// the bullets of the original role with the same key reaches the threshold and it adds no
// forbidden content.
func (s *Scanner) Scan(original, tailored []types.Role) types.HonestyReport {
	report := types.HonestyReport{
		Flags:   []types.HonestyResult{},
		Results: []types.HonestyResult{},
	}
	index := types.RoleIndex(original)

	for _, role := range tailored {
		orig, found := index[role.Key()]
		for _, bullet := range role.Bullets {
			result := s.classify(role.Label(), bullet, orig, found)
			report.Results = append(report.Results, result)
			if result.Status == types.StatusFlagged {
				report.Flags = append(report.Flags, result)
			}
		}
	}

	return report
}

func (s *Scanner) classify(label, bullet string, orig types.Role, found bool) types.HonestyResult {
	result := types.HonestyResult{
		Role:    label,
		Bullet:  bullet,
		Backing: []string{},
		Overlap: []string{},
		Status:  types.StatusFlagged,
	}
	if !found {
		result.Reason = reasonNoOriginalRole
		return result
	}

	best, bestScore := s.BestBacking(orig.Bullets, bullet)
	if bestScore < 0 {
		result.Reason = "original role has no bullets"
		return result
	}

	result.Score = bestScore
	result.Backing = []string{best}
	result.Overlap = s.Overlap(best, bullet)

	if forbidden, reason := s.AddsForbiddenContent(best, bullet); forbidden {
		result.Reason = reason
		return result
	}
	if bestScore < s.threshold() {
		result.Reason = fmt.Sprintf("low similarity score %.2f below %.2f", bestScore, s.threshold())
		return result
	}

	result.Status = types.StatusSupported
	return result
}

// BestBacking picks the original bullet that backs a tailored bullet. An exact
// case-insensitive match wins outright. Otherwise the highest similarity wins, and among equal
// scores a candidate that adds no forbidden content is preferred over an earlier one that does.
// The score is -1 when there are no candidates.
func (s *Scanner) BestBacking(candidates []string, bullet string) (string, float64) {
	trimmed := strings.TrimSpace(bullet)
	for _, c := range candidates {
		if trimmed != "" && strings.EqualFold(strings.TrimSpace(c), trimmed) {
			return c, 1
		}
	}

	best, bestScore, bestForbidden := "", -1.0, false
	for _, c := range candidates {
		score := s.Similarity(c, bullet)
		switch {
		case score > bestScore:
			forbidden, _ := s.AddsForbiddenContent(c, bullet)
			best, bestScore, bestForbidden = c, score, forbidden
		case score == bestScore && bestForbidden:
			if forbidden, _ := s.AddsForbiddenContent(c, bullet); !forbidden {
				best, bestForbidden = c, false
			}
		}
	}
	return best, bestScore
}

// Similarity is the normalized key-term Jaccard similarity of two bullets. When no term
// matches exactly, fuzzy-matched pairs over the union size are used instead.
func Similarity(a, b string) float64 {
	return NewScanner(DefaultHonestyThreshold, parsing.DefaultFuzzyThreshold).Similarity(a, b)
}

// Similarity is the package-level Similarity under the scanner's fuzzy threshold
func (s *Scanner) Similarity(a, b string) float64 {
	if strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b)) && strings.TrimSpace(a) != "" {
		return 1
	}

	ta, tb := parsing.ExtractKeyTerms(a), parsing.ExtractKeyTerms(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	inA := make(map[string]bool, len(ta))
	for _, t := range ta {
		inA[t] = true
	}
	shared := 0
	for _, t := range tb {
		if inA[t] {
			shared++
		}
	}
	union := len(ta) + len(tb) - shared
	if shared > 0 {
		return float64(shared) / float64(union)
	}

	pairs := 0
	for _, x := range ta {
		for _, y := range tb {
			if s.matcher().MatchNormalized(x, y) {
				pairs++
			}
		}
	}
	score := float64(pairs) / float64(union)
	if score > 1 {
		score = 1
	}
	return score
}

// Overlap returns the terms of b that match a term of a, in b's order
func (s *Scanner) Overlap(a, b string) []string {
	ta := parsing.ExtractKeyTerms(a)
	overlap := []string{}
	for _, t := range parsing.ExtractKeyTerms(b) {
		for _, o := range ta {
			if s.matcher().MatchNormalized(t, o) {
				overlap = append(overlap, t)
				break
			}
		}
	}
	return overlap
}

func (s *Scanner) threshold() float64 {
	if s.Threshold <= 0 {
		return DefaultHonestyThreshold
	}
	return s.Threshold
}

func (s *Scanner) matcher() parsing.Matcher {
	return s.Matcher
}
