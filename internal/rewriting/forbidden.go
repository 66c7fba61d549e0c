package rewriting

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/resume-guard/internal/parsing"
)

// MetricCategory groups metric patterns whose values are comparable
type MetricCategory string

// Metric categories
const (
	CategoryPercent MetricCategory = "percentage"
	CategoryAmount  MetricCategory = "amount"
	CategoryTeam    MetricCategory = "team size"
)

// MetricPattern detects one kind of inserted metric. The first non-empty capture group is the
// numeric value; an optional second group is a magnitude suffix (k, m, million, ...).
type MetricPattern struct {
	Name     string
	Category MetricCategory
	Pattern  *regexp.Regexp
}

// MetricPatterns is the fixed set of metric-insertion detectors
var MetricPatterns = []MetricPattern{
	{
		Name:     "percentage",
		Category: CategoryPercent,
		Pattern:  regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s?(?:%|percent\b|pct\b)`),
	},
	{
		Name:     "currency",
		Category: CategoryAmount,
		Pattern:  regexp.MustCompile(`(?i)[$€£]\s?(\d+(?:[.,]\d+)*)\s?(k|mm|m|bn|b|thousand|million|billion)?\b`),
	},
	{
		Name:     "unit-amount",
		Category: CategoryAmount,
		Pattern:  regexp.MustCompile(`(?i)\b(\d+(?:[.,]\d+)*)\s?(k|m|b|x|thousand|million|billion)\b|\b(\d+(?:,\d{3})*)\+?\s+(?:users|customers|clients|requests|transactions|downloads|accounts|orders|visitors)\b`),
	},
	{
		Name:     "team-size",
		Category: CategoryTeam,
		Pattern:  regexp.MustCompile(`(?i)\b(?:team|group|staff|squad|org|organization)\s+of\s+(\d+)\b|\b(\d+)[- ](?:person|people|member|engineer|developer|report)s?\b|\b(?:led|managed|mentored|supervised|hired|grew)\s+(?:a\s+team\s+of\s+)?(\d+)\b`),
	},
}

var magnitudes = map[string]float64{
	"k": 1e3, "thousand": 1e3,
	"m": 1e6, "mm": 1e6, "million": 1e6,
	"b": 1e9, "bn": 1e9, "billion": 1e9,
}

// metricValues returns every value the pattern captures in text
func metricValues(p MetricPattern, text string) []float64 {
	var values []float64
	for _, m := range p.Pattern.FindAllStringSubmatch(text, -1) {
		raw, unit := "", ""
		for _, g := range m[1:] {
			if g == "" {
				continue
			}
			if raw == "" {
				raw = g
			} else if unit == "" {
				unit = strings.ToLower(g)
			}
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
		if err != nil {
			continue
		}
		if mult, ok := magnitudes[unit]; ok {
			v *= mult
		}
		values = append(values, v)
	}
	return values
}

// AddsForbiddenContent reports whether the tailored bullet adds content the original does not
// support, using the default fuzzy-match threshold
func AddsForbiddenContent(original, tailored string) (bool, string) {
	return NewScanner(DefaultHonestyThreshold, parsing.DefaultFuzzyThreshold).AddsForbiddenContent(original, tailored)
}

// AddsForbiddenContent reports whether tailored adds content that original does not support:
// a metric pattern matching more often than in the original, a metric value larger than any
// value of the same category in the original, or a tool-like token that is neither present in
// the original nor a safe expansion of it. The reason names the first violation found.
func (s *Scanner) AddsForbiddenContent(original, tailored string) (bool, string) {
	for _, p := range MetricPatterns {
		origCount := len(p.Pattern.FindAllStringIndex(original, -1))
		newCount := len(p.Pattern.FindAllStringIndex(tailored, -1))
		if newCount > origCount {
			return true, fmt.Sprintf("adds %s metric not in original", p.Name)
		}
	}

	if reason, ok := largerMetricValue(original, tailored); ok {
		return true, reason
	}

	originalTerms := termsOf(original)
	for _, token := range parsing.ToolLikeTokens(tailored) {
		if s.matcher().MatchAny(token, originalTerms) {
			continue
		}
		if s.matcher().IsSafeExpansion(originalTerms, token) {
			continue
		}
		return true, fmt.Sprintf("introduces %q not found in original", token)
	}

	return false, ""
}

// largerMetricValue finds a tailored value strictly larger than every original value of its
// category
func largerMetricValue(original, tailored string) (string, bool) {
	maxOriginal := make(map[MetricCategory]float64)
	seen := make(map[MetricCategory]bool)
	for _, p := range MetricPatterns {
		for _, v := range metricValues(p, original) {
			if !seen[p.Category] || v > maxOriginal[p.Category] {
				maxOriginal[p.Category] = v
				seen[p.Category] = true
			}
		}
	}

	for _, p := range MetricPatterns {
		if !seen[p.Category] {
			continue
		}
		for _, v := range metricValues(p, tailored) {
			if v > maxOriginal[p.Category] {
				return fmt.Sprintf("new metric value: %s %s exceeds original %s",
					p.Category, formatValue(v), formatValue(maxOriginal[p.Category])), true
			}
		}
	}
	return "", false
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// termsOf returns the normalized terms of a bullet, including short tool names such as "Go"
func termsOf(text string) []string {
	terms := parsing.ExtractKeyTerms(text)
	seen := make(map[string]bool, len(terms))
	for _, t := range terms {
		seen[t] = true
	}
	for _, token := range parsing.ToolLikeTokens(text) {
		if n := parsing.NormalizeKeyword(token); n != "" && !seen[n] {
			seen[n] = true
			terms = append(terms, n)
		}
	}
	for _, field := range strings.Fields(text) {
		if n := parsing.NormalizeKeyword(field); n != "" && !seen[n] && !parsing.IsStopWord(n) {
			seen[n] = true
			terms = append(terms, n)
		}
	}
	return terms
}
