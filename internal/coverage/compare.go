package coverage

import (
	"github.com/jonathan/resume-guard/internal/parsing"
	"github.com/jonathan/resume-guard/internal/types"
)

// Compare diffs the coverage of an original and a tailored resume.
// Set differences are taken over normalized keyword forms.
func Compare(original, tailored types.CoverageStats) types.ComparisonStats {
	return types.ComparisonStats{
		CoverageDelta:    tailored.Coverage - original.Coverage,
		MustDelta:        tailored.MustCoverage - original.MustCoverage,
		NiceDelta:        tailored.NiceCoverage - original.NiceCoverage,
		IndustryDelta:    industryCoverage(tailored) - industryCoverage(original),
		MatchedGain:      difference(tailored.Matched, original.Matched),
		Regressions:      difference(original.Matched, tailored.Matched),
		ResolvedMissing:  difference(original.Missing, tailored.Missing),
		RemainingMissing: append([]string{}, tailored.Missing...),
	}
}

func industryCoverage(stats types.CoverageStats) float64 {
	if stats.Industry == nil {
		return 0
	}
	return stats.Industry.Coverage
}

// difference returns the entries of a whose normalized form is absent from b, in a's order
func difference(a, b []string) []string {
	exclude := make(map[string]bool, len(b))
	for _, kw := range b {
		exclude[parsing.NormalizeKeyword(kw)] = true
	}

	out := []string{}
	seen := make(map[string]bool, len(a))
	for _, kw := range a {
		n := parsing.NormalizeKeyword(kw)
		if exclude[n] || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, kw)
	}
	return out
}
