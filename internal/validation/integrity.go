// Package validation checks tailored resumes against the original before they are shown to
// the user, and screens untrusted job text before it reaches a prompt.
package validation

import (
	"fmt"

	"github.com/jonathan/resume-guard/internal/parsing"
	"github.com/jonathan/resume-guard/internal/rewriting"
	"github.com/jonathan/resume-guard/internal/types"
)

// Validator compares tailored experience with the original experience
type Validator struct {
	Scanner *rewriting.Scanner
}

// NewValidator returns a Validator using the given fuzzy-match threshold
func NewValidator(fuzzyThreshold float64) *Validator {
	return &Validator{Scanner: rewriting.NewScanner(rewriting.DefaultHonestyThreshold, fuzzyThreshold)}
}

// CheckIntegrity validates tailored roles with the default thresholds
func CheckIntegrity(original, tailored []types.Role, jdKeywords []string) types.IntegrityReport {
	return NewValidator(parsing.DefaultFuzzyThreshold).CheckIntegrity(original, tailored, jdKeywords)
}

// CheckIntegrity reports every tailored role that does not exist in the original, every bullet
// that adds forbidden content relative to its best original bullet, and every tool-like token
// that is neither allowed nor a safe expansion of the role's original terms.
// Allowed terms are the job keywords plus every term of the original companies, titles and
// bullets.
func (v *Validator) CheckIntegrity(original, tailored []types.Role, jdKeywords []string) types.IntegrityReport {
	report := types.IntegrityReport{Issues: []string{}}
	allowed := allowedTerms(original, jdKeywords)
	index := types.RoleIndex(original)
	matcher := v.Scanner.Matcher

	for _, role := range tailored {
		orig, found := index[role.Key()]
		if !found {
			report.Issues = append(report.Issues,
				fmt.Sprintf("role %q at %q does not exist in the original resume", role.Role, role.Company))
			continue
		}
		roleTerms := roleTerms(orig)

		for _, bullet := range role.Bullets {
			best := v.bestBullet(orig.Bullets, bullet)
			if forbidden, reason := v.Scanner.AddsForbiddenContent(best, bullet); forbidden {
				report.Issues = append(report.Issues,
					fmt.Sprintf("%s: bullet %q adds forbidden content: %s", role.Label(), bullet, reason))
				continue
			}

			for _, token := range parsing.ToolLikeTokens(bullet) {
				if matcher.MatchAny(token, allowed) || matcher.IsSafeExpansion(roleTerms, token) {
					continue
				}
				report.Issues = append(report.Issues,
					fmt.Sprintf("%s: unexpected tool/term %q in bullet %q", role.Label(), token, bullet))
			}
		}
	}

	report.OK = len(report.Issues) == 0
	return report
}

func (v *Validator) bestBullet(candidates []string, bullet string) string {
	best, _ := v.Scanner.BestBacking(candidates, bullet)
	return best
}

func allowedTerms(original []types.Role, jdKeywords []string) []string {
	allowed := parsing.NormalizeAll(jdKeywords)
	seen := make(map[string]bool, len(allowed))
	for _, k := range allowed {
		seen[k] = true
	}
	for _, role := range original {
		for _, t := range roleTerms(role) {
			if !seen[t] {
				seen[t] = true
				allowed = append(allowed, t)
			}
		}
	}
	return allowed
}

// roleTerms returns the normalized terms of a role's company, title and bullets
func roleTerms(role types.Role) []string {
	var terms []string
	seen := make(map[string]bool)
	add := func(text string) {
		candidates := parsing.ExtractKeyTerms(text)
		for _, token := range parsing.ToolLikeTokens(text) {
			candidates = append(candidates, parsing.NormalizeKeyword(token))
		}
		for _, t := range candidates {
			if t != "" && !seen[t] {
				seen[t] = true
				terms = append(terms, t)
			}
		}
	}
	add(role.Company)
	add(role.Role)
	for _, b := range role.Bullets {
		add(b)
	}
	return terms
}
