// Package coverage scores how much of a job's keyword set a resume covers and compares two scores.
package coverage

import (
	"strings"
	"unicode"

	"github.com/jonathan/resume-guard/internal/parsing"
	"github.com/jonathan/resume-guard/internal/types"
)

// Warning messages emitted when a resume is missing a core section
const (
	WarningNoExperience = "no Experience section"
	WarningNoSkills     = "no Skills section"
)

// Scorer computes ATS-style keyword coverage with a configurable fuzzy-match threshold
type Scorer struct {
	Threshold float64
}

// NewScorer returns a Scorer; a non-positive threshold selects parsing.DefaultFuzzyThreshold
func NewScorer(threshold float64) *Scorer {
	return &Scorer{Threshold: parsing.NewMatcher(threshold).Threshold}
}

// Score scores a resume against a keyword set with the default threshold
func Score(resume types.ResumeDocument, set types.KeywordSet) types.CoverageStats {
	return NewScorer(parsing.DefaultFuzzyThreshold).Score(resume, set)
}

// Score reports which keywords of the set the resume covers.
// A keyword is matched when it appears verbatim in the resume text, or when its normalized
// form fuzzy-matches a term of the resume. A phrase must equal a term or match through
// every one of its key terms.
func (s *Scorer) Score(resume types.ResumeDocument, set types.KeywordSet) types.CoverageStats {
	idx := newResumeIndex(resume, parsing.NewMatcher(s.Threshold))

	stats := types.CoverageStats{Warnings: warnings(resume)}
	stats.Coverage, stats.Matched, stats.Missing = idx.partition(set.All)
	stats.MustCoverage, stats.MustMatched, stats.MustMissing = idx.partition(set.Must)
	stats.NiceCoverage, stats.NiceMatched, stats.NiceMissing = idx.partition(set.Nice)

	if set.Industry != nil {
		industry := &types.IndustryCoverage{Label: set.Industry.Label}
		industry.Coverage, industry.Matched, industry.Missing = idx.partition(parsing.IndustryKeywords(set))
		stats.Industry = industry
	}

	return stats
}

// resumeIndex holds the searchable forms of one resume
type resumeIndex struct {
	lower   string
	terms   []string
	matcher parsing.Matcher
}

func newResumeIndex(resume types.ResumeDocument, matcher parsing.Matcher) *resumeIndex {
	blob := Blob(resume)
	return &resumeIndex{
		lower:   strings.ToLower(blob),
		terms:   parsing.ExtractKeyTerms(blob),
		matcher: matcher,
	}
}

// partition splits keywords into matched and missing and returns the matched fraction
func (idx *resumeIndex) partition(keywords []string) (float64, []string, []string) {
	matched := []string{}
	missing := []string{}
	for _, kw := range keywords {
		if idx.matches(kw) {
			matched = append(matched, kw)
		} else {
			missing = append(missing, kw)
		}
	}
	return fraction(len(matched), len(keywords)), matched, missing
}

func (idx *resumeIndex) matches(keyword string) bool {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" {
		return false
	}
	if containsWord(idx.lower, kw) {
		return true
	}

	normalized := parsing.NormalizeKeyword(kw)
	if !strings.Contains(normalized, " ") {
		return idx.matcher.MatchAny(normalized, idx.terms)
	}

	// Phrases match a synonym term exactly, or through any one of their key terms
	for _, term := range idx.terms {
		if term == normalized {
			return true
		}
	}
	for _, term := range parsing.ExtractKeyTerms(kw) {
		if idx.matcher.MatchAny(term, idx.terms) {
			return true
		}
	}
	return false
}

// Blob concatenates every textual field of a resume
func Blob(resume types.ResumeDocument) string {
	parts := []string{resume.Summary}
	parts = append(parts, resume.Skills...)
	for _, r := range resume.Experience {
		parts = append(parts, r.Company, r.Role)
		parts = append(parts, r.Bullets...)
	}
	parts = append(parts, resume.Education...)
	parts = append(parts, resume.Certifications...)
	for _, p := range resume.Projects {
		parts = append(parts, p.Name)
		parts = append(parts, p.Bullets...)
	}
	for _, sec := range resume.AdditionalSections {
		parts = append(parts, sec.Heading)
		parts = append(parts, sec.Lines...)
	}
	return strings.Join(parts, "\n")
}

// containsWord reports whether needle occurs in haystack bounded by non-alphanumeric characters
func containsWord(haystack, needle string) bool {
	for offset := 0; offset <= len(haystack)-len(needle); {
		i := strings.Index(haystack[offset:], needle)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(needle)
		if boundaryBefore(haystack, start) && boundaryAfter(haystack, end) {
			return true
		}
		offset = start + 1
	}
	return false
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r := rune(s[i-1])
	return r < 0x80 && !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r := rune(s[i])
	return r < 0x80 && !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#'
}

func warnings(resume types.ResumeDocument) []string {
	out := []string{}

	hasRole := false
	for _, r := range resume.Experience {
		if strings.TrimSpace(r.Company) != "" && strings.TrimSpace(r.Role) != "" && len(r.Bullets) > 0 {
			hasRole = true
			break
		}
	}
	if !hasRole {
		out = append(out, WarningNoExperience)
	}

	hasSkill := false
	for _, s := range resume.Skills {
		if len([]rune(strings.TrimSpace(s))) > 2 {
			hasSkill = true
			break
		}
	}
	if !hasSkill {
		out = append(out, WarningNoSkills)
	}

	return out
}

func fraction(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}
