package repair

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-guard/internal/types"
)

// Schema bounds the fallback must satisfy
const (
	minSummaryLen = 20
	maxSummaryLen = 500
	maxRoles      = 10
	maxFieldLen   = 100
	maxBullets    = 8
	minBulletLen  = 10
	maxBulletLen  = 200
	minSkills     = 3
	maxSkills     = 30
	maxSkillLen   = 50
)

const (
	notSpecified     = "Not specified"
	fallbackSummary  = "Professional experience as listed in the original resume."
	fallbackNoteText = "The generated resume could not be validated. This version was rebuilt from your original resume without tailoring."
)

// Fallback rebuilds a minimal schema-valid tailored resume directly from the original document.
// The result has Confidence 0.
func Fallback(doc types.ResumeDocument) types.TailoredResume {
	resume := types.TailoredResume{
		Summary:       fallbackSummaryFor(doc),
		Experience:    fallbackRoles(doc.Experience),
		SkillsSection: fallbackSkills(doc),
		NotesToUser:   fallbackNoteText,
		Confidence:    0,
	}
	return resume
}

func fallbackSummaryFor(doc types.ResumeDocument) string {
	summary := strings.Join(strings.Fields(doc.Summary), " ")
	if utf8.RuneCountInString(summary) < minSummaryLen {
		summary = fallbackSummary
	}
	return truncate(summary, maxSummaryLen)
}

func fallbackRoles(roles []types.Role) []types.TailoredRole {
	out := make([]types.TailoredRole, 0, min(len(roles), maxRoles))
	for _, r := range roles {
		if len(out) == maxRoles {
			break
		}
		out = append(out, types.TailoredRole{
			Company: fieldOrDefault(r.Company),
			Role:    fieldOrDefault(r.Role),
			Dates:   truncate(r.Dates, maxFieldLen),
			Bullets: fallbackBullets(r.Bullets),
		})
	}
	if len(out) == 0 {
		out = append(out, types.TailoredRole{
			Company: notSpecified,
			Role:    notSpecified,
			Bullets: []string{types.PlaceholderBullet},
		})
	}
	return out
}

func fallbackBullets(bullets []string) []string {
	out := make([]string, 0, maxBullets)
	for _, b := range bullets {
		if len(out) == maxBullets {
			break
		}
		b = strings.Join(strings.Fields(b), " ")
		if utf8.RuneCountInString(b) < minBulletLen {
			continue
		}
		out = append(out, truncate(b, maxBulletLen))
	}
	if len(out) == 0 {
		out = append(out, types.PlaceholderBullet)
	}
	return out
}

func fallbackSkills(doc types.ResumeDocument) []string {
	skills := make([]string, 0, maxSkills)
	seen := make(map[string]bool)
	add := func(s string) {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] || len(skills) == maxSkills {
			return
		}
		seen[key] = true
		skills = append(skills, truncate(s, maxSkillLen))
	}

	for _, s := range doc.Skills {
		add(s)
	}
	for _, r := range doc.Experience {
		if len(skills) >= minSkills {
			break
		}
		add(r.Role)
	}
	for len(skills) < minSkills {
		skills = append(skills, notSpecified)
	}
	return skills
}

func fieldOrDefault(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return notSpecified
	}
	return truncate(s, maxFieldLen)
}

// truncate shortens s to at most limit runes, preferring a word boundary
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)[:limit]
	cut := string(runes)
	if i := strings.LastIndex(cut, " "); i > limit/2 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut)
}
