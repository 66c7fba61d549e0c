package sections

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-guard/internal/parsing"
	"github.com/jonathan/resume-guard/internal/types"
)

const (
	minSkillLen = 3
	maxSkillLen = 49
)

var (
	// bulletPattern matches a bullet glyph or numbered-list prefix at the start of a line
	bulletPattern = regexp.MustCompile(`^(?:[•·▪●◦‣∙]\s*|[*>\-–—]\s+|\d{1,2}[.)]\s+)`)

	skillSplitPattern = regexp.MustCompile(`\s*[,;|•·▪●]\s*`)
)

// stripBullet removes a bullet or numbering marker and reports whether one was present
func stripBullet(line string) (string, bool) {
	line = strings.TrimSpace(line)
	loc := bulletPattern.FindStringIndex(line)
	if loc == nil {
		return line, false
	}
	return strings.TrimSpace(line[loc[1]:]), true
}

func stripBullets(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if text, _ := stripBullet(line); text != "" {
			out = append(out, text)
		}
	}
	return out
}

// parseSkills splits skill lines on bullets, commas, semicolons and pipes. A short label
// before a colon ("Languages: Go, Python") is dropped. Entries outside 3 to 49 characters
// are discarded and duplicates are removed by normalized form.
func parseSkills(lines []string) []string {
	return mergeSkills(nil, splitSkills(lines))
}

func splitSkills(lines []string) []string {
	var items []string
	for _, line := range lines {
		text, _ := stripBullet(line)
		if idx := strings.Index(text, ":"); idx > 0 && idx <= 30 {
			text = text[idx+1:]
		}
		for _, item := range skillSplitPattern.Split(text, -1) {
			item = strings.TrimSpace(strings.Trim(strings.TrimSpace(item), "."))
			if n := utf8.RuneCountInString(item); n < minSkillLen || n > maxSkillLen {
				continue
			}
			items = append(items, item)
		}
	}
	return items
}

// mergeSkills appends skills not already present by normalized form
func mergeSkills(existing, additional []string) []string {
	out := make([]string, 0, len(existing)+len(additional))
	seen := make(map[string]bool, len(existing)+len(additional))
	for _, skill := range append(append([]string{}, existing...), additional...) {
		key := parsing.NormalizeKeyword(skill)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, skill)
	}
	return out
}

// parseProjects reads "title line, then bullets" entries. A new project starts at a title-shaped
// line once the current project has bullets.
func parseProjects(lines []string) []types.Project {
	var projects []types.Project

	for _, line := range lines {
		text, isBullet := stripBullet(line)
		if text == "" {
			continue
		}

		n := len(projects)
		if !isBullet && (n == 0 || (len(projects[n-1].Bullets) > 0 && isTitleLine(text))) {
			projects = append(projects, types.Project{Name: text, Bullets: []string{}})
			continue
		}
		if n == 0 {
			projects = append(projects, types.Project{Bullets: []string{}})
			n = 1
		}
		projects[n-1].Bullets = append(projects[n-1].Bullets, text)
	}

	return projects
}

func isTitleLine(text string) bool {
	return utf8.RuneCountInString(text) <= 80 && !strings.HasSuffix(text, ".") && !startsWithActionVerb(text)
}
