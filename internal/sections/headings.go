package sections

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxHeadingLen bounds the length of a line that may be read as a heading
const maxHeadingLen = 50

// HeadingRule maps a group of heading synonyms to a section kind
type HeadingRule struct {
	Kind     Kind
	Synonyms []string
}

// HeadingRules is evaluated in order; a synonym claimed by an earlier rule wins.
// Synonyms are written in heading-key form: lowercase letters and single spaces.
var HeadingRules = []HeadingRule{
	{Kind: KindExperience, Synonyms: []string{
		"experience", "work experience", "professional experience", "relevant experience",
		"employment", "employment history", "work history", "career history",
		"professional background", "experience and employment",
	}},
	{Kind: KindSkills, Synonyms: []string{
		"skills", "technical skills", "key skills", "core skills", "core competencies",
		"competencies", "technologies", "tech stack", "tools", "skills and tools",
		"tools and technologies", "areas of expertise", "expertise", "skills and abilities",
	}},
	{Kind: KindSummary, Synonyms: []string{
		"summary", "professional summary", "career summary", "profile", "professional profile",
		"about", "about me", "objective", "career objective", "overview",
	}},
	{Kind: KindEducation, Synonyms: []string{
		"education", "academic background", "education and training", "academics",
		"academic history", "qualifications",
	}},
	{Kind: KindCertifications, Synonyms: []string{
		"certifications", "certification", "certificates", "licenses",
		"licenses and certifications", "certifications and licenses", "credentials",
	}},
	{Kind: KindProjects, Synonyms: []string{
		"projects", "personal projects", "side projects", "selected projects", "key projects",
		"open source", "portfolio",
	}},
	{Kind: KindAchievements, Synonyms: []string{
		"achievements", "key achievements", "accomplishments", "awards", "honors",
		"awards and honors", "honors and awards",
	}},
	{Kind: KindAdditional, Synonyms: []string{
		"languages", "volunteer", "volunteering", "volunteer experience", "publications",
		"interests", "hobbies", "references", "activities", "leadership", "memberships",
	}},
}

var headingIndex = func() map[string]Kind {
	index := make(map[string]Kind)
	for _, rule := range HeadingRules {
		for _, s := range rule.Synonyms {
			if _, exists := index[s]; !exists {
				index[s] = rule.Kind
			}
		}
	}
	return index
}()

// ClassifyHeading returns the section kind a heading line names
func ClassifyHeading(line string) (Kind, bool) {
	if utf8.RuneCountInString(line) > maxHeadingLen {
		return "", false
	}
	key := headingKey(line)
	if key == "" {
		return "", false
	}
	kind, ok := headingIndex[key]
	return kind, ok
}

// headingKey lowercases a heading and strips everything but letters; '&' reads as "and"
func headingKey(line string) string {
	line = strings.ReplaceAll(line, "&", " and ")
	var sb strings.Builder
	for _, r := range strings.ToLower(line) {
		switch {
		case unicode.IsLetter(r):
			sb.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '/' || r == '_':
			sb.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

// headingText returns the heading as written, without markdown markers or a trailing colon
func headingText(line string) string {
	line = strings.TrimSpace(strings.TrimLeft(line, "#"))
	return strings.TrimSpace(strings.TrimSuffix(line, ":"))
}

// LooksLikeHeading reports whether an unrecognized line is shaped like a heading:
// short, free of digits, and either all caps, markdown-prefixed or ending with a colon
func LooksLikeHeading(line string) bool {
	text := headingText(line)
	if text == "" || utf8.RuneCountInString(text) > 40 || bulletPattern.MatchString(line) {
		return false
	}
	if strings.ContainsAny(text, "0123456789@|,") || len(strings.Fields(text)) > 5 {
		return false
	}
	if strings.HasPrefix(line, "#") || strings.HasSuffix(line, ":") {
		return true
	}
	return isAllCaps(text)
}

func isAllCaps(text string) bool {
	letters := 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			if unicode.IsLower(r) {
				return false
			}
			letters++
		}
	}
	return letters >= 3
}

// inlineHeadingKinds may share a line with their content, as in "Skills: Go, SQL"
var inlineHeadingKinds = map[Kind]bool{
	KindSkills:         true,
	KindCertifications: true,
}

// splitInlineHeading splits "Heading: content" when the heading names an inline section kind
func splitInlineHeading(line string) (Kind, string, string, bool) {
	idx := strings.Index(line, ":")
	if idx <= 0 || idx > 30 {
		return "", "", "", false
	}
	kind, ok := ClassifyHeading(line[:idx])
	if !ok || !inlineHeadingKinds[kind] {
		return "", "", "", false
	}
	return kind, headingText(line[:idx]), strings.TrimSpace(line[idx+1:]), true
}

// splitByHeadings divides lines into blocks at every recognized or heading-shaped line
func splitByHeadings(lines []string) []block {
	var blocks []block
	current := block{kind: kindPreamble}

	start := func(kind Kind, heading string) {
		blocks = append(blocks, current)
		current = block{kind: kind, heading: heading}
	}

	for _, line := range lines {
		if kind, ok := ClassifyHeading(line); ok {
			start(kind, headingText(line))
			continue
		}
		if kind, heading, rest, ok := splitInlineHeading(line); ok {
			start(kind, heading)
			if rest != "" {
				current.lines = append(current.lines, rest)
			}
			continue
		}
		if LooksLikeHeading(line) && !isEntryLine(current.kind, line) {
			start(KindAdditional, headingText(line))
			continue
		}
		current.lines = append(current.lines, line)
	}

	return append(blocks, current)
}

// isEntryLine reports whether an all-caps line inside experience or projects is an entry
// (company or title) rather than a new heading
func isEntryLine(kind Kind, line string) bool {
	if kind != KindExperience && kind != KindProjects {
		return false
	}
	return hasCompanySuffix(line) || hasTitleWord(line)
}
