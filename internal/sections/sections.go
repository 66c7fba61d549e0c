// Package sections parses raw resume text into a structured ResumeDocument.
//
// Parsing escalates through three strategies: splitting on recognized headings, a score-based
// fallback that infers section boundaries from line features, and a last-resort content
// segmentation that switches section on the first indicator hit. Every heuristic is kept in an
// ordered, exported rule list so it can be tested on its own.
package sections

import (
	"strings"
	"unicode"

	"github.com/jonathan/resume-guard/internal/ingestion"
	"github.com/jonathan/resume-guard/internal/types"
)

// Kind identifies a resume section
type Kind string

// Section kinds recognized by the parser
const (
	KindSummary        Kind = "summary"
	KindExperience     Kind = "experience"
	KindSkills         Kind = "skills"
	KindEducation      Kind = "education"
	KindCertifications Kind = "certifications"
	KindProjects       Kind = "projects"
	KindAchievements   Kind = "achievements"
	KindAdditional     Kind = "additional"

	// kindPreamble holds the lines above the first heading (name, contact details, intro)
	kindPreamble Kind = "preamble"
)

// minSectionContent is the content length a core section needs before a heading split is trusted
const minSectionContent = 20

// block is a run of lines attributed to one section
type block struct {
	kind    Kind
	heading string
	lines   []string
}

// Parse converts raw resume text into a ResumeDocument. It never fails; unparseable input
// yields an empty document.
func Parse(raw string) types.ResumeDocument {
	lines := splitLines(ingestion.CleanText(raw))
	if len(lines) == 0 {
		return types.NewResumeDocument()
	}

	blocks := splitByHeadings(lines)
	if !hasCoreContent(blocks) {
		blocks = splitByScores(lines)
		if !hasStructuredBlock(blocks) {
			blocks = splitByContent(lines)
		}
	}

	return assemble(blocks)
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// hasCoreContent reports whether any of experience, skills, summary or education carries
// more than minSectionContent characters
func hasCoreContent(blocks []block) bool {
	totals := make(map[Kind]int)
	for _, b := range blocks {
		switch b.kind {
		case KindExperience, KindSkills, KindSummary, KindEducation:
			totals[b.kind] += len(strings.Join(b.lines, " "))
		}
	}
	for _, n := range totals {
		if n > minSectionContent {
			return true
		}
	}
	return false
}

// hasStructuredBlock reports whether any block other than the default summary received lines
func hasStructuredBlock(blocks []block) bool {
	for _, b := range blocks {
		if b.kind != KindSummary && len(b.lines) > 0 {
			return true
		}
	}
	return false
}

// assemble folds section blocks into a document and applies post-processing
func assemble(blocks []block) types.ResumeDocument {
	doc := types.NewResumeDocument()
	var summary []string

	for _, b := range blocks {
		if len(b.lines) == 0 {
			continue
		}
		switch b.kind {
		case kindPreamble:
			summary = append(summary, preambleSummary(b.lines)...)
		case KindSummary:
			summary = append(summary, summaryLines(b)...)
		case KindExperience:
			doc.Experience = append(doc.Experience, parseExperience(b.lines)...)
		case KindSkills:
			doc.Skills = mergeSkills(doc.Skills, parseSkills(b.lines))
		case KindEducation:
			doc.Education = append(doc.Education, stripBullets(b.lines)...)
		case KindCertifications:
			doc.Certifications = append(doc.Certifications, stripBullets(b.lines)...)
		case KindProjects:
			doc.Projects = append(doc.Projects, parseProjects(b.lines)...)
		default:
			heading := b.heading
			if heading == "" {
				heading = strings.ToUpper(string(b.kind[:1])) + string(b.kind[1:])
			}
			doc.AdditionalSections = append(doc.AdditionalSections, types.Section{
				Heading: heading,
				Lines:   stripBullets(b.lines),
			})
		}
	}

	doc.Summary = strings.Join(summary, " ")
	doc.Experience = finalizeRoles(doc.Experience)
	return doc
}

// preambleSummary keeps the prose lines above the first heading, skipping name and contact lines
func preambleSummary(lines []string) []string {
	var out []string
	for _, line := range lines {
		if isContactLine(line) || len(strings.Fields(line)) < 8 {
			continue
		}
		out = append(out, line)
	}
	return out
}

// summaryLines drops contact lines from a summary block. A block found without a heading also
// drops the leading name lines that open most resumes.
func summaryLines(b block) []string {
	var out []string
	leading := b.heading == ""
	for _, line := range stripBullets(b.lines) {
		if isContactLine(line) {
			continue
		}
		if leading && isNameLine(line) {
			continue
		}
		leading = false
		out = append(out, line)
	}
	return out
}

// isNameLine reports a short line of capitalized letter-only words, like "Jane Doe"
func isNameLine(line string) bool {
	words := strings.Fields(line)
	if len(words) < 2 || len(words) > 4 {
		return false
	}
	for _, w := range words {
		w = strings.TrimRight(w, ".,")
		if w == "" || !unicode.IsUpper([]rune(w)[0]) {
			return false
		}
		for _, r := range w {
			if !unicode.IsLetter(r) && r != '-' && r != '\'' {
				return false
			}
		}
	}
	return true
}

func isContactLine(line string) bool {
	lower := strings.ToLower(line)
	if strings.Contains(lower, "@") || strings.Contains(lower, "http") ||
		strings.Contains(lower, "linkedin") || strings.Contains(lower, "github.com") {
		return true
	}
	digits := 0
	for _, r := range line {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 7
}

// finalizeRoles drops roles without content and gives titled roles without bullets a placeholder
func finalizeRoles(roles []types.Role) []types.Role {
	out := make([]types.Role, 0, len(roles))
	for _, r := range roles {
		r.Company = strings.TrimSpace(r.Company)
		r.Role = strings.TrimSpace(r.Role)
		if len(r.Bullets) == 0 {
			if r.Company == "" || r.Role == "" {
				continue
			}
			r.Bullets = []string{types.PlaceholderBullet}
		}
		out = append(out, r)
	}
	return out
}
