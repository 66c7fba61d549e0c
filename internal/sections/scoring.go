package sections

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// boundaryScore is the accumulated score a section must exceed to open a new boundary
const boundaryScore = 2

// earlyLines is how many leading lines may score as summary prose
const earlyLines = 5

var (
	delimitedPattern = regexp.MustCompile(`^[^.,;|]+(?:\s*[,;|]\s*[^.,;|]+){2,}$`)
	wordPattern      = regexp.MustCompile(`[a-z][a-z.+#]*`)
)

// LineContext is the view of one line available to score rules
type LineContext struct {
	Text     string
	Lower    string
	Position int
	Total    int
}

func newLineContext(line string, position, total int) LineContext {
	return LineContext{
		Text:     line,
		Lower:    strings.ToLower(line),
		Position: position,
		Total:    total,
	}
}

// ScoreRule adds Score to Kind's running total when Match holds for a line
type ScoreRule struct {
	Name  string
	Kind  Kind
	Score int
	Match func(LineContext) bool
}

var (
	experienceWords = []string{
		"led", "managed", "built", "developed", "designed", "implemented", "launched",
		"improved", "increased", "reduced", "delivered", "engineer", "developer", "manager",
		"intern", "analyst", "consultant", "director", "responsible",
	}
	skillsWords = []string{
		"skills", "proficient", "technologies", "tools", "frameworks", "languages", "familiar",
	}
	summaryWords = []string{
		"experienced", "passionate", "professional", "seeking", "motivated", "driven",
		"dedicated", "track record", "years of experience",
	}
	educationWords = []string{
		"university", "college", "bachelor", "bachelors", "master", "masters", "phd", "degree",
		"gpa", "b.s.", "m.s.", "b.a.", "mba", "diploma", "graduated",
	}
	certificationWords = []string{
		"certified", "certification", "certificate", "license", "licensed",
	}
)

// ScoreRules drive the score-based fallback. Rules are evaluated in order and every matching
// rule contributes its score.
var ScoreRules = []ScoreRule{
	{Name: "year", Kind: KindExperience, Score: 2, Match: func(c LineContext) bool {
		return yearPattern.MatchString(c.Text)
	}},
	{Name: "bullet-glyph", Kind: KindExperience, Score: 1, Match: func(c LineContext) bool {
		return bulletPattern.MatchString(c.Text)
	}},
	{Name: "company-suffix", Kind: KindExperience, Score: 2, Match: func(c LineContext) bool {
		return hasCompanySuffix(c.Text)
	}},
	{Name: "experience-words", Kind: KindExperience, Score: 1, Match: func(c LineContext) bool {
		return containsAnyWord(c.Lower, experienceWords)
	}},
	{Name: "delimited-list", Kind: KindSkills, Score: 3, Match: func(c LineContext) bool {
		text, _ := stripBullet(c.Text)
		return !yearPattern.MatchString(text) && delimitedPattern.MatchString(text)
	}},
	{Name: "short-line", Kind: KindSkills, Score: 1, Match: func(c LineContext) bool {
		text, _ := stripBullet(c.Text)
		n := utf8.RuneCountInString(text)
		return n >= 2 && n <= 30 && !yearPattern.MatchString(text) && !startsWithActionVerb(text)
	}},
	{Name: "skills-words", Kind: KindSkills, Score: 2, Match: func(c LineContext) bool {
		return containsAnyWord(c.Lower, skillsWords)
	}},
	{Name: "early-prose", Kind: KindSummary, Score: 2, Match: func(c LineContext) bool {
		return c.Position < earlyLines && utf8.RuneCountInString(c.Text) > 60 &&
			!bulletPattern.MatchString(c.Text) && !yearPattern.MatchString(c.Text)
	}},
	{Name: "summary-words", Kind: KindSummary, Score: 1, Match: func(c LineContext) bool {
		return containsAnyWord(c.Lower, summaryWords)
	}},
	{Name: "education-words", Kind: KindEducation, Score: 3, Match: func(c LineContext) bool {
		return containsAnyWord(c.Lower, educationWords)
	}},
	{Name: "certification-words", Kind: KindCertifications, Score: 3, Match: func(c LineContext) bool {
		return containsAnyWord(c.Lower, certificationWords)
	}},
}

// scoreKinds fixes the order in which competing kinds are compared
var scoreKinds = []Kind{KindExperience, KindEducation, KindCertifications, KindSkills, KindSummary}

// ScoreLine returns the per-kind score a single line contributes
func ScoreLine(ctx LineContext) map[Kind]int {
	scores := make(map[Kind]int)
	for _, rule := range ScoreRules {
		if rule.Match(ctx) {
			scores[rule.Kind] += rule.Score
		}
	}
	return scores
}

// splitByScores opens a new section wherever another kind's accumulated score exceeds
// boundaryScore. Scores reset at every boundary.
func splitByScores(lines []string) []block {
	var blocks []block
	current := block{kind: KindSummary}
	totals := make(map[Kind]int)

	for i, line := range lines {
		for kind, score := range ScoreLine(newLineContext(line, i, len(lines))) {
			totals[kind] += score
		}

		if next, ok := challenger(totals, current.kind); ok {
			blocks = append(blocks, current)
			current = block{kind: next}
			totals = make(map[Kind]int)
		}
		current.lines = append(current.lines, line)
	}

	return append(blocks, current)
}

// challenger returns the highest-scoring kind other than current whose total exceeds boundaryScore
func challenger(totals map[Kind]int, current Kind) (Kind, bool) {
	var best Kind
	bestScore := boundaryScore
	for _, kind := range scoreKinds {
		if kind == current {
			continue
		}
		if totals[kind] > bestScore {
			best, bestScore = kind, totals[kind]
		}
	}
	return best, best != ""
}

// containsAnyWord reports whether lower contains one of the words or phrases on word boundaries
func containsAnyWord(lower string, words []string) bool {
	tokens := wordPattern.FindAllString(lower, -1)
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
		set[strings.TrimRight(t, ".")] = true
	}
	for _, w := range words {
		if strings.Contains(w, " ") {
			if strings.Contains(lower, w) {
				return true
			}
			continue
		}
		if set[w] {
			return true
		}
	}
	return false
}
