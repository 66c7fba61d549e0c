package parsing

import (
	"regexp"
	"strings"
	"unicode"
)

// keyTermPattern matches candidate key terms in lowercased text
var keyTermPattern = regexp.MustCompile(`[a-z0-9\-+.]{3,}`)

// stopWords filters common English words that add noise to term matching
var stopWords = map[string]bool{
	"and": true, "the": true, "for": true, "with": true, "you": true,
	"are": true, "have": true, "will": true, "this": true, "that": true,
	"from": true, "our": true, "your": true, "their": true, "they": true,
	"work": true, "team": true, "role": true, "job": true, "join": true,
	"about": true, "which": true, "what": true, "who": true, "how": true,
	"can": true, "not": true, "but": true, "all": true, "also": true,
	"more": true, "than": true, "into": true, "has": true, "its": true,
	"was": true, "were": true, "been": true, "each": true, "new": true,
	"use": true, "using": true, "used": true, "well": true, "high": true,
	"good": true, "able": true, "get": true, "set": true, "such": true,
	"other": true, "over": true, "per": true, "via": true, "across": true,
	"including": true, "within": true, "while": true, "when": true, "where": true,
	"must": true, "should": true, "would": true, "could": true, "may": true,
	"any": true, "some": true, "these": true, "those": true, "there": true,
	"years": true, "year": true, "experience": true, "strong": true, "plus": true,
	"etc": true, "his": true, "her": true, "them": true, "then": true,
	"both": true, "only": true, "very": true, "just": true, "like": true,
	"we": true, "us": true, "an": true, "to": true, "of": true,
	"in": true, "on": true, "at": true, "by": true, "or": true,
	"as": true, "is": true, "be": true, "it": true, "if": true,
	"a": true, "i": true, "my": true, "me": true, "so": true,
	"do": true, "up": true, "no": true, "go-to": true, "e.g": true, "i.e": true,
}

// IsStopWord reports whether the lowercased word is in the fixed stopword set
func IsStopWord(word string) bool {
	return stopWords[strings.ToLower(word)]
}

// ExtractKeyTerms tokenizes text into normalized, deduplicated key terms in first-seen order
func ExtractKeyTerms(text string) []string {
	matches := keyTermPattern.FindAllString(strings.ToLower(text), -1)
	terms := make([]string, 0, len(matches))
	seen := make(map[string]bool, len(matches))

	for _, m := range matches {
		m = strings.Trim(m, ".-")
		if len(m) < 3 || stopWords[m] {
			continue
		}
		n := NormalizeKeyword(m)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		terms = append(terms, n)
	}

	return terms
}

// safeExpansions lists phrasings licensed by an original term.
// Keys are normalized original terms.
var safeExpansions = map[string][]string{
	"api":                 {"restful", "rest", "rest api", "http endpoints", "web services", "endpoints", "graphql", "grpc"},
	"nodejs":              {"javascript", "express", "npm", "backend"},
	"react":               {"javascript", "frontend", "jsx", "single page application"},
	"javascript":          {"frontend", "web", "es6"},
	"typescript":          {"javascript", "frontend"},
	"python":              {"scripting", "pandas", "automation"},
	"sql":                 {"database", "queries", "relational", "postgresql", "mysql"},
	"postgresql":          {"sql", "database", "relational"},
	"mysql":               {"sql", "database", "relational"},
	"database":            {"sql", "data store", "persistence"},
	"amazon web services": {"cloud", "ec2", "s3", "lambda"},
	"google cloud":        {"cloud"},
	"azure":               {"cloud"},
	"docker":              {"containers", "containerization", "containerized"},
	"kubernetes":          {"containers", "orchestration", "container orchestration"},
	"cicd":                {"pipelines", "continuous delivery", "deployment automation", "build pipelines"},
	"test":                {"testing", "quality assurance", "unit tests", "qa"},
	"testing":             {"quality assurance", "unit tests", "test automation", "qa"},
	"machine learning":    {"models", "modeling", "predictive", "artificial intelligence"},
	"analytics":           {"reporting", "dashboards", "metrics", "insights"},
	"dashboard":           {"reporting", "visualization", "analytics"},
	"microservices":       {"distributed systems", "services", "service oriented"},
	"led":                 {"managed", "mentored", "directed", "guided", "coordinated", "leadership"},
	"managed":             {"led", "oversaw", "directed", "leadership"},
	"built":               {"developed", "created", "implemented", "engineered", "designed"},
	"developed":           {"built", "created", "implemented", "engineered"},
	"customer":            {"client", "user", "stakeholder"},
	"client":              {"customer", "stakeholder"},
	"sales":               {"revenue", "business development"},
	"agile":               {"scrum", "sprints", "kanban"},
	"git":                 {"version control", "github", "gitlab"},
}

// SafeExpansionsFor returns the expansions licensed by a normalized original term
func SafeExpansionsFor(term string) []string {
	return safeExpansions[NormalizeKeyword(term)]
}

// IsSafeExpansion reports whether candidate is licensed by the original terms: one of its key
// terms fuzzy-matches an original term, or it fuzzy-matches an expansion of an original term.
func IsSafeExpansion(originalTerms []string, candidate string) bool {
	return NewMatcher(DefaultFuzzyThreshold).IsSafeExpansion(originalTerms, candidate)
}

// IsSafeExpansion is the package-level IsSafeExpansion under the matcher's threshold
func (m Matcher) IsSafeExpansion(originalTerms []string, candidate string) bool {
	if len(originalTerms) == 0 || strings.TrimSpace(candidate) == "" {
		return false
	}

	candidateTerms := ExtractKeyTerms(candidate)
	if len(candidateTerms) == 0 {
		if n := NormalizeKeyword(candidate); n != "" {
			candidateTerms = []string{n}
		}
	}

	normalizedOriginal := make([]string, 0, len(originalTerms))
	for _, t := range originalTerms {
		if n := NormalizeKeyword(t); n != "" {
			normalizedOriginal = append(normalizedOriginal, n)
		}
	}

	for _, ct := range candidateTerms {
		for _, ot := range normalizedOriginal {
			if m.MatchNormalized(ct, ot) {
				return true
			}
		}
	}

	normalizedCandidate := NormalizeKeyword(candidate)
	for _, ot := range normalizedOriginal {
		for _, expansion := range safeExpansions[ot] {
			if m.MatchNormalized(normalizedCandidate, NormalizeKeyword(expansion)) {
				return true
			}
		}
	}

	return false
}

// ToolLikeTokens returns the tokens of text that look like technology, tool or company names:
// a token starting with an uppercase letter or containing '+', '.', '#' or '-'.
// A plain capitalized first word is treated as sentence case and skipped.
func ToolLikeTokens(text string) []string {
	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	seen := make(map[string]bool)

	for i, field := range fields {
		token := strings.TrimFunc(field, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#'
		})
		if token == "" || stopWords[strings.ToLower(token)] {
			continue
		}
		if !isToolLike(token) {
			continue
		}
		if i == 0 && isSentenceCase(token) {
			continue
		}
		if !seen[token] {
			seen[token] = true
			tokens = append(tokens, token)
		}
	}

	return tokens
}

func isToolLike(token string) bool {
	first := []rune(token)[0]
	if unicode.IsUpper(first) {
		return true
	}
	if !hasLetter(token) {
		return false
	}
	return strings.ContainsAny(token, "+.#-")
}

// isSentenceCase reports whether the token is a capitalized plain word such as "Developed"
func isSentenceCase(token string) bool {
	runes := []rune(token)
	if len(runes) < 2 || !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if !unicode.IsLower(r) {
			return false
		}
	}
	return true
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
