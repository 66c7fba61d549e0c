// Package parsing normalizes keywords and extracts ranked keyword sets from job descriptions.
package parsing

import (
	"strings"
	"unicode"
)

// keywordSynonyms maps common keyword variants to canonical normalized forms.
// Keys and values are already in cleaned form (see cleanKeyword).
var keywordSynonyms = map[string]string{
	"aws":                    "amazon web services",
	"amazon aws":             "amazon web services",
	"gcp":                    "google cloud",
	"google cloud platform":  "google cloud",
	"azure cloud":            "azure",
	"microsoft azure":        "azure",
	"ml":                     "machine learning",
	"ai":                     "artificial intelligence",
	"nlp":                    "natural language processing",
	"node":                   "nodejs",
	"node js":                "nodejs",
	"golang":                 "go",
	"go lang":                "go",
	"js":                     "javascript",
	"ecmascript":             "javascript",
	"ts":                     "typescript",
	"k8s":                    "kubernetes",
	"react js":               "react",
	"reactjs":                "react",
	"vue js":                 "vuejs",
	"postgres":               "postgresql",
	"psql":                   "postgresql",
	"mongo":                  "mongodb",
	"ci cd":                  "cicd",
	"continuous integration": "cicd",
	"rest api":               "api",
	"apis":                   "api",
	"restful api":            "api",
	"py":                     "python",
	"sklearn":                "scikit learn",
	"e commerce":             "ecommerce",
	"front end":              "frontend",
	"back end":               "backend",
	"full stack":             "fullstack",
	"dotnet core":            "dotnet",
	"asp dotnet":             "dotnet",
	"c sharp":                "c#",
	"cpp":                    "c++",
	"ux":                     "user experience",
	"ui":                     "user interface",
	"sre":                    "site reliability engineering",
	"qa":                     "quality assurance",
}

// canonicalKeywords holds every synonym target so that normalized output is a fixed point
var canonicalKeywords = func() map[string]bool {
	set := make(map[string]bool, len(keywordSynonyms))
	for _, v := range keywordSynonyms {
		set[v] = true
	}
	return set
}()

// NormalizeKeyword canonicalizes a keyword or term.
// The result is lowercase with punctuation stripped, mapped through the synonym table,
// retried after simple de-pluralization. NormalizeKeyword is idempotent.
func NormalizeKeyword(s string) string {
	cleaned := cleanKeyword(s)
	if cleaned == "" {
		return ""
	}

	if canonical, ok := lookupKeyword(cleaned); ok {
		return canonical
	}

	for _, singular := range singularForms(cleaned) {
		if canonical, ok := lookupKeyword(singular); ok {
			return canonical
		}
	}

	return cleaned
}

// lookupKeyword resolves a cleaned keyword against the synonym table
func lookupKeyword(cleaned string) (string, bool) {
	if canonical, ok := keywordSynonyms[cleaned]; ok {
		return canonical, true
	}
	if canonicalKeywords[cleaned] {
		return cleaned, true
	}
	return "", false
}

// singularForms returns de-pluralization candidates in priority order
func singularForms(word string) []string {
	var forms []string
	if strings.HasSuffix(word, "ies") && len(word) > 3 {
		forms = append(forms, strings.TrimSuffix(word, "ies")+"y")
	}
	if strings.HasSuffix(word, "es") && len(word) > 2 {
		forms = append(forms, strings.TrimSuffix(word, "es"))
	}
	if strings.HasSuffix(word, "s") && len(word) > 1 {
		forms = append(forms, strings.TrimSuffix(word, "s"))
	}
	return forms
}

// cleanKeyword lowercases and strips punctuation.
// '+' and '#' survive (c++, c#); separators become spaces; a leading dot is spelled out (.net).
func cleanKeyword(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(s, ".") && len(s) > 1 && unicode.IsLetter(rune(s[1])) {
		s = "dot" + s[1:]
	}

	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
		case r == '+' || r == '#':
			sb.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '/' || r == '_':
			sb.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(sb.String()), " ")
}

// NormalizeAll normalizes and deduplicates a list, preserving first-seen order
func NormalizeAll(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		n := NormalizeKeyword(item)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
