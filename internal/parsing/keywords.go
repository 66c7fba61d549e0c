package parsing

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/resume-guard/internal/types"
)

// DefaultTopN is the keyword cap used when the caller passes a non-positive topN
const DefaultTopN = 20

// tokenPattern matches raw keyword tokens in lowercased job text
var tokenPattern = regexp.MustCompile(`[a-z0-9+#.\-]+`)

// occurrence is one normalized term found at a byte offset of the text
type occurrence struct {
	term string
	pos  int
}

// phrasePattern detects a multi-word keyword regardless of the separators used between its words
type phrasePattern struct {
	term string
	re   *regexp.Regexp
}

// phrasePatterns lists multi-word synonyms, canonical forms, critical vocabulary and
// industry keywords, longest first so "google cloud platform" wins over "google cloud".
var phrasePatterns = func() []phrasePattern {
	var phrases []string
	for k, v := range keywordSynonyms {
		phrases = append(phrases, k, v)
	}
	phrases = append(phrases, criticalVocabulary...)
	for _, b := range IndustryBuckets {
		phrases = append(phrases, b.Keywords...)
	}

	seen := make(map[string]bool)
	var multi []string
	for _, p := range phrases {
		cleaned := cleanKeyword(p)
		if !strings.Contains(cleaned, " ") || seen[cleaned] {
			continue
		}
		seen[cleaned] = true
		multi = append(multi, cleaned)
	}
	sort.Slice(multi, func(i, j int) bool {
		if len(multi[i]) != len(multi[j]) {
			return len(multi[i]) > len(multi[j])
		}
		return multi[i] < multi[j]
	})

	patterns := make([]phrasePattern, 0, len(multi))
	for _, phrase := range multi {
		words := strings.Fields(phrase)
		for i, w := range words {
			words[i] = regexp.QuoteMeta(w)
		}
		patterns = append(patterns, phrasePattern{
			term: NormalizeKeyword(phrase),
			re:   regexp.MustCompile(`\b` + strings.Join(words, `[\s/_\-]+`) + `\b`),
		})
	}
	return patterns
}()

// criticalPatterns matches each critical vocabulary entry verbatim
var criticalPatterns = func() []phrasePattern {
	patterns := make([]phrasePattern, 0, len(criticalVocabulary))
	for _, v := range criticalVocabulary {
		patterns = append(patterns, phrasePattern{
			term: NormalizeKeyword(v),
			re:   regexp.MustCompile(`(?:^|[^a-z0-9])` + regexp.QuoteMeta(v) + `(?:$|[^a-z0-9+#])`),
		})
	}
	return patterns
}()

// scanTerms finds every normalized keyword occurrence in text in positional order.
// Multi-word phrases are consumed first and blanked so their words are not counted again.
func scanTerms(text string) []occurrence {
	buf := []byte(strings.ToLower(text))
	var found []occurrence

	for _, p := range phrasePatterns {
		for _, loc := range p.re.FindAllIndex(buf, -1) {
			found = append(found, occurrence{term: p.term, pos: loc[0]})
			for i := loc[0]; i < loc[1]; i++ {
				buf[i] = ' '
			}
		}
	}

	for _, loc := range tokenPattern.FindAllIndex(buf, -1) {
		token := strings.TrimRight(string(buf[loc[0]:loc[1]]), ".-")
		token = strings.TrimLeft(token, "-")
		if len(token) < 2 || stopWords[token] || !hasLetter(token) {
			continue
		}
		term := NormalizeKeyword(token)
		if term == "" || stopWords[term] {
			continue
		}
		found = append(found, occurrence{term: term, pos: loc[0]})
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].pos < found[j].pos })
	return found
}

// rankTerms orders distinct terms by frequency descending, ties by first occurrence
func rankTerms(found []occurrence) []string {
	counts := make(map[string]int)
	first := make(map[string]int)
	var order []string
	for _, occ := range found {
		if _, ok := counts[occ.term]; !ok {
			first[occ.term] = occ.pos
			order = append(order, occ.term)
		}
		counts[occ.term]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return first[order[i]] < first[order[j]]
	})
	return order
}

// ExtractKeywords builds the tiered, ranked keyword set for a job description.
// Every keyword is in normalized form. A non-positive topN selects DefaultTopN.
func ExtractKeywords(jobText string, topN int) types.KeywordSet {
	if topN <= 0 {
		topN = DefaultTopN
	}

	set := types.KeywordSet{All: []string{}, Must: []string{}, Nice: []string{}}
	if strings.TrimSpace(jobText) == "" {
		return set
	}

	found := scanTerms(jobText)
	ranked := rankTerms(found)
	terms := make(map[string]bool, len(ranked))
	for _, t := range ranked {
		terms[t] = true
	}

	industry := inferIndustry(terms)
	industryTerms := make(map[string]bool)
	if industry != nil {
		for _, kw := range industry.Keywords {
			industryTerms[kw] = true
		}
		set.Industry = industry
	}
	inIndustry := func(term string) bool {
		return len(industryTerms) > 0 && hasTermVariant(industryTerms, term)
	}

	head := ranked
	if len(head) > topN {
		head = head[:topN]
	}
	inHead := make(map[string]bool, len(head))
	for _, t := range head {
		inHead[t] = true
	}

	lower := strings.ToLower(jobText)
	candidates := missingCritical(lower, inHead)
	for _, t := range ranked {
		if inIndustry(t) {
			candidates = append(candidates, t)
		}
	}
	candidates = append(candidates, ranked...)

	seen := make(map[string]bool)
	for _, c := range candidates {
		if seen[c] {
			continue
		}
		seen[c] = true
		set.All = append(set.All, c)
		if len(set.All) == topN {
			break
		}
	}

	for _, kw := range set.All {
		if criticalNormalized[kw] || inIndustry(kw) {
			set.Must = append(set.Must, kw)
		} else {
			set.Nice = append(set.Nice, kw)
		}
	}

	return set
}

// missingCritical returns critical terms written verbatim in the text but absent from ranked,
// ordered by where they first appear
func missingCritical(lower string, ranked map[string]bool) []string {
	type hit struct {
		term string
		pos  int
	}
	var hits []hit
	seen := make(map[string]bool)
	for _, p := range criticalPatterns {
		if ranked[p.term] || seen[p.term] {
			continue
		}
		loc := p.re.FindStringIndex(lower)
		if loc == nil {
			continue
		}
		seen[p.term] = true
		hits = append(hits, hit{term: p.term, pos: loc[0]})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })
	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.term)
	}
	return out
}
