package parsing

import (
	"strings"

	"github.com/jonathan/resume-guard/internal/types"
)

// minIndustryMatches is the fewest bucket keywords a job text must mention for the bucket to win
const minIndustryMatches = 2

// IndustryBucket is a fixed industry label with the keywords that indicate it
type IndustryBucket struct {
	Label    string
	Keywords []string
}

// IndustryBuckets is evaluated in order; on a tie the earlier bucket wins
var IndustryBuckets = []IndustryBucket{
	{Label: "fintech", Keywords: []string{"payments", "banking", "fintech", "trading", "lending", "compliance", "fraud", "ledger", "credit", "risk"}},
	{Label: "healthcare", Keywords: []string{"healthcare", "clinical", "patient", "hipaa", "ehr", "medical", "hospital", "pharma", "telehealth"}},
	{Label: "ecommerce", Keywords: []string{"ecommerce", "retail", "checkout", "marketplace", "inventory", "merchandising", "fulfillment", "shopify"}},
	{Label: "data", Keywords: []string{"machine learning", "data science", "analytics", "etl", "data pipelines", "warehouse", "modeling", "statistics", "spark", "airflow"}},
	{Label: "cloud", Keywords: []string{"amazon web services", "google cloud", "azure", "kubernetes", "docker", "terraform", "cicd", "infrastructure", "observability", "site reliability engineering"}},
	{Label: "security", Keywords: []string{"security", "threat", "vulnerability", "penetration testing", "siem", "incident response", "encryption", "iam", "soc"}},
	{Label: "marketing", Keywords: []string{"marketing", "seo", "campaigns", "brand", "content", "social media", "growth", "crm", "conversion"}},
	{Label: "education", Keywords: []string{"curriculum", "students", "teaching", "learning management", "edtech", "instruction", "classroom"}},
}

// normalizedBuckets caches each bucket's keywords in normalized form
var normalizedBuckets = func() []IndustryBucket {
	out := make([]IndustryBucket, len(IndustryBuckets))
	for i, b := range IndustryBuckets {
		out[i] = IndustryBucket{Label: b.Label, Keywords: NormalizeAll(b.Keywords)}
	}
	return out
}()

// InferIndustry picks the bucket with the most keyword mentions in the job text.
// It returns nil (general) when no bucket reaches minIndustryMatches.
func InferIndustry(jobText string) *types.Industry {
	return inferIndustry(termSet(jobText))
}

func inferIndustry(terms map[string]bool) *types.Industry {
	var best *types.Industry
	for _, bucket := range normalizedBuckets {
		matches := 0
		for _, kw := range bucket.Keywords {
			if hasTermVariant(terms, kw) {
				matches++
			}
		}
		if matches < minIndustryMatches {
			continue
		}
		if best == nil || matches > best.Matches {
			best = &types.Industry{
				Label:    bucket.Label,
				Keywords: append([]string(nil), bucket.Keywords...),
				Matches:  matches,
			}
		}
	}
	return best
}

// termSet returns the normalized tokens and phrases found in text
func termSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, occ := range scanTerms(text) {
		set[occ.term] = true
	}
	return set
}

// hasTermVariant reports whether the set holds the keyword or its simple plural/singular
func hasTermVariant(terms map[string]bool, keyword string) bool {
	if terms[keyword] || terms[keyword+"s"] {
		return true
	}
	return strings.HasSuffix(keyword, "s") && terms[strings.TrimSuffix(keyword, "s")]
}

// IndustryKeywords returns the ranked keywords of the set that belong to its inferred industry
func IndustryKeywords(set types.KeywordSet) []string {
	out := []string{}
	if set.Industry == nil {
		return out
	}
	members := make(map[string]bool, len(set.Industry.Keywords))
	for _, kw := range set.Industry.Keywords {
		members[NormalizeKeyword(kw)] = true
	}
	for _, kw := range set.All {
		if hasTermVariant(members, NormalizeKeyword(kw)) {
			out = append(out, kw)
		}
	}
	return out
}
