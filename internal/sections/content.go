package sections

import "regexp"

// ContentRule switches content segmentation to Kind on the first line matching Pattern
type ContentRule struct {
	Kind    Kind
	Pattern *regexp.Regexp
}

// ContentRules are the minimal indicators used by the last-resort segmentation
var ContentRules = []ContentRule{
	{Kind: KindExperience, Pattern: regexp.MustCompile(`(?i)\b(?:19|20)\d{2}\b|\b(?:engineer|developer|manager|intern|analyst|consultant)\b`)},
	{Kind: KindSkills, Pattern: regexp.MustCompile(`(?i)\b(?:skills|technologies|proficient|tools)\b|^[^.,]+(?:,[^.,]+){2,}$`)},
}

// splitByContent starts in summary and switches section on each indicator hit, ignoring headings
func splitByContent(lines []string) []block {
	var blocks []block
	current := block{kind: KindSummary}

	for _, line := range lines {
		for _, rule := range ContentRules {
			if rule.Kind != current.kind && rule.Pattern.MatchString(line) {
				blocks = append(blocks, current)
				current = block{kind: rule.Kind}
				break
			}
		}
		current.lines = append(current.lines, line)
	}

	return append(blocks, current)
}
