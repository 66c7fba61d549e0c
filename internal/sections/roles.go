package sections

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resume-guard/internal/types"
)

const monthPattern = `\b(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?`

var (
	yearPattern = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)

	// dateRangePattern matches "2020-2023", "Jan 2020 – Present", "03/2019 to 06/2021"
	dateRangePattern = regexp.MustCompile(`(?i)(?:` + monthPattern + `\s+|\d{1,2}/)?(?:19|20)\d{2}\s*(?:-|–|—|to)\s*(?:(?:` + monthPattern + `\s+|\d{1,2}/)?(?:19|20)\d{2}|present|current|now|today)\b`)

	// singleDatePattern matches a lone date such as "June 2021" or "2019"
	singleDatePattern = regexp.MustCompile(`(?i)(?:` + monthPattern + `\s+|\d{1,2}/)?\b(?:19|20)\d{2}\b`)

	roleAtPattern    = regexp.MustCompile(`(?i)\s+at\s+|\s*@\s*`)
	roleSplitPattern = regexp.MustCompile(`\s*[—–|]\s*|\s+-\s+`)
	emptyParens      = regexp.MustCompile(`[(\[]\s*[)\]]`)
)

const roleTrimChars = " ,;|-–—()[]@:"

var companySuffixes = map[string]bool{
	"inc": true, "llc": true, "ltd": true, "corp": true, "corporation": true, "co": true,
	"company": true, "group": true, "technologies": true, "labs": true, "partners": true,
	"holdings": true, "gmbh": true, "plc": true, "bank": true, "agency": true, "studios": true,
	"consulting": true, "ventures": true, "industries": true, "enterprises": true, "limited": true,
}

var titleWords = map[string]bool{
	"engineer": true, "developer": true, "manager": true, "director": true, "lead": true,
	"analyst": true, "designer": true, "consultant": true, "intern": true, "architect": true,
	"scientist": true, "specialist": true, "coordinator": true, "administrator": true,
	"officer": true, "head": true, "vp": true, "president": true, "founder": true,
	"associate": true, "assistant": true, "executive": true, "representative": true,
	"technician": true, "programmer": true, "owner": true, "strategist": true, "writer": true,
	"editor": true, "accountant": true, "nurse": true, "teacher": true, "researcher": true,
	"cto": true, "ceo": true, "sre": true, "principal": true, "staff": true,
}

var actionVerbs = map[string]bool{
	"built": true, "led": true, "developed": true, "designed": true, "implemented": true,
	"managed": true, "created": true, "launched": true, "improved": true, "increased": true,
	"reduced": true, "delivered": true, "drove": true, "owned": true, "wrote": true,
	"migrated": true, "automated": true, "maintained": true, "architected": true,
	"collaborated": true, "mentored": true, "optimized": true, "established": true,
	"partnered": true, "worked": true, "supported": true, "coordinated": true, "spearheaded": true,
	"shipped": true, "analyzed": true, "helped": true, "oversaw": true, "ran": true,
}

// connectorWords are ignored when measuring how capitalized a role line is
var connectorWords = map[string]bool{
	"at": true, "of": true, "and": true, "for": true, "the": true, "in": true, "&": true,
	"de": true, "to": true, "on": true,
}

func lowerWords(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func hasCompanySuffix(text string) bool {
	for _, w := range lowerWords(text) {
		if companySuffixes[w] {
			return true
		}
	}
	return false
}

// endsWithCompanySuffix reports whether the last word of a part is a company suffix ("Acme Corp")
func endsWithCompanySuffix(text string) bool {
	words := lowerWords(text)
	return len(words) > 1 && companySuffixes[words[len(words)-1]]
}

func hasTitleWord(text string) bool {
	for _, w := range lowerWords(text) {
		if titleWords[w] {
			return true
		}
	}
	return false
}

func startsWithActionVerb(text string) bool {
	words := lowerWords(text)
	return len(words) > 0 && actionVerbs[words[0]]
}

// capitalizedShare is the fraction of non-connector words that start with an uppercase letter
func capitalizedShare(text string) float64 {
	total, capitalized := 0, 0
	for _, field := range strings.Fields(text) {
		word := strings.TrimFunc(field, func(r rune) bool { return !unicode.IsLetter(r) })
		if word == "" || connectorWords[strings.ToLower(word)] {
			continue
		}
		total++
		if r, _ := utf8.DecodeRuneInString(word); unicode.IsUpper(r) {
			capitalized++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(capitalized) / float64(total)
}

func hasRoleSeparator(text string) bool {
	return yearPattern.MatchString(text) || roleAtPattern.MatchString(text) ||
		strings.ContainsAny(text, "|—–") || strings.Contains(text, " - ")
}

// IsRoleLine reports whether a line introduces a role: it carries a separator (at, @, -, |,
// an em or en dash, or a year) and reads like a capitalized title rather than a sentence
func IsRoleLine(line string) bool {
	text := strings.TrimSpace(line)
	if text == "" || bulletPattern.MatchString(text) || utf8.RuneCountInString(text) > 120 {
		return false
	}
	if strings.HasSuffix(text, ".") || startsWithActionVerb(text) || !hasRoleSeparator(text) {
		return false
	}
	if r, _ := utf8.DecodeRuneInString(text); !unicode.IsUpper(r) && !unicode.IsDigit(r) {
		return false
	}
	return capitalizedShare(text) >= 0.5 || hasCompanySuffix(text)
}

// extractDates removes the first date range (or lone date) from text and returns both parts
func extractDates(text string) (dates, rest string) {
	loc := dateRangePattern.FindStringIndex(text)
	if loc == nil {
		loc = singleDatePattern.FindStringIndex(text)
	}
	if loc == nil {
		return "", text
	}
	dates = strings.TrimSpace(text[loc[0]:loc[1]])
	rest = text[:loc[0]] + " " + text[loc[1]:]
	rest = emptyParens.ReplaceAllString(rest, " ")
	return dates, cleanRolePart(rest)
}

func cleanRolePart(text string) string {
	return strings.Join(strings.Fields(strings.Trim(strings.TrimSpace(text), roleTrimChars)), " ")
}

func splitParts(text string, sep *regexp.Regexp) []string {
	var parts []string
	for _, p := range sep.Split(text, -1) {
		if p = cleanRolePart(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// ParseRoleLine extracts company, title and dates from a role line.
// The date range is removed first; the rest is split on dashes, "at"/"@", or pipes.
func ParseRoleLine(line string) types.Role {
	dates, rest := extractDates(strings.TrimSpace(line))
	role := types.Role{Dates: dates}

	switch {
	case strings.ContainsAny(rest, "—–"):
		role.Company, role.Role = assignParts(splitParts(rest, roleSplitPattern))
	case roleAtPattern.MatchString(rest):
		parts := roleAtPattern.Split(rest, 2)
		role.Role = cleanRolePart(parts[0])
		role.Company = cleanRolePart(parts[1])
	default:
		role.Company, role.Role = assignParts(splitParts(rest, roleSplitPattern))
	}

	return role
}

// assignParts decides which parts name the company and the title. A part ending in a company
// suffix is the company and a part with a title word is the role; otherwise the order is
// "Role, Company". Parts left over (usually a location) are dropped.
func assignParts(parts []string) (company, role string) {
	if len(parts) == 0 {
		return "", ""
	}

	companyIdx, roleIdx := -1, -1
	for i, p := range parts {
		if endsWithCompanySuffix(p) {
			companyIdx = i
			break
		}
	}
	for i, p := range parts {
		if i != companyIdx && hasTitleWord(p) {
			roleIdx = i
			break
		}
	}

	switch {
	case companyIdx >= 0 && roleIdx >= 0:
		return parts[companyIdx], parts[roleIdx]
	case companyIdx >= 0:
		return parts[companyIdx], ""
	case roleIdx >= 0:
		for i, p := range parts {
			if i != roleIdx {
				return p, parts[roleIdx]
			}
		}
		return "", parts[roleIdx]
	case len(parts) == 1:
		return parts[0], ""
	default:
		return parts[1], parts[0]
	}
}

// parseExperience turns an experience block into roles. Role lines open a role; every other
// line becomes a bullet of the current role, except short title-shaped lines that complete a
// role which has no bullets yet.
func parseExperience(lines []string) []types.Role {
	var roles []types.Role
	cur := -1

	for _, line := range lines {
		text, isBullet := stripBullet(line)
		if text == "" {
			continue
		}

		switch {
		case isBullet:
			if cur < 0 {
				roles = append(roles, types.Role{})
				cur = len(roles) - 1
			}
			roles[cur].Bullets = append(roles[cur].Bullets, text)
		case IsRoleLine(text):
			parsed := ParseRoleLine(text)
			if cur >= 0 && mergeRole(&roles[cur], parsed) {
				continue
			}
			roles = append(roles, parsed)
			cur = len(roles) - 1
		default:
			if cur < 0 {
				roles = append(roles, types.Role{})
				cur = len(roles) - 1
			}
			if len(roles[cur].Bullets) == 0 && fillRoleField(&roles[cur], text) {
				continue
			}
			roles[cur].Bullets = append(roles[cur].Bullets, text)
		}
	}

	return roles
}

// mergeRole completes a role that has no bullets with the fields of the next role line,
// as in a company line followed by a "Title | dates" line
func mergeRole(prev *types.Role, next types.Role) bool {
	if len(prev.Bullets) > 0 {
		return false
	}
	switch {
	case prev.Role == "" && prev.Company != "" && next.Company == "" && next.Role != "":
		prev.Role = next.Role
	case prev.Company == "" && prev.Role != "" && next.Role == "" && next.Company != "":
		prev.Company = next.Company
	case prev.Company != "" && prev.Role == "" && next.Role == "" && next.Company != "" && !endsWithCompanySuffix(next.Company):
		prev.Role = next.Company
	default:
		return false
	}
	if prev.Dates == "" {
		prev.Dates = next.Dates
	}
	return true
}

// fillRoleField uses a short capitalized line as the missing company or title of a role
func fillRoleField(role *types.Role, text string) bool {
	if role.Company != "" && role.Role != "" {
		return false
	}
	if utf8.RuneCountInString(text) > 60 || strings.HasSuffix(text, ".") || startsWithActionVerb(text) {
		return false
	}
	if r, _ := utf8.DecodeRuneInString(text); !unicode.IsUpper(r) {
		return false
	}

	dates, rest := extractDates(text)
	if rest == "" {
		return false
	}
	if role.Role == "" && (hasTitleWord(rest) || role.Company != "") {
		role.Role = rest
	} else if role.Company == "" {
		role.Company = rest
	} else {
		return false
	}
	if role.Dates == "" {
		role.Dates = dates
	}
	return true
}
