package repair

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/resume-guard/internal/types"
)

// textKeys are the object fields tried, in order, when an object stands in for a string
var textKeys = []string{"text", "content", "value", "description", "title"}

// fieldAliases maps each schema field to the keys accepted for it, canonical key first
var fieldAliases = []struct {
	field   string
	aliases []string
}{
	{"summary", []string{"summary", "professional_summary", "profile", "objective"}},
	{"experience", []string{"experience", "work_experience", "roles", "positions"}},
	{"skills_section", []string{"skills_section", "skills", "skill_list"}},
	{"notes_to_user", []string{"notes_to_user", "notes"}},
	{"skills_matched", []string{"skills_matched", "matched_skills"}},
	{"skills_missing_but_relevant", []string{"skills_missing_but_relevant", "missing_skills"}},
}

var (
	roleCompanyKeys = []string{"company", "employer", "organization", "company_name"}
	roleTitleKeys   = []string{"role", "title", "position", "job_title"}
	roleDatesKeys   = []string{"dates", "date", "period", "duration"}
	roleBulletKeys  = []string{"bullets", "highlights", "achievements", "responsibilities", "points"}
)

var (
	// skill lists may be comma separated; bullets may contain commas
	listSplitter   = regexp.MustCompile(`\s*(?:\r?\n|;|\||•|,)\s*`)
	bulletSplitter = regexp.MustCompile(`\s*(?:\r?\n|;|\||•)\s*`)
	leadingGlyph   = regexp.MustCompile(`^(?:[•·▪●◦‣∙*>\-–—]\s*)+`)
)

// coercer converts a decoded value into a TailoredResume, recording each conversion
type coercer struct {
	steps []string
}

func (c *coercer) note(path, format string, args ...any) {
	c.steps = append(c.steps, path+": "+fmt.Sprintf(format, args...))
}

// Coerce converts a near-miss document into the tailored-resume shape. It returns the steps it
// performed; an empty list means the document already had the right shape.
func Coerce(v Value) (types.TailoredResume, []string, error) {
	c := &coercer{}
	resume, err := c.resume(v)
	return resume, c.steps, err
}

func (c *coercer) resume(v Value) (types.TailoredResume, error) {
	if v.Kind == KindArray && len(v.Items) == 1 && v.Items[0].Kind == KindObject {
		c.note("(root)", "unwrapped single-element array")
		v = v.Items[0]
	}
	if v.Kind != KindObject {
		return types.TailoredResume{}, &CoercionError{Message: fmt.Sprintf("top-level value is %s, not an object", v.Kind)}
	}

	fields := c.resolveFields(v)
	resume := types.TailoredResume{
		Experience:    []types.TailoredRole{},
		SkillsSection: []string{},
	}

	if f, ok := fields["summary"]; ok {
		resume.Summary = c.asString("summary", f)
	}
	if f, ok := fields["experience"]; ok {
		resume.Experience = c.asRoles("experience", f)
	} else {
		c.note("experience", "missing, using empty list")
	}
	if f, ok := fields["skills_section"]; ok {
		resume.SkillsSection = c.asStringList("skills_section", f, listSplitter)
	} else {
		c.note("skills_section", "missing, using empty list")
	}
	if f, ok := fields["notes_to_user"]; ok {
		resume.NotesToUser = c.asString("notes_to_user", f)
	}
	if f, ok := fields["skills_matched"]; ok {
		resume.SkillsMatched = c.asStringList("skills_matched", f, listSplitter)
	}
	if f, ok := fields["skills_missing_but_relevant"]; ok {
		resume.SkillsMissingButRelevant = c.asStringList("skills_missing_but_relevant", f, listSplitter)
	}

	return resume, nil
}

// resolveFields maps schema fields to values, renaming aliases and dropping unknown keys
func (c *coercer) resolveFields(v Value) map[string]Value {
	owner := make(map[string]string)
	for _, fa := range fieldAliases {
		for _, alias := range fa.aliases {
			owner[alias] = fa.field
		}
	}

	fields := make(map[string]Value)
	for _, key := range v.Keys {
		field, known := owner[key]
		if !known {
			c.note("(root)", "dropped unknown key %q", key)
			continue
		}
		if _, taken := fields[field]; taken {
			c.note("(root)", "dropped duplicate key %q for %q", key, field)
			continue
		}
		if key != field {
			c.note("(root)", "renamed %q to %q", key, field)
		}
		fields[field] = v.Fields[key]
	}
	return fields
}

func (c *coercer) asString(path string, v Value) string {
	s, ok := stringOf(v)
	if v.Kind != KindString {
		if ok {
			c.note(path, "converted %s to string", v.Kind)
		} else {
			c.note(path, "replaced %s with empty string", v.Kind)
		}
	}
	return s
}

// stringOf extracts a string from any value kind
func stringOf(v Value) (string, bool) {
	switch v.Kind {
	case KindString:
		s := strings.TrimSpace(v.Str)
		return s, s != ""
	case KindNumber:
		return v.Num.String(), true
	case KindBool:
		return strconv.FormatBool(v.Bool), true
	case KindObject:
		for _, key := range textKeys {
			if f, ok := v.Fields[key]; ok && f.Kind == KindString && strings.TrimSpace(f.Str) != "" {
				return strings.TrimSpace(f.Str), true
			}
		}
		for _, key := range v.Keys {
			if f := v.Fields[key]; f.Kind == KindString && strings.TrimSpace(f.Str) != "" {
				return strings.TrimSpace(f.Str), true
			}
		}
	case KindArray:
		parts := make([]string, 0, len(v.Items))
		for _, item := range v.Items {
			if s, ok := stringOf(item); ok {
				parts = append(parts, s)
			}
		}
		s := strings.Join(parts, " ")
		return s, s != ""
	}
	return "", false
}

func (c *coercer) asStringList(path string, v Value, splitter *regexp.Regexp) []string {
	out := []string{}
	switch v.Kind {
	case KindArray:
		converted := 0
		for _, item := range v.Items {
			if item.Kind != KindString {
				converted++
			}
			if s, ok := stringOf(item); ok {
				out = append(out, cleanItem(s))
			}
		}
		if converted > 0 {
			c.note(path, "converted %d non-string items", converted)
		}
		if dropped := len(v.Items) - len(out); dropped > 0 {
			c.note(path, "dropped %d empty items", dropped)
		}
	case KindString:
		for _, part := range splitter.Split(v.Str, -1) {
			if part = cleanItem(part); part != "" {
				out = append(out, part)
			}
		}
		c.note(path, "split delimited string into %d items", len(out))
	case KindNull:
		c.note(path, "null replaced with empty list")
	default:
		if s, ok := stringOf(v); ok {
			out = append(out, cleanItem(s))
		}
		c.note(path, "wrapped %s as a single item", v.Kind)
	}
	return out
}

func cleanItem(s string) string {
	return strings.TrimSpace(leadingGlyph.ReplaceAllString(strings.TrimSpace(s), ""))
}

func (c *coercer) asRoles(path string, v Value) []types.TailoredRole {
	roles := []types.TailoredRole{}
	switch v.Kind {
	case KindArray:
		for i, item := range v.Items {
			if role, ok := c.asRole(fmt.Sprintf("%s.%d", path, i), item); ok {
				roles = append(roles, role)
			}
		}
	case KindObject:
		c.note(path, "wrapped single object as list")
		if role, ok := c.asRole(path+".0", v); ok {
			roles = append(roles, role)
		}
	default:
		c.note(path, "replaced %s with empty list", v.Kind)
	}
	return roles
}

func (c *coercer) asRole(path string, v Value) (types.TailoredRole, bool) {
	if v.Kind != KindObject {
		c.note(path, "dropped %s entry", v.Kind)
		return types.TailoredRole{}, false
	}

	role := types.TailoredRole{Bullets: []string{}}
	if f, ok := c.roleField(path, v, roleCompanyKeys); ok {
		role.Company = c.asString(path+".company", f)
	}
	if f, ok := c.roleField(path, v, roleTitleKeys); ok {
		role.Role = c.asString(path+".role", f)
	}
	if f, ok := c.roleField(path, v, roleDatesKeys); ok && f.Kind != KindNull {
		role.Dates = c.asString(path+".dates", f)
	}
	if f, ok := c.roleField(path, v, roleBulletKeys); ok {
		role.Bullets = c.asStringList(path+".bullets", f, bulletSplitter)
	} else {
		c.note(path+".bullets", "missing, using empty list")
	}
	return role, true
}

func (c *coercer) roleField(path string, v Value, keys []string) (Value, bool) {
	for _, key := range keys {
		if f, ok := v.Fields[key]; ok {
			if key != keys[0] {
				c.note(path, "renamed %q to %q", key, keys[0])
			}
			return f, true
		}
	}
	return Value{}, false
}
