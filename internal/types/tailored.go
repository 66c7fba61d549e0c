// Package types provides type definitions for structured data used throughout the resume-guard system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// TailoredRole is one experience entry of a tailored resume
type TailoredRole struct {
	Company string   `json:"company"`
	Role    string   `json:"role"`
	Dates   string   `json:"dates,omitempty"`
	Bullets []string `json:"bullets"`
}

// TailoredResume is the strict object a generated rewrite must conform to
type TailoredResume struct {
	Summary                  string         `json:"summary"`
	Experience               []TailoredRole `json:"experience"`
	SkillsSection            []string       `json:"skills_section"`
	NotesToUser              string         `json:"notes_to_user,omitempty"`
	SkillsMatched            []string       `json:"skills_matched,omitempty"`
	SkillsMissingButRelevant []string       `json:"skills_missing_but_relevant,omitempty"`

	// Confidence is 1 for validated output and 0 for output reconstructed by fallback
	Confidence float64 `json:"-"`
}

// Roles converts the tailored experience into Role values for integrity and honesty checks
func (t TailoredResume) Roles() []Role {
	roles := make([]Role, 0, len(t.Experience))
	for _, e := range t.Experience {
		roles = append(roles, Role{
			Company: e.Company,
			Role:    e.Role,
			Dates:   e.Dates,
			Bullets: append([]string(nil), e.Bullets...),
		})
	}
	return roles
}

// Document converts the tailored resume into a ResumeDocument for coverage scoring
func (t TailoredResume) Document() ResumeDocument {
	doc := NewResumeDocument()
	doc.Summary = t.Summary
	doc.Skills = append(doc.Skills, t.SkillsSection...)
	doc.Experience = t.Roles()
	return doc
}
