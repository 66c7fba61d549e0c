// Package types provides type definitions for structured data used throughout the resume-guard system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// PlaceholderBullet is used for roles whose role line was recognized but carried no body text
const PlaceholderBullet = "Details not provided"

// ResumeDocument is the structured snapshot of one uploaded resume
type ResumeDocument struct {
	Summary            string    `json:"summary"`
	Skills             []string  `json:"skills"`
	Experience         []Role    `json:"experience"`
	Education          []string  `json:"education"`
	Certifications     []string  `json:"certifications"`
	Projects           []Project `json:"projects"`
	AdditionalSections []Section `json:"additional_sections"`
}

// Role is a single position held, with its bullets
type Role struct {
	Company string   `json:"company"`
	Role    string   `json:"role"`
	Dates   string   `json:"dates,omitempty"`
	Bullets []string `json:"bullets"`
}

// Key returns the identity used to match a role across document versions.
// The key is exact and is not normalized.
func (r Role) Key() string {
	return r.Company + "|" + r.Role
}

// Label returns a human-readable description of the role for issue messages
func (r Role) Label() string {
	switch {
	case r.Role != "" && r.Company != "":
		return r.Role + " at " + r.Company
	case r.Role != "":
		return r.Role
	case r.Company != "":
		return r.Company
	default:
		return "(unnamed role)"
	}
}

// Project is a named project with bullets
type Project struct {
	Name    string   `json:"name"`
	Bullets []string `json:"bullets"`
}

// Section is a section whose heading was not recognized, preserved verbatim
type Section struct {
	Heading string   `json:"heading"`
	Lines   []string `json:"lines"`
}

// NewResumeDocument returns an empty document with all slices initialized
func NewResumeDocument() ResumeDocument {
	return ResumeDocument{
		Skills:             []string{},
		Experience:         []Role{},
		Education:          []string{},
		Certifications:     []string{},
		Projects:           []Project{},
		AdditionalSections: []Section{},
	}
}

// RoleIndex maps Role.Key() to the role for lookup by identity
func RoleIndex(roles []Role) map[string]Role {
	index := make(map[string]Role, len(roles))
	for _, r := range roles {
		if _, exists := index[r.Key()]; !exists {
			index[r.Key()] = r
		}
	}
	return index
}
