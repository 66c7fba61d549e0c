// Package types provides type definitions for structured data used throughout the resume-guard system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// IndustryGeneral is the label used when no industry bucket wins
const IndustryGeneral = "general"

// Industry is the industry bucket inferred from a job description
type Industry struct {
	Label    string   `json:"label"`
	Keywords []string `json:"keywords"`
	Matches  int      `json:"matches"`
}

// KeywordSet is the tiered, ranked keyword set extracted from a job description.
// All is rank-ordered; Must and Nice partition All.
type KeywordSet struct {
	All      []string  `json:"all"`
	Must     []string  `json:"must"`
	Nice     []string  `json:"nice"`
	Industry *Industry `json:"industry,omitempty"`
}
