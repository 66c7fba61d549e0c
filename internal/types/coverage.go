// Package types provides type definitions for structured data used throughout the resume-guard system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// IndustryCoverage reports coverage of the inferred industry's keyword list
type IndustryCoverage struct {
	Label    string   `json:"label"`
	Coverage float64  `json:"coverage"`
	Matched  []string `json:"matched"`
	Missing  []string `json:"missing"`
}

// CoverageStats reports how much of a keyword set a resume covers
type CoverageStats struct {
	Coverage     float64           `json:"coverage"`
	Matched      []string          `json:"matched"`
	Missing      []string          `json:"missing"`
	MustCoverage float64           `json:"must_coverage"`
	NiceCoverage float64           `json:"nice_coverage"`
	MustMatched  []string          `json:"must_matched"`
	MustMissing  []string          `json:"must_missing"`
	NiceMatched  []string          `json:"nice_matched"`
	NiceMissing  []string          `json:"nice_missing"`
	Warnings     []string          `json:"warnings"`
	Industry     *IndustryCoverage `json:"industry,omitempty"`
}

// ComparisonStats describes how coverage changed between an original and a tailored resume
type ComparisonStats struct {
	CoverageDelta    float64  `json:"coverage_delta"`
	MustDelta        float64  `json:"must_delta"`
	NiceDelta        float64  `json:"nice_delta"`
	IndustryDelta    float64  `json:"industry_delta"`
	MatchedGain      []string `json:"matched_gain"`
	Regressions      []string `json:"regressions"`
	ResolvedMissing  []string `json:"resolved_missing"`
	RemainingMissing []string `json:"remaining_missing"`
}
