// Package types provides type definitions for structured data used throughout the resume-guard system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// HonestyStatus classifies a tailored bullet
type HonestyStatus string

const (
	// StatusSupported means the bullet is backed by the original resume
	StatusSupported HonestyStatus = "supported"
	// StatusFlagged means the bullet is not sufficiently backed or adds forbidden content
	StatusFlagged HonestyStatus = "flagged"
)

// HonestyResult is the classification of one tailored bullet
type HonestyResult struct {
	Role    string        `json:"role"`
	Bullet  string        `json:"bullet"`
	Score   float64       `json:"score"`
	Backing []string      `json:"backing"`
	Overlap []string      `json:"overlap"`
	Status  HonestyStatus `json:"status"`
	Reason  string        `json:"reason,omitempty"`
}

// HonestyReport holds every classified bullet and the flagged subset
type HonestyReport struct {
	Flags   []HonestyResult `json:"flags"`
	Results []HonestyResult `json:"results"`
}

// IntegrityReport is the outcome of comparing tailored experience against the original
type IntegrityReport struct {
	OK     bool     `json:"ok"`
	Issues []string `json:"issues"`
}
