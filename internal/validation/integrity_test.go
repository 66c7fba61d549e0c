package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-guard/internal/types"
)

func originalRoles() []types.Role {
	return []types.Role{
		{
			Company: "Acme Corp",
			Role:    "Software Engineer",
			Dates:   "2019 - 2022",
			Bullets: []string{
				"Built APIs with Node",
				"Increased sales by 10%",
				"Maintained the billing service",
			},
		},
	}
}

func TestCheckIntegrity(t *testing.T) {
	tests := []struct {
		name       string
		tailored   []types.Role
		jdKeywords []string
		ok         bool
		issues     []string
	}{
		{
			name:     "unchanged roles",
			tailored: originalRoles(),
			ok:       true,
		},
		{
			name: "safe rewording",
			tailored: []types.Role{{
				Company: "Acme Corp",
				Role:    "Software Engineer",
				Bullets: []string{"Developed REST APIs using Node.js"},
			}},
			ok: true,
		},
		{
			name: "inflated metric",
			tailored: []types.Role{{
				Company: "Acme Corp",
				Role:    "Software Engineer",
				Bullets: []string{"Increased sales by 45%"},
			}},
			ok:     false,
			issues: []string{"forbidden content"},
		},
		{
			name: "invented role",
			tailored: []types.Role{{
				Company: "Globex",
				Role:    "Staff Engineer",
				Bullets: []string{"Built APIs with Node"},
			}},
			ok:     false,
			issues: []string{`role "Staff Engineer" at "Globex" does not exist in the original resume`},
		},
		{
			name: "job keywords alone add no issues",
			tailored: []types.Role{{
				Company: "Acme Corp",
				Role:    "Software Engineer",
				Bullets: []string{"Maintained the billing service"},
			}},
			jdKeywords: []string{"Kafka"},
			ok:         true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := CheckIntegrity(originalRoles(), tt.tailored, tt.jdKeywords)
			assert.Equal(t, tt.ok, report.OK, "issues: %v", report.Issues)
			require.Len(t, report.Issues, len(tt.issues))
			for i, want := range tt.issues {
				assert.Contains(t, report.Issues[i], want)
			}
		})
	}
}

func TestCheckIntegrity_NewToolIsForbidden(t *testing.T) {
	tailored := []types.Role{{
		Company: "Acme Corp",
		Role:    "Software Engineer",
		Bullets: []string{"Built APIs with Node and Kafka"},
	}}

	report := CheckIntegrity(originalRoles(), tailored, []string{"kafka"})

	// the bullet adds a tool its best original bullet does not mention
	assert.False(t, report.OK)
	require.Len(t, report.Issues, 1)
	assert.Contains(t, report.Issues[0], "Software Engineer at Acme Corp")
	assert.Contains(t, report.Issues[0], "Kafka")
}

func TestCheckIntegrity_OneIssuePerForbiddenBullet(t *testing.T) {
	tailored := []types.Role{{
		Company: "Acme Corp",
		Role:    "Software Engineer",
		Bullets: []string{"Increased sales by 45% with Salesforce and HubSpot"},
	}}

	report := CheckIntegrity(originalRoles(), tailored, nil)

	assert.False(t, report.OK)
	assert.Len(t, report.Issues, 1)
}

func TestCheckIntegrity_IdenticalBulletAmongSameTermBullets(t *testing.T) {
	original := []types.Role{{
		Company: "Acme",
		Role:    "Sales Lead",
		Bullets: []string{"Increased sales by 10%", "Increased sales by 45%"},
	}}
	tailored := []types.Role{{
		Company: "Acme",
		Role:    "Sales Lead",
		Bullets: []string{"Increased sales by 45%", "Increased quarterly sales by 45%"},
	}}

	report := CheckIntegrity(original, tailored, nil)

	assert.True(t, report.OK, report.Issues)
	assert.Empty(t, report.Issues)
}

func TestCheckIntegrity_Empty(t *testing.T) {
	report := CheckIntegrity(nil, nil, nil)
	assert.True(t, report.OK)
	assert.NotNil(t, report.Issues)
}

func TestAllowedTerms(t *testing.T) {
	allowed := allowedTerms(originalRoles(), []string{"Kubernetes", "kubernetes"})

	assert.Contains(t, allowed, "kubernetes")
	assert.Contains(t, allowed, "acme")
	assert.Contains(t, allowed, "api")
	assert.Contains(t, allowed, "nodejs")
	assert.Equal(t, "kubernetes", allowed[0])
}
