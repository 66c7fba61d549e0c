package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractKeyTerms(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "normalizes and drops stopwords",
			input:    "Built APIs with Node",
			expected: []string{"built", "api", "nodejs"},
		},
		{
			name:     "dotted names survive",
			input:    "Developed REST APIs using Node.js",
			expected: []string{"developed", "rest", "api", "nodejs"},
		},
		{
			name:     "deduplicates synonyms",
			input:    "AWS and aws deployments on AWS.",
			expected: []string{"amazon web services", "deployments"},
		},
		{
			name:     "short tokens ignored",
			input:    "Go to it",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractKeyTerms(tt.input))
		})
	}
}

func TestIsSafeExpansion(t *testing.T) {
	tests := []struct {
		name      string
		original  []string
		candidate string
		expected  bool
	}{
		{"expansion table licenses restful", []string{"api"}, "RESTful", true},
		{"expansion table licenses http endpoints", []string{"APIs"}, "HTTP endpoints", true},
		{"key term fuzzy matches original", []string{"nodejs"}, "Node.js", true},
		{"unrelated tool", []string{"python"}, "Kubernetes", false},
		{"no original terms", nil, "REST", false},
		{"empty candidate", []string{"api"}, "  ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsSafeExpansion(tt.original, tt.candidate))
		})
	}
}

func TestToolLikeTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "capitalized and symbol tokens",
			input:    "Developed REST APIs using Node.js and C++",
			expected: []string{"REST", "APIs", "Node.js", "C++"},
		},
		{
			name:     "sentence-initial word skipped",
			input:    "Managed AWS infrastructure",
			expected: []string{"AWS"},
		},
		{
			name:     "plain lowercase text",
			input:    "Led a team of five",
			expected: []string{},
		},
		{
			name:     "numbers are not tools",
			input:    "improved latency by 10.5% across 3-4 regions",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToolLikeTokens(tt.input))
		})
	}
}
