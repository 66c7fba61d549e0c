package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKeyword(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"AWS to amazon web services", "AWS", "amazon web services"},
		{"Amazon Web Services stays canonical", "Amazon Web Services", "amazon web services"},
		{"ML to machine learning", "ML", "machine learning"},
		{"Node.js to nodejs", "Node.js", "nodejs"},
		{"node to nodejs", "node", "nodejs"},
		{"NodeJS to nodejs", "NodeJS", "nodejs"},
		{"K8s to kubernetes", "K8s", "kubernetes"},
		{"Golang to go", "Golang", "go"},
		{"js to javascript", "JS", "javascript"},
		{"APIs to api", "APIs", "api"},
		{"REST API to api", "REST API", "api"},
		{"plural resolved after de-pluralization", "Pythons", "python"},
		{"plural of compound name", "MongoDBs", "mongodb"},
		{"C++ keeps symbols", "C++", "c++"},
		{"C# keeps symbols", "C#", "c#"},
		{".NET spelled out", ".NET", "dotnet"},
		{"CI/CD separators collapse", "CI/CD", "cicd"},
		{"unknown word returned cleaned", "  Distributed   Systems! ", "distributed systems"},
		{"unknown plural left alone", "Databases", "databases"},
		{"empty string", "", ""},
		{"punctuation only", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeKeyword(tt.input))
		})
	}
}

func TestNormalizeKeyword_Idempotent(t *testing.T) {
	inputs := []string{"AWS", "Node.js", "k8s", "C++", ".NET", "Front-End", "e-commerce", "Databases", "REST APIs", "sklearn"}
	for k, v := range keywordSynonyms {
		inputs = append(inputs, k, v)
	}

	for _, input := range inputs {
		once := NormalizeKeyword(input)
		assert.Equal(t, once, NormalizeKeyword(once), "normalizing %q twice should be stable", input)
	}
}

func TestNormalizeAll(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "deduplicates by normalized form",
			input:    []string{"AWS", "aws", "Amazon Web Services", "Docker"},
			expected: []string{"amazon web services", "docker"},
		},
		{
			name:     "drops empty entries",
			input:    []string{"", "  ", "Go"},
			expected: []string{"go"},
		},
		{
			name:     "empty input",
			input:    []string{},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeAll(tt.input))
		})
	}
}
