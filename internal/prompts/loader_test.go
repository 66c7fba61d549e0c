package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-guard/internal/types"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		key      string
		wantErr  string
	}{
		{name: "tailoring prompt", filename: TailoringFile, key: KeyTailorResume},
		{name: "missing keywords note", filename: TailoringFile, key: KeyMissingKeywordsNote},
		{name: "unknown file", filename: "nonexistent.json", key: "x", wantErr: "failed to read prompt file"},
		{name: "unknown key", filename: TailoringFile, key: "nonexistent-key", wantErr: "not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ClearCache()
			prompt, err := Get(tt.filename, tt.key)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, prompt)
		})
	}
}

func TestFormat(t *testing.T) {
	result := Format("Hello {{.Name}}, welcome to {{.Company}}!", map[string]string{
		"Name":    "Alice",
		"Company": "Acme Corp",
	})
	assert.Equal(t, "Hello Alice, welcome to Acme Corp!", result)

	assert.Equal(t, "Hi {{.Missing}}", Format("Hi {{.Missing}}", nil))
}

func TestRender_UnfilledPlaceholder(t *testing.T) {
	_, err := Render(TailoringFile, KeyTailorResume, map[string]string{"Keywords": "go"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unfilled placeholder")
}

func TestTailoring(t *testing.T) {
	doc := types.NewResumeDocument()
	doc.Summary = "Backend engineer"
	doc.Experience = []types.Role{{Company: "Acme", Role: "Engineer", Bullets: []string{"Built APIs with Node"}}}

	prompt, err := Tailoring(TailoringInput{
		Resume:     doc,
		Keywords:   types.KeywordSet{All: []string{"kafka", "api"}},
		Missing:    []string{"kafka"},
		JobPosting: "[BEGIN QUOTED JOB POSTING]\nWe use Kafka.\n[END QUOTED JOB POSTING]",
		Schema:     `{"type": "object"}`,
	})
	require.NoError(t, err)

	assert.Contains(t, prompt, "kafka, api")
	assert.Contains(t, prompt, `"company": "Acme"`)
	assert.Contains(t, prompt, `{"type": "object"}`)
	assert.Contains(t, prompt, "We use Kafka.")
	assert.Contains(t, prompt, "skills_missing_but_relevant")
	assert.NotContains(t, prompt, "{{.")
	assert.True(t, strings.Index(prompt, "We use Kafka.") < strings.Index(prompt, "skills_missing_but_relevant"))
}

func TestTailoring_NoMissingNote(t *testing.T) {
	prompt, err := Tailoring(TailoringInput{Resume: types.NewResumeDocument(), Schema: "{}"})
	require.NoError(t, err)
	assert.NotContains(t, prompt, "skills_missing_but_relevant if they are relevant")
}
