package prompts

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/resume-guard/internal/types"
)

// TailoringInput is everything the tailoring prompt quotes
type TailoringInput struct {
	Resume     types.ResumeDocument
	Keywords   types.KeywordSet
	Missing    []string
	JobPosting string // already quoted for the prompt
	Schema     string
}

// Tailoring renders the resume-tailoring prompt
func Tailoring(in TailoringInput) (string, error) {
	resumeJSON, err := json.MarshalIndent(in.Resume, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode resume for prompt: %w", err)
	}

	prompt, err := Render(TailoringFile, KeyTailorResume, map[string]string{
		"Keywords":   strings.Join(in.Keywords.All, ", "),
		"Schema":     in.Schema,
		"Resume":     string(resumeJSON),
		"JobPosting": in.JobPosting,
	})
	if err != nil {
		return "", err
	}

	if len(in.Missing) > 0 {
		note, err := Render(TailoringFile, KeyMissingKeywordsNote, map[string]string{
			"Missing": strings.Join(in.Missing, ", "),
		})
		if err != nil {
			return "", err
		}
		prompt += "\n\n" + note
	}
	return prompt, nil
}
