package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-guard/internal/llm"
)

const testResume = `Jane Doe
jane@example.com | 555-123-4567

SUMMARY
Backend engineer with eight years of experience building payment systems.

EXPERIENCE
Senior Software Engineer — Globex Corporation — Remote — Jan 2020 – Present
• Built payment APIs in Go
• Led migration to Kubernetes
Software Engineer at Initech (2016 - 2019)
- Maintained billing services

SKILLS
Go, Python, PostgreSQL, Kubernetes; Docker | AWS

EDUCATION
B.S. Computer Science, State University, 2016
`

const testJob = `Senior Backend Engineer

We are looking for an engineer to build payment APIs.
Requirements:
- Strong experience with Go and Kubernetes
- PostgreSQL and Terraform
Nice to have: Kafka, GraphQL`

const testTailored = `{
  "summary": "Backend engineer with eight years of experience building payment systems.",
  "experience": [
    {
      "company": "Globex Corporation",
      "role": "Senior Software Engineer",
      "dates": "Jan 2020 – Present",
      "bullets": ["Built payment APIs in Go", "Led migration to Kubernetes"]
    },
    {
      "company": "Initech",
      "role": "Software Engineer",
      "dates": "2016 - 2019",
      "bullets": ["Maintained billing services"]
    }
  ],
  "skills_section": ["Go", "Kubernetes", "PostgreSQL"]
}`

const testInventedTailored = `{
  "summary": "Backend engineer with eight years of experience building payment systems.",
  "experience": [
    {
      "company": "Hooli",
      "role": "Chief Technology Officer",
      "bullets": ["Scaled the engineering organization to 500 engineers"]
    }
  ],
  "skills_section": ["Go", "Kubernetes", "PostgreSQL"]
}`

// writeFile writes content to name inside dir and returns the path
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// runCLI executes the command tree in-process and returns stdout and stderr
func runCLI(t *testing.T, deps tailorDeps, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmdWith(deps)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// scriptedClient returns canned responses in order, repeating the last one
type scriptedClient struct {
	responses []string
	prompts   []string
	closed    bool
}

func (c *scriptedClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return c.GenerateJSON(ctx, prompt, tier)
}

func (c *scriptedClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	c.prompts = append(c.prompts, prompt)
	i := len(c.prompts) - 1
	if i >= len(c.responses) {
		i = len(c.responses) - 1
	}
	return c.responses[i], nil
}

func (c *scriptedClient) GetModel(llm.ModelTier) string { return "test-model" }

func (c *scriptedClient) Close() error {
	c.closed = true
	return nil
}

// noSleep records requested delays without waiting
type noSleep struct {
	delays []time.Duration
}

func (s *noSleep) Sleep(_ context.Context, d time.Duration) error {
	s.delays = append(s.delays, d)
	return nil
}
