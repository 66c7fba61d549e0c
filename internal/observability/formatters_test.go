package observability

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-guard/internal/repair"
	"github.com/jonathan/resume-guard/internal/types"
)

func TestPrintDocument(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	doc := types.NewResumeDocument()
	doc.Summary = "Backend engineer"
	doc.Skills = []string{"Go", "SQL"}
	doc.Experience = []types.Role{{Company: "Acme Corp", Role: "Engineer", Dates: "2019 - 2022", Bullets: []string{"Built APIs"}}}

	p.PrintDocument(&doc)
	output := buf.String()

	assert.Contains(t, output, "PARSED RESUME")
	assert.Contains(t, output, "Engineer at Acme Corp")
	assert.Contains(t, output, "2019 - 2022")
	assert.Contains(t, output, "Skills: 2")
}

func TestPrintKeywords(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintKeywords(&types.KeywordSet{
		All:      []string{"payments", "kafka", "mentoring"},
		Must:     []string{"payments", "kafka"},
		Nice:     []string{"mentoring"},
		Industry: &types.Industry{Label: "fintech", Matches: 3},
	})
	output := buf.String()

	assert.Contains(t, output, "JOB KEYWORDS")
	assert.Contains(t, output, "fintech (3 matches)")
	assert.Contains(t, output, "kafka")
	assert.Contains(t, output, "mentoring")
}

func TestPrintCoverage(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCoverage("original coverage", &types.CoverageStats{
		Coverage:     0.5,
		MustCoverage: 0.25,
		MustMissing:  []string{"kafka", "grpc"},
		Warnings:     []string{"no Skills section"},
	})
	output := buf.String()

	assert.Contains(t, output, "ORIGINAL COVERAGE")
	assert.Contains(t, output, "50.0%")
	assert.Contains(t, output, "grpc")
	assert.Contains(t, output, "no Skills section")
}

func TestPrintComparison(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintComparison(&types.ComparisonStats{
		CoverageDelta: 0.2,
		MatchedGain:   []string{"api"},
		Regressions:   []string{"sql"},
	})
	output := buf.String()

	assert.Contains(t, output, "COVERAGE COMPARISON")
	assert.Contains(t, output, "+20.0 pts")
	assert.Contains(t, output, "api")
	assert.Contains(t, output, "Lost")
}

func TestPrintHonesty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	flag := types.HonestyResult{Role: "Engineer at Acme", Bullet: "Increased sales by 45%", Score: 0.5, Reason: "new metric value"}
	p.PrintHonesty(&types.HonestyReport{Flags: []types.HonestyResult{flag}, Results: []types.HonestyResult{flag}})
	output := buf.String()

	assert.Contains(t, output, "HONESTY FLAGS")
	assert.Contains(t, output, "Flagged 1 of 1")
	assert.Contains(t, output, "new metric value")

	buf.Reset()
	p.PrintHonesty(&types.HonestyReport{Results: []types.HonestyResult{{}}})
	assert.Contains(t, buf.String(), "ALL 1 BULLETS SUPPORTED")
}

func TestPrintIntegrity(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintIntegrity(&types.IntegrityReport{OK: true, Issues: []string{}})
	assert.Contains(t, buf.String(), "NO INTEGRITY ISSUES FOUND")

	buf.Reset()
	p.PrintIntegrity(&types.IntegrityReport{Issues: []string{`role "X" at "Y" does not exist in the original resume`}})
	assert.Contains(t, buf.String(), "INTEGRITY ISSUES")
	assert.Contains(t, buf.String(), "Found 1 issues")
}

func TestPrintAttempts(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	_, attempt, err := repair.ParseAndValidate("not json", 1)
	assert.True(t, errors.As(err, new(*repair.ParseError)))

	p.PrintAttempts([]repair.Attempt{attempt})
	output := buf.String()

	assert.Contains(t, output, "GENERATION ATTEMPTS")
	assert.Contains(t, output, string(repair.StateCleaned))
	assert.Contains(t, output, attempt.ID.String())
}

func TestPrint_NilInputs(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintDocument(nil)
	p.PrintKeywords(nil)
	p.PrintCoverage("x", nil)
	p.PrintComparison(nil)
	p.PrintHonesty(nil)
	p.PrintAttempts(nil)

	assert.Empty(t, buf.String())
}

func TestClip(t *testing.T) {
	assert.Equal(t, "short", clip("short", 10))
	assert.Equal(t, "abcdefg...", clip("abcdefghijklmnop", 10))
	assert.Equal(t, "ééééééé...", clip("éééééééééééé", 10))
}
