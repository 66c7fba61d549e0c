// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-guard/internal/repair"
	"github.com/jonathan/resume-guard/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// printBanner prints a single-line box
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBanner(text string) {
	fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, text)
	fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
}

// clip shortens s to at most n runes
func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}

// writeList writes up to limit items with a "... and N more" tail
func writeList(sb *strings.Builder, label string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(label + ":\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

// PrintDocument outputs a summary of a parsed resume
func (p *Printer) PrintDocument(doc *types.ResumeDocument) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	if doc.Summary != "" {
		sb.WriteString(fmt.Sprintf("Summary:  %s\n\n", doc.Summary))
	}
	sb.WriteString(fmt.Sprintf("Roles: %d   Skills: %d   Projects: %d\n",
		len(doc.Experience), len(doc.Skills), len(doc.Projects)))
	sb.WriteString(fmt.Sprintf("Education: %d   Certifications: %d   Other sections: %d\n\n",
		len(doc.Education), len(doc.Certifications), len(doc.AdditionalSections)))

	count := min(len(doc.Experience), maxItemsToShow)
	for i := 0; i < count; i++ {
		role := doc.Experience[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, role.Label()))
		if role.Dates != "" {
			sb.WriteString(fmt.Sprintf("    %s\n", role.Dates))
		}
		sb.WriteString(fmt.Sprintf("    %d bullets\n", len(role.Bullets)))
	}
	if len(doc.Experience) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more roles\n", len(doc.Experience)-maxItemsToShow))
	}

	p.printBox("PARSED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintKeywords outputs the tiered keyword set of a job description
func (p *Printer) PrintKeywords(set *types.KeywordSet) {
	if set == nil {
		return
	}

	var sb strings.Builder
	label := types.IndustryGeneral
	if set.Industry != nil {
		label = fmt.Sprintf("%s (%d matches)", set.Industry.Label, set.Industry.Matches)
	}
	sb.WriteString(fmt.Sprintf("Industry: %s\n", label))
	sb.WriteString(fmt.Sprintf("Keywords: %d (%d must, %d nice)\n\n", len(set.All), len(set.Must), len(set.Nice)))
	writeList(&sb, "Must-have", set.Must, maxItemsToShow*2)
	writeList(&sb, "Nice-to-have", set.Nice, maxItemsToShow)

	p.printBox("JOB KEYWORDS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCoverage outputs keyword coverage of one resume
func (p *Printer) PrintCoverage(title string, stats *types.CoverageStats) {
	if stats == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall: %5.1f%%\n", stats.Coverage*100))
	sb.WriteString(fmt.Sprintf("Must:    %5.1f%%\n", stats.MustCoverage*100))
	sb.WriteString(fmt.Sprintf("Nice:    %5.1f%%\n", stats.NiceCoverage*100))
	if stats.Industry != nil {
		sb.WriteString(fmt.Sprintf("%s: %5.1f%%\n", stats.Industry.Label, stats.Industry.Coverage*100))
	}
	sb.WriteString("\n")
	writeList(&sb, "Missing must-haves", stats.MustMissing, maxItemsToShow)
	for _, w := range stats.Warnings {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", w))
	}

	p.printBox(strings.ToUpper(title), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintComparison outputs the coverage change between the original and tailored resume
func (p *Printer) PrintComparison(cmp *types.ComparisonStats) {
	if cmp == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:  %+6.1f pts\n", cmp.CoverageDelta*100))
	sb.WriteString(fmt.Sprintf("Must:     %+6.1f pts\n", cmp.MustDelta*100))
	sb.WriteString(fmt.Sprintf("Nice:     %+6.1f pts\n", cmp.NiceDelta*100))
	sb.WriteString(fmt.Sprintf("Industry: %+6.1f pts\n\n", cmp.IndustryDelta*100))
	writeList(&sb, "Gained", cmp.MatchedGain, maxItemsToShow)
	writeList(&sb, "Lost", cmp.Regressions, maxItemsToShow)
	writeList(&sb, "Still missing", cmp.RemainingMissing, maxItemsToShow)

	p.printBox("COVERAGE COMPARISON", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintHonesty outputs flagged bullets from an honesty scan
func (p *Printer) PrintHonesty(report *types.HonestyReport) {
	if report == nil {
		return
	}
	if len(report.Flags) == 0 {
		p.printBanner(fmt.Sprintf("✅ ALL %d BULLETS SUPPORTED", len(report.Results)))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Flagged %d of %d bullets:\n\n", len(report.Flags), len(report.Results)))
	for i, f := range report.Flags {
		sb.WriteString(fmt.Sprintf("⚠ %s (score %.2f)\n", f.Role, f.Score))
		sb.WriteString(fmt.Sprintf("  %s\n", f.Bullet))
		sb.WriteString(fmt.Sprintf("  %s\n", f.Reason))
		if i < len(report.Flags)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("HONESTY FLAGS", sb.String())
}

// PrintIntegrity outputs integrity issues
func (p *Printer) PrintIntegrity(report *types.IntegrityReport) {
	if report == nil || report.OK {
		p.printBanner("✅ NO INTEGRITY ISSUES FOUND")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d issues:\n\n", len(report.Issues)))
	for _, issue := range report.Issues {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", issue))
	}

	p.printBox("INTEGRITY ISSUES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAttempts outputs the state reached by each generation attempt
func (p *Printer) PrintAttempts(attempts []repair.Attempt) {
	if len(attempts) == 0 {
		return
	}

	var sb strings.Builder
	for i, a := range attempts {
		sb.WriteString(fmt.Sprintf("#%d  %s\n", a.Number, a.State))
		sb.WriteString(fmt.Sprintf("    id %s\n", a.ID))
		if len(a.Steps) > 0 {
			sb.WriteString(fmt.Sprintf("    %d coercion steps\n", len(a.Steps)))
		}
		if len(a.Errors) > 0 {
			sb.WriteString(fmt.Sprintf("    %s\n", firstLine(a.Errors[len(a.Errors)-1])))
		}
		if i < len(attempts)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("GENERATION ATTEMPTS", strings.TrimSuffix(sb.String(), "\n"))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
