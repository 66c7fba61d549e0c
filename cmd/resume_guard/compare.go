package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-guard/internal/coverage"
	"github.com/jonathan/resume-guard/internal/types"
)

// comparisonOutput is the JSON written by compare
type comparisonOutput struct {
	Original   types.CoverageStats   `json:"original"`
	Tailored   types.CoverageStats   `json:"tailored"`
	Comparison types.ComparisonStats `json:"comparison"`
}

func newCompareCmd(a *app) *cobra.Command {
	var resumePath, tailoredPath, jobPath, outPath string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare keyword coverage of an original and a tailored resume",
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := a.loadResumeAndJob(cmd.Context(), resumePath, jobPath)
			if err != nil {
				return err
			}
			tailored, err := a.loadTailored(tailoredPath)
			if err != nil {
				return err
			}

			result := a.compare(in.resume, tailored.Document(), in.keywords)
			return a.writeJSON(outPath, result)
		},
	}

	cmd.Flags().StringVarP(&resumePath, "resume", "r", "", "Path to original resume file (required)")
	cmd.Flags().StringVarP(&tailoredPath, "tailored", "t", "", "Path to tailored resume JSON (required)")
	cmd.Flags().StringVarP(&jobPath, "job", "j", "", "Path to job description file (required)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")
	_ = cmd.MarkFlagRequired("resume")
	_ = cmd.MarkFlagRequired("tailored")
	_ = cmd.MarkFlagRequired("job")

	return cmd
}

// compare scores both documents against the same keyword set and diffs the results
func (a *app) compare(original, tailored types.ResumeDocument, set types.KeywordSet) comparisonOutput {
	scorer := coverage.NewScorer(a.cfg.FuzzyThreshold)
	result := comparisonOutput{
		Original: scorer.Score(original, set),
		Tailored: scorer.Score(tailored, set),
	}
	result.Comparison = coverage.Compare(result.Original, result.Tailored)

	a.logger.Info("compared coverage",
		"original", result.Original.Coverage,
		"tailored", result.Tailored.Coverage,
		"delta", result.Comparison.CoverageDelta)
	if a.cfg.Verbose {
		a.printer.PrintCoverage("ORIGINAL COVERAGE", &result.Original)
		a.printer.PrintCoverage("TAILORED COVERAGE", &result.Tailored)
		a.printer.PrintComparison(&result.Comparison)
	}
	return result
}
