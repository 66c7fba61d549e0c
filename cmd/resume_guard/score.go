package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-guard/internal/coverage"
)

func newScoreCmd(a *app) *cobra.Command {
	var resumePath, jobPath, outPath string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a resume's keyword coverage against a job description",
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := a.loadResumeAndJob(cmd.Context(), resumePath, jobPath)
			if err != nil {
				return err
			}

			stats := coverage.NewScorer(a.cfg.FuzzyThreshold).Score(in.resume, in.keywords)
			a.logger.Info("scored resume", "coverage", stats.Coverage, "missing", len(stats.Missing))
			if a.cfg.Verbose {
				a.printer.PrintCoverage("COVERAGE", &stats)
			}
			return a.writeJSON(outPath, stats)
		},
	}

	cmd.Flags().StringVarP(&resumePath, "resume", "r", "", "Path to resume file (required)")
	cmd.Flags().StringVarP(&jobPath, "job", "j", "", "Path to job description file (required)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")
	_ = cmd.MarkFlagRequired("resume")
	_ = cmd.MarkFlagRequired("job")

	return cmd
}
