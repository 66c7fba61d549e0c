package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-guard/internal/rewriting"
	"github.com/jonathan/resume-guard/internal/types"
	"github.com/jonathan/resume-guard/internal/validation"
)

// checkOutput is the JSON written by check
type checkOutput struct {
	Integrity types.IntegrityReport `json:"integrity"`
	Honesty   types.HonestyReport   `json:"honesty"`
}

// passed reports whether neither check found a problem
func (c checkOutput) passed() bool {
	return c.Integrity.OK && len(c.Honesty.Flags) == 0
}

func newCheckCmd(a *app) *cobra.Command {
	var resumePath, tailoredPath, jobPath, outPath string
	var strict bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check a tailored resume against the original for invented or unsupported content",
		Long: `Run the integrity check (invented roles, new metrics, unknown tools) and the honesty scan
(per-bullet similarity against the original role) on a tailored resume. Job description
keywords, when given, are allowed in rewritten bullets.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := a.loadResumeAndJob(cmd.Context(), resumePath, jobPath)
			if err != nil {
				return err
			}
			tailored, err := a.loadTailored(tailoredPath)
			if err != nil {
				return err
			}

			result := a.check(in.resume, tailored, in.keywords)
			if err := a.writeJSON(outPath, result); err != nil {
				return err
			}
			if strict && !result.passed() {
				return fmt.Errorf("check failed: %d integrity issues, %d flagged bullets",
					len(result.Integrity.Issues), len(result.Honesty.Flags))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&resumePath, "resume", "r", "", "Path to original resume file (required)")
	cmd.Flags().StringVarP(&tailoredPath, "tailored", "t", "", "Path to tailored resume JSON (required)")
	cmd.Flags().StringVarP(&jobPath, "job", "j", "", "Path to job description file")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with an error when any issue is found")
	_ = cmd.MarkFlagRequired("resume")
	_ = cmd.MarkFlagRequired("tailored")

	return cmd
}

// check runs integrity and honesty checks of tailored against original
func (a *app) check(original types.ResumeDocument, tailored types.TailoredResume, set types.KeywordSet) checkOutput {
	roles := tailored.Roles()
	result := checkOutput{
		Integrity: validation.NewValidator(a.cfg.FuzzyThreshold).CheckIntegrity(original.Experience, roles, set.All),
		Honesty:   rewriting.NewScanner(a.cfg.HonestyThreshold, a.cfg.FuzzyThreshold).Scan(original.Experience, roles),
	}

	a.logger.Info("checked tailored resume",
		"integrity_ok", result.Integrity.OK,
		"issues", len(result.Integrity.Issues),
		"bullets", len(result.Honesty.Results),
		"flagged", len(result.Honesty.Flags))
	if a.cfg.Verbose {
		a.printer.PrintIntegrity(&result.Integrity)
		a.printer.PrintHonesty(&result.Honesty)
	}
	return result
}
