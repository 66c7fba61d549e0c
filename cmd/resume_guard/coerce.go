package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-guard/internal/repair"
)

func newCoerceCmd(a *app) *cobra.Command {
	var inputPath, resumePath, outPath string

	cmd := &cobra.Command{
		Use:   "coerce",
		Short: "Repair a raw model response into a schema-valid tailored resume",
		Long: `Clean, parse, validate and coerce a raw model response into the tailored resume schema.
When the response cannot be repaired and --resume is given, a minimal tailored resume is
rebuilt from the original instead.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := os.ReadFile(inputPath)
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}

			tailored, attempt, err := repair.ParseAndValidate(string(raw), 1)
			if a.cfg.Verbose {
				a.printer.PrintAttempts([]repair.Attempt{attempt})
			}
			if err != nil {
				if resumePath == "" {
					return err
				}
				a.logger.Warn("response could not be repaired, using fallback",
					"attempt_id", attempt.ID, "state", attempt.State, "error", err)
				doc, loadErr := a.loadResume(resumePath)
				if loadErr != nil {
					return loadErr
				}
				tailored = repair.Fallback(doc)
			}

			a.logger.Info("coerced response", "state", attempt.State, "steps", len(attempt.Steps))
			return a.writeJSON(outPath, tailored)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Path to raw model response (required)")
	cmd.Flags().StringVarP(&resumePath, "resume", "r", "", "Original resume used for fallback")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
