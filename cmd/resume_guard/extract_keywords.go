package main

import (
	"github.com/spf13/cobra"
)

func newExtractKeywordsCmd(a *app) *cobra.Command {
	var jobPath, outPath string
	var topN int

	cmd := &cobra.Command{
		Use:   "extract-keywords",
		Short: "Extract ranked keywords from a job description",
		Long:  "Extract the ranked, tiered keyword set (must-have and nice-to-have) and the inferred industry from a job description.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("top-n") {
				a.cfg.TopN = topN
				if err := a.cfg.Validate(); err != nil {
					return err
				}
			}

			_, set, err := a.loadKeywords(jobPath)
			if err != nil {
				return err
			}
			if a.cfg.Verbose {
				a.printer.PrintKeywords(&set)
			}
			return a.writeJSON(outPath, set)
		},
	}

	cmd.Flags().StringVarP(&jobPath, "job", "j", "", "Path to job description file (required)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")
	cmd.Flags().IntVarP(&topN, "top-n", "n", 0, "Maximum number of keywords to keep")
	_ = cmd.MarkFlagRequired("job")

	return cmd
}
