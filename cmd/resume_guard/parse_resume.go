package main

import (
	"github.com/spf13/cobra"
)

func newParseResumeCmd(a *app) *cobra.Command {
	var resumePath, outPath string

	cmd := &cobra.Command{
		Use:   "parse-resume",
		Short: "Parse a resume into structured sections",
		Long:  "Read a resume from a text, markdown, PDF or DOCX file and output its summary, skills, experience, education, certifications and projects as JSON.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := a.loadResume(resumePath)
			if err != nil {
				return err
			}
			if a.cfg.Verbose {
				a.printer.PrintDocument(&doc)
			}
			return a.writeJSON(outPath, doc)
		},
	}

	cmd.Flags().StringVarP(&resumePath, "resume", "r", "", "Path to resume file (required)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")
	_ = cmd.MarkFlagRequired("resume")

	return cmd
}
