package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-guard/internal/coverage"
	"github.com/jonathan/resume-guard/internal/llm"
	"github.com/jonathan/resume-guard/internal/prompts"
	"github.com/jonathan/resume-guard/internal/repair"
	"github.com/jonathan/resume-guard/internal/schemas"
	"github.com/jonathan/resume-guard/internal/types"
	"github.com/jonathan/resume-guard/internal/validation"
)

// clientFactory builds the model client used by tailor
type clientFactory func(ctx context.Context, config *llm.Config, apiKey string) (llm.Client, error)

// tailorOutput is the JSON written by tailor
type tailorOutput struct {
	Tailored   types.TailoredResume `json:"tailored"`
	Confidence float64              `json:"confidence"`
	Fallback   bool                 `json:"fallback"`
	Attempts   int                  `json:"attempts"`
	Check      checkOutput          `json:"check"`
	Coverage   comparisonOutput     `json:"coverage"`
}

// tailorDeps are the parts of tailor that tests replace
type tailorDeps struct {
	newClient clientFactory
	sleeper   repair.Sleeper
}

func newTailorCmd(a *app, deps tailorDeps) *cobra.Command {
	if deps.newClient == nil {
		deps.newClient = llm.NewClient
	}

	var resumePath, jobPath, outPath string

	cmd := &cobra.Command{
		Use:   "tailor",
		Short: "Generate a tailored resume for a job description and check it",
		Long: `Generate a tailored resume with the configured model, repairing or retrying invalid
responses. When every attempt fails, a minimal resume is rebuilt from the original.
The result is checked for integrity and honesty and its keyword coverage is compared
with the original.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.APIKey == "" {
				return fmt.Errorf("no API key configured: set api_key in the config file or GEMINI_API_KEY")
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			in, err := a.loadResumeAndJob(ctx, resumePath, jobPath)
			if err != nil {
				return err
			}

			prompt, err := a.tailoringPrompt(in)
			if err != nil {
				return err
			}

			llmConfig := llm.DefaultConfig().WithModel(llm.TierAdvanced, a.cfg.Model)
			client, err := deps.newClient(ctx, llmConfig, a.cfg.APIKey)
			if err != nil {
				return fmt.Errorf("failed to create LLM client: %w", err)
			}
			defer client.Close() //nolint:errcheck

			runner := repair.NewRunner(llm.PromptGenerator{
				Client: client,
				Tier:   llm.TierAdvanced,
				Prompt: prompt,
			}, a.logger)
			runner.Policy = a.cfg.RetryPolicy()
			if deps.sleeper != nil {
				runner.Sleeper = deps.sleeper
			}

			result, err := a.tailor(ctx, runner, in)
			if err != nil {
				return err
			}
			return a.writeJSON(outPath, result)
		},
	}

	cmd.Flags().StringVarP(&resumePath, "resume", "r", "", "Path to resume file (required)")
	cmd.Flags().StringVarP(&jobPath, "job", "j", "", "Path to job description file (required)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")
	_ = cmd.MarkFlagRequired("resume")
	_ = cmd.MarkFlagRequired("job")

	return cmd
}

// tailoringPrompt screens the job text for injection attempts and renders the prompt
func (a *app) tailoringPrompt(in jobInputs) (string, error) {
	jobText := in.jobText
	if check := validation.CheckBasicHeuristics(jobText); !check.IsSafe {
		validation.LogInjectionWarning(a.logger, check, "job_description")
		jobText = validation.StripInjectionAttempts(jobText)
	}

	before := coverage.NewScorer(a.cfg.FuzzyThreshold).Score(in.resume, in.keywords)
	return prompts.Tailoring(prompts.TailoringInput{
		Resume:     in.resume,
		Keywords:   in.keywords,
		Missing:    before.Missing,
		JobPosting: validation.QuoteExternalContent("JOB DESCRIPTION", jobText),
		Schema:     schemas.TailoredResumeSchema(),
	})
}

// tailor runs generation and falls back to the original when every attempt fails
func (a *app) tailor(ctx context.Context, runner *repair.Runner, in jobInputs) (tailorOutput, error) {
	tailored, attempts, err := runner.Run(ctx)
	fallback := false
	if err != nil {
		var exhausted *repair.ExhaustedError
		if !errors.As(err, &exhausted) {
			return tailorOutput{}, fmt.Errorf("tailoring failed: %w", err)
		}
		a.logger.Warn("generation exhausted, rebuilding from original resume",
			"attempts", len(attempts), "error", exhausted.Last)
		tailored = repair.Fallback(in.resume)
		fallback = true
	}
	if a.cfg.Verbose {
		a.printer.PrintAttempts(attempts)
	}

	return tailorOutput{
		Tailored:   tailored,
		Confidence: tailored.Confidence,
		Fallback:   fallback,
		Attempts:   len(attempts),
		Check:      a.check(in.resume, tailored, in.keywords),
		Coverage:   a.compare(in.resume, tailored.Document(), in.keywords),
	}, nil
}
