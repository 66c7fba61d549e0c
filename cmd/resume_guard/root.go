package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-guard/internal/config"
	"github.com/jonathan/resume-guard/internal/observability"
)

// app carries the state shared by every subcommand once the root has run
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	printer *observability.Printer
	out     io.Writer

	configPath string
	verbose    bool
	logFormat  string
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(tailorDeps{})
}

func newRootCmdWith(deps tailorDeps) *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "resume_guard",
		Short: "Resume parsing, keyword coverage and honesty checks",
		Long: `resume_guard parses resumes, extracts ranked keywords from job descriptions, scores
keyword coverage, and checks tailored resumes against the original for invented roles,
inflated metrics and unsupported claims.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "Path to JSON config file")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Print human-readable reports to stderr")
	flags.StringVar(&a.logFormat, "log-format", "", "Log format: text or json")

	rootCmd.AddCommand(
		newParseResumeCmd(a),
		newExtractKeywordsCmd(a),
		newScoreCmd(a),
		newCompareCmd(a),
		newCheckCmd(a),
		newCoerceCmd(a),
		newTailorCmd(a, deps),
	)

	return rootCmd
}

// setup loads configuration, applies flag overrides and builds the logger
func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.Config{}
	if a.configPath != "" {
		loaded, err := config.LoadConfig(a.configPath)
		if err != nil {
			return err
		}
		cfg = *loaded
	}

	cfg = cfg.MergeWithDefaults(config.Defaults())
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = a.verbose
	}
	if a.logFormat != "" {
		cfg.LogFormat = a.logFormat
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.out = cmd.OutOrStdout()
	a.logger = newLogger(cmd.ErrOrStderr(), cfg.LogFormat, cfg.Verbose)
	a.printer = observability.NewPrinter(cmd.ErrOrStderr())
	return nil
}

func newLogger(w io.Writer, format string, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// writeJSON writes v as indented JSON to stdout, or to path when one is given
func (a *app) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = a.out.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	a.logger.Info("wrote output", "path", path)
	return nil
}
