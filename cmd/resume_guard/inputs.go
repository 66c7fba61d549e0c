package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-guard/internal/ingestion"
	"github.com/jonathan/resume-guard/internal/parsing"
	"github.com/jonathan/resume-guard/internal/repair"
	"github.com/jonathan/resume-guard/internal/sections"
	"github.com/jonathan/resume-guard/internal/types"
)

// loadResume ingests a resume file (text, markdown, PDF or DOCX) and parses it into sections
func (a *app) loadResume(path string) (types.ResumeDocument, error) {
	text, meta, err := ingestion.IngestFromFile(path)
	if err != nil {
		return types.ResumeDocument{}, fmt.Errorf("failed to ingest resume: %w", err)
	}
	a.logger.Debug("ingested resume", "path", path, "format", meta.Format, "hash", meta.Hash)

	doc := sections.Parse(text)
	a.logger.Debug("parsed resume",
		"roles", len(doc.Experience),
		"skills", len(doc.Skills),
		"has_summary", doc.Summary != "")
	return doc, nil
}

// loadJob ingests a job description file and returns its cleaned text
func (a *app) loadJob(path string) (string, error) {
	text, meta, err := ingestion.IngestFromFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to ingest job description: %w", err)
	}
	a.logger.Debug("ingested job description", "path", path, "format", meta.Format, "hash", meta.Hash)
	return text, nil
}

// loadKeywords ingests a job description and extracts its keyword set
func (a *app) loadKeywords(path string) (string, types.KeywordSet, error) {
	text, err := a.loadJob(path)
	if err != nil {
		return "", types.KeywordSet{}, err
	}
	set := parsing.ExtractKeywords(text, a.cfg.TopN)
	a.logger.Debug("extracted keywords", "count", len(set.All), "must", len(set.Must), "nice", len(set.Nice))
	return text, set, nil
}

// loadTailored reads a tailored resume JSON file through the parse, validate and coerce pipeline
func (a *app) loadTailored(path string) (types.TailoredResume, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.TailoredResume{}, fmt.Errorf("failed to read tailored resume: %w", err)
	}

	tailored, attempt, err := repair.ParseAndValidate(string(data), 1)
	if err != nil {
		return types.TailoredResume{}, fmt.Errorf("tailored resume is not usable: %w", err)
	}
	for _, step := range attempt.Steps {
		a.logger.Info("coerced tailored resume", "path", path, "step", step)
	}
	return tailored, nil
}

// jobInputs is the result of loading a resume and a job description together
type jobInputs struct {
	resume   types.ResumeDocument
	jobText  string
	keywords types.KeywordSet
}

// loadResumeAndJob parses the resume and extracts job keywords concurrently.
// Either path may be empty, in which case that half is skipped.
func (a *app) loadResumeAndJob(ctx context.Context, resumePath, jobPath string) (jobInputs, error) {
	var in jobInputs
	g, _ := errgroup.WithContext(ctx)

	if resumePath != "" {
		g.Go(func() error {
			doc, err := a.loadResume(resumePath)
			if err != nil {
				return err
			}
			in.resume = doc
			return nil
		})
	}
	if jobPath != "" {
		g.Go(func() error {
			text, set, err := a.loadKeywords(jobPath)
			if err != nil {
				return err
			}
			in.jobText = text
			in.keywords = set
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return jobInputs{}, err
	}
	return in, nil
}
