package engine

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gcbaptista/go-note-linker/internal/jobs"
	"github.com/gcbaptista/go-note-linker/model"
)

// RunAsync starts an enrichment run as a background job and returns its ID.
// The job result is the *model.RunReport.
func (e *Engine) RunAsync(dryRun bool) (string, error) {
	opts := RunOptions{DryRun: dryRun}
	jobID, err := e.jobManager.Submit(model.JobTypeEnrich, e.settings.InputDir, map[string]string{
		"operation": "enrich",
		"dry_run":   strconv.FormatBool(opts.DryRun || e.settings.DryRun),
	}, func(ctx context.Context, p jobs.Progress) (interface{}, error) {
		report, err := e.run(ctx, opts, p)
		if report == nil {
			return nil, err
		}
		return report, err
	})
	if err != nil {
		return "", fmt.Errorf("failed to start enrichment job: %w", err)
	}
	return jobID, nil
}

// AnalyzeAsync computes the term list as a background job.
func (e *Engine) AnalyzeAsync() (string, error) {
	jobID, err := e.jobManager.Submit(model.JobTypeAnalyze, e.settings.InputDir, map[string]string{
		"operation": "analyze",
	}, func(ctx context.Context, p jobs.Progress) (interface{}, error) {
		report, err := e.Analyze(ctx)
		if err != nil {
			return nil, err
		}
		p(report.Analyzed, report.Scanned, fmt.Sprintf("%d terms selected", len(report.Terms)))
		return report, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to start analysis job: %w", err)
	}
	return jobID, nil
}

// ExportAsync converts a CSV export into notes as a background job. The job
// result is the *model.ExportReport.
func (e *Engine) ExportAsync(csvPath, outputDir string) (string, error) {
	if csvPath == "" || outputDir == "" {
		return "", fmt.Errorf("csv path and output directory are required")
	}
	jobID, err := e.jobManager.Submit(model.JobTypeExport, outputDir, map[string]string{
		"operation": "export",
		"csv_path":  csvPath,
	}, func(ctx context.Context, p jobs.Progress) (interface{}, error) {
		report, err := e.Export(ctx, csvPath, outputDir)
		if report == nil {
			return nil, err
		}
		p(report.Notes, report.Notes, fmt.Sprintf("%d notes written", report.Notes))
		return report, err
	})
	if err != nil {
		return "", fmt.Errorf("failed to start export job: %w", err)
	}
	return jobID, nil
}
