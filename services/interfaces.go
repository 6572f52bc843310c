package services

import (
	"context"

	"github.com/gcbaptista/go-note-linker/config"
	"github.com/gcbaptista/go-note-linker/internal/jobs"
	"github.com/gcbaptista/go-note-linker/model"
)

// Runner performs synchronous operations on a corpus
type Runner interface {
	Analyze(ctx context.Context) (*model.RunReport, error)
	AnnotateText(ctx context.Context, text string, terms []string) (string, bool, error)
	ListNotes(ctx context.Context) ([]model.NoteSummary, error)
	Settings() config.PipelineSettings
}

// AsyncRunner starts long-running operations as background jobs
type AsyncRunner interface {
	RunAsync(dryRun bool) (string, error)                  // Returns job ID
	ExportAsync(csvPath, outputDir string) (string, error) // Returns job ID
}

// JobManager defines operations for managing background jobs
type JobManager interface {
	GetJob(jobID string) (*model.Job, error)
	ListJobs(status *model.JobStatus) []*model.Job
}

// JobMetricsProvider exposes job performance metrics
type JobMetricsProvider interface {
	GetJobMetrics() jobs.JobMetricsData
}

// Enricher combines the operations the HTTP API relies on
type Enricher interface {
	Runner
	AsyncRunner
	JobManager
}
