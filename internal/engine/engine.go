package engine

import (
	"fmt"
	"log"
	"sync"

	"github.com/gcbaptista/go-note-linker/config"
	"github.com/gcbaptista/go-note-linker/internal/jobs"
	"github.com/gcbaptista/go-note-linker/model"
)

// Engine runs the enrichment pipeline over one corpus directory.
// It implements the services.Enricher interface.
type Engine struct {
	runMu          sync.Mutex // Serializes runs that may rewrite the corpus
	settings       *config.PipelineSettings
	exportSettings *config.ExportSettings
	jobManager     *jobs.Manager
	ownsJobs       bool
}

// New creates an engine for settings. When jobManager is nil the engine starts
// and owns its own manager, which Close stops.
func New(settings *config.PipelineSettings, jobManager *jobs.Manager) (*Engine, error) {
	if settings == nil {
		return nil, fmt.Errorf("pipeline settings cannot be nil")
	}
	settings = settings.Clone()
	if err := settings.Prepare(); err != nil {
		return nil, err
	}

	eng := &Engine{
		settings:       settings,
		exportSettings: config.NewExportSettings(),
		jobManager:     jobManager,
	}
	if jobManager == nil {
		eng.jobManager = jobs.NewManager(settings.Workers)
		eng.jobManager.Start()
		eng.ownsJobs = true
	}
	log.Printf("Engine ready for corpus '%s' (extension %s, %d workers)", settings.InputDir, settings.Extension, settings.Workers)
	return eng, nil
}

// SetExportSettings replaces the settings used by Export and ExportAsync.
func (e *Engine) SetExportSettings(settings *config.ExportSettings) error {
	settings.ApplyDefaults()
	if problems := settings.Validate(); len(problems) > 0 {
		return fmt.Errorf("invalid export settings: %v", problems)
	}
	e.exportSettings = settings
	return nil
}

// Settings returns a copy of the pipeline settings in use.
func (e *Engine) Settings() config.PipelineSettings {
	return *e.settings.Clone()
}

// GetJob returns the job with the given ID.
func (e *Engine) GetJob(jobID string) (*model.Job, error) {
	return e.jobManager.GetJob(jobID)
}

// ListJobs returns the jobs started by this engine, optionally filtered by status.
func (e *Engine) ListJobs(status *model.JobStatus) []*model.Job {
	return e.jobManager.ListJobs("", status)
}

// GetJobMetrics returns the job manager metrics.
func (e *Engine) GetJobMetrics() jobs.JobMetricsData {
	return e.jobManager.GetMetrics()
}

// Close stops the job manager when the engine owns it.
func (e *Engine) Close() {
	if e.ownsJobs {
		e.jobManager.Stop()
	}
}
