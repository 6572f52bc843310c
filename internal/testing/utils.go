// Package testing provides utilities and helpers for testing the note linker.
package testing

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-note-linker/config"
	"github.com/gcbaptista/go-note-linker/internal/engine"
	"github.com/gcbaptista/go-note-linker/model"
	"github.com/gcbaptista/go-note-linker/services"
)

// ScenarioCorpus is a small corpus in which "sistema" occurs 5 + 1 + 2 times.
var ScenarioCorpus = map[string]string{
	"a.md": "El sistema es un sistema. Sistema, sistema y SISTEMA.",
	"b.md": "---\ntitle: B\n---\nUn sistema aislado.",
	"c.md": "sistema. sistema.",
}

// CreateTestCorpus writes files into a fresh temporary directory and returns it
func CreateTestCorpus(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644), "Failed to write %s", name)
	}
	return dir
}

// ReadCorpus returns the content of every file in dir keyed by file name
func ReadCorpus(t *testing.T, dir string) map[string]string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err, "Failed to read corpus directory")

	files := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		require.NoError(t, err)
		files[entry.Name()] = string(data)
	}
	return files
}

// CreateTestEngine creates an engine over dir that is closed when the test ends
func CreateTestEngine(t *testing.T, dir string, mutate func(*config.PipelineSettings)) *engine.Engine {
	t.Helper()
	settings := config.NewPipelineSettings(dir)
	if mutate != nil {
		mutate(settings)
	}
	eng, err := engine.New(settings, nil)
	require.NoError(t, err, "Failed to create test engine")
	t.Cleanup(eng.Close)
	return eng
}

// JobPollingOptions configures job polling behavior
type JobPollingOptions struct {
	Timeout      time.Duration
	PollInterval time.Duration
	LogProgress  bool
}

// DefaultJobPollingOptions returns sensible defaults for job polling
func DefaultJobPollingOptions() JobPollingOptions {
	return JobPollingOptions{
		Timeout:      10 * time.Second,
		PollInterval: 20 * time.Millisecond,
		LogProgress:  true,
	}
}

// WaitForJob polls a job until it completes, fails or times out
func WaitForJob(t *testing.T, jobManager services.JobManager, jobID string, opts JobPollingOptions) *model.Job {
	t.Helper()
	timeout := time.After(opts.Timeout)
	ticker := time.NewTicker(opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			t.Fatalf("Job %s did not finish within %v timeout", jobID, opts.Timeout)
			return nil
		case <-ticker.C:
			job, err := jobManager.GetJob(jobID)
			require.NoError(t, err, "Failed to get job status")

			switch job.Status {
			case model.JobStatusCompleted, model.JobStatusFailed, model.JobStatusCancelled:
				return job
			case model.JobStatusRunning:
				if opts.LogProgress && job.Progress != nil {
					t.Logf("Job %s progress: %d/%d - %s", jobID, job.Progress.Current, job.Progress.Total, job.Progress.Message)
				}
			}
		}
	}
}

// AssertJobCompleted verifies that a job completed successfully
func AssertJobCompleted(t *testing.T, job *model.Job, expectedType model.JobType, expectedTarget string) {
	t.Helper()
	assert.Equal(t, model.JobStatusCompleted, job.Status, "Job should be completed: %s", job.Error)
	assert.Equal(t, expectedType, job.Type, "Job type should match")
	assert.Equal(t, expectedTarget, job.Target, "Job target should match")
	assert.NotNil(t, job.CompletedAt, "Job should have completion timestamp")
	assert.Empty(t, job.Error, "Job should not have error")
}
