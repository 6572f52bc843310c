package jobs

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gcbaptista/go-note-linker/internal/errors"
	"github.com/gcbaptista/go-note-linker/model"
)

// Func is the body of a background job. It returns the value stored as the
// job result (a run or export report) and reports progress through p.
type Func func(ctx context.Context, p Progress) (interface{}, error)

// Progress lets a running job publish how far it got.
type Progress func(current, total int, message string)

// Manager runs enrichment and export jobs in the background and keeps their
// status, progress and results in memory.
type Manager struct {
	mu       sync.RWMutex
	jobs     map[string]*model.Job
	workers  chan struct{} // Limits concurrent jobs
	stopChan chan struct{}
	stopOnce sync.Once
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	metrics  *JobMetrics
}

// NewManager creates a new job manager with specified worker count
func NewManager(maxWorkers int) *Manager {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		jobs:     make(map[string]*model.Job),
		workers:  make(chan struct{}, maxWorkers),
		stopChan: make(chan struct{}),
		ctx:      ctx,
		cancel:   cancel,
		metrics:  NewJobMetrics(),
	}
}

// Start begins the background cleanup of finished jobs
func (m *Manager) Start() {
	log.Printf("Job manager started with %d max workers", cap(m.workers))
	go m.cleanupRoutine()
}

// Stop cancels running jobs and waits for them to return. It is safe to call
// more than once.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopChan)
		m.cancel()
		m.wg.Wait()
		log.Printf("Job manager stopped")
	})
}

// CreateJob registers a pending job for target (a corpus directory or an
// export destination) and returns its ID
func (m *Manager) CreateJob(jobType model.JobType, target string, metadata map[string]string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	job := &model.Job{
		ID:        uuid.New().String(),
		Type:      jobType,
		Status:    model.JobStatusPending,
		Target:    target,
		CreatedAt: time.Now(),
		Metadata:  metadata,
	}

	m.jobs[job.ID] = job
	m.metrics.RecordJobCreated(jobType)
	log.Printf("Created job %s (type: %s) for '%s'", job.ID, job.Type, job.Target)
	return job.ID
}

// Submit creates a job and starts it immediately.
func (m *Manager) Submit(jobType model.JobType, target string, metadata map[string]string, fn Func) (string, error) {
	jobID := m.CreateJob(jobType, target, metadata)
	if err := m.ExecuteJob(jobID, fn); err != nil {
		return jobID, err
	}
	return jobID, nil
}

// GetJob returns a copy of the job with the given ID
func (m *Manager) GetJob(jobID string) (*model.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return nil, errors.NewJobNotFoundError(jobID)
	}
	return copyJob(job), nil
}

// ListJobs returns the jobs of target, optionally filtered by status. An empty
// target matches every job.
func (m *Manager) ListJobs(target string, status *model.JobStatus) []*model.Job {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*model.Job
	for _, job := range m.jobs {
		if target != "" && job.Target != target {
			continue
		}
		if status != nil && job.Status != *status {
			continue
		}
		result = append(result, copyJob(job))
	}
	return result
}

// ExecuteJob runs a pending job in its own goroutine once a worker slot is free
func (m *Manager) ExecuteJob(jobID string, fn Func) error {
	m.mu.Lock()
	job, exists := m.jobs[jobID]
	if !exists {
		m.mu.Unlock()
		return errors.NewJobNotFoundError(jobID)
	}
	if job.Status != model.JobStatusPending {
		m.mu.Unlock()
		return fmt.Errorf("job with ID '%s' is not in pending status (current: %s)", jobID, job.Status)
	}
	jobType := job.Type
	oldStatus := job.Status
	job.Status = model.JobStatusRunning
	now := time.Now()
	job.StartedAt = &now
	m.metrics.RecordJobStatusChange(oldStatus, job.Status)
	m.mu.Unlock()

	select {
	case m.workers <- struct{}{}:
	case <-m.stopChan:
		m.updateJobStatus(jobID, model.JobStatusCancelled, "job manager shutting down")
		return fmt.Errorf("job manager is shutting down")
	}

	m.wg.Add(1)
	go func() {
		defer func() {
			<-m.workers
			m.wg.Done()
		}()

		startTime := time.Now()
		result, err := fn(m.ctx, func(current, total int, message string) {
			m.UpdateJobProgress(jobID, current, total, message)
		})
		executionTime := time.Since(startTime)

		if result != nil {
			m.SetJobResult(jobID, result)
		}

		switch {
		case err != nil && m.ctx.Err() != nil:
			m.updateJobStatus(jobID, model.JobStatusCancelled, err.Error())
			log.Printf("Job %s cancelled after %v", jobID, executionTime)
		case err != nil:
			m.metrics.RecordJobFailed(jobType)
			m.updateJobStatus(jobID, model.JobStatusFailed, err.Error())
			log.Printf("Job %s failed after %v: %v", jobID, executionTime, err)
		default:
			m.metrics.RecordJobCompleted(jobType, executionTime)
			m.updateJobStatus(jobID, model.JobStatusCompleted, "")
			log.Printf("Job %s completed in %v", jobID, executionTime)
		}
	}()

	return nil
}

// UpdateJobProgress updates the progress of a running job
func (m *Manager) UpdateJobProgress(jobID string, current, total int, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return
	}
	if job.Progress == nil {
		job.Progress = &model.JobProgress{}
	}
	job.Progress.Current = current
	job.Progress.Total = total
	job.Progress.Message = message
}

// SetJobResult attaches the outcome of a job, such as a run report
func (m *Manager) SetJobResult(jobID string, result interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if job, exists := m.jobs[jobID]; exists {
		job.Result = result
	}
}

func (m *Manager) updateJobStatus(jobID string, status model.JobStatus, errorMsg string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return
	}

	oldStatus := job.Status
	job.Status = status
	if errorMsg != "" {
		job.Error = errorMsg
	}

	if status == model.JobStatusCompleted || status == model.JobStatusFailed || status == model.JobStatusCancelled {
		now := time.Now()
		job.CompletedAt = &now
	}

	m.metrics.RecordJobStatusChange(oldStatus, status)
}

func (m *Manager) cleanupRoutine() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.CleanupOldJobs(24 * time.Hour)
		case <-m.stopChan:
			return
		}
	}
}

// CleanupOldJobs removes finished jobs older than maxAge
func (m *Manager) CleanupOldJobs(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	cleaned := 0
	for jobID, job := range m.jobs {
		if job.CompletedAt != nil && job.CompletedAt.Before(cutoff) {
			delete(m.jobs, jobID)
			cleaned++
		}
	}

	if cleaned > 0 {
		log.Printf("Cleaned up %d old jobs", cleaned)
	}
	return cleaned
}

// GetMetrics returns current job performance metrics
func (m *Manager) GetMetrics() JobMetricsData {
	return m.metrics.GetMetrics()
}

func copyJob(job *model.Job) *model.Job {
	jobCopy := *job
	if job.Progress != nil {
		progressCopy := *job.Progress
		jobCopy.Progress = &progressCopy
	}
	if job.Metadata != nil {
		jobCopy.Metadata = make(map[string]string, len(job.Metadata))
		for k, v := range job.Metadata {
			jobCopy.Metadata[k] = v
		}
	}
	return &jobCopy
}
