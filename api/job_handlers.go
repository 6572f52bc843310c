package api

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-note-linker/internal/errors"
	"github.com/gcbaptista/go-note-linker/model"
	"github.com/gcbaptista/go-note-linker/services"
)

// GetJobHandler handles requests to get job status by ID
func (api *API) GetJobHandler(c *gin.Context) {
	jobID := c.Param("jobId")

	job, err := api.engine.GetJob(jobID)
	if err != nil {
		if stderrors.Is(err, errors.ErrJobNotFound) {
			SendJobNotFoundError(c, jobID)
			return
		}
		SendInternalError(c, "job lookup", err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// ListJobsHandler handles requests to list jobs, optionally filtered by ?status=
func (api *API) ListJobsHandler(c *gin.Context) {
	statusParam := c.Query("status")
	if result := ValidateJobStatus(statusParam); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	var statusFilter *model.JobStatus
	if statusParam != "" {
		status := model.JobStatus(statusParam)
		statusFilter = &status
	}

	jobs := api.engine.ListJobs(statusFilter)
	if jobs == nil {
		jobs = []*model.Job{}
	}
	c.JSON(http.StatusOK, gin.H{
		"jobs":  jobs,
		"total": len(jobs),
	})
}

// GetJobMetricsHandler handles requests to get job performance metrics
func (api *API) GetJobMetricsHandler(c *gin.Context) {
	provider, ok := api.engine.(services.JobMetricsProvider)
	if !ok {
		SendError(c, http.StatusNotImplemented, ErrorCodeNotSupported, "Job metrics not supported by this engine")
		return
	}

	metrics := provider.GetJobMetrics()
	c.JSON(http.StatusOK, gin.H{
		"metrics":          metrics,
		"success_rate":     metrics.SuccessRate,
		"current_workload": metrics.ActiveJobs,
	})
}
