package api

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-note-linker/services"
)

// API holds dependencies for API handlers, primarily the enrichment engine.
type API struct {
	engine services.Enricher
}

// NewAPI creates a new API handler structure.
func NewAPI(engine services.Enricher) *API {
	return &API{engine: engine}
}

// SetupRoutes defines all the API routes of the note linker.
func SetupRoutes(router *gin.Engine, engine services.Enricher) {
	apiHandler := NewAPI(engine)

	router.Use(RequestIDMiddleware(), CORSMiddleware(), RequestSizeLimitMiddleware(DefaultMaxRequestSize))

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	// Pipeline routes
	router.POST("/runs", apiHandler.RunHandler)          // Start an enrichment job
	router.POST("/analyze", apiHandler.AnalyzeHandler)   // Compute the term list
	router.POST("/annotate", apiHandler.AnnotateHandler) // Annotate a text
	router.GET("/notes", apiHandler.ListNotesHandler)    // Summaries of the corpus notes
	router.POST("/exports", apiHandler.ExportHandler)    // Start a CSV export job

	// Job management routes
	jobRoutes := router.Group("/jobs")
	{
		jobRoutes.GET("", apiHandler.ListJobsHandler)              // List jobs
		jobRoutes.GET("/metrics", apiHandler.GetJobMetricsHandler) // Get job performance metrics
		jobRoutes.GET("/:jobId", apiHandler.GetJobHandler)         // Get job status by ID
	}
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "go-note-linker",
		"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
	})
}

// RunHandler starts an enrichment run in the background.
// Request Body: RunRequest (optional)
func (api *API) RunHandler(c *gin.Context) {
	var req RunRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			SendInvalidJSONError(c, err)
			return
		}
	}

	jobID, err := api.engine.RunAsync(req.DryRun)
	if err != nil {
		SendJobExecutionError(c, "enrichment", err)
		return
	}

	log.Printf("Enrichment job %s accepted (dry run: %t)", jobID, req.DryRun)
	c.JSON(http.StatusAccepted, gin.H{
		"status":  "accepted",
		"message": "Enrichment run started",
		"job_id":  jobID,
	})
}

// AnalyzeHandler computes the term list of the corpus synchronously
func (api *API) AnalyzeHandler(c *gin.Context) {
	report, err := api.engine.Analyze(c.Request.Context())
	if err != nil {
		SendOperationError(c, "analysis", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"terms":    report.Terms,
		"scanned":  report.Scanned,
		"analyzed": report.Analyzed,
		"failed":   report.Failed,
		"failures": report.Failures,
	})
}

// AnnotateHandler links terms in a text without touching the corpus.
// Request Body: AnnotateRequest
func (api *API) AnnotateHandler(c *gin.Context) {
	var req AnnotateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}
	if result := ValidateAnnotateRequest(&req); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	text, changed, err := api.engine.AnnotateText(c.Request.Context(), req.Text, req.Terms)
	if err != nil {
		SendOperationError(c, "annotation", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"text":    text,
		"changed": changed,
	})
}

// ListNotesHandler returns a summary of every note in the corpus
func (api *API) ListNotesHandler(c *gin.Context) {
	notes, err := api.engine.ListNotes(c.Request.Context())
	if err != nil {
		SendOperationError(c, "note listing", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notes": notes,
		"total": len(notes),
	})
}

// ExportHandler starts the conversion of a CSV export into notes.
// Request Body: ExportRequest
func (api *API) ExportHandler(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}
	if result := ValidateExportRequest(&req); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}
	if result := ResolveExportPaths(&req, api.engine.Settings().InputDir); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	jobID, err := api.engine.ExportAsync(req.CSVPath, req.OutputDir)
	if err != nil {
		SendJobExecutionError(c, "export", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "accepted",
		"message": "Export started",
		"job_id":  jobID,
	})
}
