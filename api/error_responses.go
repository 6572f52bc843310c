package api

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-note-linker/internal/errors"
)

// ErrorCode represents standardized error codes for the API
type ErrorCode string

const (
	// Client Error Codes (4xx)
	ErrorCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrorCodeJobNotFound      ErrorCode = "JOB_NOT_FOUND"
	ErrorCodeCorpusNotFound   ErrorCode = "CORPUS_NOT_FOUND"
	ErrorCodeEmptyCorpus      ErrorCode = "EMPTY_CORPUS"
	ErrorCodeInvalidJSON      ErrorCode = "INVALID_JSON"

	// Server Error Codes (5xx)
	ErrorCodeInternalError      ErrorCode = "INTERNAL_ERROR"
	ErrorCodeJobExecutionFailed ErrorCode = "JOB_EXECUTION_FAILED"
	ErrorCodeNotSupported       ErrorCode = "NOT_SUPPORTED"
)

// ErrorDetail provides additional context for an error
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// APIError represents a standardized API error response
type APIError struct {
	Error     string        `json:"error"`
	Code      ErrorCode     `json:"code"`
	Message   string        `json:"message"`
	Details   []ErrorDetail `json:"details,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	RequestID string        `json:"request_id,omitempty"`
}

// APIErrorResponse creates a standardized error response
func APIErrorResponse(code ErrorCode, message string, details ...ErrorDetail) *APIError {
	return &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// SendError sends a standardized error response
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...ErrorDetail) {
	errorResponse := APIErrorResponse(code, message, details...)

	if requestID, exists := c.Get(requestIDKey); exists {
		if id, ok := requestID.(string); ok {
			errorResponse.RequestID = id
		}
	}

	c.JSON(statusCode, errorResponse)
}

// SendStructuredValidationError sends a validation error with one detail per invalid field
func SendStructuredValidationError(c *gin.Context, result *ValidationResult) {
	details := make([]ErrorDetail, len(result.Errors))
	for i, err := range result.Errors {
		details[i] = ErrorDetail{
			Field:   err.Field,
			Message: err.Message,
			Code:    "VALIDATION_ERROR",
		}
	}

	SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Request validation failed", details...)
}

// SendJobNotFoundError sends a standardized job not found error
func SendJobNotFoundError(c *gin.Context, jobID string) {
	SendError(c, http.StatusNotFound, ErrorCodeJobNotFound,
		"Job '"+jobID+"' not found")
}

// SendInvalidJSONError sends a standardized invalid JSON error
func SendInvalidJSONError(c *gin.Context, err error) {
	SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON,
		"Invalid JSON in request body: "+err.Error())
}

// SendInternalError sends a standardized internal server error
func SendInternalError(c *gin.Context, operation string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeInternalError,
		"Internal error during "+operation+": "+err.Error())
}

// SendJobExecutionError sends a standardized job execution error
func SendJobExecutionError(c *gin.Context, operation string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeJobExecutionFailed,
		"Failed to start "+operation+" job: "+err.Error())
}

// SendOperationError maps a pipeline error to its status code and error code
func SendOperationError(c *gin.Context, operation string, err error) {
	switch {
	case stderrors.Is(err, errors.ErrCorpusNotFound):
		SendError(c, http.StatusNotFound, ErrorCodeCorpusNotFound, err.Error())
	case stderrors.Is(err, errors.ErrEmptyCorpus):
		SendError(c, http.StatusUnprocessableEntity, ErrorCodeEmptyCorpus, err.Error())
	case stderrors.Is(err, errors.ErrJobNotFound):
		SendError(c, http.StatusNotFound, ErrorCodeJobNotFound, err.Error())
	default:
		SendInternalError(c, operation, err)
	}
}
