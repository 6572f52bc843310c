package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrCorpusNotFound is returned when the input directory does not exist
	ErrCorpusNotFound = errors.New("corpus not found")

	// ErrEmptyCorpus is returned when no document matches the corpus selection
	ErrEmptyCorpus = errors.New("empty corpus")

	// ErrDocumentRead is returned when a document cannot be read or decoded
	ErrDocumentRead = errors.New("document read failed")

	// ErrDocumentWrite is returned when a rewritten document cannot be saved
	ErrDocumentWrite = errors.New("document write failed")

	// ErrJobNotFound is returned when a job is not found
	ErrJobNotFound = errors.New("job not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// CorpusNotFoundError represents a missing or unusable input directory
type CorpusNotFoundError struct {
	Dir    string
	Reason string
}

func (e *CorpusNotFoundError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("corpus directory '%s' not found: %s", e.Dir, e.Reason)
	}
	return fmt.Sprintf("corpus directory '%s' not found", e.Dir)
}

func (e *CorpusNotFoundError) Is(target error) bool {
	return target == ErrCorpusNotFound
}

// NewCorpusNotFoundError creates a new CorpusNotFoundError
func NewCorpusNotFoundError(dir string, reason ...string) *CorpusNotFoundError {
	err := &CorpusNotFoundError{Dir: dir}
	if len(reason) > 0 {
		err.Reason = reason[0]
	}
	return err
}

// EmptyCorpusError represents a directory without matching documents
type EmptyCorpusError struct {
	Dir       string
	Extension string
}

func (e *EmptyCorpusError) Error() string {
	return fmt.Sprintf("no '%s' documents found in '%s'", e.Extension, e.Dir)
}

func (e *EmptyCorpusError) Is(target error) bool {
	return target == ErrEmptyCorpus
}

// NewEmptyCorpusError creates a new EmptyCorpusError
func NewEmptyCorpusError(dir, extension string) *EmptyCorpusError {
	return &EmptyCorpusError{Dir: dir, Extension: extension}
}

// DocumentReadError represents a document that could not be read or decoded
type DocumentReadError struct {
	Path string
	Err  error
}

func (e *DocumentReadError) Error() string {
	return fmt.Sprintf("failed to read document '%s': %v", e.Path, e.Err)
}

func (e *DocumentReadError) Is(target error) bool {
	return target == ErrDocumentRead
}

func (e *DocumentReadError) Unwrap() error {
	return e.Err
}

// NewDocumentReadError creates a new DocumentReadError
func NewDocumentReadError(path string, err error) *DocumentReadError {
	return &DocumentReadError{Path: path, Err: err}
}

// DocumentWriteError represents a document whose rewrite could not be saved
type DocumentWriteError struct {
	Path string
	Err  error
}

func (e *DocumentWriteError) Error() string {
	return fmt.Sprintf("failed to write document '%s': %v", e.Path, e.Err)
}

func (e *DocumentWriteError) Is(target error) bool {
	return target == ErrDocumentWrite
}

func (e *DocumentWriteError) Unwrap() error {
	return e.Err
}

// NewDocumentWriteError creates a new DocumentWriteError
func NewDocumentWriteError(path string, err error) *DocumentWriteError {
	return &DocumentWriteError{Path: path, Err: err}
}

// JobNotFoundError represents a job not found error with context
type JobNotFoundError struct {
	JobID string
}

func (e *JobNotFoundError) Error() string {
	return fmt.Sprintf("job with ID '%s' not found", e.JobID)
}

func (e *JobNotFoundError) Is(target error) bool {
	return target == ErrJobNotFound
}

// NewJobNotFoundError creates a new JobNotFoundError
func NewJobNotFoundError(jobID string) *JobNotFoundError {
	return &JobNotFoundError{JobID: jobID}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
