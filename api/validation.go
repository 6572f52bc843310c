// Package api provides validation utilities for API request handling.
package api

import (
	stderrors "errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/gcbaptista/go-note-linker/internal/tokenizer"
	"github.com/gcbaptista/go-note-linker/model"
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// RunRequest is the body of POST /runs
type RunRequest struct {
	DryRun bool `json:"dry_run"`
}

// AnnotateRequest is the body of POST /annotate. When Terms is empty the
// corpus term list is used.
type AnnotateRequest struct {
	Text  string   `json:"text"`
	Terms []string `json:"terms,omitempty"`
}

// ExportRequest is the body of POST /exports. Both paths are resolved against
// the corpus directory and must stay inside it; an empty OutputDir exports into
// the corpus directory itself.
type ExportRequest struct {
	CSVPath   string `json:"csv_path"`
	OutputDir string `json:"output_dir"`
}

// Validate checks that the text is present and every term is a single word
func (req AnnotateRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Text, validation.Required.Error("Text is required")),
		validation.Field(&req.Terms, validation.Each(validation.By(singleWord))),
	)
}

// Validate checks the paths of an export request
func (req ExportRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.CSVPath, validation.Required.Error("Path is required"), validation.By(noSurroundingSpace)),
		validation.Field(&req.OutputDir, validation.By(noSurroundingSpace)),
	)
}

// ValidateAnnotateRequest validates an annotate request
func ValidateAnnotateRequest(req *AnnotateRequest) *ValidationResult {
	return toValidationResult(req.Validate())
}

// ValidateExportRequest validates an export request
func ValidateExportRequest(req *ExportRequest) *ValidationResult {
	return toValidationResult(req.Validate())
}

// ResolveExportPaths rewrites the paths of a valid export request into
// absolute paths under root. Paths that resolve outside root, following
// symlinks, are reported as validation errors.
func ResolveExportPaths(req *ExportRequest, root string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	base, err := filepath.Abs(root)
	if err != nil {
		result.AddError("", fmt.Sprintf("Cannot resolve corpus directory: %v", err))
		return result
	}
	base = resolveExisting(base)

	csvPath, ok := within(base, req.CSVPath)
	if !ok {
		result.AddError("csv_path", "Path must be inside the corpus directory")
	}
	outputDir, ok := within(base, req.OutputDir)
	if !ok {
		result.AddError("output_dir", "Path must be inside the corpus directory")
	}
	if result.HasErrors() {
		return result
	}

	req.CSVPath = csvPath
	req.OutputDir = outputDir
	return result
}

// within resolves path against base and reports whether it stays inside it
func within(base, path string) (string, bool) {
	target := path
	if !filepath.IsAbs(target) {
		target = filepath.Join(base, target)
	}
	target = resolveExisting(filepath.Clean(target))

	rel, err := filepath.Rel(base, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return target, true
}

// resolveExisting evaluates symlinks on the longest existing prefix of path
// and appends the missing remainder unchanged.
func resolveExisting(path string) string {
	rest := ""
	for current := path; ; {
		if resolved, err := filepath.EvalSymlinks(current); err == nil {
			return filepath.Join(resolved, rest)
		}
		parent := filepath.Dir(current)
		if parent == current {
			return path
		}
		rest = filepath.Join(filepath.Base(current), rest)
		current = parent
	}
}

// ValidateJobStatus validates an optional status filter
func ValidateJobStatus(status string) *ValidationResult {
	err := validation.Validate(status, validation.In(
		string(model.JobStatusPending), string(model.JobStatusRunning), string(model.JobStatusCompleted),
		string(model.JobStatusFailed), string(model.JobStatusCancelled),
	).Error(fmt.Sprintf("Unknown job status '%s'", status)))
	if err != nil {
		return toValidationResult(validation.Errors{"status": err})
	}
	return toValidationResult(nil)
}

func singleWord(value interface{}) error {
	term, _ := value.(string)
	trimmed := strings.TrimSpace(term)
	if trimmed == "" {
		return validation.NewError("validation_term_empty", "Term cannot be empty")
	}
	for _, r := range trimmed {
		if !tokenizer.IsWordRune(r) {
			return validation.NewError("validation_term_single_word", fmt.Sprintf("Term '%s' must be a single word", term))
		}
	}
	return nil
}

func noSurroundingSpace(value interface{}) error {
	path, _ := value.(string)
	if strings.TrimSpace(path) != path {
		return validation.NewError("validation_path_whitespace", "Path cannot have leading or trailing whitespace")
	}
	return nil
}

// toValidationResult flattens ozzo-validation errors into a ValidationResult
// with one entry per field, sorted by field name. Slice elements are reported
// as field[index].
func toValidationResult(err error) *ValidationResult {
	result := &ValidationResult{Valid: true}
	if err == nil {
		return result
	}

	var fieldErrors validation.Errors
	if !stderrors.As(err, &fieldErrors) {
		result.AddError("", err.Error())
		return result
	}

	flat := map[string]string{}
	flattenErrors("", fieldErrors, flat)
	fields := make([]string, 0, len(flat))
	for field := range flat {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		result.AddError(field, flat[field])
	}
	return result
}

func flattenErrors(prefix string, errs validation.Errors, out map[string]string) {
	for key, err := range errs {
		field := key
		if prefix != "" {
			field = prefix + "[" + key + "]"
		}
		if nested, ok := err.(validation.Errors); ok {
			flattenErrors(field, nested, out)
			continue
		}
		out[field] = err.Error()
	}
}
