package model

import (
	"time"
)

// FailurePhase names the step in which a document failed.
type FailurePhase string

const (
	FailurePhaseRead  FailurePhase = "read"
	FailurePhaseWrite FailurePhase = "write"
)

// DocumentFailure records a document that was excluded from a run.
type DocumentFailure struct {
	Path  string       `json:"path"`
	Phase FailurePhase `json:"phase"`
	Error string       `json:"error"`
}

// RunReport aggregates the outcome of one enrichment run.
// Modified + Unchanged + Failed always equals Scanned.
type RunReport struct {
	RunID     string            `json:"run_id"`
	InputDir  string            `json:"input_dir"`
	DryRun    bool              `json:"dry_run"`
	Scanned   int               `json:"scanned"`
	Analyzed  int               `json:"analyzed"`
	Modified  int               `json:"modified"`
	Unchanged int               `json:"unchanged"`
	Failed    int               `json:"failed"`
	Failures  []DocumentFailure `json:"failures,omitempty"`
	Changed   []string          `json:"changed,omitempty"` // Paths of modified documents, sorted
	Terms     TermList          `json:"terms"`
	StartedAt time.Time         `json:"started_at"`
	Duration  time.Duration     `json:"duration_ns"`
}

// AddFailure records a failed document.
func (r *RunReport) AddFailure(path string, phase FailurePhase, err error) {
	r.Failed++
	r.Failures = append(r.Failures, DocumentFailure{Path: path, Phase: phase, Error: err.Error()})
}

// ExportReport aggregates the outcome of converting a tabular export into notes.
type ExportReport struct {
	OutputDir      string         `json:"output_dir"`
	Notes          int            `json:"notes"`
	NotesWithTags  int            `json:"notes_with_tags"`
	NotesWithLinks int            `json:"notes_with_links"`
	UniqueTags     int            `json:"unique_tags"`
	TotalLinks     int            `json:"total_links"`
	ByStatus       map[string]int `json:"by_status,omitempty"`
	ByType         map[string]int `json:"by_type,omitempty"`
	Files          []string       `json:"files,omitempty"`
}
