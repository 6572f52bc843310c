// Package config provides configuration structures for the note linker.
// It defines the pipeline settings (term selection thresholds, corpus location)
// and the export settings used to turn a tabular export into notes.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultExtension     = ".md"
	DefaultMinTermLength = 4
	DefaultMinFrequency  = 2
	DefaultMaxTerms      = 20
	DefaultWorkers       = 4
)

// PipelineSettings contains every static parameter of an enrichment run.
// The same value is handed to the tokenizer, the analyzer and the engine so
// components never read process-wide constants.
type PipelineSettings struct {
	InputDir       string   `json:"input_dir" yaml:"input_dir"`             // Directory holding the notes (non-recursive)
	Extension      string   `json:"extension" yaml:"extension"`             // File extension of the notes, e.g. ".md"
	MinTermLength  int      `json:"min_term_length" yaml:"min_term_length"` // Minimum rune length of a term
	MinFrequency   int      `json:"min_frequency" yaml:"min_frequency"`     // Minimum occurrences across the corpus
	MaxTerms       int      `json:"max_terms" yaml:"max_terms"`             // Size of the ranked term list
	Stopwords      []string `json:"stopwords,omitempty" yaml:"stopwords,omitempty"`
	ExtraStopwords []string `json:"extra_stopwords,omitempty" yaml:"extra_stopwords,omitempty"`
	Workers        int      `json:"workers" yaml:"workers"`     // Annotation workers; analysis is always sequential
	SkipCode       bool     `json:"skip_code" yaml:"skip_code"` // Leave Markdown code blocks and spans untouched
	DryRun         bool     `json:"dry_run" yaml:"dry_run"`     // Compute changes without writing

	stopwordSet map[string]struct{}
}

// NewPipelineSettings returns settings for dir with every default applied.
func NewPipelineSettings(dir string) *PipelineSettings {
	settings := &PipelineSettings{InputDir: dir}
	settings.ApplyDefaults()
	return settings
}

// ApplyDefaults applies default values to the pipeline settings
func (settings *PipelineSettings) ApplyDefaults() {
	if settings.Extension == "" {
		settings.Extension = DefaultExtension
	}
	if !strings.HasPrefix(settings.Extension, ".") {
		settings.Extension = "." + settings.Extension
	}
	if settings.MinTermLength == 0 {
		settings.MinTermLength = DefaultMinTermLength
	}
	if settings.MinFrequency == 0 {
		settings.MinFrequency = DefaultMinFrequency
	}
	if settings.MaxTerms == 0 {
		settings.MaxTerms = DefaultMaxTerms
	}
	if settings.Workers == 0 {
		settings.Workers = DefaultWorkers
	}
	if settings.Stopwords == nil {
		settings.Stopwords = DefaultStopwords()
	}
	if settings.ExtraStopwords == nil {
		settings.ExtraStopwords = []string{}
	}
	settings.stopwordSet = nil
}

// Validate returns the list of problems found in the settings. An empty list
// means the settings can be used for a run.
func (settings *PipelineSettings) Validate() []string {
	var problems []string

	if strings.TrimSpace(settings.InputDir) == "" {
		problems = append(problems, "input_dir is required")
	}
	if settings.MinTermLength < 1 {
		problems = append(problems, fmt.Sprintf("min_term_length must be at least 1 (got %d)", settings.MinTermLength))
	}
	if settings.MinFrequency < 1 {
		problems = append(problems, fmt.Sprintf("min_frequency must be at least 1 (got %d)", settings.MinFrequency))
	}
	if settings.MaxTerms < 1 {
		problems = append(problems, fmt.Sprintf("max_terms must be at least 1 (got %d)", settings.MaxTerms))
	}
	if settings.Workers < 1 {
		problems = append(problems, fmt.Sprintf("workers must be at least 1 (got %d)", settings.Workers))
	}
	for _, word := range append(append([]string{}, settings.Stopwords...), settings.ExtraStopwords...) {
		if strings.TrimSpace(word) == "" {
			problems = append(problems, "stopwords cannot contain empty or whitespace-only entries")
			break
		}
	}

	return problems
}

// IsStopword reports whether the lowercase term is excluded from analysis.
func (settings *PipelineSettings) IsStopword(term string) bool {
	if settings.stopwordSet == nil {
		settings.stopwordSet = buildStopwordSet(settings.Stopwords, settings.ExtraStopwords)
	}
	_, found := settings.stopwordSet[term]
	return found
}

// Prepare applies defaults, validates, and builds the stopword lookup so the
// settings can be shared read-only between goroutines.
func (settings *PipelineSettings) Prepare() error {
	settings.ApplyDefaults()
	if problems := settings.Validate(); len(problems) > 0 {
		return fmt.Errorf("invalid pipeline settings: %s", strings.Join(problems, "; "))
	}
	settings.stopwordSet = buildStopwordSet(settings.Stopwords, settings.ExtraStopwords)
	return nil
}

// Clone returns a deep copy of the settings.
func (settings *PipelineSettings) Clone() *PipelineSettings {
	clone := *settings
	clone.Stopwords = append([]string(nil), settings.Stopwords...)
	clone.ExtraStopwords = append([]string(nil), settings.ExtraStopwords...)
	clone.stopwordSet = nil
	return &clone
}

func buildStopwordSet(lists ...[]string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, list := range lists {
		for _, word := range list {
			set[strings.ToLower(strings.TrimSpace(word))] = struct{}{}
		}
	}
	return set
}

// LoadSettings reads pipeline settings from a JSON or YAML file. The format
// is chosen from the file extension; defaults are applied to missing fields.
func LoadSettings(path string) (*PipelineSettings, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the operator
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	settings := &PipelineSettings{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("failed to parse YAML settings %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("failed to parse JSON settings %s: %w", path, err)
		}
	}

	settings.ApplyDefaults()
	return settings, nil
}
