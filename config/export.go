package config

import (
	"fmt"
	"strings"
)

const (
	DefaultSlugLength = 60
	DefaultIDPrefix   = "idea"
)

// ExportColumns maps note fields to the column headers of the tabular export.
type ExportColumns struct {
	Title       string `json:"title" yaml:"title"`
	Status      string `json:"status" yaml:"status"`
	Type        string `json:"type" yaml:"type"`
	Source      string `json:"source" yaml:"source"`
	Tags        string `json:"tags" yaml:"tags"`
	Connections string `json:"connections" yaml:"connections"`
}

// ExportSettings configures the conversion of a CSV export into notes.
type ExportSettings struct {
	Columns    ExportColumns `json:"columns" yaml:"columns"`
	IDPrefix   string        `json:"id_prefix" yaml:"id_prefix"`     // Notes are named <prefix>-NNN-<slug>
	SlugLength int           `json:"slug_length" yaml:"slug_length"` // Maximum rune length of the title slug
	Extension  string        `json:"extension" yaml:"extension"`
}

// NewExportSettings returns export settings with every default applied.
func NewExportSettings() *ExportSettings {
	settings := &ExportSettings{}
	settings.ApplyDefaults()
	return settings
}

// ApplyDefaults fills the column names used by the original ideas export.
func (settings *ExportSettings) ApplyDefaults() {
	if settings.Columns.Title == "" {
		settings.Columns.Title = "📝 Idea"
	}
	if settings.Columns.Status == "" {
		settings.Columns.Status = "Estado"
	}
	if settings.Columns.Type == "" {
		settings.Columns.Type = "💡 Tipo"
	}
	if settings.Columns.Source == "" {
		settings.Columns.Source = "📚 Fuente"
	}
	if settings.Columns.Tags == "" {
		settings.Columns.Tags = "🏷️ Tags"
	}
	if settings.Columns.Connections == "" {
		settings.Columns.Connections = "🔗 Conexiones"
	}
	if settings.IDPrefix == "" {
		settings.IDPrefix = DefaultIDPrefix
	}
	if settings.SlugLength == 0 {
		settings.SlugLength = DefaultSlugLength
	}
	if settings.Extension == "" {
		settings.Extension = DefaultExtension
	}
	if !strings.HasPrefix(settings.Extension, ".") {
		settings.Extension = "." + settings.Extension
	}
}

// Validate returns the list of problems found in the export settings.
func (settings *ExportSettings) Validate() []string {
	var problems []string
	if settings.SlugLength < 1 {
		problems = append(problems, fmt.Sprintf("slug_length must be at least 1 (got %d)", settings.SlugLength))
	}
	if strings.ContainsAny(settings.IDPrefix, `/\`) {
		problems = append(problems, "id_prefix cannot contain path separators")
	}
	return problems
}
