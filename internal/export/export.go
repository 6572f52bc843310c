// Package export turns a tabular CSV export of ideas into a directory of notes
// with YAML front matter, ready to be enriched with cross references.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gcbaptista/go-note-linker/config"
	"github.com/gcbaptista/go-note-linker/internal/persistence"
	"github.com/gcbaptista/go-note-linker/model"
)

const (
	notePerm = 0644
	bom      = "\ufeff"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	slugDropRegex   = regexp.MustCompile(`[^\p{L}\p{N}_\- ]`)
	tagSplitRegex   = regexp.MustCompile(`[;,]`)
	quotedRegex     = regexp.MustCompile(`["“”](.*?)["“”]`)
)

// FrontMatter is the metadata header written at the top of every note.
type FrontMatter struct {
	ID     string   `yaml:"id"`
	Title  string   `yaml:"title"`
	Status string   `yaml:"estado,omitempty"`
	Type   string   `yaml:"tipo,omitempty"`
	Source string   `yaml:"fuente,omitempty"`
	Tags   []string `yaml:"tags,omitempty"`
	Links  []string `yaml:"links,omitempty"`
}

// Note is one converted row.
type Note struct {
	FileName    string
	FrontMatter FrontMatter
	Connections string // Raw connections cell, kept in the body
}

// Exporter converts CSV rows into notes.
type Exporter struct {
	settings *config.ExportSettings
}

// NewExporter creates an exporter; nil settings use the defaults.
func NewExporter(settings *config.ExportSettings) (*Exporter, error) {
	if settings == nil {
		settings = config.NewExportSettings()
	}
	settings.ApplyDefaults()
	if problems := settings.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("invalid export settings: %s", strings.Join(problems, "; "))
	}
	return &Exporter{settings: settings}, nil
}

// Export reads csvPath and writes one note per row into outputDir.
func (e *Exporter) Export(ctx context.Context, csvPath, outputDir string) (*model.ExportReport, error) {
	file, err := os.Open(csvPath) // #nosec G304 -- path comes from the operator
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV export %s: %w", csvPath, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Printf("Warning: failed to close %s: %v", csvPath, closeErr)
		}
	}()

	notes, err := e.ReadNotes(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV export %s: %w", csvPath, err)
	}

	report := &model.ExportReport{
		OutputDir: outputDir,
		ByStatus:  make(map[string]int),
		ByType:    make(map[string]int),
	}
	uniqueTags := make(map[string]struct{})

	for _, note := range notes {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		content, err := Render(note)
		if err != nil {
			return report, fmt.Errorf("failed to render note %s: %w", note.FileName, err)
		}
		path := filepath.Join(outputDir, note.FileName)
		if err := persistence.WriteFileAtomic(path, []byte(content), notePerm); err != nil {
			return report, fmt.Errorf("failed to write note %s: %w", path, err)
		}

		report.Notes++
		report.Files = append(report.Files, path)
		fm := note.FrontMatter
		if len(fm.Tags) > 0 {
			report.NotesWithTags++
			for _, tag := range fm.Tags {
				uniqueTags[tag] = struct{}{}
			}
		}
		if len(fm.Links) > 0 {
			report.NotesWithLinks++
			report.TotalLinks += len(fm.Links)
		}
		if fm.Status != "" {
			report.ByStatus[fm.Status]++
		}
		if fm.Type != "" {
			report.ByType[fm.Type]++
		}
	}
	report.UniqueTags = len(uniqueTags)

	log.Printf("Exported %d notes from %s to %s", report.Notes, csvPath, outputDir)
	return report, nil
}

// ReadNotes parses the CSV export. The first record is the header row; columns
// are looked up by name, so their order does not matter and missing columns
// read as empty cells.
func (e *Exporter) ReadNotes(r io.Reader) ([]Note, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return []Note{}, nil
	}
	if err != nil {
		return nil, err
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, bom)
		}
		columns[strings.TrimSpace(name)] = i
	}
	if _, ok := columns[e.settings.Columns.Title]; !ok {
		log.Printf("Warning: column '%s' not found in CSV header, titles fall back to row numbers", e.settings.Columns.Title)
	}

	notes := []Note{}
	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		cell := func(column string) string {
			i, ok := columns[column]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}
		notes = append(notes, e.buildNote(row, cell))
	}
	return notes, nil
}

func (e *Exporter) buildNote(row int, cell func(string) string) Note {
	cols := e.settings.Columns
	title := cell(cols.Title)
	if title == "" {
		title = fmt.Sprintf("Idea %d", row)
	}
	id := fmt.Sprintf("%s-%03d", e.settings.IDPrefix, row)
	connections := cell(cols.Connections)

	return Note{
		FileName: id + "-" + Slugify(title, e.settings.SlugLength) + e.settings.Extension,
		FrontMatter: FrontMatter{
			ID:     id,
			Title:  title,
			Status: cell(cols.Status),
			Type:   cell(cols.Type),
			Source: cell(cols.Source),
			Tags:   SplitTags(cell(cols.Tags)),
			Links:  ExtractLinks(connections),
		},
		Connections: connections,
	}
}

// Render produces the full note text: front matter, the idea section and,
// when present, the original connections text.
func Render(note Note) (string, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(note.FrontMatter); err != nil {
		return "", err
	}
	if err := encoder.Close(); err != nil {
		return "", err
	}

	var out strings.Builder
	out.WriteString("---\n")
	out.Write(buf.Bytes())
	out.WriteString("---\n\n## Idea\n")
	out.WriteString(note.FrontMatter.Title)
	if note.Connections != "" {
		out.WriteString("\n\n## Connections (original text)\n")
		out.WriteString(note.Connections)
	}
	return out.String(), nil
}

// Slugify builds a file-name-safe slug from text: whitespace collapsed,
// truncated to maxLen runes, characters other than letters, digits, '_', '-'
// and spaces dropped, spaces turned into '-'. Returns "note" when nothing is left.
func Slugify(text string, maxLen int) string {
	text = strings.TrimSpace(whitespaceRegex.ReplaceAllString(text, " "))
	if runes := []rune(text); maxLen > 0 && len(runes) > maxLen {
		text = string(runes[:maxLen])
	}
	text = slugDropRegex.ReplaceAllString(text, "")
	text = strings.ReplaceAll(strings.TrimSpace(text), " ", "-")
	if text == "" {
		return "note"
	}
	return text
}

// SplitTags splits a tags cell on commas and semicolons.
func SplitTags(cell string) []string {
	var tags []string
	for _, tag := range tagSplitRegex.Split(cell, -1) {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// ExtractLinks turns quoted names in a connections cell into [[name]] markers.
// When nothing is quoted the whole cell is kept as a single link.
func ExtractLinks(cell string) []string {
	text := strings.TrimSpace(cell)
	if text == "" {
		return nil
	}

	var links []string
	for _, match := range quotedRegex.FindAllStringSubmatch(text, -1) {
		if name := strings.TrimSpace(match[1]); name != "" {
			links = append(links, "[["+name+"]]")
		}
	}
	if len(links) == 0 {
		links = append(links, text)
	}
	return links
}
