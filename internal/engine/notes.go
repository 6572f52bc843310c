package engine

import (
	"context"

	"github.com/gcbaptista/go-note-linker/internal/corpus"
	"github.com/gcbaptista/go-note-linker/internal/document"
	"github.com/gcbaptista/go-note-linker/internal/export"
	"github.com/gcbaptista/go-note-linker/internal/linker"
	"github.com/gcbaptista/go-note-linker/model"
)

// ListNotes summarizes every document of the corpus in path order. Documents
// that cannot be read are listed with their error.
func (e *Engine) ListNotes(ctx context.Context) ([]model.NoteSummary, error) {
	paths, err := corpus.Discover(e.settings.InputDir, e.settings.Extension)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.NoteSummary, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result := corpus.Load(path)
		if !result.OK() {
			summaries = append(summaries, model.NoteSummary{Path: path, Error: result.Err.Error()})
			continue
		}
		summaries = append(summaries, document.Summary(result.Document, linker.CountMarkers(result.Document.Body)))
	}
	return summaries, nil
}

// Export converts the CSV export at csvPath into notes inside outputDir.
func (e *Engine) Export(ctx context.Context, csvPath, outputDir string) (*model.ExportReport, error) {
	exporter, err := export.NewExporter(e.exportSettings)
	if err != nil {
		return nil, err
	}
	return exporter.Export(ctx, csvPath, outputDir)
}
