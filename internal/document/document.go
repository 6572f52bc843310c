// Package document separates a note's structural header (front matter) from
// the body text that analysis and annotation operate on.
package document

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/gcbaptista/go-note-linker/model"
)

// Boundary is the line that opens and closes a structural header.
const Boundary = "---"

// Split separates text into header and body. A header exists only when the
// first line is a boundary line and a later line is a boundary line too; the
// header then spans both boundaries and the body starts after the line break
// that follows the closing one. Otherwise the whole text is the body.
func Split(path, text string) *model.Document {
	doc := &model.Document{Path: path, Name: filepath.Base(path), Body: text}

	firstEnd := strings.IndexByte(text, '\n')
	if firstEnd < 0 || !isBoundary(text[:firstEnd]) {
		return doc
	}

	start := firstEnd + 1
	for start < len(text) {
		lineEnd := len(text)
		stop := len(text)
		if i := strings.IndexByte(text[start:], '\n'); i >= 0 {
			lineEnd = start + i
			stop = lineEnd + 1
		}
		if isBoundary(text[start:lineEnd]) {
			closing := start + len(Boundary)
			doc.Header = text[:closing]
			doc.Separator = text[closing:stop]
			doc.Body = text[stop:]
			return doc
		}
		start = stop
	}
	return doc
}

// Join reassembles a document. Join(Split(p, x)) == x for every x.
func Join(doc *model.Document) string {
	if !doc.HasHeader() {
		return doc.Body
	}
	separator := doc.Separator
	if separator == "" && doc.Body != "" {
		separator = "\n"
	}
	return doc.Header + separator + doc.Body
}

// Metadata decodes the YAML header of doc. Documents without a header yield
// an empty map.
func Metadata(doc *model.Document) (map[string]interface{}, error) {
	meta := map[string]interface{}{}
	if !doc.HasHeader() {
		return meta, nil
	}

	source := []byte(doc.Header + "\n")
	if _, err := frontmatter.Parse(bytes.NewReader(source), &meta); err != nil {
		return nil, fmt.Errorf("failed to parse front matter of %s: %w", doc.Path, err)
	}
	return meta, nil
}

// Summary builds the listing entry of a document from its header metadata.
func Summary(doc *model.Document, markers int) model.NoteSummary {
	summary := model.NoteSummary{Path: doc.Path, Markers: markers}

	meta, err := Metadata(doc)
	if err != nil {
		summary.Error = err.Error()
		return summary
	}

	if title, ok := meta["title"].(string); ok {
		summary.Title = title
	}
	switch tags := meta["tags"].(type) {
	case []interface{}:
		for _, tag := range tags {
			if s, ok := tag.(string); ok {
				summary.Tags = append(summary.Tags, s)
			}
		}
	case string:
		summary.Tags = []string{tags}
	}
	return summary
}

func isBoundary(line string) bool {
	return strings.TrimSuffix(line, "\r") == Boundary
}
