// Package corpus discovers the notes of a directory, loads them into split
// documents and saves rewritten documents atomically.
package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/gcbaptista/go-note-linker/internal/document"
	"github.com/gcbaptista/go-note-linker/internal/errors"
	"github.com/gcbaptista/go-note-linker/internal/persistence"
	"github.com/gcbaptista/go-note-linker/model"
)

// Result is the outcome of loading one document: either a document or the
// cause of the failure, never both.
type Result struct {
	Path     string
	Document *model.Document
	Err      error
}

// OK reports whether the document was loaded.
func (r Result) OK() bool {
	return r.Err == nil && r.Document != nil
}

// Discover lists the regular files with extension ext directly inside dir
// (no recursion), sorted by path. A missing directory or an empty selection is
// a corpus-level error.
func Discover(dir, ext string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewCorpusNotFoundError(dir)
		}
		return nil, errors.NewCorpusNotFoundError(dir, err.Error())
	}
	if !info.IsDir() {
		return nil, errors.NewCorpusNotFoundError(dir, "not a directory")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.NewCorpusNotFoundError(dir, err.Error())
	}

	var paths []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	if len(paths) == 0 {
		return nil, errors.NewEmptyCorpusError(dir, ext)
	}

	sort.Strings(paths)
	return paths, nil
}

// Load reads and splits one document. Unreadable files and content that is
// not valid UTF-8 are reported in the result.
func Load(path string) Result {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from Discover
	if err != nil {
		return Result{Path: path, Err: errors.NewDocumentReadError(path, err)}
	}
	if !utf8.Valid(data) {
		return Result{Path: path, Err: errors.NewDocumentReadError(path, fmt.Errorf("content is not valid UTF-8"))}
	}
	return Result{Path: path, Document: document.Split(path, string(data))}
}

// LoadAll loads every path in order.
func LoadAll(paths []string) []Result {
	results := make([]Result, len(paths))
	for i, path := range paths {
		results[i] = Load(path)
	}
	return results
}

// Save atomically replaces the file of doc with content, keeping its permissions.
func Save(doc *model.Document, content string) error {
	if err := persistence.ReplaceFile(doc.Path, []byte(content)); err != nil {
		return errors.NewDocumentWriteError(doc.Path, err)
	}
	return nil
}
