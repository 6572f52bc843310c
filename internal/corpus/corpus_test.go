package corpus

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-note-linker/internal/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.md"), "b")
	writeFile(t, filepath.Join(dir, "a.md"), "a")
	writeFile(t, filepath.Join(dir, "c.MD"), "c")
	writeFile(t, filepath.Join(dir, "notes.txt"), "x")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.md"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
	writeFile(t, filepath.Join(dir, "nested", "d.md"), "d")

	paths, err := Discover(dir, ".md")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.md"),
		filepath.Join(dir, "b.md"),
		filepath.Join(dir, "c.MD"),
	}, paths)
}

func TestDiscover_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Discover(filepath.Join(dir, "missing"), ".md")
	assert.True(t, stderrors.Is(err, errors.ErrCorpusNotFound))

	file := filepath.Join(dir, "file.md")
	writeFile(t, file, "x")
	_, err = Discover(file, ".md")
	assert.True(t, stderrors.Is(err, errors.ErrCorpusNotFound))

	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.Mkdir(empty, 0o755))
	_, err = Discover(empty, ".md")
	assert.True(t, stderrors.Is(err, errors.ErrEmptyCorpus))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.md")
	writeFile(t, good, "---\nid: 1\n---\ncuerpo")
	bad := filepath.Join(dir, "bad.md")
	require.NoError(t, os.WriteFile(bad, []byte{0xff, 0xfe, 'x'}, 0o644))
	missing := filepath.Join(dir, "missing.md")

	results := LoadAll([]string{good, bad, missing})
	require.Len(t, results, 3)

	assert.True(t, results[0].OK())
	assert.Equal(t, "---\nid: 1\n---", results[0].Document.Header)
	assert.Equal(t, "cuerpo", results[0].Document.Body)

	assert.False(t, results[1].OK())
	assert.True(t, stderrors.Is(results[1].Err, errors.ErrDocumentRead))
	assert.Contains(t, results[1].Err.Error(), "UTF-8")

	assert.False(t, results[2].OK())
	assert.True(t, stderrors.Is(results[2].Err, os.ErrNotExist))
	assert.Equal(t, missing, results[2].Path)
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.md")
	writeFile(t, path, "antes")

	result := Load(path)
	require.True(t, result.OK())
	require.NoError(t, Save(result.Document, "después"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "después", string(data))

	result.Document.Path = filepath.Join(dir, "gone", "note.md")
	err = Save(result.Document, "x")
	assert.True(t, stderrors.Is(err, errors.ErrDocumentWrite))
}
