package persistence

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "note.md")

	require.NoError(t, WriteFileAtomic(target, []byte("uno"), 0o640))
	require.NoError(t, WriteFileAtomic(target, []byte("dos"), 0o640))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "dos", string(data))

	entries, err := os.ReadDir(filepath.Dir(target))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestReplaceFile_KeepsPermissions(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "note.md")
	require.NoError(t, os.WriteFile(target, []byte("antes"), 0o600))

	require.NoError(t, ReplaceFile(target, []byte("después")))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "después", string(data))
}

func TestReplaceFile_Missing(t *testing.T) {
	err := ReplaceFile(filepath.Join(t.TempDir(), "missing.md"), []byte("x"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
