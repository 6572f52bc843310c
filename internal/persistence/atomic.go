package persistence

import (
	"fmt"
	"os"
	"path/filepath"
)

const dirPerm = 0750

// WriteFileAtomic writes data to filePath through a temporary file in the same
// directory that is renamed over the target, so readers see either the old or
// the new content. It creates necessary directories if they don't exist.
func WriteFileAtomic(filePath string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filePath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %s: %w", filePath, err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			if removeErr := os.Remove(tmpPath); removeErr != nil && !os.IsNotExist(removeErr) {
				fmt.Printf("Warning: failed to remove temporary file %s: %v\n", tmpPath, removeErr)
			}
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temporary file for %s: %w", filePath, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync temporary file for %s: %w", filePath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file for %s: %w", filePath, err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		return fmt.Errorf("failed to replace %s: %w", filePath, err)
	}
	committed = true
	return nil
}

// ReplaceFile atomically replaces an existing file, keeping its permissions.
// If the file does not exist, it returns an error wrapping os.ErrNotExist.
func ReplaceFile(filePath string, data []byte) error {
	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", filePath, err)
	}
	return WriteFileAtomic(filePath, data, info.Mode().Perm())
}
