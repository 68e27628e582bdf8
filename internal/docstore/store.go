// Package docstore reads and writes the raw text backing a checklist.
//
// It distinguishes two failure kinds callers must handle differently:
// ErrNotFound when the document does not exist (the caller should run a
// prior workflow step, not treat the list as empty), and PersistError when
// a write fails (the in-memory mutation survives and the save can be
// retried).
package docstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound reports that the checklist document does not exist.
var ErrNotFound = errors.New("task document not found")

// PersistError reports a failed write of the checklist document.
type PersistError struct {
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *PersistError) Unwrap() error {
	return e.Err
}

// Load reads the checklist document at path. A missing file is surfaced as
// ErrNotFound, never as an empty document.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", fmt.Errorf("read task document: %w", err)
	}
	return string(data), nil
}

// Save writes the checklist document at path. The write goes through a
// temp file and rename so a failure never truncates the original.
func Save(path, text string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".ticklist-*")
	if err != nil {
		return &PersistError{Path: path, Err: err}
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return &PersistError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return &PersistError{Path: path, Err: err}
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return &PersistError{Path: path, Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return &PersistError{Path: path, Err: err}
	}
	return nil
}

// Exists reports whether a checklist document exists at path.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
