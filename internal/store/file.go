// internal/store/file.go
//
// File Backend: the record blob is one JSON file. Writes go to a temp file in
// the same directory and are renamed into place, so a crash mid-write leaves
// the previous blob intact.

package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileBackend stores the record blob at Path.
type FileBackend struct {
	Path string
}

// NewFileBackend returns a backend for path. The file is created on first write.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{Path: path}
}

// Read returns the file contents, or ErrNoData if the file does not exist.
func (f *FileBackend) Read(ctx context.Context) ([]byte, error) {
	b, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Path, err)
	}
	return b, nil
}

// Write atomically replaces the file.
func (f *FileBackend) Write(ctx context.Context, blob []byte) error {
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(f.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(blob); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		return fmt.Errorf("rename into %s: %w", f.Path, err)
	}
	return nil
}
