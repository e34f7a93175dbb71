package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// JSONFile stores a single snapshot in a JSON file.
type JSONFile struct {
	path string
}

// NewJSONFile creates a JSON file repository at path.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// LoadSnapshot reads the file. A missing or blank file yields nil.
func (f *JSONFile) LoadSnapshot(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading snapshot file: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	return data, nil
}

// SaveSnapshot replaces the file contents through a temporary file and rename.
func (f *JSONFile) SaveSnapshot(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !json.Valid(data) {
		return errors.New("snapshot is not valid JSON")
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replacing snapshot file: %w", err)
	}
	return nil
}

// Close is a no-op.
func (f *JSONFile) Close() error {
	return nil
}
