package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// JSONWriter serializes derived report documents into an output directory.
// Writes are atomic: the document lands in a temporary file that is renamed
// over the target, so a failed run never leaves a half-written artifact
// visible to CDN consumers.
type JSONWriter struct {
	dir string
}

// NewJSONWriter creates the output directory if needed and returns a
// ready-to-use JSONWriter.
func NewJSONWriter(dir string) (*JSONWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("json: create output dir %q: %w", dir, err)
	}
	return &JSONWriter{dir: dir}, nil
}

// Dir returns the output directory.
func (w *JSONWriter) Dir() string { return w.dir }

// WriteJSON marshals payload and atomically writes it to name inside the
// output directory. Each file is independent: a failure here leaves any
// previously written artifacts intact.
func (w *JSONWriter) WriteJSON(name string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("json: marshal %q: %w", name, err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(w.dir, "."+name+".tmp-")
	if err != nil {
		return fmt.Errorf("json: create temp for %q: %w", name, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("json: write %q: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("json: close %q: %w", name, err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("json: chmod %q: %w", name, err)
	}

	target := filepath.Join(w.dir, name)
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("json: replace %q: %w", name, err)
	}
	return nil
}
