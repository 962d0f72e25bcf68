package scanner

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteModel serializes the project model as indented JSON and writes it
// atomically: the document lands in a temp file in the destination
// directory and is renamed into place, so readers never observe a partial
// document.
func WriteModel(model *ProjectModel, outputPath string) error {
	data, err := json.MarshalIndent(model, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project model: %w", err)
	}

	dir := filepath.Dir(outputPath)
	tmp, err := os.CreateTemp(dir, ".structmap-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// CreateTemp creates the file 0600; the published document should be
	// world-readable
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to set temp file permissions: %w", err)
	}

	if err := os.Rename(tmp.Name(), outputPath); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}
