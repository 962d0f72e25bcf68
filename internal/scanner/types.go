// Package scanner assembles per-file structural records into the project
// model: one app entry per scanned root directory, each holding the file
// records produced by parsing its Python sources.
package scanner

import (
	"github.com/structmap/structmap/internal/scanner/extraction"
)

// FileRecord is the structural index of one source file. A file that could
// not be parsed still yields a record with populated paths and empty,
// non-nil Items and Imports.
type FileRecord struct {
	Name         string                   `json:"name"`
	RelativePath string                   `json:"relative_path"`
	AbsolutePath string                   `json:"absolute_path"`
	Items        []extraction.Declaration `json:"items"`
	Imports      []extraction.Import      `json:"imports"`
}

// AppRecord groups the file records of one root directory. Apps are
// independent of each other; nothing in the model crosses app boundaries.
type AppRecord struct {
	Name  string       `json:"name"`
	Path  string       `json:"path"`
	Files []FileRecord `json:"files"`
}

// ProjectModel is the root of one scan run's output. GeneratedAt and
// ScanID are stamped once at the start of the run; the model is a pure
// tree with no back-references and is immutable after the scan.
type ProjectModel struct {
	ScanID      string      `json:"scan_id"`
	GeneratedAt string      `json:"generated_at"`
	Apps        []AppRecord `json:"apps"`
}
