package scanner

import (
	"context"
	"path/filepath"

	"github.com/structmap/structmap/internal/scanner/extraction"
	"github.com/structmap/structmap/internal/scanner/parsers"
)

// FileScanner produces a FileRecord for a single source file. Relative
// paths are computed against workDir.
type FileScanner struct {
	parser  *parsers.PythonParser
	workDir string
}

// NewFileScanner creates a file scanner rooted at workDir.
func NewFileScanner(workDir string) *FileScanner {
	return &FileScanner{
		parser:  parsers.NewPythonParser(),
		workDir: workDir,
	}
}

// ScanFile scans one file. The returned record is always usable: when the
// file cannot be read or parsed, Items and Imports are empty and the
// returned error carries the reason so the caller can report it. Scanning
// a file never aborts a run.
func (s *FileScanner) ScanFile(ctx context.Context, filePath string) (FileRecord, error) {
	record := FileRecord{
		Name:         filepath.Base(filePath),
		RelativePath: relativePath(s.workDir, filePath),
		AbsolutePath: absolutePath(filePath),
		Items:        []extraction.Declaration{},
		Imports:      []extraction.Import{},
	}

	parse, err := s.parser.ParseFile(ctx, filePath)
	if err != nil {
		return record, err
	}
	defer parse.Close()

	record.Items = parsers.ExtractDeclarations(parse)
	record.Imports = parsers.ExtractImports(parse)
	return record, nil
}

// relativePath computes path relative to workDir, falling back to the
// path itself when the two do not share a base.
func relativePath(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return path
	}
	return rel
}

// absolutePath canonicalizes path, falling back to the path itself.
func absolutePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
