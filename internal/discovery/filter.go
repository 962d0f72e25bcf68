package discovery

import (
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and compiled glob.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Filter implements the per-file ShouldScan predicate. Files under a path
// segment matching the generated-content directory name are excluded
// unless they are the package keep-file, and any path matching an ignore
// pattern is excluded.
type Filter struct {
	generatedDir   string
	keepFile       string
	ignorePatterns []compiledPattern
}

// NewFilter compiles the ignore patterns and returns a filter.
// generatedDir is typically "migrations" and keepFile "__init__.py".
func NewFilter(generatedDir, keepFile string, ignorePatterns []string) (*Filter, error) {
	f := &Filter{
		generatedDir: generatedDir,
		keepFile:     keepFile,
	}

	for _, pattern := range ignorePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		f.ignorePatterns = append(f.ignorePatterns, compiledPattern{pattern: pattern, glob: g})
	}

	return f, nil
}

// ShouldScan reports whether the file at path qualifies for scanning.
func (f *Filter) ShouldScan(path string) bool {
	slashed := filepath.ToSlash(path)

	if f.generatedDir != "" && pathHasSegment(slashed, f.generatedDir) && filepath.Base(path) != f.keepFile {
		return false
	}

	for _, cp := range f.ignorePatterns {
		if cp.glob.Match(slashed) {
			return false
		}
	}

	return true
}

// pathHasSegment reports whether any path segment equals name.
func pathHasSegment(slashed, name string) bool {
	for _, segment := range strings.Split(slashed, "/") {
		if segment == name {
			return true
		}
	}
	return false
}
