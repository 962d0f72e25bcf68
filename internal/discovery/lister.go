package discovery

import (
	"io/fs"
	"path/filepath"
)

// SourceLister enumerates source files with the configured extensions
// under a root, in filesystem walk order (lexical, so deterministic).
type SourceLister struct {
	extensions map[string]bool
}

// NewSourceLister creates a lister for the given extensions, e.g.
// []string{".py"}.
func NewSourceLister(extensions []string) *SourceLister {
	extMap := make(map[string]bool)
	for _, ext := range extensions {
		extMap[ext] = true
	}
	return &SourceLister{extensions: extMap}
}

type fileLister interface {
	ListFiles(root string) ([]string, error)
}

// CachedLister memoizes ListFiles results per root, so a root enumerated
// once for a pre-count is not walked again by the scan itself. The cache
// is never invalidated; use one instance per scan.
type CachedLister struct {
	inner   fileLister
	results map[string]listing
}

type listing struct {
	files []string
	err   error
}

// NewCachedLister wraps a lister with per-root memoization.
func NewCachedLister(inner fileLister) *CachedLister {
	return &CachedLister{
		inner:   inner,
		results: make(map[string]listing),
	}
}

// ListFiles returns the cached enumeration for root, walking it on first
// use only.
func (c *CachedLister) ListFiles(root string) ([]string, error) {
	if cached, ok := c.results[root]; ok {
		return cached.files, cached.err
	}
	files, err := c.inner.ListFiles(root)
	c.results[root] = listing{files: files, err: err}
	return files, err
}

// ListFiles returns every matching file under root recursively. Unreadable
// entries are skipped rather than failing the enumeration.
func (l *SourceLister) ListFiles(root string) ([]string, error) {
	files := []string{}

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if entry.IsDir() {
			return nil
		}
		if l.extensions[filepath.Ext(path)] {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}
