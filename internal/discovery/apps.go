// Package discovery locates app directories under a project root and
// decides which candidate files qualify for scanning. It is the pluggable
// collaborator in front of the scanner core, which applies no directory
// heuristics of its own.
package discovery

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoProjectMarker reports that the project root does not contain the
// configured project marker file anywhere beneath it.
var ErrNoProjectMarker = errors.New("project marker not found")

// AppDiscovery finds app directories beneath a project root. A directory
// counts as an app when it contains the app marker file. When no directory
// does, discovery falls back to top-level directories that hold Python
// files, skipping dot- and dunder-prefixed names.
type AppDiscovery struct {
	projectRoot   string
	projectMarker string
	appMarker     string
}

// NewAppDiscovery creates a discovery rooted at projectRoot. Typical
// markers for a Django layout are "settings.py" and "apps.py".
func NewAppDiscovery(projectRoot, projectMarker, appMarker string) *AppDiscovery {
	return &AppDiscovery{
		projectRoot:   projectRoot,
		projectMarker: projectMarker,
		appMarker:     appMarker,
	}
}

// FindApps returns the app directories sorted lexicographically for
// deterministic output. When the project marker is missing the result is
// empty and the error is ErrNoProjectMarker.
func (d *AppDiscovery) FindApps() ([]string, error) {
	markerFound := false
	var apps []string

	err := filepath.WalkDir(d.projectRoot, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are not fatal to discovery
		}
		if entry.IsDir() {
			return nil
		}
		switch entry.Name() {
		case d.projectMarker:
			markerFound = true
		case d.appMarker:
			apps = append(apps, filepath.Dir(path))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !markerFound {
		return nil, ErrNoProjectMarker
	}

	if len(apps) == 0 {
		apps = d.fallbackApps()
	}

	sort.Strings(apps)
	return apps, nil
}

// fallbackApps returns top-level directories containing Python files, used
// when no directory carries the app marker.
func (d *AppDiscovery) fallbackApps() []string {
	entries, err := os.ReadDir(d.projectRoot)
	if err != nil {
		return nil
	}

	var apps []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "__") {
			continue
		}
		dir := filepath.Join(d.projectRoot, name)
		if hasPythonFiles(dir) {
			apps = append(apps, dir)
		}
	}
	return apps
}

// hasPythonFiles reports whether dir directly contains at least one .py
// file.
func hasPythonFiles(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".py" {
			return true
		}
	}
	return false
}
