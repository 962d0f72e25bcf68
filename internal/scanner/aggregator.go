package scanner

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// ErrNoRoots reports that the aggregator was given zero root directories.
// It is distinct from a run where discovery supplied roots but every root
// contained zero qualifying files; callers that care can tell the two
// apart by checking for this sentinel.
var ErrNoRoots = errors.New("no app directories supplied")

// FileLister enumerates the candidate source files under one root, in the
// order the app's file records should appear.
type FileLister interface {
	ListFiles(root string) ([]string, error)
}

// ScanFilter is the per-file predicate the aggregator consults before
// scanning a candidate file.
type ScanFilter interface {
	ShouldScan(path string) bool
}

// Aggregator runs the file scanner over every qualifying file under each
// supplied root and assembles the project model.
type Aggregator struct {
	scanner *FileScanner
	lister  FileLister
	filter  ScanFilter

	// OnFile, when set, is invoked after each file is scanned.
	OnFile func(path string)
	// OnSkip, when set, is invoked with the reason a file contributed an
	// empty record or a root could not be enumerated.
	OnSkip func(path string, err error)
}

// NewAggregator creates an aggregator. lister and filter are the external
// discovery collaborators; the aggregator applies no directory heuristics
// of its own.
func NewAggregator(workDir string, lister FileLister, filter ScanFilter) *Aggregator {
	return &Aggregator{
		scanner: NewFileScanner(workDir),
		lister:  lister,
		filter:  filter,
	}
}

// Aggregate scans every root and returns the project model, with one app
// per root in the supplied order. The generation timestamp and scan id are
// stamped once, at the start of the run. An empty roots list returns an
// empty model together with ErrNoRoots. Cancelling ctx stops the scan
// between files; the partial model is returned alongside the context
// error and should not be published.
func (a *Aggregator) Aggregate(ctx context.Context, roots []string) (*ProjectModel, error) {
	model := &ProjectModel{
		ScanID:      uuid.NewString(),
		GeneratedAt: time.Now().Format(time.RFC3339),
		Apps:        []AppRecord{},
	}

	if len(roots) == 0 {
		return model, ErrNoRoots
	}

	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return model, err
		}

		app := AppRecord{
			Name:  filepath.Base(root),
			Path:  root,
			Files: []FileRecord{},
		}

		files, err := a.lister.ListFiles(root)
		if err != nil {
			a.skip(root, err)
		}

		for _, file := range files {
			if err := ctx.Err(); err != nil {
				return model, err
			}
			if a.filter != nil && !a.filter.ShouldScan(file) {
				continue
			}

			record, err := a.scanner.ScanFile(ctx, file)
			if err != nil {
				a.skip(file, err)
			}
			app.Files = append(app.Files, record)

			if a.OnFile != nil {
				a.OnFile(file)
			}
		}

		model.Apps = append(model.Apps, app)
	}

	return model, nil
}

func (a *Aggregator) skip(path string, err error) {
	if a.OnSkip != nil {
		a.OnSkip(path, err)
	}
}
