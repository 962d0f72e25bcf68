// Package watcher re-runs a callback when watched source files change,
// debouncing bursts of filesystem events into a single invocation.
package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher watches directories recursively and invokes a callback with
// the set of changed files after a quiet period.
type FileWatcher struct {
	watcher      *fsnotify.Watcher
	dirs         []string
	extensions   map[string]bool
	debounceTime time.Duration
	callback     func(files []string)

	cancel context.CancelFunc
	doneCh chan struct{}

	accumulated   map[string]bool
	accumulatedMu sync.Mutex
	debounceTimer *time.Timer
	timerMu       sync.Mutex
	stopOnce      sync.Once
}

// NewFileWatcher creates a watcher over dirs for files with the given
// extensions (e.g. []string{".py"}).
func NewFileWatcher(dirs []string, extensions []string, debounce time.Duration) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	extMap := make(map[string]bool)
	for _, ext := range extensions {
		extMap[ext] = true
	}

	fw := &FileWatcher{
		watcher:      watcher,
		dirs:         dirs,
		extensions:   extMap,
		debounceTime: debounce,
		accumulated:  make(map[string]bool),
		doneCh:       make(chan struct{}),
	}

	for _, dir := range dirs {
		if err := fw.addDirectoriesRecursively(dir); err != nil {
			watcher.Close()
			return nil, err
		}
	}

	return fw, nil
}

// Start begins watching for file changes.
func (fw *FileWatcher) Start(ctx context.Context, callback func(files []string)) {
	fw.callback = callback
	ctx, fw.cancel = context.WithCancel(ctx)
	go fw.watch(ctx)
}

// Stop stops the file watcher. It is idempotent.
func (fw *FileWatcher) Stop() error {
	var err error
	fw.stopOnce.Do(func() {
		if fw.cancel != nil {
			fw.cancel()
			<-fw.doneCh
		}
		err = fw.watcher.Close()
	})
	return err
}

// addDirectoriesRecursively registers dir and every subdirectory.
func (fw *FileWatcher) addDirectoriesRecursively(dir string) error {
	return filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if entry.IsDir() {
			return fw.watcher.Add(path)
		}
		return nil
	})
}

// watch consumes fsnotify events until the context is cancelled.
func (fw *FileWatcher) watch(ctx context.Context) {
	defer close(fw.doneCh)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handleEvent(event)
		case _, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// handleEvent accumulates a relevant change and resets the debounce timer.
func (fw *FileWatcher) handleEvent(event fsnotify.Event) {
	// Newly created directories need to be watched too
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			fw.addDirectoriesRecursively(event.Name)
		}
	}

	if !fw.extensions[filepath.Ext(event.Name)] {
		return
	}
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return
	}

	fw.accumulatedMu.Lock()
	fw.accumulated[event.Name] = true
	fw.accumulatedMu.Unlock()

	fw.resetDebounceTimer()
}

// resetDebounceTimer restarts the quiet-period timer.
func (fw *FileWatcher) resetDebounceTimer() {
	fw.timerMu.Lock()
	defer fw.timerMu.Unlock()

	if fw.debounceTimer != nil {
		fw.debounceTimer.Stop()
	}
	fw.debounceTimer = time.AfterFunc(fw.debounceTime, fw.fireCallback)
}

// fireCallback drains the accumulated changes and invokes the callback.
func (fw *FileWatcher) fireCallback() {
	fw.accumulatedMu.Lock()
	if len(fw.accumulated) == 0 {
		fw.accumulatedMu.Unlock()
		return
	}
	files := make([]string, 0, len(fw.accumulated))
	for file := range fw.accumulated {
		files = append(files, file)
	}
	fw.accumulated = make(map[string]bool)
	fw.accumulatedMu.Unlock()

	if fw.callback != nil {
		fw.callback(files)
	}
}
