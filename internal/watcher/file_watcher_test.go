package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for FileWatcher:
// - A change to a matching file fires the callback after the debounce
// - Changes to non-matching extensions are ignored
// - Stop is idempotent and safe before Start

func TestFileWatcher_FiresOnChange(t *testing.T) {
	dir := t.TempDir()

	fw, err := NewFileWatcher([]string{dir}, []string{".py"}, 100*time.Millisecond)
	require.NoError(t, err)
	defer fw.Stop()

	changed := make(chan []string, 1)
	fw.Start(context.Background(), func(files []string) {
		select {
		case changed <- files:
		default:
		}
	})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "models.py"), []byte("x = 1\n"), 0644))

	select {
	case files := <-changed:
		require.Len(t, files, 1)
		assert.Contains(t, files[0], "models.py")
	case <-time.After(5 * time.Second):
		t.Fatal("expected change callback")
	}
}

func TestFileWatcher_IgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()

	fw, err := NewFileWatcher([]string{dir}, []string{".py"}, 100*time.Millisecond)
	require.NoError(t, err)
	defer fw.Stop()

	changed := make(chan []string, 1)
	fw.Start(context.Background(), func(files []string) {
		select {
		case changed <- files:
		default:
		}
	})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	select {
	case files := <-changed:
		t.Fatalf("unexpected callback for %v", files)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestFileWatcher_StopIdempotent(t *testing.T) {
	dir := t.TempDir()

	fw, err := NewFileWatcher([]string{dir}, []string{".py"}, 100*time.Millisecond)
	require.NoError(t, err)

	fw.Start(context.Background(), func([]string) {})
	require.NoError(t, fw.Stop())
	require.NoError(t, fw.Stop())
}
