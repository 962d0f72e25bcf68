package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for FileScanner:
// - A parsable file yields declarations and imports with populated paths
// - An unparsable file yields an empty-but-present record plus the reason
// - A missing file yields an empty-but-present record plus the reason
// - relative_path is computed against the scanner's working root
// - Scanning the same unchanged file twice yields identical records

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFileScanner_ScanFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "views.py", "import os\n\nclass Foo:\n    def bar(self):\n        pass\n\ndef baz():\n    pass\n")

	scanner := NewFileScanner(dir)
	record, err := scanner.ScanFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "views.py", record.Name)
	assert.Equal(t, "views.py", record.RelativePath)
	assert.True(t, filepath.IsAbs(record.AbsolutePath))

	require.Len(t, record.Items, 3) // Foo, bar (flat), baz
	assert.Equal(t, "Foo", record.Items[0].Name)
	require.Len(t, record.Items[0].Methods, 1)
	assert.Equal(t, "bar", record.Items[0].Methods[0].Name)
	assert.Equal(t, "baz", record.Items[2].Name)

	require.Len(t, record.Imports, 1)
	assert.Equal(t, "os", record.Imports[0].Module)
}

func TestFileScanner_UnparsableFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "broken.py", "def broken(:\n    pass\n")

	scanner := NewFileScanner(dir)
	record, err := scanner.ScanFile(context.Background(), path)
	require.Error(t, err)

	// The record is still usable: paths populated, contents empty
	assert.Equal(t, "broken.py", record.Name)
	assert.Equal(t, "broken.py", record.RelativePath)
	assert.NotNil(t, record.Items)
	assert.Empty(t, record.Items)
	assert.NotNil(t, record.Imports)
	assert.Empty(t, record.Imports)
}

func TestFileScanner_MissingFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	scanner := NewFileScanner(dir)

	record, err := scanner.ScanFile(context.Background(), filepath.Join(dir, "gone.py"))
	require.Error(t, err)
	assert.Equal(t, "gone.py", record.Name)
	assert.Empty(t, record.Items)
	assert.Empty(t, record.Imports)
}

func TestFileScanner_RelativePathNesting(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, filepath.Join("shop", "models.py"), "class Product:\n    pass\n")

	scanner := NewFileScanner(dir)
	record, err := scanner.ScanFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("shop", "models.py"), record.RelativePath)
}

func TestFileScanner_Idempotent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "app.py", "class A:\n    def m(self):\n        pass\n")

	scanner := NewFileScanner(dir)
	first, err := scanner.ScanFile(context.Background(), path)
	require.NoError(t, err)
	second, err := scanner.ScanFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
