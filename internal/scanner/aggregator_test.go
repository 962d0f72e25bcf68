package scanner

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/structmap/structmap/internal/discovery"
)

// Test Plan for Aggregator:
// - One AppRecord per root, in the supplied order
// - Files scanned in enumeration order, filtered by the ShouldScan predicate
// - generated_at and scan_id stamped once, at run start
// - Empty roots list returns an empty model plus ErrNoRoots, distinct from
//   roots that contained zero qualifying files
// - An unparsable file contributes an empty record and does not abort
//   scanning of sibling files
// - OnSkip reports parse failures; OnFile fires once per scanned file
// - A cancelled context stops the scan between files and surfaces the
//   context error

func newTestAggregator(workDir string) *Aggregator {
	lister := discovery.NewSourceLister([]string{".py"})
	filter, _ := discovery.NewFilter("migrations", "__init__.py", nil)
	return NewAggregator(workDir, lister, filter)
}

func TestAggregator_EndToEnd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, filepath.Join("shop", "views.py"),
		"class Foo:\n    def bar(self):\n        pass\n\ndef baz():\n    pass\n")
	writeFile(t, dir, filepath.Join("shop", "migrations", "0001_initial.py"),
		"class Migration:\n    pass\n")
	writeFile(t, dir, filepath.Join("shop", "migrations", "__init__.py"), "")
	writeFile(t, dir, filepath.Join("blog", "models.py"),
		"class Post:\n    pass\n")

	agg := newTestAggregator(dir)
	roots := []string{filepath.Join(dir, "blog"), filepath.Join(dir, "shop")}

	model, err := agg.Aggregate(context.Background(), roots)
	require.NoError(t, err)
	require.Len(t, model.Apps, 2)

	// Apps appear in supplied order
	assert.Equal(t, "blog", model.Apps[0].Name)
	assert.Equal(t, "shop", model.Apps[1].Name)

	// The migrations file is filtered out entirely; its __init__.py is kept
	shop := model.Apps[1]
	require.Len(t, shop.Files, 2)
	assert.Equal(t, "__init__.py", shop.Files[0].Name)
	assert.Equal(t, "views.py", shop.Files[1].Name)

	views := shop.Files[1]
	require.Len(t, views.Items, 3)
	assert.Equal(t, "Foo", views.Items[0].Name)
	require.Len(t, views.Items[0].Methods, 1)
	assert.Equal(t, "bar", views.Items[0].Methods[0].Name)
	assert.Equal(t, "baz", views.Items[2].Name)
}

func TestAggregator_EmptyRoots(t *testing.T) {
	t.Parallel()

	agg := newTestAggregator(t.TempDir())

	model, err := agg.Aggregate(context.Background(), nil)
	require.ErrorIs(t, err, ErrNoRoots)
	require.NotNil(t, model)
	assert.NotNil(t, model.Apps)
	assert.Empty(t, model.Apps)
	assert.NotEmpty(t, model.GeneratedAt)
}

func TestAggregator_RootWithNoQualifyingFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, filepath.Join("empty", "README.md"), "nothing here")

	agg := newTestAggregator(dir)
	model, err := agg.Aggregate(context.Background(), []string{filepath.Join(dir, "empty")})

	// Distinct from the empty-input case: no sentinel, one empty app
	require.NoError(t, err)
	require.Len(t, model.Apps, 1)
	assert.Empty(t, model.Apps[0].Files)
}

func TestAggregator_UnparsableSibling(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, filepath.Join("app", "broken.py"), "def broken(:\n")
	writeFile(t, dir, filepath.Join("app", "ok.py"), "def fine():\n    pass\n")

	agg := newTestAggregator(dir)

	var skipped []string
	agg.OnSkip = func(path string, err error) { skipped = append(skipped, path) }

	model, err := agg.Aggregate(context.Background(), []string{filepath.Join(dir, "app")})
	require.NoError(t, err)
	require.Len(t, model.Apps, 1)
	require.Len(t, model.Apps[0].Files, 2)

	broken := model.Apps[0].Files[0]
	assert.Equal(t, "broken.py", broken.Name)
	assert.Empty(t, broken.Items)
	assert.Empty(t, broken.Imports)

	ok := model.Apps[0].Files[1]
	assert.Equal(t, "ok.py", ok.Name)
	assert.Len(t, ok.Items, 1)

	require.Len(t, skipped, 1)
	assert.Contains(t, skipped[0], "broken.py")
}

func TestAggregator_StampsRunMetadata(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, filepath.Join("app", "a.py"), "x = 1\n")

	agg := newTestAggregator(dir)
	before := time.Now().Add(-time.Second)

	model, err := agg.Aggregate(context.Background(), []string{filepath.Join(dir, "app")})
	require.NoError(t, err)

	generated, err := time.Parse(time.RFC3339, model.GeneratedAt)
	require.NoError(t, err)
	assert.True(t, generated.After(before))

	_, err = uuid.Parse(model.ScanID)
	assert.NoError(t, err)
}

func TestAggregator_OnFileHook(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, filepath.Join("app", "a.py"), "def a():\n    pass\n")
	writeFile(t, dir, filepath.Join("app", "b.py"), "def b():\n    pass\n")

	agg := newTestAggregator(dir)

	var seen []string
	agg.OnFile = func(path string) { seen = append(seen, filepath.Base(path)) }

	_, err := agg.Aggregate(context.Background(), []string{filepath.Join(dir, "app")})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.py", "b.py"}, seen)
}

func TestAggregator_CancelledBeforeStart(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, filepath.Join("app", "a.py"), "def a():\n    pass\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	agg := newTestAggregator(dir)
	model, err := agg.Aggregate(ctx, []string{filepath.Join(dir, "app")})

	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, model)
	assert.Empty(t, model.Apps)
}

func TestAggregator_CancelledMidScan(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, filepath.Join("app", "a.py"), "def a():\n    pass\n")
	writeFile(t, dir, filepath.Join("app", "b.py"), "def b():\n    pass\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	agg := newTestAggregator(dir)

	var seen []string
	agg.OnFile = func(path string) {
		seen = append(seen, filepath.Base(path))
		cancel()
	}

	_, err := agg.Aggregate(ctx, []string{filepath.Join(dir, "app")})

	// b.py is never reached once the context is cancelled
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"a.py"}, seen)
}

func TestAggregator_ListerFailure(t *testing.T) {
	t.Parallel()

	agg := newTestAggregator(t.TempDir())

	// A root that does not exist still yields its (empty) app record;
	// enumeration trouble never fails the run
	model, err := agg.Aggregate(context.Background(), []string{"/does/not/exist"})
	require.NoError(t, err)
	require.Len(t, model.Apps, 1)
	assert.Empty(t, model.Apps[0].Files)
}
