package dev

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWatcher(t *testing.T, patterns, exclude []string, onChange func(string)) *Watcher {
	t.Helper()
	w, err := NewWatcher(patterns, exclude, onChange)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func TestWatcher_Matches(t *testing.T) {
	// Test: Patterns match against the base name only; excludes win
	w := newTestWatcher(t, []string{"*.bundle.json", "typeforge.json"}, []string{"ignored.*"}, nil)

	assert.True(t, w.matches("/project/types.bundle.json"))
	assert.True(t, w.matches("/project/deep/nested/other.bundle.json"))
	assert.True(t, w.matches("typeforge.json"))
	assert.False(t, w.matches("/project/types.json"))
	assert.False(t, w.matches("/project/bundle.json.bak"))
	assert.False(t, w.matches("/project/ignored.bundle.json"))
}

func TestWatcher_Excluded(t *testing.T) {
	// Test: Exclude patterns match directory base names too
	w := newTestWatcher(t, []string{"*"}, []string{"node_modules", ".git"}, nil)

	assert.True(t, w.excluded("/project/node_modules"))
	assert.True(t, w.excluded("/project/.git"))
	assert.False(t, w.excluded("/project/src"))
}

func TestWatcher_DebouncedChange(t *testing.T) {
	// Test: A burst of writes to a matching file produces one callback after
	// the debounce window
	changed := make(chan string, 4)
	w := newTestWatcher(t, []string{"*.bundle.json"}, nil, func(path string) {
		changed <- path
	})

	dir := t.TempDir()
	require.NoError(t, w.AddDirectory(dir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	target := filepath.Join(dir, "types.bundle.json")
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(target, []byte("{}"), 0644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case path := <-changed:
		assert.Equal(t, target, path)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a change callback")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_IgnoresNonMatching(t *testing.T) {
	// Test: Writes to files outside the patterns never fire the callback
	changed := make(chan string, 1)
	w := newTestWatcher(t, []string{"*.bundle.json"}, nil, func(path string) {
		changed <- path
	})

	dir := t.TempDir()
	require.NoError(t, w.AddDirectory(dir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Start(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	select {
	case path := <-changed:
		t.Fatalf("unexpected callback for %s", path)
	case <-time.After(500 * time.Millisecond):
	}
}
