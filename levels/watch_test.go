package levels

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// waitForChanges drains w until something arrives or the timeout passes.
func waitForChanges(t *testing.T, w *Watcher, timeout time.Duration) []string {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if got := w.Drain(); len(got) > 0 {
			return got
		}
		time.Sleep(5 * time.Millisecond)
	}
	return nil
}

func TestWatcherReportsProjectFilesOnce(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	project := filepath.Join(dir, "world.ldtk")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("todo"), 0o644))
	require.NoError(t, os.WriteFile(project, []byte(`{"levels":[]}`), 0o644))

	got := waitForChanges(t, w, 2*time.Second)
	// the create and write events of one WriteFile fall inside the debounce window
	time.Sleep(debounce / 2)
	got = append(got, w.Drain()...)

	assert.Equal(t, []string{project}, got)
}

func TestWatcherReportsAgainAfterDebounce(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	level := filepath.Join(dir, "Level_0.ldtkl")
	require.NoError(t, os.WriteFile(level, []byte("{}"), 0o644))
	require.Equal(t, []string{level}, waitForChanges(t, w, 2*time.Second))

	time.Sleep(2 * debounce)
	w.Drain()
	require.NoError(t, os.WriteFile(level, []byte(`{"identifier":"Level_0"}`), 0o644))
	assert.Contains(t, waitForChanges(t, w, 2*time.Second), level)
}

func TestWatcherErrors(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "close is idempotent")
}
