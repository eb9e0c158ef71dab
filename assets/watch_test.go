package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitEvent(t *testing.T, w *Watcher) string {
	t.Helper()
	select {
	case got := <-w.C:
		return got
	case <-time.After(5 * time.Second):
		t.Fatal("no watch event")
		return ""
	}
}

func TestWatcherReportsRewrites(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "matcap.png")
	other := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(target, []byte("v1"), 0o644))

	w, err := NewWatcher(target)
	require.NoError(t, err)
	defer w.Close()

	// The sibling write is filtered out, so the first event must name
	// the watched file.
	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(target, []byte("v2"), 0o644))

	assert.Equal(t, target, waitEvent(t, w))
}

func TestWatcherSeesLateCreation(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "late.png")

	w, err := NewWatcher(target)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(target, []byte("now it exists"), 0o644))

	assert.Equal(t, target, waitEvent(t, w))
}

func TestWatcherInertWithoutPaths(t *testing.T) {
	w, err := NewWatcher("", "")
	require.NoError(t, err)
	assert.NoError(t, w.Close())

	select {
	case got := <-w.C:
		t.Fatalf("unexpected event %q", got)
	default:
	}
}

func TestWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "no", "such", "dir", "f.png"))
	require.Error(t, err)
}
