package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/envsync/internal/adapters/watcher"
	"go.trai.ch/envsync/internal/core/ports"
)

func TestWatcher_ReportsManifestChanges(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "requirements.txt")
	require.NoError(t, os.WriteFile(manifest, []byte("requests\n"), 0o600))

	w, err := watcher.NewWatcher()
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, w.Start(ctx, manifest))

	received := make(chan ports.WatchEvent, 1)
	go func() {
		for event := range w.Events() {
			received <- event
			return
		}
	}()

	// Give the event loop a moment before mutating the file.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(manifest, []byte("requests\nflask\n"), 0o600))

	select {
	case event := <-received:
		assert.Equal(t, manifest, filepath.Clean(event.Path))
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for manifest change event")
	}
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "requirements.txt")
	require.NoError(t, os.WriteFile(manifest, []byte("requests\n"), 0o600))

	w, err := watcher.NewWatcher()
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, w.Start(ctx, manifest))

	received := make(chan ports.WatchEvent, 1)
	go func() {
		for event := range w.Events() {
			received <- event
			return
		}
	}()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("docs\n"), 0o600))

	select {
	case event := <-received:
		t.Fatalf("unexpected event for sibling file: %v", event.Path)
	case <-time.After(300 * time.Millisecond):
		// No event is the expected outcome.
	}
}
