package profiles

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitForEvent(t *testing.T, w *Watcher) string {
	t.Helper()
	select {
	case name, ok := <-w.Events:
		if !ok {
			t.Fatalf("events channel closed before an event arrived")
		}
		return name
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for a change event")
	}
	return ""
}

func TestWatcherReportsProfileEdit(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "turret.yaml"), []byte("name: turret\nkind: turret\n"), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	if got := filepath.Base(waitForEvent(t, w)); got != "turret.yaml" {
		t.Fatalf("expected an event for turret.yaml, got %q", got)
	}
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("scratch"), 0o644); err != nil {
		t.Fatalf("write txt: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "stalker.tengo"), []byte(`engine.play_sound("growl")`), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	// Events are delivered in order, so the first one through the filter
	// must be the script, not the text file.
	if got := filepath.Base(waitForEvent(t, w)); got != "stalker.tengo" {
		t.Fatalf("expected the txt edit to be filtered, got event for %q", got)
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	select {
	case _, ok := <-w.Events:
		if ok {
			t.Fatalf("expected the events channel to be closed")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("events channel never closed after Close")
	}
}
