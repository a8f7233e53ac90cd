package corpus

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFSWatcher_EmitsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "faq.csv")
	if err := os.WriteFile(path, []byte("question,answer\nq,a\n"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	w, err := NewFSWatcher()
	if err != nil {
		t.Fatalf("creating watcher: %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := w.Watch(ctx, path)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	if err := os.WriteFile(path, []byte("question,answer\nq,a\nq2,a2\n"), 0o644); err != nil {
		t.Fatalf("rewriting file: %v", err)
	}

	select {
	case ev := <-events:
		if filepath.Clean(ev.Path) != filepath.Clean(path) {
			t.Errorf("event path = %q, want %q", ev.Path, path)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for corpus event")
	}
}

func TestFSWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "faq.csv")
	if err := os.WriteFile(path, []byte("question,answer\nq,a\n"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	w, err := NewFSWatcher()
	if err != nil {
		t.Fatalf("creating watcher: %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := w.Watch(ctx, path)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("writing other file: %v", err)
	}

	select {
	case ev := <-events:
		t.Errorf("unexpected event for %q", ev.Path)
	case <-time.After(300 * time.Millisecond):
	}
}
