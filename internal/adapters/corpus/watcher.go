package corpus

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/datadecoders/shopbot-go/internal/domain/ports"
)

// FSWatcher implements ports.CorpusWatcher using fsnotify. It watches the
// corpus file's directory rather than the file itself, so editors and
// deploy tools that replace the file atomically are still observed.
type FSWatcher struct {
	watcher *fsnotify.Watcher
}

// NewFSWatcher creates a corpus file watcher.
func NewFSWatcher() (*FSWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &FSWatcher{watcher: w}, nil
}

// Watch starts monitoring the corpus file and emits an event per write
// or replace of it. Other files in the directory are ignored.
func (w *FSWatcher) Watch(ctx context.Context, path string) (<-chan ports.CorpusEvent, error) {
	dir := filepath.Dir(path)
	if err := w.watcher.Add(dir); err != nil {
		return nil, err
	}

	target := filepath.Clean(path)
	events := make(chan ports.CorpusEvent, 16)

	go func() {
		defer close(events)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				select {
				case events <- ports.CorpusEvent{Path: target}:
				case <-ctx.Done():
					return
				}
			case _, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return events, nil
}

// Stop stops the watcher.
func (w *FSWatcher) Stop() error {
	return w.watcher.Close()
}
