// Package watcher implements file system watching for the watch loop.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unique"

	"github.com/fsnotify/fsnotify"

	"github.com/morsellabs/dashci/internal/core/domain"
	"github.com/morsellabs/dashci/internal/core/ports"
)

var _ ports.Watcher = (*Watcher)(nil)

// shouldSkipDirectories are directory names that are never watched. Python
// bytecode caches and VCS metadata churn constantly without being inputs.
var shouldSkipDirectories = map[string]bool{
	".git":          true,
	".jj":           true,
	"__pycache__":   true,
	".pytest_cache": true,
	"node_modules":  true,
}

const eventChannelBuffer = 100

// Watcher implements file system watching using fsnotify.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	root      unique.Handle[string]
	events    chan ports.WatchEvent

	mu          sync.RWMutex
	ignorePaths map[string]bool
}

// NewWatcher creates a new file system watcher.
func NewWatcher() (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsWatcher:   watcher,
		events:      make(chan ports.WatchEvent, eventChannelBuffer),
		ignorePaths: make(map[string]bool),
	}, nil
}

// IgnorePath excludes an absolute path and everything under it from watching.
// Must be called before Start. The workspace's environment directory and the
// internal metadata directory are excluded this way, since the pipeline
// writes into both.
func (w *Watcher) IgnorePath(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ignorePaths[filepath.Clean(path)] = true
}

// Start begins watching the given root directory recursively.
func (w *Watcher) Start(ctx context.Context, root string) error {
	w.root = unique.Make(root)

	// The internal directory is always written by the pipeline itself.
	w.IgnorePath(filepath.Join(root, domain.InternalDirName))

	for dir := range w.watchRecursively(root) {
		if err := w.fsWatcher.Add(dir); err != nil {
			return err
		}
	}

	go w.processEvents(ctx)

	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}

// Events returns an iterator of file system events.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

// watchRecursively walks the directory tree and yields all watchable
// directories.
func (w *Watcher) watchRecursively(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Continue walking even if a directory is inaccessible.
				return nil //nolint:nilerr // skip problematic directories
			}
			if d.IsDir() {
				if w.shouldSkip(path, d.Name()) {
					return fs.SkipDir
				}
				if !yield(path) {
					return filepath.SkipAll
				}
			}
			return nil
		})
	}
}

// shouldSkip returns true if the directory should not be watched.
func (w *Watcher) shouldSkip(path, name string) bool {
	if shouldSkipDirectories[name] {
		return true
	}

	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.ignorePaths[filepath.Clean(path)]
}

// processEvents converts raw fsnotify events into ports.WatchEvent values.
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			if w.withinIgnoredPath(event.Name) {
				continue
			}

			watchEvent := convertEvent(event)
			if watchEvent == nil {
				continue
			}

			select {
			case w.events <- *watchEvent:
			case <-ctx.Done():
				return
			}

			// A newly created directory has to be added to the watch set.
			if watchEvent.Operation == ports.OpCreate {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !w.shouldSkip(event.Name, info.Name()) {
					for dir := range w.watchRecursively(event.Name) {
						_ = w.fsWatcher.Add(dir)
					}
				}
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "watcher: file system error: %v\n", err)
		}
	}
}

// withinIgnoredPath reports whether path lies inside an ignored subtree.
func (w *Watcher) withinIgnoredPath(path string) bool {
	path = filepath.Clean(path)

	w.mu.RLock()
	defer w.mu.RUnlock()

	for ignored := range w.ignorePaths {
		if path == ignored || strings.HasPrefix(path, ignored+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// convertEvent maps an fsnotify event to a ports.WatchEvent.
func convertEvent(event fsnotify.Event) *ports.WatchEvent {
	switch {
	case event.Op&fsnotify.Write == fsnotify.Write:
		return &ports.WatchEvent{Path: event.Name, Operation: ports.OpWrite}
	case event.Op&fsnotify.Create == fsnotify.Create:
		return &ports.WatchEvent{Path: event.Name, Operation: ports.OpCreate}
	case event.Op&fsnotify.Remove == fsnotify.Remove:
		return &ports.WatchEvent{Path: event.Name, Operation: ports.OpRemove}
	case event.Op&fsnotify.Rename == fsnotify.Rename:
		return &ports.WatchEvent{Path: event.Name, Operation: ports.OpRename}
	default:
		return nil
	}
}
