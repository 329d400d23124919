package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher calls back when any of a set of files changes. All events
// within the debounce delay, across every watched file, are collapsed into
// at most one call per registered callback. Callbacks never run
// concurrently.
//
// The parent directories are watched rather than the files themselves, so
// editors that save by writing a new file and renaming it over the old one
// keep triggering callbacks.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu        sync.Mutex
	files     map[string]int // path to index in callbacks
	callbacks []func(string)
	dirs      map[string]bool
	pending   map[string]bool
	timer     *time.Timer

	// running serializes callbacks.
	running sync.Mutex

	// OnError receives errors reported by the underlying watcher. Errors are
	// dropped if it is nil.
	OnError func(error)
}

// NewFileWatcher creates a watcher with the given debounce delay.
func NewFileWatcher(debounce time.Duration) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	return &FileWatcher{
		watcher:  w,
		debounce: debounce,
		files:    make(map[string]int),
		dirs:     make(map[string]bool),
		pending:  make(map[string]bool),
	}, nil
}

// Watch registers callback for the given files. The callback receives one
// of the files that changed.
func (fw *FileWatcher) Watch(files []string, callback func(string)) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	id := len(fw.callbacks)
	fw.callbacks = append(fw.callbacks, callback)

	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", file, err)
		}
		dir := filepath.Dir(abs)
		if !fw.dirs[dir] {
			if err := fw.watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			fw.dirs[dir] = true
		}
		fw.files[abs] = id
	}
	return nil
}

// Run dispatches change events until ctx is done or the watcher is closed.
func (fw *FileWatcher) Run(ctx context.Context) error {
	defer fw.stopTimers()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				fw.handleFileChange(filepath.Clean(event.Name))
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			if fw.OnError != nil {
				fw.OnError(err)
			}
		}
	}
}

func (fw *FileWatcher) handleFileChange(path string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if _, ok := fw.files[path]; !ok {
		return
	}
	fw.pending[path] = true
	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.timer = time.AfterFunc(fw.debounce, fw.flush)
}

// flush runs each callback with a pending path at most once.
func (fw *FileWatcher) flush() {
	fw.running.Lock()
	defer fw.running.Unlock()

	fw.mu.Lock()
	paths := make([]string, 0, len(fw.pending))
	for path := range fw.pending {
		paths = append(paths, path)
	}
	fw.pending = make(map[string]bool)
	sort.Strings(paths)

	var calls []func()
	seen := make(map[int]bool)
	for _, path := range paths {
		id := fw.files[path]
		if seen[id] {
			continue
		}
		seen[id] = true
		callback, path := fw.callbacks[id], path
		calls = append(calls, func() { callback(path) })
	}
	fw.mu.Unlock()

	for _, call := range calls {
		call()
	}
}

func (fw *FileWatcher) stopTimers() {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.timer != nil {
		fw.timer.Stop()
		fw.timer = nil
	}
	fw.pending = make(map[string]bool)
}

// Close releases the watcher. A running Run returns.
func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}
