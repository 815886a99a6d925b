package bridge

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher turns filesystem writes to a set of files or directories into
// events. Parent directories are watched so editors that replace files by
// rename keep being observed.
type FileWatcher struct {
	paths  []string
	logger *slog.Logger

	mu      sync.Mutex
	watcher *fsnotify.Watcher
}

// NewFileWatcher watches the given files or directories
func NewFileWatcher(logger *slog.Logger, paths ...string) *FileWatcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	w := &FileWatcher{logger: logger}
	for _, p := range paths {
		w.paths = append(w.paths, cleanPath(p))
	}
	return w
}

func (w *FileWatcher) Name() string { return "file" }

// Attach starts watching. Attaching an attached watcher is a no-op.
func (w *FileWatcher) Attach(ctx context.Context, b *Bridge) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watcher != nil {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	for _, dir := range w.dirs() {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	w.watcher = watcher
	go w.run(ctx, watcher, b)
	return nil
}

// Attached reports whether events are being delivered
func (w *FileWatcher) Attached() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.watcher != nil
}

// Detach stops watching
func (w *FileWatcher) Detach() error {
	w.mu.Lock()
	watcher := w.watcher
	w.watcher = nil
	w.mu.Unlock()

	if watcher == nil {
		return ErrSourceDetached
	}
	return watcher.Close()
}

func (w *FileWatcher) run(ctx context.Context, watcher *fsnotify.Watcher, b *Bridge) {
	defer w.release(watcher)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if ev.Op == fsnotify.Chmod || !w.relevant(ev.Name) {
				continue
			}
			b.Notify(Event{Source: w.Name(), Path: ev.Name})
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", "error", err)
		}
	}
}

// release clears the watcher unless a newer one replaced it
func (w *FileWatcher) release(watcher *fsnotify.Watcher) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher == watcher {
		w.watcher = nil
		watcher.Close()
		w.logger.Debug("file watcher detached")
	}
}

// dirs returns the directories to register: directories as given, files via their parent
func (w *FileWatcher) dirs() []string {
	var dirs []string
	for _, p := range w.paths {
		dir := p
		if info, err := os.Stat(p); err != nil || !info.IsDir() {
			dir = filepath.Dir(p)
		}
		if !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

func (w *FileWatcher) relevant(name string) bool {
	name = cleanPath(name)
	for _, p := range w.paths {
		if name == p || filepath.Dir(name) == p {
			return true
		}
	}
	return false
}
