package bridge

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
)

// ErrSourceDetached is reported by a source that is no longer delivering events
var ErrSourceDetached = errors.New("change source detached")

// Event is a change notification. It carries no payload beyond where it came from.
type Event struct {
	Source string
	Path   string // empty for sources without a filesystem origin
}

// Notifier receives forwarded events. The rescan orchestrator implements it.
type Notifier interface {
	Trigger()
}

// Source produces events for a bridge until detached
type Source interface {
	Name() string
	Attach(ctx context.Context, b *Bridge) error
	Attached() bool
	Detach() error
}

// Bridge forwards change events to a notifier, dropping those that originate
// from the presenter's own output.
type Bridge struct {
	target Notifier
	logger *slog.Logger

	mu     sync.RWMutex
	ignore []string

	forwarded atomic.Int64
	dropped   atomic.Int64
}

// New creates a bridge. Paths under any ignore root are never forwarded.
func New(target Notifier, logger *slog.Logger, ignore ...string) *Bridge {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	b := &Bridge{target: target, logger: logger}
	for _, root := range ignore {
		b.Ignore(root)
	}
	return b
}

// Ignore registers an output root owned by the presenter
func (b *Bridge) Ignore(root string) {
	if root == "" {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ignore = append(b.ignore, cleanPath(root))
}

// Notify forwards an event unless it is the presenter's own write. It reports
// whether the event reached the notifier.
func (b *Bridge) Notify(ev Event) bool {
	if ev.Path != "" && b.owned(cleanPath(ev.Path)) {
		b.dropped.Add(1)
		b.logger.Debug("ignoring own output change", "source", ev.Source, "path", ev.Path)
		return false
	}
	b.forwarded.Add(1)
	if b.target != nil {
		b.target.Trigger()
	}
	return true
}

// Stats returns forwarded and dropped event counts
func (b *Bridge) Stats() (forwarded, dropped int64) {
	return b.forwarded.Load(), b.dropped.Load()
}

func (b *Bridge) owned(path string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, root := range b.ignore {
		if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func cleanPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
