package rescan

import (
	"sync"
	"time"
)

// Debouncer collapses bursts of calls into one trailing call. Each Trigger
// cancels the pending timer and schedules a new one.
type Debouncer struct {
	mu      sync.Mutex
	window  time.Duration
	fn      func()
	timer   *time.Timer
	stopped bool
}

// NewDebouncer runs fn once per quiet window
func NewDebouncer(window time.Duration, fn func()) *Debouncer {
	return &Debouncer{window: window, fn: fn}
}

// Trigger (re)starts the window
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fn)
}

// Stop cancels any pending call and ignores later triggers
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
