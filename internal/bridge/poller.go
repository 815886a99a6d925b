package bridge

import (
	"context"
	"crypto/sha256"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultPollInterval matches how often a navigation change is checked for
const DefaultPollInterval = 700 * time.Millisecond

// LoadFunc returns the current content of a polled document
type LoadFunc func(ctx context.Context) ([]byte, error)

// FileLoader reads a local file on each poll
func FileLoader(path string) LoadFunc {
	return func(ctx context.Context) ([]byte, error) {
		return os.ReadFile(path)
	}
}

// Poller emits an event whenever the content hash of a document changes. The
// first successful load only records the baseline.
type Poller struct {
	name     string
	load     LoadFunc
	interval time.Duration
	limiter  *rate.Limiter
	logger   *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	last   [sha256.Size]byte
	seen   bool
}

// NewPoller polls load every interval. A non-nil limiter further paces loads.
func NewPoller(name string, load LoadFunc, interval time.Duration, limiter *rate.Limiter, logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Poller{name: name, load: load, interval: interval, limiter: limiter, logger: logger}
}

func (p *Poller) Name() string { return p.name }

// Attach starts polling. Attaching an attached poller is a no-op.
func (p *Poller) Attach(ctx context.Context, b *Bridge) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.cancel, p.done = cancel, done
	go p.run(ctx, done, b)
	return nil
}

// Attached reports whether the poll loop is running
func (p *Poller) Attached() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

// Detach stops polling and waits for the loop to exit
func (p *Poller) Detach() error {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.mu.Unlock()

	if cancel == nil {
		return ErrSourceDetached
	}
	cancel()
	<-done
	return nil
}

func (p *Poller) run(ctx context.Context, done chan struct{}, b *Bridge) {
	defer func() {
		p.mu.Lock()
		if p.done == done {
			p.cancel, p.done = nil, nil
		}
		p.mu.Unlock()
		close(done)
	}()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx, b)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if p.limiter != nil {
				if err := p.limiter.Wait(ctx); err != nil {
					return
				}
			}
			p.poll(ctx, b)
		}
	}
}

func (p *Poller) poll(ctx context.Context, b *Bridge) {
	data, err := p.load(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Debug("poll failed", "source", p.name, "error", err)
		}
		return
	}

	sum := sha256.Sum256(data)
	p.mu.Lock()
	changed := p.seen && sum != p.last
	p.last, p.seen = sum, true
	p.mu.Unlock()

	if changed {
		b.Notify(Event{Source: p.name})
	}
}
