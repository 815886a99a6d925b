package bridge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// DefaultHealInterval is how often the supervisor checks its invariants
const DefaultHealInterval = 60 * time.Second

// Target is what the supervisor keeps alive besides the sources
type Target interface {
	Trigger()
	Mounted() bool
}

// Supervisor periodically asserts that every source is attached and that the
// presenter still has somewhere to render, repairing whichever is not.
type Supervisor struct {
	bridge   *Bridge
	target   Target
	sources  []Source
	fallback Source
	interval time.Duration
	logger   *slog.Logger
}

// SupervisorOption configures a Supervisor
type SupervisorOption func(*Supervisor)

// WithFallback sets a source attached only while no primary source is
func WithFallback(s Source) SupervisorOption {
	return func(sv *Supervisor) { sv.fallback = s }
}

// WithInterval sets the heal period
func WithInterval(d time.Duration) SupervisorOption {
	return func(sv *Supervisor) {
		if d > 0 {
			sv.interval = d
		}
	}
}

// WithSupervisorLogger sets the logger
func WithSupervisorLogger(l *slog.Logger) SupervisorOption {
	return func(sv *Supervisor) {
		if l != nil {
			sv.logger = l
		}
	}
}

// NewSupervisor supervises sources feeding b on behalf of target
func NewSupervisor(b *Bridge, target Target, sources []Source, opts ...SupervisorOption) *Supervisor {
	sv := &Supervisor{
		bridge:   b,
		target:   target,
		sources:  sources,
		interval: DefaultHealInterval,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(sv)
	}
	return sv
}

// Run heals immediately and then every interval until ctx ends
func (sv *Supervisor) Run(ctx context.Context) error {
	if err := sv.HealOnce(ctx); err != nil {
		sv.logger.Warn("heal failed", "error", err)
	}

	ticker := time.NewTicker(sv.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			sv.detachAll()
			return ctx.Err()
		case <-ticker.C:
			if err := sv.HealOnce(ctx); err != nil {
				sv.logger.Warn("heal failed", "error", err)
			}
		}
	}
}

// HealOnce re-attaches detached sources, falls back to the fallback source
// when none could be attached, and asks for a rescan when the presenter
// has lost its surface. Attach failures are joined into the returned error.
func (sv *Supervisor) HealOnce(ctx context.Context) error {
	var errs []error
	attached := 0
	for _, s := range sv.sources {
		if !s.Attached() {
			sv.logger.Info("re-attaching change source", "source", s.Name())
			if err := s.Attach(ctx, sv.bridge); err != nil {
				errs = append(errs, fmt.Errorf("attach %s: %w", s.Name(), err))
				continue
			}
		}
		attached++
	}

	if sv.fallback != nil {
		switch {
		case attached == 0 && !sv.fallback.Attached():
			sv.logger.Info("starting fallback change source", "source", sv.fallback.Name())
			if err := sv.fallback.Attach(ctx, sv.bridge); err != nil {
				errs = append(errs, fmt.Errorf("attach %s: %w", sv.fallback.Name(), err))
			}
		case attached > 0 && sv.fallback.Attached():
			if err := sv.fallback.Detach(); err != nil && !errors.Is(err, ErrSourceDetached) {
				errs = append(errs, fmt.Errorf("detach %s: %w", sv.fallback.Name(), err))
			}
		}
	}

	if sv.target != nil && !sv.target.Mounted() {
		sv.logger.Info("presenter not mounted, rescanning")
		sv.target.Trigger()
	}
	return errors.Join(errs...)
}

func (sv *Supervisor) detachAll() {
	all := sv.sources
	if sv.fallback != nil {
		all = append(all[:len(all):len(all)], sv.fallback)
	}
	for _, s := range all {
		if s.Attached() {
			_ = s.Detach()
		}
	}
}
