package pipeline

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/model"
	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/rescan"
	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/store"
)

// TerminalPresenter writes each published result to a stream. Consecutive
// identical renders are written once.
type TerminalPresenter struct {
	mu       sync.Mutex
	w        io.Writer
	renderer *Renderer
	format   string
	last     string
}

// NewTerminalPresenter creates a presenter writing to w
func NewTerminalPresenter(w io.Writer, r *Renderer, format string) *TerminalPresenter {
	return &TerminalPresenter{w: w, renderer: r, format: format}
}

func (p *TerminalPresenter) Render(res model.Result) {
	var b strings.Builder
	if err := p.renderer.Render(&b, res, p.format); err != nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if b.String() == p.last {
		return
	}
	p.last = b.String()
	_, _ = io.WriteString(p.w, p.last)
}

func (p *TerminalPresenter) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.last == "" {
		return
	}
	p.last = ""
	if p.format != FormatJSON {
		_, _ = io.WriteString(p.w, p.renderer.colors["dim"].Sprint("(cleared)")+"\n")
	}
}

// FilePresenter keeps the latest result as a JSON file. It reports itself
// unmounted when that file disappears after a render.
type FilePresenter struct {
	mu       sync.Mutex
	path     string
	renderer *Renderer
	logger   *slog.Logger
	rendered bool
}

// NewFilePresenter creates a presenter writing to path
func NewFilePresenter(path string, r *Renderer, logger *slog.Logger) *FilePresenter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &FilePresenter{path: path, renderer: r, logger: logger}
}

// OutputPaths lists every path this presenter writes. Change sources must
// ignore them.
func (p *FilePresenter) OutputPaths() []string {
	return []string{p.path, TempPath(p.path)}
}

func (p *FilePresenter) Render(res model.Result) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.renderer.WriteJSONFile(p.path, res); err != nil {
		p.logger.Warn("write result file failed", "path", p.path, "error", err)
		return
	}
	p.rendered = true
}

func (p *FilePresenter) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rendered = false
	if err := os.Remove(p.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		p.logger.Warn("remove result file failed", "path", p.path, "error", err)
	}
}

// Mounted reports whether the last rendered file is still in place
func (p *FilePresenter) Mounted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.rendered {
		return true
	}
	_, err := os.Stat(p.path)
	return err == nil
}

// Presenters fans every call out to each presenter in order. It is mounted
// only when all of them are.
type Presenters []rescan.Presenter

func (ps Presenters) Render(res model.Result) {
	for _, p := range ps {
		p.Render(res)
	}
}

func (ps Presenters) Clear() {
	for _, p := range ps {
		p.Clear()
	}
}

func (ps Presenters) Mounted() bool {
	for _, p := range ps {
		if m, ok := p.(rescan.Mounter); ok && !m.Mounted() {
			return false
		}
	}
	return true
}

// RecordingPresenter records final results in the history store before
// passing them on. A republished result is recorded once.
type RecordingPresenter struct {
	next    rescan.Presenter
	history *store.History
	logger  *slog.Logger

	mu   sync.Mutex
	last string
}

// NewRecordingPresenter wraps next. A nil history makes it a pass-through.
func NewRecordingPresenter(next rescan.Presenter, history *store.History, logger *slog.Logger) *RecordingPresenter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &RecordingPresenter{next: next, history: history, logger: logger}
}

func (p *RecordingPresenter) Render(res model.Result) {
	if p.history != nil && res.Verdict.Status != model.StatusLoading && p.fresh(res) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if _, err := p.history.Record(ctx, res); err != nil {
			p.logger.Warn("history write failed", "identity", res.Identity, "error", err)
		}
		cancel()
	}
	p.next.Render(res)
}

func (p *RecordingPresenter) fresh(res model.Result) bool {
	key := res.Identity + "|" + string(res.Verdict.Status) + "|" + string(res.Verdict.Reason) + "|" + res.ScannedAt.UTC().Format(time.RFC3339Nano)
	p.mu.Lock()
	defer p.mu.Unlock()
	if key == p.last {
		return false
	}
	p.last = key
	return true
}

func (p *RecordingPresenter) Clear() { p.next.Clear() }

func (p *RecordingPresenter) Mounted() bool {
	if m, ok := p.next.(rescan.Mounter); ok {
		return m.Mounted()
	}
	return true
}
