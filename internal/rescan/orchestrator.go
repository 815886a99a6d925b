package rescan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/cache"
	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/model"
	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/util"
)

// DefaultDebounce is the quiet window that collapses trigger bursts
const DefaultDebounce = 150 * time.Millisecond

const (
	errorSnippetHead   = 400
	missingSnippetHead = 600
)

var (
	ErrAlreadyStarted = errors.New("orchestrator already started")
	ErrNotRunning     = errors.New("orchestrator is not running")
)

// State is the lifecycle position for the current document identity
type State string

const (
	StateIdle               State = "idle"
	StateScanning           State = "scanning"
	StateAwaitingClassifier State = "awaiting-classifier"
	StateResolved           State = "resolved"
)

// Snapshot is a point-in-time view of the orchestrator
type Snapshot struct {
	State    State    `json:"state"`
	Current  string   `json:"current,omitempty"` // Identity of the document being shown
	Shown    string   `json:"shown,omitempty"`   // Identity the presenter currently reflects
	Awaiting []string `json:"awaiting,omitempty"`
	Scans    int      `json:"scans"`
	Cached   int      `json:"cached"`
}

// resolution carries a classifier answer back to the event loop
type resolution struct {
	result   model.Result
	override model.Verdict
}

// Orchestrator turns change notifications into published verdicts for the
// document a MetadataProvider describes. One goroutine owns all scan state;
// Trigger only schedules work and classifier calls report back over a channel.
type Orchestrator struct {
	detector   Detector
	sponsors   SponsorLookup
	classifier SentenceClassifier
	meta       MetadataProvider
	keywords   KeywordExtractor
	presenter  Presenter
	cache      *cache.VerdictCache
	logger     *slog.Logger
	debounce   time.Duration
	now        func() time.Time

	debouncer *Debouncer
	scanReq   chan struct{}
	resolved  chan resolution
	inspect   chan chan Snapshot

	started atomic.Bool
	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	calls   sync.WaitGroup

	// Owned by the event loop
	state    State
	current  string
	shown    string
	inflight map[string]model.Result
	scans    int
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithDetector sets the classification engine
func WithDetector(d Detector) Option {
	return func(o *Orchestrator) {
		if d != nil {
			o.detector = d
		}
	}
}

// WithSponsors sets the allowlist consulted for unknown or ambiguous verdicts
func WithSponsors(s SponsorLookup) Option {
	return func(o *Orchestrator) {
		if s != nil {
			o.sponsors = s
		}
	}
}

// WithClassifier sets the service that resolves ambiguous sentences
func WithClassifier(c SentenceClassifier) Option {
	return func(o *Orchestrator) {
		if c != nil {
			o.classifier = c
		}
	}
}

// WithKeywords sets the keyword extractor
func WithKeywords(k KeywordExtractor) Option {
	return func(o *Orchestrator) {
		if k != nil {
			o.keywords = k
		}
	}
}

// WithCache sets the verdict cache
func WithCache(c *cache.VerdictCache) Option {
	return func(o *Orchestrator) {
		if c != nil {
			o.cache = c
		}
	}
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithDebounce sets the trigger coalescing window
func WithDebounce(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d >= 0 {
			o.debounce = d
		}
	}
}

// WithClock overrides time.Now for result timestamps
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

// New creates an orchestrator for the document described by meta. Missing
// collaborators fall back to no-op implementations.
func New(meta MetadataProvider, presenter Presenter, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		detector:   noDetector{},
		sponsors:   noSponsors{},
		classifier: noClassifier{},
		meta:       meta,
		keywords:   noKeywords{},
		presenter:  presenter,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		debounce:   DefaultDebounce,
		now:        time.Now,
		scanReq:    make(chan struct{}, 1),
		resolved:   make(chan resolution),
		inspect:    make(chan chan Snapshot),
		done:       make(chan struct{}),
		state:      StateIdle,
		inflight:   make(map[string]model.Result),
	}
	if o.presenter == nil {
		o.presenter = noPresenter{}
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.cache == nil {
		o.cache = cache.NewVerdictCache(nil, cache.DefaultCapacity, 0)
	}
	o.debouncer = NewDebouncer(o.debounce, o.requestScan)
	return o
}

// Start runs the event loop until ctx is cancelled or Stop is called
func (o *Orchestrator) Start(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.started.Load() {
		return ErrAlreadyStarted
	}
	ctx, o.cancel = context.WithCancel(ctx)
	o.started.Store(true)
	go o.loop(ctx)
	return nil
}

// Trigger schedules a rescan after the debounce window. Every call restarts
// the window, so a burst yields a single scan.
func (o *Orchestrator) Trigger() {
	o.debouncer.Trigger()
}

// ScanNow bypasses the debounce window
func (o *Orchestrator) ScanNow() {
	o.requestScan()
}

// requestScan coalesces into a single pending scan request
func (o *Orchestrator) requestScan() {
	select {
	case o.scanReq <- struct{}{}:
	default:
	}
}

// Stop tears down the timer, the loop and any outstanding classifier calls
func (o *Orchestrator) Stop() {
	o.debouncer.Stop()
	o.mu.Lock()
	cancel := o.cancel
	o.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-o.done
	o.calls.Wait()
}

// Done is closed when the event loop exits
func (o *Orchestrator) Done() <-chan struct{} {
	return o.done
}

// Inspect returns a snapshot taken on the event loop
func (o *Orchestrator) Inspect(ctx context.Context) (Snapshot, error) {
	if !o.started.Load() {
		return Snapshot{}, ErrNotRunning
	}
	reply := make(chan Snapshot, 1)
	select {
	case o.inspect <- reply:
	case <-o.done:
		return Snapshot{}, ErrNotRunning
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
	select {
	case snap := <-reply:
		return snap, nil
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

// Mounted reports whether the presenter still has its output surface
func (o *Orchestrator) Mounted() bool {
	if m, ok := o.presenter.(Mounter); ok {
		return m.Mounted()
	}
	return true
}

func (o *Orchestrator) loop(ctx context.Context) {
	defer close(o.done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-o.scanReq:
			o.runScan(ctx)
		case r := <-o.resolved:
			o.resolve(r)
		case reply := <-o.inspect:
			reply <- o.snapshot()
		}
	}
}

func (o *Orchestrator) snapshot() Snapshot {
	awaiting := make([]string, 0, len(o.inflight))
	for id := range o.inflight {
		awaiting = append(awaiting, id)
	}
	slices.Sort(awaiting)
	return Snapshot{
		State:    o.state,
		Current:  o.current,
		Shown:    o.shown,
		Awaiting: awaiting,
		Scans:    o.scans,
		Cached:   o.cache.Len(),
	}
}

// runScan is the single scan step. It never returns an error: every failure
// becomes a verdict reason or a log line.
func (o *Orchestrator) runScan(ctx context.Context) {
	meta, err := o.meta.Meta(ctx)
	if err != nil {
		o.logger.Warn("metadata unavailable", "error", err)
		return
	}

	if !IsJobPage(meta.URL) {
		if o.current != "" || o.shown != "" {
			o.logger.Debug("left job page", "url", meta.URL)
			o.presenter.Clear()
		}
		o.current, o.shown = "", ""
		o.state = StateIdle
		return
	}

	id := Identity(meta)
	if id != o.current {
		if o.current != "" {
			o.logger.Debug("document identity changed", "from", o.current, "to", id)
		}
		// Nothing shown for the previous document may leak into this one
		if o.shown != "" {
			o.presenter.Clear()
			o.shown = ""
		}
		o.current = id
	}

	if entry, ok := o.cache.Get(id); ok {
		if o.shown == id && o.Mounted() {
			o.state = StateResolved
			return
		}
		o.logger.Debug("cache hit", "identity", id)
		o.publish(entry.Result())
		o.state = StateResolved
		return
	}

	if interim, ok := o.inflight[id]; ok {
		// The classifier is still out; just make sure the user sees loading
		if o.shown != id || !o.Mounted() {
			o.publish(interim)
		}
		o.state = StateAwaitingClassifier
		return
	}

	o.state = StateScanning
	o.scans++

	v := o.classify(meta.FullText)
	if v.Overridable() {
		v = o.sponsors.Override(v, meta.Company)
	}
	res := model.Result{
		Identity:  id,
		Verdict:   v,
		Meta:      meta,
		Keywords:  o.keywords.Extract(meta.FullText),
		ScannedAt: o.now(),
	}

	if v.Status == model.StatusAmbiguous && v.Sentence != "" {
		if _, absent := o.classifier.(noClassifier); !absent {
			o.escalate(ctx, res)
			return
		}
		res.Verdict = v.Merge(noClassifier{}.Classify(ctx, v.Sentence))
	}

	o.store(res)
	o.publish(res)
	o.state = StateResolved
}

// classify runs the detector, turning a panic into a detector-error verdict
func (o *Orchestrator) classify(text string) (v model.Verdict) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Warn("detector failed", "panic", fmt.Sprint(r))
			v = model.Verdict{
				Status:  model.StatusUnknown,
				Reason:  model.ReasonDetectorError,
				Snippet: util.Head(text, errorSnippetHead),
			}
		}
	}()

	v = o.detector.Classify(text)
	if v.Snippet == "" {
		v.Snippet = util.Head(text, missingSnippetHead)
	}
	return v
}

// escalate publishes the loading state and asks the classifier in the
// background. The answer is applied by resolve on the event loop.
func (o *Orchestrator) escalate(ctx context.Context, res model.Result) {
	interim := res
	interim.Verdict = res.Verdict.Loading()
	o.inflight[res.Identity] = interim
	o.publish(interim)
	o.state = StateAwaitingClassifier
	o.logger.Debug("escalating ambiguous sentence", "identity", res.Identity)

	sentence := res.Verdict.Sentence
	o.calls.Add(1)
	go func() {
		defer o.calls.Done()
		override := o.classifier.Classify(ctx, sentence)
		select {
		case o.resolved <- resolution{result: res, override: override}:
		case <-ctx.Done():
		}
	}()
}

// resolve merges a classifier answer, caches it and publishes it when the
// identity is still the one being shown
func (o *Orchestrator) resolve(r resolution) {
	id := r.result.Identity
	delete(o.inflight, id)

	final := r.result
	final.Verdict = r.result.Verdict.Merge(r.override)
	o.store(final)

	if id != o.current {
		o.logger.Debug("discarding stale classifier response", "identity", id, "current", o.current)
		return
	}
	o.publish(final)
	o.state = StateResolved
}

func (o *Orchestrator) store(res model.Result) {
	// Empty documents are usually still loading; let the next trigger retry
	if res.Verdict.Reason == model.ReasonNoText {
		return
	}
	entry := cache.Entry{
		Verdict:  res.Verdict,
		Meta:     res.Meta,
		Keywords: res.Keywords,
		StoredAt: res.ScannedAt,
	}
	if err := o.cache.Put(res.Identity, entry); err != nil {
		o.logger.Warn("cache write failed", "identity", res.Identity, "error", err)
	}
}

func (o *Orchestrator) publish(res model.Result) {
	o.presenter.Render(res)
	o.shown = res.Identity
}
