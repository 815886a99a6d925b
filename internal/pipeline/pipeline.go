package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/cache"
	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/detect"
	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/extract"
	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/keywords"
	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/llm"
	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/model"
	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/rescan"
	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/sponsors"
	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/store"
)

// Pipeline runs one-shot scans: fetch or read a document, extract its
// metadata, classify it and remember the verdict
type Pipeline struct {
	fetcher    *Fetcher
	extractor  *extract.Extractor
	engine     *detect.Engine
	sponsors   *sponsors.Registry
	classifier *llm.Classifier // nil when no provider is configured
	keywords   *keywords.Extractor
	cache      *cache.VerdictCache // nil when caching is disabled
	history    *store.History      // nil when history is disabled
	logger     *slog.Logger
	now        func() time.Time
	config     *model.Config
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithLogger sets the structured logger
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithHistory records every final verdict
func WithHistory(h *store.History) Option {
	return func(p *Pipeline) { p.history = h }
}

// WithClassifier replaces the classifier built from config
func WithClassifier(c *llm.Classifier) Option {
	return func(p *Pipeline) { p.classifier = c }
}

// WithVerdictCache replaces the cache built from config
func WithVerdictCache(c *cache.VerdictCache) Option {
	return func(p *Pipeline) { p.cache = c }
}

// WithClock sets the clock used for posted dates and scan times
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// NewPipeline builds every stage from the configuration. A classifier that
// fails to initialize is logged and left out; a broken cache or sponsors
// file is an error.
func NewPipeline(cfg *model.Config, opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
		config: cfg,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.fetcher = NewFetcher(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes,
		cfg.HTTP.RespectRobots, cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy)
	p.fetcher.SetMaxRetries(cfg.HTTP.MaxRetries)
	p.extractor = extract.NewExtractor(extract.WithClock(p.now))
	p.engine = detect.NewEngine(cfg.Detection.ExtraKeywords,
		detect.WithContextRadius(cfg.Detection.ContextRadius),
		detect.WithSnippetRadius(cfg.Detection.SnippetRadius),
		detect.WithMinSentenceLength(cfg.Detection.MinSentenceLength),
	)
	p.keywords = keywords.NewExtractor()

	var extra []sponsors.Sponsor
	if cfg.Detection.SponsorsFile != "" {
		loaded, err := sponsors.LoadFile(cfg.Detection.SponsorsFile)
		if err != nil {
			return nil, err
		}
		extra = loaded
	}
	p.sponsors = sponsors.NewRegistry(extra...)

	if p.classifier == nil && cfg.Classifier.Provider != "" {
		c, err := llm.NewClassifierFromConfig(cfg.Classifier, cfg.HTTP, p.logger)
		if err != nil {
			p.logger.Warn("sentence classifier disabled", "provider", cfg.Classifier.Provider, "error", err)
		} else {
			p.classifier = c
		}
	}

	if p.cache == nil && cfg.Cache.Enabled {
		backend, err := cache.New(cfg.Cache)
		if err != nil {
			return nil, fmt.Errorf("cache: %w", err)
		}
		p.cache = cache.NewVerdictCache(backend, cfg.Rescan.CacheCapacity, cfg.Cache.TTL)
	}

	return p, nil
}

// ScanResult contains a scan's published result
type ScanResult struct {
	Result   model.Result
	Cached   bool   // Served from the verdict cache without classifying
	RecordID string // History row, when recorded
}

// Scan dispatches on the target: http(s) URLs are fetched, anything else is
// read as a local file
func (p *Pipeline) Scan(ctx context.Context, target string, refresh bool) (*ScanResult, error) {
	if IsURL(target) {
		return p.ScanURL(ctx, target, refresh)
	}
	return p.ScanFile(ctx, target, refresh)
}

// ScanURL fetches and classifies a job page
func (p *Pipeline) ScanURL(ctx context.Context, rawURL string, refresh bool) (*ScanResult, error) {
	fetched, err := p.fetcher.FetchWithRetry(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	meta, err := p.extractor.Extract(fetched.FinalURL, fetched.HTML)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	return p.Evaluate(ctx, meta, refresh), nil
}

// ScanFile classifies a saved HTML page or a plain text posting
func (p *Pipeline) ScanFile(ctx context.Context, path string, refresh bool) (*ScanResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	meta, err := p.metaFromBytes("", data)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	return p.Evaluate(ctx, meta, refresh), nil
}

// ClassifyText classifies raw posting text. Company and title are optional
// and only feed the sponsor lookup and the identity.
func (p *Pipeline) ClassifyText(ctx context.Context, text, company, title string) *ScanResult {
	return p.Evaluate(ctx, p.extractor.FromText(text, company, title), true)
}

// Evaluate runs the classification stages over extracted metadata. Unless
// refresh is set a cached verdict for the same identity is returned as is.
func (p *Pipeline) Evaluate(ctx context.Context, meta model.JobMeta, refresh bool) *ScanResult {
	identity := rescan.Identity(meta)

	if p.cache != nil && !refresh {
		if e, ok := p.cache.Get(identity); ok {
			p.logger.Debug("verdict served from cache", "identity", identity)
			return &ScanResult{Result: e.Result(), Cached: true}
		}
	}

	v := p.engine.Classify(meta.FullText)
	if v.Overridable() {
		v = p.sponsors.Override(v, meta.Company)
	}
	if v.Status == model.StatusAmbiguous && v.Sentence != "" {
		if p.classifier != nil {
			p.logger.Debug("escalating ambiguous sentence", "identity", identity)
			v = v.Merge(p.classifier.Classify(ctx, v.Sentence))
		} else {
			v = v.Merge(model.Verdict{Status: model.StatusAmbiguous, Reason: model.ReasonNoClassifier})
		}
	}

	res := model.Result{
		Identity:  identity,
		Verdict:   v,
		Meta:      meta,
		Keywords:  p.keywords.Extract(meta.FullText),
		ScannedAt: p.now(),
	}

	if p.cache != nil && v.Reason != model.ReasonNoText {
		err := p.cache.Put(identity, cache.Entry{
			Verdict:  res.Verdict,
			Meta:     res.Meta,
			Keywords: res.Keywords,
			StoredAt: res.ScannedAt,
		})
		if err != nil {
			p.logger.Warn("verdict cache write failed", "identity", identity, "error", err)
		}
	}

	out := &ScanResult{Result: res}
	if p.history != nil {
		id, err := p.history.Record(ctx, res)
		if err != nil {
			p.logger.Warn("history write failed", "identity", identity, "error", err)
		}
		out.RecordID = id
	}
	return out
}

// RescanOptions wires this pipeline's stages into a live orchestrator
func (p *Pipeline) RescanOptions() []rescan.Option {
	opts := []rescan.Option{
		rescan.WithDetector(p.engine),
		rescan.WithSponsors(p.sponsors),
		rescan.WithKeywords(p.keywords),
		rescan.WithLogger(p.logger),
		rescan.WithClock(p.now),
		rescan.WithDebounce(p.config.Rescan.Debounce),
	}
	if p.classifier != nil {
		opts = append(opts, rescan.WithClassifier(p.classifier))
	}
	if p.cache != nil {
		opts = append(opts, rescan.WithCache(p.cache))
	}
	return opts
}

// Source returns a metadata provider that re-reads target on every scan
func (p *Pipeline) Source(target string) *PageSource {
	return &PageSource{target: target, pipeline: p}
}

// Fetcher returns the page fetcher
func (p *Pipeline) Fetcher() *Fetcher { return p.fetcher }

// Sponsors returns the sponsor registry
func (p *Pipeline) Sponsors() *sponsors.Registry { return p.sponsors }

// Classifier returns the sentence classifier, or nil when disabled
func (p *Pipeline) Classifier() *llm.Classifier { return p.classifier }

// History returns the history store, or nil when disabled
func (p *Pipeline) History() *store.History { return p.history }

// metaFromBytes extracts metadata from a document body, treating anything
// that looks like markup as HTML
func (p *Pipeline) metaFromBytes(rawURL string, data []byte) (model.JobMeta, error) {
	text := string(data)
	if looksLikeHTML(text) {
		return p.extractor.Extract(rawURL, text)
	}
	meta := p.extractor.FromText(text, "", "")
	meta.URL = rawURL
	return meta, nil
}

// IsURL reports whether target should be fetched rather than read from disk
func IsURL(target string) bool {
	lower := strings.ToLower(target)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func looksLikeHTML(s string) bool {
	head := strings.ToLower(strings.TrimSpace(s))
	if len(head) > 512 {
		head = head[:512]
	}
	return strings.HasPrefix(head, "<") ||
		strings.Contains(head, "<html") ||
		strings.Contains(head, "<body")
}
