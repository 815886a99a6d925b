package extract

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/extract/adapters"
	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/model"
	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/util"
)

const (
	// headerScanLength bounds the header text searched for a posted date
	headerScanLength = 400
	// pageScanLength bounds the last-resort posted date search over the page
	pageScanLength = 20000
	// maxDateCandidates bounds the short elements inspected for a posted date
	maxDateCandidates = 60
)

var (
	linkedInSuffix = regexp.MustCompile(`(?i)\s+[-–|]\s*LinkedIn\s*$`)
	trailingTag    = regexp.MustCompile(`\s+[—–-]\s*[\w\s]{1,50}$`)

	// Short elements that look like they carry a posting date
	dateHint = regexp.MustCompile(`(?i)ago|posted|today|yesterday|\d{4}-\d{2}-\d{2}|[a-z]{3,9}\s+\d{1,2}|(^|\s)\d+(h|hr|hrs|m|min|mins|d|w|mo)\b`)
)

// Extractor is the document metadata provider for HTML pages. It picks a
// site adapter by host and fills whatever the adapter missed from JSON-LD,
// generic markup and the visible text of the page.
type Extractor struct {
	registry *adapters.Registry
	now      func() time.Time
}

// Option configures an Extractor
type Option func(*Extractor)

// WithClock sets the clock used to resolve relative posted dates
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) {
		if now != nil {
			e.now = now
		}
	}
}

// WithRegistry replaces the built-in adapter registry
func WithRegistry(r *adapters.Registry) Option {
	return func(e *Extractor) {
		if r != nil {
			e.registry = r
		}
	}
}

// NewExtractor creates an extractor with the built-in site adapters
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		registry: adapters.NewRegistry(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses an HTML page and returns its job metadata
func (e *Extractor) Extract(rawURL, htmlContent string) (model.JobMeta, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return model.JobMeta{}, fmt.Errorf("parse html: %w", err)
	}
	return e.ExtractDocument(rawURL, doc), nil
}

// ExtractDocument reads job metadata from a parsed document
func (e *Extractor) ExtractDocument(rawURL string, doc *goquery.Document) model.JobMeta {
	f := e.registry.FindAdapter(rawURL).Extract(doc)
	base := adapters.BaseAdapter{}

	if f.PostedText != "" {
		if tok := ExtractPosted(f.PostedText); tok != "" {
			f.PostedText = tok
		}
	}
	if f.PostedText == "" && f.Header != "" {
		f.PostedText = ExtractPosted(util.Head(f.Header, headerScanLength))
	}

	for _, jp := range JobPostings(doc) {
		if f.Title == "" {
			f.Title = strings.TrimSpace(jp.Title)
		}
		if f.Company == "" {
			f.Company = strings.TrimSpace(jp.HiringOrganization.Name)
		}
		if f.PostedText == "" && jp.DatePosted != "" {
			f.PostedText = jp.DatePosted
			if tok := ExtractPosted(jp.DatePosted); tok != "" {
				f.PostedText = tok
			}
		}
		if f.Description == "" && jp.Description != "" {
			f.Description = descriptionText(jp.Description)
		}
	}

	if f.Title == "" {
		f.Title = base.FirstText(doc.Selection, 1, "h1")
	}
	if f.Title == "" {
		f.Title = base.LongestHeading(doc.Selection, `[role="heading"], h2, h3`)
	}
	if f.Company == "" {
		f.Company = base.CompanyFromLinks(doc.Selection)
	}
	f.Title = cleanTitle(f.Title)

	if f.Description == "" && len(doc.Nodes) > 0 {
		body := doc.Find("body")
		if body.Length() > 0 {
			f.Description = VisibleText(body.Nodes[0])
		} else {
			f.Description = VisibleText(doc.Nodes[0])
		}
	}

	if f.PostedText == "" {
		f.PostedText = postedFromPage(doc, f.Description)
	}

	meta := model.JobMeta{
		URL:        rawURL,
		Company:    strings.TrimSpace(f.Company),
		Title:      strings.TrimSpace(f.Title),
		PostedText: strings.TrimSpace(f.PostedText),
		FullText:   strings.TrimSpace(f.Description),
	}
	return e.Date(meta)
}

// Date resolves PostedText into Posted and Freshness
func (e *Extractor) Date(meta model.JobMeta) model.JobMeta {
	now := e.now()
	meta.Posted = nil
	if t, ok := ParsePosted(meta.PostedText, now); ok {
		meta.Posted = &t
	}
	meta.Freshness = Freshness(meta.Posted, now)
	return meta
}

// FromText builds metadata for a plain text document
func (e *Extractor) FromText(text, company, title string) model.JobMeta {
	return e.Date(model.JobMeta{
		Company:    strings.TrimSpace(company),
		Title:      strings.TrimSpace(title),
		PostedText: ExtractPosted(util.Head(text, headerScanLength)),
		FullText:   strings.TrimSpace(text),
	})
}

// cleanTitle drops a trailing " - LinkedIn" and any short trailing tag
func cleanTitle(title string) string {
	title = strings.TrimSpace(linkedInSuffix.ReplaceAllString(title, ""))
	return strings.TrimSpace(trailingTag.ReplaceAllString(title, ""))
}

// postedFromPage searches time elements, short date-like elements, meta
// tags and finally the page text for a posted date
func postedFromPage(doc *goquery.Document, text string) string {
	base := adapters.BaseAdapter{}

	if dt, ok := doc.Find("time[datetime]").First().Attr("datetime"); ok && dt != "" {
		if tok := ExtractPosted(dt); tok != "" {
			return tok
		}
	}

	var found string
	candidates := 0
	doc.Find("time, span, div").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		t := base.TextOf(s)
		if t == "" || len(t) >= 80 || !dateHint.MatchString(t) {
			return true
		}
		candidates++
		if tok := ExtractPosted(t); tok != "" {
			found = tok
			return false
		}
		return candidates < maxDateCandidates
	})
	if found != "" {
		return found
	}

	for _, sel := range []string{`meta[property="article:published_time"]`, `meta[name="date"]`} {
		if content := doc.Find(sel).AttrOr("content", ""); content != "" {
			if tok := ExtractPosted(content); tok != "" {
				return tok
			}
			return content
		}
	}

	return ExtractPosted(util.Head(text, pageScanLength))
}
