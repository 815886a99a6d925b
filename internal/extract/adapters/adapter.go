package adapters

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Fields is what a site adapter could read from a page. Empty fields are
// filled by the host-agnostic fallbacks of the extractor.
type Fields struct {
	Title       string
	Company     string
	PostedText  string
	Description string
	Header      string // Leading text of the posting header, searched for a posted date
}

// Adapter defines the interface for site-specific extractors
type Adapter interface {
	// Name returns the adapter name
	Name() string

	// CanHandle checks if this adapter understands pages from host
	CanHandle(host string) bool

	// Extract reads posting fields from the document
	Extract(doc *goquery.Document) Fields
}

// Registry manages site adapters
type Registry struct {
	adapters []Adapter
	generic  Adapter
}

// NewRegistry creates a registry with the built-in job board adapters
func NewRegistry() *Registry {
	registry := &Registry{
		adapters: make([]Adapter, 0),
	}

	registry.Register(NewLinkedInAdapter())
	registry.Register(NewIndeedAdapter())
	registry.Register(NewGreenhouseAdapter())

	// Set generic adapter as fallback
	registry.generic = NewGenericAdapter()

	return registry
}

// Register registers a new adapter
func (r *Registry) Register(adapter Adapter) {
	r.adapters = append(r.adapters, adapter)
}

// FindAdapter finds the adapter for a page URL
func (r *Registry) FindAdapter(rawURL string) Adapter {
	host := Host(rawURL)
	if host != "" {
		for _, adapter := range r.adapters {
			if adapter.CanHandle(host) {
				return adapter
			}
		}
	}

	// Fall back to generic adapter
	return r.generic
}

// Host returns the lower-cased host of a URL, or "" when it has none
func Host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

var spaceRun = regexp.MustCompile(`\s+`)

// BaseAdapter provides common functionality for adapters
type BaseAdapter struct{}

// TextOf returns the whitespace-collapsed text of a selection
func (b *BaseAdapter) TextOf(s *goquery.Selection) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(s.Text(), " "))
}

// FirstText returns the text of the first selector that matches with at
// least minLen bytes of text
func (b *BaseAdapter) FirstText(scope *goquery.Selection, minLen int, selectors ...string) string {
	for _, sel := range selectors {
		if t := b.TextOf(scope.Find(sel).First()); len(t) >= minLen && t != "" {
			return t
		}
	}
	return ""
}

// LongestHeading returns the longest non-empty heading text in scope
func (b *BaseAdapter) LongestHeading(scope *goquery.Selection, selector string) string {
	var best string
	scope.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if t := b.TextOf(s); len(t) > len(best) {
			best = t
		}
	})
	return best
}

var companyPaths = []string{"/company/", "/cmp/", "/companies/", "/employers/"}

// CompanyFromLinks returns the text of the first link pointing at a company page
func (b *BaseAdapter) CompanyFromLinks(scope *goquery.Selection) string {
	var company string
	scope.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href := strings.ToLower(s.AttrOr("href", ""))
		for _, p := range companyPaths {
			if strings.Contains(href, p) {
				if t := b.TextOf(s); len(t) > 1 {
					company = t
					return false
				}
			}
		}
		return true
	})
	return company
}
