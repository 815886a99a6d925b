package adapters

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// "Job Application for Engineer at Acme" style page titles
var greenhouseAt = regexp.MustCompile(`(?i)\bat\s+(.+?)(?:\s*[-–|]|$)`)

// GreenhouseAdapter reads Greenhouse hosted job boards
type GreenhouseAdapter struct {
	BaseAdapter
}

// NewGreenhouseAdapter creates a new Greenhouse adapter
func NewGreenhouseAdapter() *GreenhouseAdapter {
	return &GreenhouseAdapter{}
}

// Name returns the adapter name
func (a *GreenhouseAdapter) Name() string {
	return "greenhouse"
}

// CanHandle checks if this is a Greenhouse host
func (a *GreenhouseAdapter) CanHandle(host string) bool {
	return host == "greenhouse.io" || strings.HasSuffix(host, ".greenhouse.io")
}

// Extract reads the application header, falling back to the page title for the company
func (a *GreenhouseAdapter) Extract(doc *goquery.Document) Fields {
	root := doc.Selection
	f := Fields{
		Title:   a.FirstText(root, 1, ".app-title", "h1.heading", ".job__title h1", "h1"),
		Company: a.FirstText(root, 1, ".company-name", "span.company-name"),
		Description: a.FirstText(root, 21,
			"#content",
			".job-post-content",
			"#job_description",
			".job__description",
			`[data-mapped="true"]`,
		),
	}
	f.Company = strings.TrimSpace(strings.TrimPrefix(f.Company, "at "))
	if f.Company == "" {
		if m := greenhouseAt.FindStringSubmatch(a.TextOf(root.Find("title").First())); m != nil {
			f.Company = strings.TrimSpace(m[1])
		}
	}
	return f
}
