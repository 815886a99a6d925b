package adapters

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// IndeedAdapter reads Indeed job view pages
type IndeedAdapter struct {
	BaseAdapter
}

// NewIndeedAdapter creates a new Indeed adapter
func NewIndeedAdapter() *IndeedAdapter {
	return &IndeedAdapter{}
}

// Name returns the adapter name
func (a *IndeedAdapter) Name() string {
	return "indeed"
}

// CanHandle checks if this is an Indeed host
func (a *IndeedAdapter) CanHandle(host string) bool {
	return host == "indeed.com" || strings.HasSuffix(host, ".indeed.com")
}

// Extract reads the job header and description
func (a *IndeedAdapter) Extract(doc *goquery.Document) Fields {
	root := doc.Selection
	header := root.Find(".jobsearch-JobInfoHeader, .jobsearch-InfoHeaderContainer").First()

	f := Fields{
		Title: a.FirstText(root, 2,
			`[data-testid="jobsearch-JobInfoHeader-title"]`,
			"h1.jobsearch-JobInfoHeader-title",
			"h1",
		),
		Company: a.FirstText(root, 2,
			`[data-testid="inlineHeader-companyName"]`,
			`[data-company-name="true"]`,
			".jobsearch-CompanyInfoContainer a",
		),
		PostedText: a.FirstText(root, 2,
			`[data-testid="myJobsStateDate"]`,
			".jobsearch-JobMetadataFooter",
		),
		Description: a.FirstText(root, 21,
			"#jobDescriptionText",
			".jobsearch-JobComponent-description",
		),
	}
	// "Software Engineer - job post" is how Indeed titles its header
	f.Title = strings.TrimSpace(strings.TrimSuffix(f.Title, "- job post"))
	if f.Company == "" {
		f.Company = a.CompanyFromLinks(root)
	}
	if header.Length() > 0 {
		f.Header = a.TextOf(header)
	}
	return f
}
