package adapters

import (
	"github.com/PuerkitoBio/goquery"
)

// GenericAdapter is the fallback adapter for unknown hosts
type GenericAdapter struct {
	BaseAdapter
	descriptionSelectors []string
	companySelectors     []string
}

// NewGenericAdapter creates a new generic adapter
func NewGenericAdapter() *GenericAdapter {
	return &GenericAdapter{
		descriptionSelectors: []string{
			"#jobDescriptionText",
			".jobsearch-JobComponent-description",
			".jobs-description__container",
			".description__text",
			"[data-test-job-details]",
			".job-description",
			"[itemprop=description]",
		},
		companySelectors: []string{
			".company",
			".job-company",
			"[data-company]",
			".topcard__org-name",
			".jobs-unified-top-card__company-name",
			"[itemprop=hiringOrganization]",
		},
	}
}

// Name returns the adapter name
func (a *GenericAdapter) Name() string {
	return "generic"
}

// CanHandle always returns true (fallback adapter)
func (a *GenericAdapter) CanHandle(host string) bool {
	return true
}

// Extract reads common job markup
func (a *GenericAdapter) Extract(doc *goquery.Document) Fields {
	root := doc.Selection
	f := Fields{
		Title:       a.FirstText(root, 1, "h1"),
		Description: a.FirstText(root, 21, a.descriptionSelectors...),
	}
	if f.Title == "" {
		f.Title = a.LongestHeading(root, `[role="heading"], h2, h3`)
	}
	f.Company = a.CompanyFromLinks(root)
	if f.Company == "" {
		f.Company = a.FirstText(root, 1, a.companySelectors...)
	}
	return f
}
