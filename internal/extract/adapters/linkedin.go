package adapters

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Headings LinkedIn renders above a list rather than a posting
var linkedInBoilerplate = regexp.MustCompile(`(?i)^(top job picks|linkedin|jobs for you|recommended jobs)$`)

// LinkedInAdapter reads the job view top card
type LinkedInAdapter struct {
	BaseAdapter
	topCardSelectors     []string
	titleSelectors       []string
	companySelectors     []string
	dateSelectors        []string
	descriptionSelectors []string
}

// NewLinkedInAdapter creates a new LinkedIn adapter
func NewLinkedInAdapter() *LinkedInAdapter {
	return &LinkedInAdapter{
		topCardSelectors: []string{
			".jobs-unified-top-card",
			".jobs-unified-top-card__content",
			".topcard",
			".jobs-top-card",
			"[data-job-id]",
		},
		titleSelectors: []string{
			".jobs-unified-top-card__job-title",
			"h1.jobs-unified-top-card__job-title",
			"h1.topcard__title",
			"[data-test-job-title]",
			"h1",
			`[role="heading"]`,
		},
		companySelectors: []string{
			"a.jobs-unified-top-card__company-name-link",
			".jobs-unified-top-card__company-name",
			"a.topcard__org-name-link",
			".topcard__flavor--link",
			"[data-test-company-name]",
			".topcard__flavor",
		},
		dateSelectors: []string{
			".posted-time-ago__text",
			".jobs-unified-top-card__posted-date",
			"[data-test-job-posted-date]",
			".posted-date",
			".topcard__flavor--metadata",
		},
		descriptionSelectors: []string{
			".jobs-description__container",
			".jobs-description__content",
			".description__text",
			"[data-test-job-details]",
			".jobs-box__html-content",
		},
	}
}

// Name returns the adapter name
func (a *LinkedInAdapter) Name() string {
	return "linkedin"
}

// CanHandle checks if this is a LinkedIn host
func (a *LinkedInAdapter) CanHandle(host string) bool {
	return host == "linkedin.com" || strings.HasSuffix(host, ".linkedin.com")
}

// Extract reads the top card first and the description container second
func (a *LinkedInAdapter) Extract(doc *goquery.Document) Fields {
	var f Fields
	f.Description = a.FirstText(doc.Selection, 21, a.descriptionSelectors...)

	card := a.topCard(doc)
	if card == nil {
		return f
	}

	for _, sel := range a.titleSelectors {
		t := a.TextOf(card.Find(sel).First())
		if len(t) > 1 && !linkedInBoilerplate.MatchString(t) {
			f.Title = t
			break
		}
	}
	if f.Title == "" {
		f.Title = a.LongestHeading(card, `h1, h2, [role="heading"]`)
	}

	f.Company = a.FirstText(card, 2, a.companySelectors...)
	if f.Company == "" {
		f.Company = a.CompanyFromLinks(card)
	}

	f.PostedText = a.FirstText(card, 2, a.dateSelectors...)
	f.Header = a.TextOf(card)
	return f
}

func (a *LinkedInAdapter) topCard(doc *goquery.Document) *goquery.Selection {
	for _, sel := range a.topCardSelectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			return s
		}
	}
	return nil
}
