package extract

import (
	"strings"
	"testing"
	"time"
)

var fixedNow = time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

func newTestExtractor() *Extractor {
	return NewExtractor(WithClock(func() time.Time { return fixedNow }))
}

const linkedInPage = `<!DOCTYPE html>
<html><head><title>Backend Engineer | Acme | LinkedIn</title></head>
<body>
  <div class="jobs-unified-top-card">
    <h2>Top job picks</h2>
    <h1 class="jobs-unified-top-card__job-title">Backend Engineer - LinkedIn</h1>
    <a class="jobs-unified-top-card__company-name-link" href="/company/acme/">Acme Corp</a>
    <span class="jobs-unified-top-card__bullet">San Francisco, CA · 2 days ago · 40 applicants</span>
  </div>
  <div class="jobs-description__container">
    <p>We build payments infrastructure in Go and Kubernetes.</p>
    <p>We offer visa sponsorship for this role.</p>
  </div>
  <script>var tracking = "visa sponsorship is not available";</script>
</body></html>`

func TestExtract_LinkedIn(t *testing.T) {
	meta, err := newTestExtractor().Extract("https://www.linkedin.com/jobs/view/123/", linkedInPage)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if meta.Title != "Backend Engineer" {
		t.Errorf("Title = %q, want %q", meta.Title, "Backend Engineer")
	}
	if meta.Company != "Acme Corp" {
		t.Errorf("Company = %q, want %q", meta.Company, "Acme Corp")
	}
	if meta.PostedText != "2 days ago" {
		t.Errorf("PostedText = %q, want %q", meta.PostedText, "2 days ago")
	}
	if meta.Posted == nil || !meta.Posted.Equal(fixedNow.AddDate(0, 0, -2)) {
		t.Errorf("Posted = %v, want two days before %v", meta.Posted, fixedNow)
	}
	if meta.Freshness.Label != FreshHot || meta.Freshness.DaysAgo != 2 {
		t.Errorf("Freshness = %+v, want Hot/2", meta.Freshness)
	}
	if !strings.Contains(meta.FullText, "We offer visa sponsorship for this role.") {
		t.Errorf("FullText missing description: %q", meta.FullText)
	}
	if strings.Contains(meta.FullText, "not available") {
		t.Errorf("FullText must not include script text: %q", meta.FullText)
	}
}

const indeedPage = `<html><body>
  <div class="jobsearch-JobInfoHeader">
    <h1 data-testid="jobsearch-JobInfoHeader-title">Data Engineer - job post</h1>
    <div data-testid="inlineHeader-companyName"><a href="/cmp/globex">Globex</a></div>
  </div>
  <div id="jobDescriptionText"><p>Must be a US citizen. Python and Spark experience required.</p></div>
  <span data-testid="myJobsStateDate">Posted 6 weeks ago</span>
</body></html>`

func TestExtract_Indeed(t *testing.T) {
	meta, err := newTestExtractor().Extract("https://www.indeed.com/viewjob?jk=abc", indeedPage)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if meta.Title != "Data Engineer" {
		t.Errorf("Title = %q, want %q", meta.Title, "Data Engineer")
	}
	if meta.Company != "Globex" {
		t.Errorf("Company = %q, want %q", meta.Company, "Globex")
	}
	if meta.FullText != "Must be a US citizen. Python and Spark experience required." {
		t.Errorf("FullText = %q", meta.FullText)
	}
	if meta.Freshness.Label != FreshCold {
		t.Errorf("Freshness = %+v, want Cold", meta.Freshness)
	}
}

const greenhousePage = `<html><head><title>Job Application for Platform Engineer at Initech</title></head>
<body>
  <div id="header"><h1 class="app-title">Platform Engineer</h1></div>
  <div id="content"><p>Initech is hiring. H1B transfers welcome and sponsorship available.</p></div>
</body></html>`

func TestExtract_GreenhouseCompanyFromTitle(t *testing.T) {
	meta, err := newTestExtractor().Extract("https://boards.greenhouse.io/initech/jobs/42", greenhousePage)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if meta.Title != "Platform Engineer" {
		t.Errorf("Title = %q", meta.Title)
	}
	if meta.Company != "Initech" {
		t.Errorf("Company = %q, want Initech", meta.Company)
	}
	if !strings.HasPrefix(meta.FullText, "Initech is hiring.") {
		t.Errorf("FullText = %q", meta.FullText)
	}
	if meta.Posted != nil || meta.Freshness.Label != FreshUnknown || meta.Freshness.DaysAgo != -1 {
		t.Errorf("expected unknown freshness, got %v %+v", meta.Posted, meta.Freshness)
	}
}

const jsonLDPage = `<html><head>
<script type="application/ld+json">{"@context":"https://schema.org","@type":"JobPosting",
 "title":"Site Reliability Engineer","datePosted":"2025-09-20",
 "hiringOrganization":{"@type":"Organization","name":"Umbrella"},
 "description":"&lt;p&gt;We will sponsor H-1B visas.&lt;/p&gt;&lt;ul&gt;&lt;li&gt;Terraform&lt;/li&gt;&lt;/ul&gt;"}
</script>
<script type="application/ld+json">{ not json</script>
</head><body><nav><a href="/">Home</a></nav></body></html>`

func TestExtract_JSONLDFallback(t *testing.T) {
	meta, err := newTestExtractor().Extract("https://careers.umbrella.example/jobs/sre", jsonLDPage)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if meta.Title != "Site Reliability Engineer" {
		t.Errorf("Title = %q", meta.Title)
	}
	if meta.Company != "Umbrella" {
		t.Errorf("Company = %q", meta.Company)
	}
	if meta.PostedText != "2025-09-20" {
		t.Errorf("PostedText = %q", meta.PostedText)
	}
	if meta.Freshness.Label != FreshNeutral || meta.Freshness.DaysAgo != 11 {
		t.Errorf("Freshness = %+v, want Neutral/11", meta.Freshness)
	}
	if meta.FullText != "We will sponsor H-1B visas. Terraform" {
		t.Errorf("FullText = %q", meta.FullText)
	}
}

const plainPage = `<html><body>
  <h1>Mobile Developer – Remote</h1>
  <p>Posted yesterday</p>
  <div><p>Swift and Kotlin.</p><button>Apply now</button><a href="/apply">Apply</a>
  <style>.x{}</style><p>Relocation support included.</p></div>
</body></html>`

func TestExtract_VisibleTextFallback(t *testing.T) {
	meta, err := newTestExtractor().Extract("", plainPage)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if meta.Title != "Mobile Developer" {
		t.Errorf("Title = %q, want trailing tag removed", meta.Title)
	}
	want := "Mobile Developer – Remote Posted yesterday Swift and Kotlin. Relocation support included."
	if meta.FullText != want {
		t.Errorf("FullText = %q, want %q", meta.FullText, want)
	}
	if meta.PostedText != "Posted yesterday" {
		t.Errorf("PostedText = %q", meta.PostedText)
	}
	if meta.Freshness.Label != FreshHot || meta.Freshness.DaysAgo != 1 {
		t.Errorf("Freshness = %+v", meta.Freshness)
	}
}

func TestFromText(t *testing.T) {
	meta := newTestExtractor().FromText("  Posted 3 weeks ago. We sponsor visas.  ", " Acme ", "Engineer")

	if meta.Company != "Acme" || meta.Title != "Engineer" {
		t.Errorf("unexpected meta %+v", meta)
	}
	if meta.FullText != "Posted 3 weeks ago. We sponsor visas." {
		t.Errorf("FullText = %q", meta.FullText)
	}
	if meta.Freshness.Label != FreshNeutral {
		t.Errorf("Freshness = %+v", meta.Freshness)
	}
	if meta.Freshness.DaysAgo != 21 {
		t.Errorf("DaysAgo = %d, want 21", meta.Freshness.DaysAgo)
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Backend Engineer - LinkedIn", "Backend Engineer"},
		{"Backend Engineer | LinkedIn", "Backend Engineer"},
		{"Staff Engineer — Payments", "Staff Engineer"},
		{"Front-end Engineer", "Front-end Engineer"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := cleanTitle(tt.in); got != tt.want {
			t.Errorf("cleanTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
