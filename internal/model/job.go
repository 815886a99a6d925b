package model

import "time"

// JobMeta is what the metadata provider reports about the current document
type JobMeta struct {
	URL        string     `json:"url,omitempty"`
	Company    string     `json:"company"`
	Title      string     `json:"title"`
	PostedText string     `json:"posted_text,omitempty"`
	Posted     *time.Time `json:"posted,omitempty"`
	Freshness  Freshness  `json:"freshness"`
	FullText   string     `json:"-"`
}

// Freshness buckets the age of a posting
type Freshness struct {
	DaysAgo int    `json:"days_ago"` // -1 when the posting date is unknown
	Label   string `json:"label"`    // Hot, Warm, Neutral, Cold, Unknown
}

// Result is the payload handed to the presentation layer
type Result struct {
	Identity  string    `json:"identity"`
	Verdict   Verdict   `json:"verdict"`
	Meta      JobMeta   `json:"meta"`
	Keywords  []string  `json:"keywords,omitempty"`
	ScannedAt time.Time `json:"scanned_at"`
}
