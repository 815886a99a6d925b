package extract

import (
	"testing"
	"time"
)

func TestExtractPosted(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"", ""},
		{"Posted 3 days ago", "Posted 3 days ago"},
		{"Remote · 3 months ago · 200 applicants", "3 months ago"},
		{"Reposted 2 weeks ago", "2 weeks ago"},
		{"posted: today", "posted: today"},
		{"Just now", "Just now"},
		{"2025-09-27T08:00:00Z", "2025-09-27"},
		{"Published Sep 27, 2025 in Engineering", "Sep 27, 2025"},
		{"September 3rd", "September 3rd"},
		{"Acme • 3h", "3 h"},
		{"5d", "5 d"},
		{"Marketing 5 years", ""},
		{"No date here", ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := ExtractPosted(tt.text); got != tt.want {
				t.Errorf("ExtractPosted(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestParsePosted(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		text string
		want time.Time
		ok   bool
	}{
		{"3 days ago", now.AddDate(0, 0, -3), true},
		{"Posted 2 months ago", now.AddDate(0, -2, 0), true},
		{"3 mo ago", now.AddDate(0, -3, 0), true},
		{"30m ago", now.Add(-30 * time.Minute), true},
		{"5 hrs ago", now.Add(-5 * time.Hour), true},
		{"1 year ago", now.AddDate(-1, 0, 0), true},
		{"2w", now.AddDate(0, 0, -14), true},
		{"4h", now.Add(-4 * time.Hour), true},
		{"yesterday", now.AddDate(0, 0, -1), true},
		{"Today", now, true},
		{"2025-09-27", time.Date(2025, 9, 27, 0, 0, 0, 0, time.UTC), true},
		{"Sep 27, 2025", time.Date(2025, 9, 27, 0, 0, 0, 0, time.UTC), true},
		{"September 27 2025", time.Date(2025, 9, 27, 0, 0, 0, 0, time.UTC), true},
		{"Sept 5th", time.Date(2025, 9, 5, 0, 0, 0, 0, time.UTC), true},
		// A yearless date after today is last year's
		{"Dec 24", time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"whenever", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ParsePosted(tt.text, now)
			if ok != tt.ok {
				t.Fatalf("ParsePosted(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParsePosted(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestFreshness(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	at := func(days int) *time.Time {
		t := now.AddDate(0, 0, -days)
		return &t
	}
	future := now.Add(48 * time.Hour)

	tests := []struct {
		name   string
		posted *time.Time
		days   int
		label  string
	}{
		{"unknown", nil, -1, FreshUnknown},
		{"zero time", &time.Time{}, -1, FreshUnknown},
		{"today", at(0), 0, FreshHot},
		{"three days", at(3), 3, FreshHot},
		{"four days", at(4), 4, FreshWarm},
		{"one week", at(7), 7, FreshWarm},
		{"eight days", at(8), 8, FreshNeutral},
		{"thirty days", at(30), 30, FreshNeutral},
		{"thirty one days", at(31), 31, FreshCold},
		{"future", &future, 0, FreshHot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Freshness(tt.posted, now)
			if got.DaysAgo != tt.days || got.Label != tt.label {
				t.Errorf("Freshness() = %+v, want {%d %s}", got, tt.days, tt.label)
			}
		})
	}
}
