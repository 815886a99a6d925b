package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/model"
)

// Freshness labels
const (
	FreshHot     = "Hot"
	FreshWarm    = "Warm"
	FreshNeutral = "Neutral"
	FreshCold    = "Cold"
	FreshUnknown = "Unknown"
)

// Longer units come first in every alternation so "mo" is never read as minutes
const agoUnits = `months?|mos?|mth|minutes?|mins?|min|m|hours?|hrs?|hr|h|days?|d|weeks?|w|years?|yrs?|y`

var (
	agoToken      = regexp.MustCompile(`(?i)\b(?:posted[:\s]*)?(\d+)\s*(` + agoUnits + `)\s*ago\b`)
	wordToken     = regexp.MustCompile(`(?i)\b(?:posted[:\s]*)?(today|yesterday|just now)\b`)
	isoToken      = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}`)
	monthDayToken = regexp.MustCompile(`(?i)\b((?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?\s+\d{1,2}(?:st|nd|rd|th)?(?:,?\s*\d{4})?)\b`)

	// Bare short forms such as "3h" or "2 d" next to a separator
	shortTokens = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:^|\s)(\d{1,2})\s*(h|hr|hrs)\b`),
		regexp.MustCompile(`(?i)(?:^|\s)(\d{1,2})\s*(mo|mos|months?)\b`),
		regexp.MustCompile(`(?i)(?:^|\s)(\d{1,3})\s*(m|min|mins)\b`),
		regexp.MustCompile(`(?i)(?:^|\s)(\d{1,2})\s*(d|day|days)\b`),
		regexp.MustCompile(`(?i)(?:^|\s)(\d{1,2})\s*(w|wk|weeks?)\b`),
	}

	separators = regexp.MustCompile(`[•|·–—-]+`)
	ordinal    = regexp.MustCompile(`(?i)(\d+)(st|nd|rd|th)\b`)
	shortSept  = regexp.MustCompile(`(?i)\bsept\b\.?`)
	relative   = regexp.MustCompile(`(?i)(\d+)\s*(` + agoUnits + `)s?\s*ago`)
	shortForm  = regexp.MustCompile(`(?i)(?:^|\s)(\d+)\s*(months?|mos?|mo|hrs?|hr|h|mins?|min|m|days?|d|weeks?|wk|w)\b`)
)

// Layouts tried for absolute dates
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"Jan 2, 2006",
	"Jan 2 2006",
	"January 2, 2006",
	"January 2 2006",
}

// Absolute dates without a year
var yearlessLayouts = []string{"Jan 2", "January 2"}

// ExtractPosted pulls a compact "posted" token out of messy text: "3 days ago",
// "today", an ISO date, "Sep 27, 2025", or a bare short form like "3h".
// It returns "" when nothing date-like is found.
func ExtractPosted(text string) string {
	if text == "" {
		return ""
	}
	if tok := matchPosted(text); tok != "" {
		return tok
	}
	for _, part := range separators.Split(text, -1) {
		if tok := matchPosted(strings.TrimSpace(part)); tok != "" {
			return tok
		}
	}
	return ""
}

func matchPosted(text string) string {
	for _, re := range []*regexp.Regexp{agoToken, wordToken, isoToken, monthDayToken} {
		if m := re.FindString(text); m != "" {
			return strings.TrimSpace(m)
		}
	}
	for _, re := range shortTokens {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1] + " " + m[2]
		}
	}
	return ""
}

// ParsePosted resolves a posted token, or text containing one, to a time
// relative to now
func ParsePosted(text string, now time.Time) (time.Time, bool) {
	candidate := strings.TrimSpace(text)
	if candidate == "" {
		return time.Time{}, false
	}
	if tok := ExtractPosted(candidate); tok != "" {
		candidate = tok
	}
	s := strings.ToLower(candidate)

	if t, ok := parseAbsolute(candidate, now); ok {
		return t, true
	}

	if m := relative.FindStringSubmatch(s); m != nil {
		if t, ok := subtract(now, m[1], m[2]); ok {
			return t, true
		}
	}
	if m := shortForm.FindStringSubmatch(s); m != nil {
		if t, ok := subtract(now, m[1], m[2]); ok {
			return t, true
		}
	}

	switch {
	case strings.Contains(s, "yesterday"):
		return now.AddDate(0, 0, -1), true
	case strings.Contains(s, "today"), strings.Contains(s, "just now"):
		return now, true
	}
	return time.Time{}, false
}

func parseAbsolute(s string, now time.Time) (time.Time, bool) {
	s = ordinal.ReplaceAllString(s, "$1")
	s = shortSept.ReplaceAllString(s, "Sep")
	s = strings.TrimSuffix(strings.Join(strings.Fields(s), " "), ".")
	s = titleMonth(s)

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, now.Location()); err == nil {
			return t, true
		}
	}
	for _, layout := range yearlessLayouts {
		t, err := time.ParseInLocation(layout, s, now.Location())
		if err != nil {
			continue
		}
		t = t.AddDate(now.Year(), 0, 0)
		// A yearless date in the future belongs to last year
		if t.After(now) {
			t = t.AddDate(-1, 0, 0)
		}
		return t, true
	}
	return time.Time{}, false
}

// titleMonth capitalizes a leading month name so time.Parse accepts it
func titleMonth(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func subtract(now time.Time, count, unit string) (time.Time, bool) {
	n, err := strconv.Atoi(count)
	if err != nil {
		return time.Time{}, false
	}
	unit = strings.ToLower(unit)

	switch {
	case strings.HasPrefix(unit, "mo") || unit == "mth":
		return now.AddDate(0, -n, 0), true
	case strings.HasPrefix(unit, "mi") || unit == "m":
		return now.Add(-time.Duration(n) * time.Minute), true
	case strings.HasPrefix(unit, "h"):
		return now.Add(-time.Duration(n) * time.Hour), true
	case strings.HasPrefix(unit, "d"):
		return now.AddDate(0, 0, -n), true
	case strings.HasPrefix(unit, "w"):
		return now.AddDate(0, 0, -7*n), true
	case strings.HasPrefix(unit, "y"):
		return now.AddDate(-n, 0, 0), true
	}
	return time.Time{}, false
}

// Freshness buckets the age of a posting: Hot within 3 days, Warm within a
// week, Neutral within 30 days, Cold beyond that
func Freshness(posted *time.Time, now time.Time) model.Freshness {
	if posted == nil || posted.IsZero() {
		return model.Freshness{DaysAgo: -1, Label: FreshUnknown}
	}
	days := int(math.Floor(now.Sub(*posted).Hours() / 24))
	if days < 0 {
		days = 0
	}

	label := FreshCold
	switch {
	case days <= 3:
		label = FreshHot
	case days <= 7:
		label = FreshWarm
	case days <= 30:
		label = FreshNeutral
	}
	return model.Freshness{DaysAgo: days, Label: label}
}
