package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/util"
)

// ErrDisallowedByRobots is returned when robots.txt forbids fetching a job page
var ErrDisallowedByRobots = errors.New("disallowed by robots.txt")

// fetchSleepFunc is replaced in tests to skip backoff
var fetchSleepFunc = time.Sleep

// DefaultMaxRetries is the number of retries after the first attempt
const DefaultMaxRetries = 2

// Fetcher fetches job pages
type Fetcher struct {
	httpClient *http.Client
	robots     *util.RobotsChecker
	userAgent  string
	maxBytes   int64
	maxRetries int
}

// NewFetcher creates a new Fetcher. Proxy settings fall back to the
// environment when empty. When respectRobots is set every URL is checked
// against its host's robots.txt first.
func NewFetcher(timeout time.Duration, userAgent string, maxBytes int64, respectRobots bool, httpProxy, httpsProxy, noProxy string) *Fetcher {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = util.NewProxyFunc(httpProxy, httpsProxy, noProxy)

	f := &Fetcher{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 5 {
					return fmt.Errorf("stopped after 5 redirects")
				}
				return nil
			},
		},
		userAgent:  userAgent,
		maxBytes:   maxBytes,
		maxRetries: DefaultMaxRetries,
	}
	if respectRobots {
		f.robots = util.NewRobotsChecker(userAgent, timeout, transport)
	}
	return f
}

// SetMaxRetries changes the retry budget. Negative values mean no retries.
func (f *Fetcher) SetMaxRetries(n int) {
	if n < 0 {
		n = 0
	}
	f.maxRetries = n
}

// FetchResult contains the fetched page
type FetchResult struct {
	HTML        string
	FinalURL    string
	StatusCode  int
	ContentType string
}

// FetchWithRetry fetches a page, retrying transient failures with a linear
// backoff. robots.txt is consulted once, before the first attempt.
func (f *Fetcher) FetchWithRetry(ctx context.Context, rawURL string) (*FetchResult, error) {
	if f.robots != nil {
		allowed, _, err := f.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("robots check: %w", err)
		}
		if !allowed {
			return nil, fmt.Errorf("%s: %w", rawURL, ErrDisallowedByRobots)
		}
	}

	var lastErr error
	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		if attempt > 0 {
			fetchSleepFunc(time.Duration(attempt) * time.Second)
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		result, err := f.Fetch(ctx, rawURL)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !isRetryableFetchError(err) {
			return nil, err
		}
	}
	return nil, lastErr
}

// Fetch retrieves a page once and decodes it to UTF-8
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	var body io.Reader = resp.Body
	if f.maxBytes > 0 {
		body = io.LimitReader(resp.Body, f.maxBytes)
	}
	// Pages declaring a legacy charset are decoded so matching sees UTF-8
	if decoded, err := charset.NewReader(body, contentType); err == nil {
		body = decoded
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &FetchResult{
		HTML:        string(data),
		FinalURL:    resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
	}, nil
}

// isRetryableFetchError reports whether a fetch failure is worth retrying:
// network errors, 429 and 5xx
func isRetryableFetchError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if strings.HasPrefix(msg, "fetch: ") {
		return true
	}
	if rest, ok := strings.CutPrefix(msg, "unexpected status: "); ok {
		return strings.HasPrefix(rest, "429") || strings.HasPrefix(rest, "5")
	}
	return false
}
