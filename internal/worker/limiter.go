package worker

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter paces requests per job board. Hosts that differ only by a "www."
// prefix or a port share one bucket; local paths are never paced.
type Limiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

// NewLimiter creates a limiter allowing requestsPerSecond per host with the
// given burst. A burst of zero or less defaults to 1.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

// Wait blocks until target's host may be requested. Targets without a host
// (local files, raw text) return immediately.
func (l *Limiter) Wait(ctx context.Context, target string) error {
	lim := l.forTarget(target)
	if lim == nil {
		return ctx.Err()
	}
	return lim.Wait(ctx)
}

// Allow reports whether target's host may be requested now, consuming a
// token if so
func (l *Limiter) Allow(target string) bool {
	lim := l.forTarget(target)
	if lim == nil {
		return true
	}
	return lim.Allow()
}

// SetHostRate overrides the pace for one host, e.g. a board known to throttle
// aggressively
func (l *Limiter) SetHostRate(host string, requestsPerSecond float64, burst int) {
	if burst <= 0 {
		burst = l.burst
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.limiters[normalizeHost(host)] = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}

// Hosts returns the number of hosts seen so far
func (l *Limiter) Hosts() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

func (l *Limiter) forTarget(target string) *rate.Limiter {
	host := hostOf(target)
	if host == "" {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.limiters[host]
	if !ok {
		lim = rate.NewLimiter(l.rate, l.burst)
		l.limiters[host] = lim
	}
	return lim
}

// hostOf returns the bucket key for an http(s) target, or "" for anything else
func hostOf(target string) string {
	u, err := url.Parse(strings.TrimSpace(target))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return ""
	}
	return normalizeHost(u.Hostname())
}

func normalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	return strings.TrimPrefix(host, "www.")
}
