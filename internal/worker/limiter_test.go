package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if limiter.burst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.burst)
	}

	l2 := NewLimiter(10, -1)
	if l2.burst != 1 {
		t.Errorf("expected default burst 1 for negative input, got %d", l2.burst)
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1) // 100 rps, burst 1
	ctx := context.Background()

	if err := limiter.Wait(ctx, "https://www.linkedin.com/jobs/view/1"); err != nil {
		t.Errorf("wait failed: %v", err)
	}

	// Different host should also work
	if err := limiter.Wait(ctx, "https://boards.greenhouse.io/acme/jobs/2"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
	if limiter.Hosts() != 2 {
		t.Errorf("expected 2 hosts, got %d", limiter.Hosts())
	}
}

func TestLimiter_LocalTargetsUnpaced(t *testing.T) {
	limiter := NewLimiter(0.001, 1)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for _, target := range []string{"posting.html", "./saved/job.txt", "/tmp/a.html", "file:///tmp/a.html"} {
		for i := 0; i < 3; i++ {
			if err := limiter.Wait(ctx, target); err != nil {
				t.Fatalf("Wait(%q) = %v", target, err)
			}
		}
		if !limiter.Allow(target) {
			t.Errorf("Allow(%q) should always pass", target)
		}
	}
	if limiter.Hosts() != 0 {
		t.Errorf("local targets should not create buckets, got %d", limiter.Hosts())
	}
}

func TestLimiter_WaitHonorsContext(t *testing.T) {
	limiter := NewLimiter(0.1, 1)
	url := "https://example.com/jobs/1"
	if !limiter.Allow(url) {
		t.Fatal("first request should pass")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := limiter.Wait(ctx, url); err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestLimiter_RateLimit(t *testing.T) {
	// 1 rps, burst 1
	limiter := NewLimiter(1, 1)
	ctx := context.Background()
	url := "http://example.com/jobs/1"

	if err := limiter.Wait(ctx, url); err != nil {
		t.Errorf("first wait failed: %v", err)
	}

	// Token consumed; www. and port variants share the bucket
	for _, variant := range []string{url, "http://www.example.com/jobs/2", "http://EXAMPLE.com:8080/x"} {
		if limiter.Allow(variant) {
			t.Errorf("expected Allow(%q) to fail (exhausted tokens)", variant)
		}
	}

	// Different host should be allowed
	if !limiter.Allow("http://other.com") {
		t.Errorf("expected allow for other host")
	}
}

func TestLimiter_SetHostRate(t *testing.T) {
	limiter := NewLimiter(10, 10) // fast default

	// Strict limit for one board
	limiter.SetHostRate("www.slow.com", 0.1, 1)

	if !limiter.Allow("https://slow.com/jobs/1") {
		t.Errorf("first request should pass")
	}
	if limiter.Allow("https://slow.com/jobs/2") {
		t.Errorf("second request should fail")
	}
	if !limiter.Allow("http://fast.com") {
		t.Errorf("other host should pass")
	}
}

func TestHostOf(t *testing.T) {
	tests := map[string]string{
		"http://example.com/foo":              "example.com",
		"https://www.LinkedIn.com/jobs/view/1": "linkedin.com",
		"https://example.com:8443/x":           "example.com",
		"posting.html":                         "",
		"::invalid":                            "",
		"ftp://example.com/file":               "",
	}
	for in, want := range tests {
		if got := hostOf(in); got != want {
			t.Errorf("hostOf(%q) = %q, want %q", in, got, want)
		}
	}
}
