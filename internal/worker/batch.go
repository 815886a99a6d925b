package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/pipeline"
)

// Scanner classifies one job posting by URL or local path
type Scanner interface {
	Scan(ctx context.Context, target string, refresh bool) (*pipeline.ScanResult, error)
}

// ScanJob represents one posting to classify
type ScanJob struct {
	Index   int
	Target  string
	Refresh bool
	Scanner Scanner
	Limiter *Limiter // nil disables pacing; local paths are never paced
}

// Execute waits for the target's domain to be clear, then scans it
func (j *ScanJob) Execute(ctx context.Context) Result {
	res := &ScanResult{Index: j.Index, Target: j.Target}

	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx, j.Target); err != nil {
			res.Error = fmt.Errorf("rate limit: %w", err)
			return res
		}
	}

	out, err := j.Scanner.Scan(ctx, j.Target, j.Refresh)
	if err != nil {
		res.Error = err
		return res
	}
	res.Scan = out
	return res
}

// ScanResult represents the result of a scan job
type ScanResult struct {
	Index  int
	Target string
	Scan   *pipeline.ScanResult
	Error  error
}

// GetError returns the error from the scan result
func (r *ScanResult) GetError() error {
	return r.Error
}

// BatchProcessor classifies many postings concurrently, pacing requests per
// domain
type BatchProcessor struct {
	scanner     Scanner
	concurrency int
	limiter     *Limiter
	refresh     bool
	progress    func(*ScanResult)
}

// NewBatchProcessor creates a batch processor. A requestsPerSecond of zero
// or less disables rate limiting.
func NewBatchProcessor(scanner Scanner, concurrency int, requestsPerSecond float64, burst int) *BatchProcessor {
	b := &BatchProcessor{
		scanner:     scanner,
		concurrency: concurrency,
	}
	if requestsPerSecond > 0 {
		b.limiter = NewLimiter(requestsPerSecond, burst)
	}
	return b
}

// SetRefresh makes every scan bypass the verdict cache
func (b *BatchProcessor) SetRefresh(refresh bool) {
	b.refresh = refresh
}

// OnResult registers a callback invoked as each scan finishes. Calls come
// from a single goroutine.
func (b *BatchProcessor) OnResult(fn func(*ScanResult)) {
	b.progress = fn
}

// ProcessURLs scans every target and returns the results in input order
func (b *BatchProcessor) ProcessURLs(ctx context.Context, targets []string) []*ScanResult {
	if len(targets) == 0 {
		return []*ScanResult{}
	}

	pool := NewPoolWithContext(ctx, b.concurrency)
	pool.Start()

	go func() {
		for i, target := range targets {
			pool.Submit(&ScanJob{
				Index:   i,
				Target:  target,
				Refresh: b.refresh,
				Scanner: b.scanner,
				Limiter: b.limiter,
			})
		}
		pool.Close()
	}()

	results := make([]*ScanResult, 0, len(targets))
	for r := range pool.Results() {
		res := r.(*ScanResult)
		if b.progress != nil {
			b.progress(res)
		}
		results = append(results, res)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })
	return results
}

// ProcessFile reads targets from a file and processes them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*ScanResult, error) {
	targets, err := ReadURLsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read URLs: %w", err)
	}

	return b.ProcessURLs(ctx, targets), nil
}

// Summary counts results by verdict status. Failed scans are counted under
// "error".
func Summary(results []*ScanResult) map[string]int {
	counts := make(map[string]int)
	for _, r := range results {
		if r.Error != nil || r.Scan == nil {
			counts["error"]++
			continue
		}
		counts[string(r.Scan.Result.Verdict.Status)]++
	}
	return counts
}

// ReadURLsFromFile reads targets from a file (one per line). Blank lines and
// # comments are skipped and duplicates dropped.
func ReadURLsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var urls []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			urls = append(urls, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return urls, nil
}
