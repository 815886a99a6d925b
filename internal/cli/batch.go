package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	batchRefresh bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Classify many postings from a file in parallel",
	Long: `Batch reads URLs or local paths from a file (one per line, # for
comments) and classifies them concurrently. Requests are paced per domain
by the rate_limiting settings.

Example:
  visadetector batch postings.txt
  visadetector batch postings.txt --concurrency 8 --output-dir ./verdicts`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default from config)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "", "write one JSON result per posting to this directory")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&batchRefresh, "refresh", false, "ignore cached verdicts")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(cmd.Context(), batchTimeout)
	defer cancel()

	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	if concurrency > 0 {
		cfg.Concurrency.Workers = concurrency
	}

	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	p, cleanup, err := buildPipeline(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers, cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)
	processor.SetRefresh(batchRefresh)

	renderer := newRenderer(cfg)
	out := cmd.OutOrStdout()
	processor.OnResult(func(r *worker.ScanResult) {
		if r.Error != nil {
			fmt.Fprintf(out, "✗ %s: %v\n", r.Target, r.Error)
			return
		}
		fmt.Fprintf(out, "%s  %s\n", renderer.Badge(r.Scan.Result.Verdict), r.Target)
	})

	logger.Info("batch started", "file", file, "workers", cfg.Concurrency.Workers)
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	if outputDir != "" {
		for _, r := range results {
			if r.Scan == nil {
				continue
			}
			path := filepath.Join(outputDir, fmt.Sprintf("%03d-%s.json", r.Index+1, sanitizeFilename(r.Scan.Result.Identity)))
			if err := renderer.WriteJSONFile(path, r.Scan.Result); err != nil {
				logger.Warn("write result failed", "target", r.Target, "error", err)
			}
		}
	}

	fmt.Fprintf(out, "\n%s\n", formatSummary(len(results), worker.Summary(results)))
	return nil
}

// formatSummary renders counts as "Total: 5  error: 1  no: 1  yes: 3"
func formatSummary(total int, counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := []string{fmt.Sprintf("Total: %d", total)}
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %d", k, counts[k]))
	}
	return strings.Join(parts, "  ")
}

// sanitizeFilename sanitizes a string for use as a filename
func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "-",
	)
	s = replacer.Replace(strings.TrimSpace(s))
	if s == "" {
		s = "posting"
	}

	// Limit length
	if len(s) > 100 {
		s = s[:100]
	}

	return s
}
