package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	scanJSON    bool
	scanRefresh bool
	scanOutput  string
	scanTimeout time.Duration
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan <url|file>",
	Short: "Classify a single job posting",
	Long: `Scan reads one job posting from a URL or a local HTML or text file and
reports whether it offers visa sponsorship.

Verdicts are cached by posting identity. Use --refresh to classify again.

Example:
  visadetector scan https://www.linkedin.com/jobs/view/4012345678
  visadetector scan posting.html --json
  visadetector scan https://example.com/careers/123 --output verdict.json`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "print the result as JSON")
	scanCmd.Flags().BoolVar(&scanRefresh, "refresh", false, "ignore cached verdicts")
	scanCmd.Flags().StringVar(&scanOutput, "output", "", "also write the result as JSON to this path")
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 2*time.Minute, "overall scan timeout")
}

func runScan(cmd *cobra.Command, args []string) error {
	target := args[0]
	ctx, cancel := context.WithTimeout(cmd.Context(), scanTimeout)
	defer cancel()

	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	p, cleanup, err := buildPipeline(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	logger.Debug("scanning", "target", target, "refresh", scanRefresh)
	out, err := p.Scan(ctx, target, scanRefresh)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	if out.Cached {
		logger.Info("verdict served from cache", "identity", out.Result.Identity)
	}

	format := cfg.Output.Format
	if scanJSON {
		format = pipeline.FormatJSON
	}
	renderer := newRenderer(cfg)
	if err := renderer.Render(cmd.OutOrStdout(), out.Result, format); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if scanOutput != "" {
		if err := renderer.WriteJSONFile(scanOutput, out.Result); err != nil {
			return fmt.Errorf("write %s: %w", scanOutput, err)
		}
		if cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", scanOutput)
		}
	}
	return nil
}
