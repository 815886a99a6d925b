package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/bridge"
	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/model"
	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/pipeline"
	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/rescan"
	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/store"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

var (
	watchJSON   bool
	watchOutput string
)

// watchCmd keeps one posting under observation
var watchCmd = &cobra.Command{
	Use:   "watch <url|file>",
	Short: "Re-classify a posting whenever it changes",
	Long: `Watch keeps a posting under observation and prints a fresh verdict each
time it changes. Local files are watched for writes; URLs are polled.

Bursts of changes are debounced into a single scan. A SIGHUP re-attaches
change sources and republishes the result if the output file was removed.

Example:
  visadetector watch ./saved/posting.html
  visadetector watch https://boards.greenhouse.io/acme/jobs/123 --output current.json`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVar(&watchJSON, "json", false, "print results as JSON")
	watchCmd.Flags().StringVar(&watchOutput, "output", "", "keep the latest result as JSON in this file")
}

func runWatch(cmd *cobra.Command, args []string) error {
	target := args[0]

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	var history *store.History
	if cfg.History.Enabled {
		history, err = store.Open(ctx, cfg.History.Path)
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer func() { _ = history.Close() }()
	}

	// Results are recorded by the presenter, not the pipeline
	p, err := pipeline.NewPipeline(cfg, pipeline.WithLogger(logger))
	if err != nil {
		return err
	}

	format := cfg.Output.Format
	if watchJSON {
		format = pipeline.FormatJSON
	}
	renderer := newRenderer(cfg)

	presenters := pipeline.Presenters{pipeline.NewTerminalPresenter(cmd.OutOrStdout(), renderer, format)}
	var ignore []string
	if watchOutput != "" {
		fp := pipeline.NewFilePresenter(watchOutput, renderer, logger)
		presenters = append(presenters, fp)
		ignore = fp.OutputPaths()
	}
	presenter := pipeline.NewRecordingPresenter(presenters, history, logger)

	src := p.Source(target)
	orch := rescan.New(src, presenter, p.RescanOptions()...)
	b := bridge.New(orch, logger, ignore...)

	sources, fallback := changeSources(src, cfg, logger)
	opts := []bridge.SupervisorOption{
		bridge.WithInterval(cfg.Rescan.SupervisorInterval),
		bridge.WithSupervisorLogger(logger),
	}
	if fallback != nil {
		opts = append(opts, bridge.WithFallback(fallback))
	}
	sv := bridge.NewSupervisor(b, orch, sources, opts...)

	if err := orch.Start(ctx); err != nil {
		return err
	}
	defer orch.Stop()
	orch.ScanNow()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-hup:
				logger.Info("SIGHUP received, healing")
				if err := sv.HealOnce(ctx); err != nil {
					logger.Warn("heal failed", "error", err)
				}
			}
		}
	}()

	logger.Info("watching", "target", target, "debounce", cfg.Rescan.Debounce)
	if err := sv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	forwarded, dropped := b.Stats()
	logger.Debug("watch stopped", "events_forwarded", forwarded, "events_dropped", dropped)
	return nil
}

// changeSources picks how changes to the watched target are noticed. Files
// are watched with fsnotify and fall back to polling; URLs are polled under
// the configured rate limit.
func changeSources(src *pipeline.PageSource, cfg *model.Config, logger *slog.Logger) ([]bridge.Source, bridge.Source) {
	if src.IsURL() {
		limit := rate.Inf
		if cfg.RateLimiting.RequestsPerSecond > 0 {
			limit = rate.Limit(cfg.RateLimiting.RequestsPerSecond)
		}
		limiter := rate.NewLimiter(limit, max(cfg.RateLimiting.BurstSize, 1))
		return []bridge.Source{bridge.NewPoller("http", src.Load, cfg.Rescan.PollInterval, limiter, logger)}, nil
	}

	watcher := bridge.NewFileWatcher(logger, src.Target())
	poller := bridge.NewPoller("file-poll", bridge.FileLoader(src.Target()), cfg.Rescan.PollInterval, nil, logger)
	return []bridge.Source{watcher}, poller
}
