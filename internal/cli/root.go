package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/model"
	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/pipeline"
	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const envPrefix = "VISADETECTOR"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "visadetector",
	Short: "Visa sponsorship detector for job postings",
	Long: `visadetector reads job postings and reports whether the employer
sponsors work visas.

Postings are classified by keyword tiers first. A sentence that mentions
sponsorship without saying yes or no can be escalated to a text classifier,
and employers on the known-sponsor list are reported as sponsoring when
the posting itself is silent.

The verdict is a reading of the posting text, not a legal determination.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	defaults := model.DefaultConfig()

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.visadetector/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().Bool("no-color", defaults.Output.NoColor, "disable colored output")
	rootCmd.PersistentFlags().String("log-level", defaults.Logging.Level, "log level (debug, info, warn, error)")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("output.no_color", rootCmd.PersistentFlags().Lookup("no-color"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".visadetector"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// VISADETECTOR_HTTP_TIMEOUT overrides http.timeout
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Env bindings capture the prefix, so this must follow SetEnvPrefix
	if err := registerDefaults(viper.GetViper(), model.DefaultConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "Error registering defaults: %v\n", err)
	}

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// optionalKeys are omitted from the marshaled defaults but still settable
// from the environment
var optionalKeys = []string{
	"detection.extra_keywords",
	"detection.sponsors_file",
	"classifier.api_key",
	"classifier.base_url",
	"cache.redis_addr",
	"http.http_proxy",
	"http.https_proxy",
	"http.no_proxy",
}

// registerDefaults makes every config key known to v so that environment
// variables reach Unmarshal
func registerDefaults(v *viper.Viper, cfg *model.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal defaults: %w", err)
	}
	var tree map[string]interface{}
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("unmarshal defaults: %w", err)
	}
	flattenInto(v, "", tree)
	for _, key := range optionalKeys {
		_ = v.BindEnv(key)
	}
	return nil
}

func flattenInto(v *viper.Viper, prefix string, tree map[string]interface{}) {
	for k, val := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := val.(map[string]interface{}); ok {
			flattenInto(v, key, sub)
			continue
		}
		v.SetDefault(key, val)
	}
}

// decodeConfig layers everything v knows over the built-in defaults
func decodeConfig(v *viper.Viper) (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// loadConfig returns the effective configuration
func loadConfig() (*model.Config, error) {
	return decodeConfig(viper.GetViper())
}

// newLogger builds the process logger. Logs go to w so stdout stays free
// for results.
func newLogger(w io.Writer, cfg model.LoggingConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// buildPipeline wires a pipeline for cfg. The returned cleanup closes the
// history database when one was opened.
func buildPipeline(ctx context.Context, cfg *model.Config, logger *slog.Logger) (*pipeline.Pipeline, func(), error) {
	opts := []pipeline.Option{pipeline.WithLogger(logger)}
	cleanup := func() {}

	if cfg.History.Enabled {
		h, err := store.Open(ctx, cfg.History.Path)
		if err != nil {
			return nil, cleanup, fmt.Errorf("open history: %w", err)
		}
		opts = append(opts, pipeline.WithHistory(h))
		cleanup = func() {
			if err := h.Close(); err != nil {
				logger.Warn("close history failed", "error", err)
			}
		}
	}

	p, err := pipeline.NewPipeline(cfg, opts...)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	return p, cleanup, nil
}

// setup loads config and logger for a subcommand
func setup() (*model.Config, *slog.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	return cfg, newLogger(os.Stderr, cfg.Logging), nil
}

// newRenderer builds a renderer honoring the output section
func newRenderer(cfg *model.Config) *pipeline.Renderer {
	return pipeline.NewRenderer(cfg.Output.NoColor, cfg.Output.Verbose)
}
