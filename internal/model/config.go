package model

import "time"

// Config is the complete application configuration
type Config struct {
	Detection    DetectionConfig   `yaml:"detection" mapstructure:"detection"`
	Classifier   ClassifierConfig  `yaml:"classifier" mapstructure:"classifier"`
	Rescan       RescanConfig      `yaml:"rescan" mapstructure:"rescan"`
	Cache        CacheConfig       `yaml:"cache" mapstructure:"cache"`
	HTTP         HTTPConfig        `yaml:"http" mapstructure:"http"`
	RateLimiting RateLimitConfig   `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Concurrency  ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	History      HistoryConfig     `yaml:"history" mapstructure:"history"`
	Output       OutputConfig      `yaml:"output" mapstructure:"output"`
	Logging      LoggingConfig     `yaml:"logging" mapstructure:"logging"`
}

// DetectionConfig tunes the deterministic classification tiers
type DetectionConfig struct {
	ExtraKeywords     []string `yaml:"extra_keywords,omitempty" mapstructure:"extra_keywords"` // Merged into the positive tier
	SponsorsFile      string   `yaml:"sponsors_file,omitempty" mapstructure:"sponsors_file"` // Optional YAML registry extension
	ContextRadius     int      `yaml:"context_radius" mapstructure:"context_radius"`
	SnippetRadius     int      `yaml:"snippet_radius" mapstructure:"snippet_radius"`
	MinSentenceLength int      `yaml:"min_sentence_length" mapstructure:"min_sentence_length"`
}

// ClassifierConfig configures the sentence classifier service
type ClassifierConfig struct {
	Provider  string   `yaml:"provider" mapstructure:"provider"` // zeroshot, openai, anthropic, ollama, "" (disabled)
	Model     string   `yaml:"model" mapstructure:"model"`
	APIKey    string   `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL   string   `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout   int      `yaml:"timeout" mapstructure:"timeout"` // seconds
	Threshold float64  `yaml:"threshold" mapstructure:"threshold"`
	Labels    []string `yaml:"labels" mapstructure:"labels"` // [positive, negative]
}

// RescanConfig configures the live rescan orchestrator
type RescanConfig struct {
	Debounce           time.Duration `yaml:"debounce" mapstructure:"debounce"`
	CacheCapacity      int           `yaml:"cache_capacity" mapstructure:"cache_capacity"`
	PollInterval       time.Duration `yaml:"poll_interval" mapstructure:"poll_interval"`
	SupervisorInterval time.Duration `yaml:"supervisor_interval" mapstructure:"supervisor_interval"`
}

// CacheConfig selects the store behind the verdict cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Backend   string        `yaml:"backend" mapstructure:"backend"` // memory, disk, layered, redis
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	TTL       time.Duration `yaml:"ttl" mapstructure:"ttl"`
	RedisAddr string        `yaml:"redis_addr,omitempty" mapstructure:"redis_addr"`
	RedisDB   int           `yaml:"redis_db" mapstructure:"redis_db"`
}

// HTTPConfig configures page fetching
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
	MaxRetries    int           `yaml:"max_retries" mapstructure:"max_retries"`
	HTTPProxy     string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy       string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// RateLimitConfig configures per-domain request pacing
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// ConcurrencyConfig configures batch workers
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// HistoryConfig configures the verdict history database
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// OutputConfig configures rendering
type OutputConfig struct {
	Format  string `yaml:"format" mapstructure:"format"` // text, json
	NoColor bool   `yaml:"no_color" mapstructure:"no_color"`
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
}

// LoggingConfig configures the structured logger
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"` // text, json
}

// Classifier label defaults
const (
	LabelProvides       = "we provide visa sponsorship"
	LabelDoesNotProvide = "we do not provide visa sponsorship"
)

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Detection: DetectionConfig{
			ContextRadius:     45,
			SnippetRadius:     140,
			MinSentenceLength: 20,
		},
		Classifier: ClassifierConfig{
			Provider:  "", // Disabled by default
			Timeout:   30,
			Threshold: 0.55,
			Labels:    []string{LabelProvides, LabelDoesNotProvide},
		},
		Rescan: RescanConfig{
			Debounce:           150 * time.Millisecond,
			CacheCapacity:      50,
			PollInterval:       700 * time.Millisecond,
			SupervisorInterval: 60 * time.Second,
		},
		Cache: CacheConfig{
			Enabled: true,
			Backend: "memory",
			Dir:     ".visadetector-cache",
			TTL:     24 * time.Hour,
		},
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "VisaDetector/0.1 (+https://github.com/GokulNaveen2708/visa-sponsorship-detector)",
			MaxBodyBytes:  5_000_000,
			RespectRobots: true,
			MaxRetries:    2,
		},
		RateLimiting: RateLimitConfig{
			RequestsPerSecond: 1,
			BurstSize:         2,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		History: HistoryConfig{
			Enabled: false,
			Path:    "visadetector.db",
		},
		Output: OutputConfig{
			Format: "text",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
