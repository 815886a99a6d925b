package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/model"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	require.NoError(t, registerDefaults(v, model.DefaultConfig()))
	return v
}

func TestDecodeConfig_Defaults(t *testing.T) {
	cfg, err := decodeConfig(newTestViper(t))
	require.NoError(t, err)
	assert.Equal(t, model.DefaultConfig(), cfg)
}

func TestDecodeConfig_FileAndEnv(t *testing.T) {
	t.Setenv("VISADETECTOR_HTTP_TIMEOUT", "5s")
	t.Setenv("VISADETECTOR_CLASSIFIER_API_KEY", "secret")

	v := newTestViper(t)
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
rescan:
  debounce: 300ms
classifier:
  provider: zeroshot
  threshold: 0.7
detection:
  extra_keywords: ["relocation package"]
http:
  timeout: 1m
`)))

	cfg, err := decodeConfig(v)
	require.NoError(t, err)

	assert.Equal(t, 300*time.Millisecond, cfg.Rescan.Debounce)
	assert.Equal(t, "zeroshot", cfg.Classifier.Provider)
	assert.InDelta(t, 0.7, cfg.Classifier.Threshold, 1e-9)
	assert.Equal(t, []string{"relocation package"}, cfg.Detection.ExtraKeywords)
	assert.Equal(t, 5*time.Second, cfg.HTTP.Timeout, "env beats config file")
	assert.Equal(t, "secret", cfg.Classifier.APIKey)
	// Untouched keys keep their defaults
	assert.Equal(t, 50, cfg.Rescan.CacheCapacity)
	assert.Equal(t, model.DefaultConfig().Classifier.Labels, cfg.Classifier.Labels)
}

func TestWriteConfig_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeConfig(&buf, model.DefaultConfig()))
	assert.Contains(t, buf.String(), "VISADETECTOR_")

	v := newTestViper(t)
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(&buf))

	cfg, err := decodeConfig(v)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultConfig(), cfg)
}

func TestWriteDefaultConfig_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, writeDefaultConfig(path))

	_, err := os.Stat(path)
	require.NoError(t, err)

	err = writeDefaultConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, model.LoggingConfig{Level: "warn", Format: "json"})
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)

	buf.Reset()
	logger = newLogger(&buf, model.LoggingConfig{Level: "bogus"})
	logger.Debug("debug")
	logger.Info("info")
	assert.NotContains(t, buf.String(), "debug")
	assert.Contains(t, buf.String(), "msg=info")
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct{ in, want string }{
		{"jobid:4012345678", "jobid_4012345678"},
		{"snap:a/b c", "snap_a_b-c"},
		{"  ", "posting"},
		{strings.Repeat("x", 120), strings.Repeat("x", 100)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeFilename(tt.in), "sanitizeFilename(%q)", tt.in)
	}
}

func TestFormatSummary(t *testing.T) {
	got := formatSummary(5, map[string]int{"yes": 3, "no": 1, "error": 1})
	assert.Equal(t, "Total: 5  error: 1  no: 1  yes: 3", got)
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestClassifyCommand(t *testing.T) {
	out, err := execute(t, "Join the cloud team building distributed storage systems.",
		"classify", "--company", "Google LLC", "--title", "SRE", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ SPONSORS VISA  SRE @ Google LLC")
	assert.Contains(t, out, "reason: known-sponsor")
}

func TestClassifyCommand_EmptyInput(t *testing.T) {
	_, err := execute(t, "   ", "classify")
	require.Error(t, err)
}

func TestSponsorsCommand(t *testing.T) {
	out, err := execute(t, "", "sponsors", "--check", "Amazon.com, Inc.")
	require.NoError(t, err)
	assert.Contains(t, out, "is a known sponsor")

	out, err = execute(t, "", "sponsors", "--check", "Tiny Bakery")
	require.NoError(t, err)
	assert.Contains(t, out, "not on the known-sponsor list")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "visadetector "+version+"\n", out)
}
