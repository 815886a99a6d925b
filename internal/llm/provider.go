package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/model"
)

var (
	// ErrNoProvider is returned when no classifier provider is configured
	ErrNoProvider = errors.New("no classifier provider configured")

	// ErrMalformedResponse is returned when a provider answers with something
	// that cannot be read as ranked labels and scores
	ErrMalformedResponse = errors.New("malformed classifier response")
)

// Provider defines the interface for sentence classifier services
type Provider interface {
	// Name returns the provider name
	Name() string

	// Classify scores a sentence against candidate labels
	Classify(ctx context.Context, req ClassifyRequest) (*ClassifyResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// ClassifyRequest contains one sentence and the labels to rank it against
type ClassifyRequest struct {
	Sentence string
	Labels   []string

	// Model is the specific model to use (provider-specific)
	Model string
}

// ClassifyResponse holds labels ranked by descending score
type ClassifyResponse struct {
	Labels []string
	Scores []float64
	Model  string
}

// Top returns the best label and its score
func (r *ClassifyResponse) Top() (string, float64) {
	if r == nil || len(r.Labels) == 0 || len(r.Scores) == 0 {
		return "", 0
	}
	return r.Labels[0], r.Scores[0]
}

// Config holds classifier provider configuration
type Config struct {
	// Provider name: "zeroshot", "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for hosted providers
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama, a self-hosted inference server)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider: "", // Disabled by default
		Timeout:  30,
	}
}

// ConfigFromModel converts the application config to a provider config
func ConfigFromModel(c model.ClassifierConfig, h model.HTTPConfig) Config {
	return Config{
		Provider:   c.Provider,
		Model:      c.Model,
		APIKey:     c.APIKey,
		BaseURL:    c.BaseURL,
		Timeout:    c.Timeout,
		HTTPProxy:  h.HTTPProxy,
		HTTPSProxy: h.HTTPSProxy,
		NoProxy:    h.NoProxy,
	}
}

// WithEnv fills credentials and endpoints left empty from the environment
func (c Config) WithEnv() Config {
	switch strings.ToLower(c.Provider) {
	case "openai":
		if c.APIKey == "" {
			c.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	case "anthropic", "claude":
		if c.APIKey == "" {
			c.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	case "zeroshot", "huggingface", "hf":
		if c.APIKey == "" {
			c.APIKey = os.Getenv("HF_API_TOKEN")
		}
	case "ollama":
		if c.BaseURL == "" {
			c.BaseURL = os.Getenv("OLLAMA_BASE_URL")
		}
	}
	return c
}

// BuildPrompt constructs the instruction used by chat-style providers to
// emulate a zero-shot classifier
func BuildPrompt(sentence string, labels []string) string {
	var b strings.Builder
	b.WriteString("Classify the following sentence from a job posting against each candidate label.\n\n")
	b.WriteString("Candidate labels:\n")
	for _, label := range labels {
		fmt.Fprintf(&b, "- %s\n", label)
	}
	fmt.Fprintf(&b, "\nSentence: %q\n\n", sentence)
	b.WriteString(`Respond with JSON only, in the form {"scores": {"<label>": <probability>, ...}}. `)
	b.WriteString("Use every label exactly as written. Probabilities must be between 0 and 1 and sum to 1.")
	return b.String()
}

// parseScores reads a {"scores": {...}} object out of a chat completion
func parseScores(text string, labels []string) (*ClassifyResponse, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("%w: no JSON object in %q", ErrMalformedResponse, truncate(text, 80))
	}

	var payload struct {
		Scores map[string]float64 `json:"scores"`
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	scores := make([]float64, len(labels))
	found := false
	for i, label := range labels {
		for key, score := range payload.Scores {
			if strings.EqualFold(strings.TrimSpace(key), label) {
				scores[i] = score
				found = true
				break
			}
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: no candidate label scored", ErrMalformedResponse)
	}
	return rank(labels, scores)
}

// rank validates a label/score pairing and orders it by descending score
func rank(labels []string, scores []float64) (*ClassifyResponse, error) {
	if len(labels) == 0 || len(labels) != len(scores) {
		return nil, fmt.Errorf("%w: %d labels, %d scores", ErrMalformedResponse, len(labels), len(scores))
	}
	for _, s := range scores {
		if s < 0 || s > 1 {
			return nil, fmt.Errorf("%w: score %v out of range", ErrMalformedResponse, s)
		}
	}

	idx := make([]int, len(labels))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return scores[idx[a]] > scores[idx[b]] })

	out := &ClassifyResponse{
		Labels: make([]string, len(idx)),
		Scores: make([]float64, len(idx)),
	}
	for i, j := range idx {
		out.Labels[i] = labels[j]
		out.Scores[i] = scores[j]
	}
	return out, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
