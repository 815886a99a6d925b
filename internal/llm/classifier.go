package llm

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/model"
)

// DefaultThreshold is the score a top label must strictly exceed
const DefaultThreshold = 0.55

// Classifier turns a provider's ranked labels into a sponsorship verdict
type Classifier struct {
	provider  Provider
	positive  string
	negative  string
	threshold float64
	model     string
	logger    *slog.Logger
}

// ClassifierOption configures a Classifier
type ClassifierOption func(*Classifier)

// WithLabels overrides the positive and negative candidate labels
func WithLabels(positive, negative string) ClassifierOption {
	return func(c *Classifier) {
		if positive != "" && negative != "" {
			c.positive, c.negative = positive, negative
		}
	}
}

// WithThreshold overrides the confidence threshold
func WithThreshold(threshold float64) ClassifierOption {
	return func(c *Classifier) {
		if threshold > 0 && threshold < 1 {
			c.threshold = threshold
		}
	}
}

// WithModel pins the provider model used for every request
func WithModel(name string) ClassifierOption {
	return func(c *Classifier) { c.model = name }
}

// WithLogger sets the logger used for provider failures
func WithLogger(logger *slog.Logger) ClassifierOption {
	return func(c *Classifier) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClassifier wraps a provider with the sponsorship labels and threshold
func NewClassifier(provider Provider, opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		provider:  provider,
		positive:  model.LabelProvides,
		negative:  model.LabelDoesNotProvide,
		threshold: DefaultThreshold,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewClassifierFromConfig builds the provider named in the config and wraps it
func NewClassifierFromConfig(cfg model.ClassifierConfig, httpCfg model.HTTPConfig, logger *slog.Logger) (*Classifier, error) {
	provider, err := NewProvider(ConfigFromModel(cfg, httpCfg))
	if err != nil {
		return nil, err
	}

	opts := []ClassifierOption{WithThreshold(cfg.Threshold), WithModel(cfg.Model), WithLogger(logger)}
	if len(cfg.Labels) == 2 {
		opts = append(opts, WithLabels(cfg.Labels[0], cfg.Labels[1]))
	}
	return NewClassifier(provider, opts...), nil
}

// Provider returns the wrapped provider
func (c *Classifier) Provider() Provider {
	return c.provider
}

// Classify scores one sentence. Provider failures never escape: they become
// unknown/ai-error, and a top score at or below the threshold is ai-unsure.
func (c *Classifier) Classify(ctx context.Context, sentence string) model.Verdict {
	v := model.Verdict{Sentence: sentence}

	if c.provider == nil {
		v.Status, v.Reason = model.StatusUnknown, model.ReasonAIError
		return v
	}

	resp, err := c.provider.Classify(ctx, ClassifyRequest{
		Sentence: sentence,
		Labels:   []string{c.positive, c.negative},
		Model:    c.model,
	})
	if err != nil {
		c.logger.Warn("sentence classifier failed", "provider", c.provider.Name(), "error", err)
		v.Status, v.Reason = model.StatusUnknown, model.ReasonAIError
		return v
	}

	label, score := resp.Top()
	v.Score = score
	switch {
	case label == "":
		c.logger.Warn("sentence classifier returned no labels", "provider", c.provider.Name())
		v.Status, v.Reason = model.StatusUnknown, model.ReasonAIError
	case label == c.positive && score > c.threshold:
		v.Status, v.Reason, v.Match = model.StatusYes, model.ReasonAIPositive, "AI inferred sponsorship"
	case label == c.negative && score > c.threshold:
		v.Status, v.Reason, v.Match = model.StatusNo, model.ReasonAINegative, "AI inferred no sponsorship"
	default:
		v.Status, v.Reason = model.StatusUnknown, model.ReasonAIUnsure
		v.Match = fmt.Sprintf("Confidence too low (%.2f)", score)
	}

	c.logger.Debug("sentence classified", "provider", c.provider.Name(), "label", label, "score", score)
	return v
}
