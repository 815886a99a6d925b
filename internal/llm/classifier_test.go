package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/model"
)

// mockProvider returns a canned response
type mockProvider struct {
	resp  *ClassifyResponse
	err   error
	calls int
	last  ClassifyRequest
}

func (m *mockProvider) Name() string                         { return "mock" }
func (m *mockProvider) IsAvailable(ctx context.Context) bool { return m.err == nil }

func (m *mockProvider) Classify(ctx context.Context, req ClassifyRequest) (*ClassifyResponse, error) {
	m.calls++
	m.last = req
	return m.resp, m.err
}

func ranked(label string, score float64) *ClassifyResponse {
	other := model.LabelDoesNotProvide
	if label == model.LabelDoesNotProvide {
		other = model.LabelProvides
	}
	return &ClassifyResponse{Labels: []string{label, other}, Scores: []float64{score, 1 - score}}
}

func TestClassifier_Classify(t *testing.T) {
	tests := []struct {
		name       string
		resp       *ClassifyResponse
		err        error
		wantStatus model.Status
		wantReason model.Reason
	}{
		{"confident positive", ranked(model.LabelProvides, 0.9), nil, model.StatusYes, model.ReasonAIPositive},
		{"confident negative", ranked(model.LabelDoesNotProvide, 0.8), nil, model.StatusNo, model.ReasonAINegative},
		{"exactly at threshold", ranked(model.LabelProvides, 0.55), nil, model.StatusUnknown, model.ReasonAIUnsure},
		{"just above threshold", ranked(model.LabelProvides, 0.5501), nil, model.StatusYes, model.ReasonAIPositive},
		{"low negative", ranked(model.LabelDoesNotProvide, 0.51), nil, model.StatusUnknown, model.ReasonAIUnsure},
		{"unexpected label", &ClassifyResponse{Labels: []string{"other"}, Scores: []float64{0.99}}, nil, model.StatusUnknown, model.ReasonAIUnsure},
		{"provider error", nil, errors.New("connection refused"), model.StatusUnknown, model.ReasonAIError},
		{"malformed", nil, ErrMalformedResponse, model.StatusUnknown, model.ReasonAIError},
		{"empty response", &ClassifyResponse{}, nil, model.StatusUnknown, model.ReasonAIError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &mockProvider{resp: tt.resp, err: tt.err}
			v := NewClassifier(provider).Classify(context.Background(), "Sponsorship might be considered.")

			if v.Status != tt.wantStatus || v.Reason != tt.wantReason {
				t.Errorf("Classify() = %s/%s, want %s/%s", v.Status, v.Reason, tt.wantStatus, tt.wantReason)
			}
			if v.Sentence != "Sponsorship might be considered." {
				t.Errorf("expected the sentence to be kept, got %q", v.Sentence)
			}
			if tt.err != nil && v.Match != "" {
				t.Errorf("provider errors must not leak into the verdict, got match %q", v.Match)
			}
		})
	}
}

func TestClassifier_SendsLabels(t *testing.T) {
	provider := &mockProvider{resp: ranked("yes please", 0.9)}
	c := NewClassifier(provider, WithLabels("yes please", "no thanks"), WithModel("tiny"), WithThreshold(0.8))

	v := c.Classify(context.Background(), "We sponsor.")
	if v.Status != model.StatusYes {
		t.Errorf("expected custom positive label to count, got %s/%s", v.Status, v.Reason)
	}
	if provider.last.Model != "tiny" {
		t.Errorf("expected model to be forwarded, got %q", provider.last.Model)
	}
	if len(provider.last.Labels) != 2 || provider.last.Labels[0] != "yes please" || provider.last.Labels[1] != "no thanks" {
		t.Errorf("unexpected labels %v", provider.last.Labels)
	}

	provider.resp = ranked("yes please", 0.79)
	if v := c.Classify(context.Background(), "We sponsor."); v.Reason != model.ReasonAIUnsure {
		t.Errorf("expected the custom threshold to apply, got %s", v.Reason)
	}
}

func TestClassifier_NilProvider(t *testing.T) {
	v := NewClassifier(nil).Classify(context.Background(), "anything")
	if v.Status != model.StatusUnknown || v.Reason != model.ReasonAIError {
		t.Errorf("expected unknown/ai-error, got %s/%s", v.Status, v.Reason)
	}
}

// The ambiguous sentence from the engine, run through a stub that is confident
// sponsorship is offered, merges into a positive verdict with the original snippet.
func TestClassifier_AmbiguousRoundTrip(t *testing.T) {
	ambiguous := model.Verdict{
		Status:   model.StatusAmbiguous,
		Reason:   model.ReasonAIRequest,
		Sentence: "Sponsorship might be considered depending on team budget",
		Snippet:  "Sponsorship might be considered depending on team budget.",
	}
	provider := &mockProvider{resp: &ClassifyResponse{
		Labels: []string{model.LabelProvides, "..."},
		Scores: []float64{0.9, 0.1},
	}}

	final := ambiguous.Merge(NewClassifier(provider).Classify(context.Background(), ambiguous.Sentence))
	if final.Status != model.StatusYes || final.Reason != model.ReasonAIPositive {
		t.Errorf("expected yes/ai-positive, got %s/%s", final.Status, final.Reason)
	}
	if final.Snippet != ambiguous.Snippet {
		t.Errorf("expected the original snippet, got %q", final.Snippet)
	}
	if provider.last.Sentence != ambiguous.Sentence {
		t.Errorf("expected the sentence to be classified, got %q", provider.last.Sentence)
	}
}
