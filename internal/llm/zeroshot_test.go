package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestZeroShotProvider_Classify_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/"+defaultZeroShotModel {
			t.Errorf("Expected the default model path, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer hf-token" {
			t.Errorf("Expected bearer token, got %q", r.Header.Get("Authorization"))
		}

		var req zeroShotRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		if req.Inputs != "We might sponsor." || len(req.Parameters.CandidateLabels) != 2 {
			t.Errorf("Unexpected request: %+v", req)
		}

		_ = json.NewEncoder(w).Encode(zeroShotResponse{
			Sequence: req.Inputs,
			Labels:   []string{"we provide visa sponsorship", "we do not provide visa sponsorship"},
			Scores:   []float64{0.9, 0.1},
		})
	}))
	defer server.Close()

	provider, err := NewZeroShotProvider(Config{APIKey: "hf-token", BaseURL: server.URL + "/", Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	resp, err := provider.Classify(context.Background(), ClassifyRequest{Sentence: "We might sponsor.", Labels: testLabels})
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	label, score := resp.Top()
	if label != "we provide visa sponsorship" || score != 0.9 {
		t.Errorf("Unexpected top label %q (%v)", label, score)
	}
	if resp.Model != defaultZeroShotModel {
		t.Errorf("Unexpected model %s", resp.Model)
	}
}

func TestZeroShotProvider_Classify_PairList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Unsorted on purpose
		_, _ = w.Write([]byte(`[{"label": "we provide visa sponsorship", "score": 0.3}, {"label": "we do not provide visa sponsorship", "score": 0.7}]`))
	}))
	defer server.Close()

	provider, err := NewZeroShotProvider(Config{BaseURL: server.URL, Model: "custom/model", Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	resp, err := provider.Classify(context.Background(), ClassifyRequest{Sentence: "x", Labels: testLabels})
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if resp.Labels[0] != "we do not provide visa sponsorship" || resp.Scores[0] != 0.7 {
		t.Errorf("Expected descending order, got %v %v", resp.Labels, resp.Scores)
	}
	if resp.Model != "custom/model" {
		t.Errorf("Unexpected model %s", resp.Model)
	}
}

func TestZeroShotProvider_Classify_Errors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		malformed bool
	}{
		{"loading model", http.StatusServiceUnavailable, `{"error": "Model is currently loading"}`, false},
		{"plain text error", http.StatusBadGateway, `bad gateway`, false},
		{"mismatched lengths", http.StatusOK, `{"labels": ["a", "b"], "scores": [1.0]}`, true},
		{"score out of range", http.StatusOK, `{"labels": ["a"], "scores": [1.5]}`, true},
		{"not json", http.StatusOK, `<html></html>`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			provider, err := NewZeroShotProvider(Config{BaseURL: server.URL, Timeout: 5})
			if err != nil {
				t.Fatalf("Failed to create provider: %v", err)
			}

			_, err = provider.Classify(context.Background(), ClassifyRequest{Sentence: "x", Labels: testLabels})
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if got := errors.Is(err, ErrMalformedResponse); got != tt.malformed {
				t.Errorf("errors.Is(err, ErrMalformedResponse) = %v, want %v (%v)", got, tt.malformed, err)
			}
		})
	}
}
