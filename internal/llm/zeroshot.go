package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/util"
)

const defaultZeroShotModel = "typeform/mobilebert-uncased-mnli"

// ZeroShotProvider calls a hosted zero-shot classification pipeline
// (Hugging Face inference API or a compatible self-hosted server)
type ZeroShotProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	config     Config
}

type zeroShotRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters zeroShotParameters `json:"parameters"`
}

type zeroShotParameters struct {
	CandidateLabels []string `json:"candidate_labels"`
	MultiLabel      bool     `json:"multi_label"`
}

// zeroShotResponse is the classic pipeline output
type zeroShotResponse struct {
	Sequence string    `json:"sequence"`
	Labels   []string  `json:"labels"`
	Scores   []float64 `json:"scores"`
}

// zeroShotPair is the newer list-of-pairs output
type zeroShotPair struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type zeroShotError struct {
	Error string `json:"error"`
}

// NewZeroShotProvider creates a new zero-shot provider
func NewZeroShotProvider(config Config) (*ZeroShotProvider, error) {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "https://api-inference.huggingface.co"
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &ZeroShotProvider{
		apiKey:  config.APIKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(config.HTTPProxy, config.HTTPSProxy, config.NoProxy),
			},
		},
		config: config,
	}, nil
}

// Name returns the provider name
func (p *ZeroShotProvider) Name() string {
	return "zeroshot"
}

func (p *ZeroShotProvider) model(req ClassifyRequest) string {
	if req.Model != "" {
		return req.Model
	}
	if p.config.Model != "" {
		return p.config.Model
	}
	return defaultZeroShotModel
}

// IsAvailable checks that the model endpoint answers a trivial request
func (p *ZeroShotProvider) IsAvailable(ctx context.Context) bool {
	_, err := p.Classify(ctx, ClassifyRequest{Sentence: "ping", Labels: []string{"yes", "no"}})
	if err != nil {
		slog.Warn("zero-shot availability check failed", "base_url", p.baseURL, "error", err)
		return false
	}
	return true
}

// Classify runs the zero-shot pipeline on one sentence
func (p *ZeroShotProvider) Classify(ctx context.Context, req ClassifyRequest) (*ClassifyResponse, error) {
	modelName := p.model(req)

	body, err := json.Marshal(zeroShotRequest{
		Inputs: req.Sentence,
		Parameters: zeroShotParameters{
			CandidateLabels: req.Labels,
			MultiLabel:      false,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s", p.baseURL, modelName)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		var apiErr zeroShotError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("API error (%d): %s", httpResp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("API error (%d): %s", httpResp.StatusCode, truncate(string(respBody), 200))
	}

	resp, err := decodeZeroShot(respBody)
	if err != nil {
		return nil, err
	}
	resp.Model = modelName
	return resp, nil
}

// decodeZeroShot accepts both the object and the list-of-pairs output shapes
func decodeZeroShot(body []byte) (*ClassifyResponse, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var pairs []zeroShotPair
		if err := json.Unmarshal(trimmed, &pairs); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		labels := make([]string, len(pairs))
		scores := make([]float64, len(pairs))
		for i, pair := range pairs {
			labels[i] = pair.Label
			scores[i] = pair.Score
		}
		return rank(labels, scores)
	}

	var resp zeroShotResponse
	if err := json.Unmarshal(trimmed, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return rank(resp.Labels, resp.Scores)
}
