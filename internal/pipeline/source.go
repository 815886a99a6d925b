package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/model"
)

// PageSource is the live document behind a watch: a URL fetched on demand
// or a local file re-read on demand
type PageSource struct {
	target   string
	pipeline *Pipeline
}

// Target returns the watched URL or path
func (s *PageSource) Target() string { return s.target }

// IsURL reports whether the source is fetched over HTTP
func (s *PageSource) IsURL() bool { return IsURL(s.target) }

// Load returns the raw document body
func (s *PageSource) Load(ctx context.Context) ([]byte, error) {
	if !s.IsURL() {
		data, err := os.ReadFile(s.target)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", s.target, err)
		}
		return data, nil
	}
	fetched, err := s.pipeline.fetcher.FetchWithRetry(ctx, s.target)
	if err != nil {
		return nil, err
	}
	return []byte(fetched.HTML), nil
}

// Meta describes the document as it is now
func (s *PageSource) Meta(ctx context.Context) (model.JobMeta, error) {
	if !s.IsURL() {
		data, err := s.Load(ctx)
		if err != nil {
			return model.JobMeta{}, err
		}
		return s.pipeline.metaFromBytes("", data)
	}

	fetched, err := s.pipeline.fetcher.FetchWithRetry(ctx, s.target)
	if err != nil {
		return model.JobMeta{}, err
	}
	return s.pipeline.metaFromBytes(fetched.FinalURL, []byte(fetched.HTML))
}
