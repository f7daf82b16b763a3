package services

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/desertthunder/coursetrack/internal/catalog"
	"github.com/desertthunder/coursetrack/internal/models"
	"github.com/desertthunder/coursetrack/internal/shared"
)

// HTTPSource fetches the catalog document with a GET request.
type HTTPSource struct {
	url        string
	httpClient *http.Client
}

// HTTPOption configures an [HTTPSource].
type HTTPOption func(*HTTPSource)

// WithHTTPClient overrides the client used for requests.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// NewHTTPSource creates a source for the document at url.
func NewHTTPSource(url string, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{url: url, httpClient: http.DefaultClient}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *HTTPSource) Name() string { return s.url }

// FetchCatalog performs the GET and decodes the body.
func (s *HTTPSource) FetchCatalog(ctx context.Context) (*models.RawDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", shared.ErrContentLoad, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", shared.ErrContentLoad, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", shared.ErrContentLoad, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status %d from %s", shared.ErrContentLoad, resp.StatusCode, s.url)
	}

	return catalog.Decode(body)
}
