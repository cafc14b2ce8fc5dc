package source

import (
	"context"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/matzehuels/jsonscope/pkg/errors"
	"github.com/matzehuels/jsonscope/pkg/httputil"
)

// maxResponseSize caps fetched documents at 50 MiB.
const maxResponseSize = 50 << 20

// URLSource fetches a document over HTTP(S). Transient failures (network
// errors, 5xx responses) are retried with exponential backoff.
type URLSource struct {
	URL    string
	Format Format
	Client *http.Client // nil uses a default client with a 30s timeout
}

// NewURLSource creates a source for the given URL.
func NewURLSource(url string, format Format) *URLSource {
	return &URLSource{URL: url, Format: format}
}

// Load fetches and decodes the document.
func (s *URLSource) Load(ctx context.Context) (any, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	var data []byte
	err := httputil.RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "build request")
		}
		req.Header.Set("Accept", "application/json, application/yaml")

		resp, err := client.Do(req)
		if err != nil {
			return httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "fetch document"))
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return httputil.Retryable(errors.New(errors.ErrCodeNetwork, "server returned %s", resp.Status))
		}
		if resp.StatusCode == http.StatusNotFound {
			return errors.New(errors.ErrCodeNotFound, "document not found: %s", s.URL)
		}
		if resp.StatusCode != http.StatusOK {
			return errors.New(errors.ErrCodeNetwork, "unexpected status %s", resp.Status)
		}

		data, err = io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		if err != nil {
			return httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "read response"))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return Decode(data, s.resolveFormat())
}

func (s *URLSource) resolveFormat() Format {
	if s.Format != FormatAuto {
		return s.Format
	}
	ext := strings.ToLower(path.Ext(s.URL))
	if ext == ".yaml" || ext == ".yml" {
		return FormatYAML
	}
	return FormatJSON
}
