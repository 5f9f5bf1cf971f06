// Package fetcher retrieves a bucket listing document over plain HTTP.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"archivestats/internal/models"
	"archivestats/pkg/logger"
)

type Fetcher struct {
	url    string
	client *http.Client
}

// New returns a Fetcher for url. Each request is bounded by timeout.
func New(url string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch issues a single GET and returns the body as text.
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return "", &models.FetchError{URL: f.url, Err: fmt.Errorf("failed to build request: %w", err)}
	}

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return "", &models.FetchError{URL: f.url, Err: err}
	}
	defer resp.Body.Close()

	logger.Log.Debug().
		Str("url", f.url).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("listing response received")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &models.FetchError{
			URL:        f.url,
			StatusCode: resp.StatusCode,
			Err:        errors.New(http.StatusText(resp.StatusCode)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &models.FetchError{URL: f.url, Err: fmt.Errorf("failed to read body: %w", err)}
	}

	if !utf8.Valid(body) {
		return "", &models.FetchError{URL: f.url, Err: errors.New("response body is not valid UTF-8")}
	}

	return string(body), nil
}
