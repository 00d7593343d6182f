// Package http fetches remote document snapshots.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jmylchreest/tether/internal/security"
	"github.com/jmylchreest/tether/internal/version"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// FetchOptions configures HTTP fetch behavior.
type FetchOptions struct {
	// Timeout specifies the HTTP request timeout.
	// If zero, DefaultTimeout is used.
	Timeout time.Duration

	// Headers specifies additional HTTP headers, e.g. an access token.
	Headers map[string]string

	// MaxBytes caps the response body. If zero,
	// security.DefaultMaxDocumentBytes is used.
	MaxBytes int64
}

// Open starts a GET request and returns the response body, bounded by
// opts.MaxBytes. The caller must close it.
func Open(ctx context.Context, url string, opts FetchOptions) (io.ReadCloser, error) {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	maxBytes := opts.MaxBytes
	if maxBytes == 0 {
		maxBytes = security.DefaultMaxDocumentBytes
	}

	client := &http.Client{
		Timeout: timeout,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", version.UserAgent())
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	return struct {
		io.Reader
		io.Closer
	}{security.NewLimitedReader(resp.Body, maxBytes), resp.Body}, nil
}

// Fetch retrieves the whole body of url.
func Fetch(ctx context.Context, url string, opts FetchOptions) ([]byte, error) {
	body, err := Open(ctx, url, opts)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return data, nil
}
