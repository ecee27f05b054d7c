// Package http provides HTTP implementations of mailsift's network
// interfaces: the page fetcher and the sitemap seeder.
package http

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mailsift/mailsift"
)

// DefaultTimeout is the default per-request timeout.
const DefaultTimeout = 5 * time.Second

// DefaultUserAgent is sent with every request. A plain browser string:
// pages that hold contact details often serve different content to
// obvious bots.
const DefaultUserAgent = "Mozilla/5.0"

// Ensure Fetcher implements mailsift.Fetcher at compile time.
var _ mailsift.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML over HTTP. All crawl workers share its single
// connection-pooling client, which is safe for concurrent use.
//
// TLS certificate verification is disabled on the client: the crawler
// trades verification for reach so that pages behind misconfigured or
// self-signed certificates are still scanned. Operators should treat
// this as a security-relevant default.
type Fetcher struct {
	client    *http.Client
	userAgent string
	timeout   time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-request timeout.
// Defaults to DefaultTimeout (5s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}

	return f
}

// Client exposes the underlying HTTP client so collaborators (the
// sitemap seeder) can share its connection pool and TLS policy.
func (f *Fetcher) Client() *http.Client {
	return f.client
}

// Fetch issues one GET for the URL, following redirects transparently.
// It returns the body and the final post-redirect URL. Any non-200
// status, transport error, or timeout is returned as an error; there
// is no retry and no partial result.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	// Redirects were already followed; the request attached to the
	// response carries the final URL.
	finalURL := resp.Request.URL.String()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", err
	}

	return string(body), finalURL, nil
}

// Close releases idle connections held by the client.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
