// Package fetcher performs single HTTP GET fetches with browser-like headers.
//
// The fetcher is the only component that touches the network. It never
// retries and never panics: every failure mode (dial error, timeout, bad
// redirect chain, non-2xx status) is folded into a *FetchError so the crawl
// loop above it can treat fetch failure as a value.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/deepnav/webnav/internal/config"
)

// RawPage is the result of one successful fetch.
type RawPage struct {
	// URL is the effective URL after redirects.
	URL string

	// StatusCode is the HTTP response status code.
	StatusCode int

	// ContentType is the response Content-Type header value.
	ContentType string

	// Body is the response body, truncated to the configured size limit.
	Body string
}

// FetchError describes a failed fetch. It carries the original error text
// so failed PageRecords can report what went wrong.
type FetchError struct {
	// URL is the URL the fetch was attempted on.
	URL string

	// StatusCode is the HTTP status, or 0 when the failure happened before
	// a response arrived.
	StatusCode int

	// Err is the underlying error, nil for status-code failures.
	Err error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

// Unwrap returns the underlying error, if any.
func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher performs HTTP GET requests with a browser identity.
type Fetcher struct {
	client      *http.Client
	userAgent   string
	maxBodySize int64
	sites       *config.SiteFile
	logger      *slog.Logger

	// fetchCount counts network fetches actually performed. Tests use it to
	// verify the navigator's cache prevented a fetch.
	fetchCount atomic.Int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum response body size to read.
func WithMaxBodySize(size int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = size
	}
}

// WithSites sets per-host header and cookie overrides.
func WithSites(sites *config.SiteFile) Option {
	return func(f *Fetcher) {
		f.sites = sites
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// New creates a Fetcher with the given timeout.
//
// Design decision: The Fetcher owns its http.Client rather than accepting
// one because its redirect and timeout behavior is part of the fetch
// contract; callers customize through Options instead.
func New(timeout time.Duration, opts ...Option) *Fetcher {
	f := &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			// Redirects are followed with net/http's default policy
			// (up to 10 hops); the effective URL is recorded from the
			// final request.
		},
		userAgent:   config.DefaultUserAgent,
		maxBodySize: config.DefaultMaxBodySize,
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.logger == nil {
		f.logger = slog.Default()
	}

	return f
}

// Fetch performs one GET request. It returns a non-nil *FetchError on any
// failure; it never panics or raises past this boundary.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*RawPage, *FetchError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "fr-FR,fr;q=0.9,en;q=0.8")
	// Accept-Encoding is left to the transport so gzip responses are
	// decompressed transparently.
	req.Header.Set("DNT", "1")
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	f.applySiteConfig(req)

	f.fetchCount.Add(1)
	f.logger.Debug("fetching", "url", pageURL)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // Close error on a drained body is not actionable

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused, then fail.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096)) //nolint:errcheck // Best-effort drain
		return nil, &FetchError{URL: pageURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}

	effective := pageURL
	if resp.Request != nil && resp.Request.URL != nil {
		effective = resp.Request.URL.String()
	}

	return &RawPage{
		URL:         effective,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        string(body),
	}, nil
}

// FetchCount returns the number of network fetches performed so far.
func (f *Fetcher) FetchCount() int64 {
	return f.fetchCount.Load()
}

// applySiteConfig adds per-host headers and cookie from the site file.
func (f *Fetcher) applySiteConfig(req *http.Request) {
	if f.sites == nil {
		return
	}

	u, err := url.Parse(req.URL.String())
	if err != nil {
		return
	}

	site := f.sites.GetSiteConfig(u.Hostname())
	for k, v := range site.Headers {
		req.Header.Set(k, v)
	}
	if site.Cookie != "" {
		req.Header.Set("Cookie", site.Cookie)
	}
}
