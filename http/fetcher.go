// Package http provides the HTTP-based implementation of docbase.Fetcher.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/docbase/docbase"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent identifies the crawler to servers.
const DefaultUserAgent = "docbase/0.1 (+local; respectful crawler)"

// Ensure Fetcher implements docbase.Fetcher at compile time.
var _ docbase.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves URLs over plain HTTP. It returns a FetchResult for any
// completed exchange, including non-200 responses; only transport failures
// surface as errors. Callers decide which status codes to accept.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch issues a GET and returns the body with cache validators.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*docbase.FetchResult, error) {
	return f.do(ctx, http.MethodGet, url)
}

// Head issues a HEAD and returns validators with an empty body.
func (f *Fetcher) Head(ctx context.Context, url string) (*docbase.FetchResult, error) {
	return f.do(ctx, http.MethodHead, url)
}

func (f *Fetcher) do(ctx context.Context, method, url string) (*docbase.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, docbase.Errorf(docbase.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, docbase.Errorf(docbase.EUNAVAILABLE, "%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	result := &docbase.FetchResult{
		StatusCode:    resp.StatusCode,
		ContentType:   resp.Header.Get("Content-Type"),
		ETag:          resp.Header.Get("ETag"),
		LastModified:  resp.Header.Get("Last-Modified"),
		ContentLength: resp.ContentLength,
	}

	if method == http.MethodHead {
		return result, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, docbase.Errorf(docbase.EUNAVAILABLE, "read %s: %v", url, err)
	}
	result.Body = string(body)
	if result.ContentLength < 0 {
		result.ContentLength = int64(len(body))
	}
	return result, nil
}
