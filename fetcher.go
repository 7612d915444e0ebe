package docbase

import "context"

// FetchResult holds a fetched HTTP response body together with the cache
// validators the change detector compares across runs.
type FetchResult struct {
	StatusCode    int
	ContentType   string
	Body          string
	ETag          string
	LastModified  string
	ContentLength int64
}

// Fetcher retrieves URLs over HTTP. Implementations return a FetchResult
// for any completed exchange, including non-200 responses; callers decide
// which status codes to accept. Transport failures return an error.
type Fetcher interface {
	// Fetch issues a GET and returns the body with validators.
	Fetch(ctx context.Context, url string) (*FetchResult, error)

	// Head issues a HEAD and returns validators with an empty body.
	Head(ctx context.Context, url string) (*FetchResult, error)
}

// PageCache stores fetched page bodies keyed by URL. The crawler consults
// it before every network fetch.
type PageCache interface {
	// Get returns the cached body for a URL, if present.
	Get(url string) (string, bool)

	// Put stores the body for a URL.
	Put(url string, body string) error
}

// LinkExtractor parses HTML and returns the absolute URLs of its anchor
// links, resolved against baseURL.
type LinkExtractor interface {
	ExtractLinks(html string, baseURL string) ([]string, error)
}

// Crawler fetches all pages reachable from startURL within the host and
// path-prefix scope, up to maxDepth, and returns them keyed by URL.
type Crawler interface {
	Crawl(ctx context.Context, startURL string, allowedPaths []string, maxDepth int) (map[string]string, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	Convert(html string) (string, error)
}
