// Package crawl provides a polite, sequential BFS crawler for documentation
// sites. Politeness (rate limiting, cache-before-fetch, robots.txt) depends
// on strict ordering, so the crawler is intentionally single-threaded.
package crawl

import (
	"context"
	"net/url"
	"strings"

	"github.com/docbase/docbase"
	"golang.org/x/time/rate"
)

// DefaultRequestsPerSecond bounds live network fetches. Cache hits are not
// rate limited.
const DefaultRequestsPerSecond = 3.0

// Compile-time interface verification.
var _ docbase.Crawler = (*Crawler)(nil)

// PageEvent reports the outcome of processing one URL during a crawl.
type PageEvent struct {
	URL string

	// Cached is true when the page body came from the cache.
	Cached bool

	// Count is the number of pages accepted so far.
	Count int

	// Err is set when the URL was skipped due to a fetch or parse error.
	// Per-URL errors never abort the crawl.
	Err error
}

// ProgressFunc receives a PageEvent after each processed URL.
type ProgressFunc func(PageEvent)

// Crawler fetches pages breadth-first within a host and path-prefix scope,
// respecting robots.txt and consulting an on-disk page cache before every
// network fetch.
type Crawler struct {
	Fetcher docbase.Fetcher
	Cache   docbase.PageCache
	Links   docbase.LinkExtractor
	Robots  *RobotsCache

	// Limiter paces live network fetches. Defaults to
	// DefaultRequestsPerSecond with no burst when nil.
	Limiter *rate.Limiter

	// OnPage, if set, receives progress events.
	OnPage ProgressFunc
}

// queueItem is one BFS frontier entry.
type queueItem struct {
	url   string
	depth int
}

// Crawl traverses breadth-first from startURL and returns accepted pages
// keyed by URL. A URL is visited at most once. Before fetching, the URL
// must be on the start URL's host within one of allowedPaths (empty list =
// all paths on that host) and permitted by the host's robots.txt. Only
// HTTP 200 text/html responses are accepted; anything else is discarded
// without caching. Links found on accepted pages below maxDepth are
// enqueued after the host/path gate only; robots and cache are re-checked
// when each link is dequeued.
func (c *Crawler) Crawl(ctx context.Context, startURL string, allowedPaths []string, maxDepth int) (map[string]string, error) {
	start, err := url.Parse(startURL)
	if err != nil {
		return nil, docbase.Errorf(docbase.EINVALID, "invalid start URL %q", startURL)
	}

	limiter := c.Limiter
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Limit(DefaultRequestsPerSecond), 1)
	}

	seen := make(map[string]struct{})
	out := make(map[string]string)
	frontier := []queueItem{{url: startURL, depth: 0}}

	for len(frontier) > 0 {
		if ctx.Err() != nil {
			return out, ctx.Err()
		}

		item := frontier[0]
		frontier = frontier[1:]

		if _, ok := seen[item.url]; ok {
			continue
		}
		seen[item.url] = struct{}{}

		if !inScope(item.url, start.Host, allowedPaths) {
			continue
		}
		if c.Robots != nil && !c.Robots.Allowed(ctx, item.url) {
			continue
		}

		body, cached, err := c.fetchPage(ctx, limiter, item.url)
		if err != nil {
			c.emit(PageEvent{URL: item.url, Count: len(out), Err: err})
			continue
		}
		if body == "" {
			// Non-200 or non-HTML response, discarded without caching.
			continue
		}

		out[item.url] = body
		c.emit(PageEvent{URL: item.url, Cached: cached, Count: len(out)})

		if item.depth >= maxDepth {
			continue
		}

		links, err := c.Links.ExtractLinks(body, item.url)
		if err != nil {
			c.emit(PageEvent{URL: item.url, Count: len(out), Err: err})
			continue
		}
		for _, link := range links {
			if inScope(link, start.Host, allowedPaths) {
				frontier = append(frontier, queueItem{url: link, depth: item.depth + 1})
			}
		}
	}

	return out, nil
}

// fetchPage returns the page body from cache or network. An empty body with
// a nil error means the response was rejected (wrong status or type).
func (c *Crawler) fetchPage(ctx context.Context, limiter *rate.Limiter, pageURL string) (body string, cached bool, err error) {
	if c.Cache != nil {
		if body, ok := c.Cache.Get(pageURL); ok {
			return body, true, nil
		}
	}

	if err := limiter.Wait(ctx); err != nil {
		return "", false, err
	}

	res, err := c.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return "", false, err
	}
	if res.StatusCode != 200 || !strings.Contains(res.ContentType, "text/html") {
		return "", false, nil
	}

	if c.Cache != nil {
		_ = c.Cache.Put(pageURL, res.Body)
	}
	return res.Body, false, nil
}

func (c *Crawler) emit(event PageEvent) {
	if c.OnPage != nil {
		c.OnPage(event)
	}
}

// inScope reports whether rawURL is on host and within one of the allowed
// path prefixes. An empty prefix list allows all paths on the host.
func inScope(rawURL string, host string, allowedPaths []string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if u.Host != host {
		return false
	}
	if len(allowedPaths) == 0 {
		return true
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	for _, prefix := range allowedPaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
