package mock

import (
	"context"

	"github.com/docbase/docbase"
)

var _ docbase.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of docbase.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*docbase.FetchResult, error)
	HeadFn  func(ctx context.Context, url string) (*docbase.FetchResult, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*docbase.FetchResult, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Head(ctx context.Context, url string) (*docbase.FetchResult, error) {
	return f.HeadFn(ctx, url)
}

var _ docbase.PageCache = (*PageCache)(nil)

// PageCache is a mock implementation of docbase.PageCache.
type PageCache struct {
	GetFn func(url string) (string, bool)
	PutFn func(url string, body string) error
}

func (c *PageCache) Get(url string) (string, bool) {
	return c.GetFn(url)
}

func (c *PageCache) Put(url string, body string) error {
	return c.PutFn(url, body)
}

var _ docbase.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of docbase.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string) ([]string, error)
}

func (l *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	return l.ExtractLinksFn(html, baseURL)
}

var _ docbase.Crawler = (*Crawler)(nil)

// Crawler is a mock implementation of docbase.Crawler.
type Crawler struct {
	CrawlFn func(ctx context.Context, startURL string, allowedPaths []string, maxDepth int) (map[string]string, error)
}

func (c *Crawler) Crawl(ctx context.Context, startURL string, allowedPaths []string, maxDepth int) (map[string]string, error) {
	return c.CrawlFn(ctx, startURL, allowedPaths, maxDepth)
}
