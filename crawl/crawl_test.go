package crawl_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/docbase/docbase"
	"github.com/docbase/docbase/crawl"
	"github.com/docbase/docbase/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// site builds a fetcher serving the given url→html map as 200 text/html and
// records every fetched URL.
type site struct {
	mu      sync.Mutex
	pages   map[string]string
	fetched []string
}

func (s *site) fetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (*docbase.FetchResult, error) {
			s.mu.Lock()
			s.fetched = append(s.fetched, url)
			s.mu.Unlock()
			body, ok := s.pages[url]
			if !ok {
				return &docbase.FetchResult{StatusCode: 404, ContentType: "text/html"}, nil
			}
			return &docbase.FetchResult{StatusCode: 200, ContentType: "text/html; charset=utf-8", Body: body}, nil
		},
	}
}

// staticLinks returns a LinkExtractor serving a fixed url→links map.
func staticLinks(links map[string][]string) *mock.LinkExtractor {
	return &mock.LinkExtractor{
		ExtractLinksFn: func(_ string, baseURL string) ([]string, error) {
			return links[baseURL], nil
		},
	}
}

func fastLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Inf, 1)
}

func TestCrawler_visits_each_URL_at_most_once(t *testing.T) {
	t.Parallel()

	s := &site{pages: map[string]string{
		"https://example.com/docs":   "<html>root</html>",
		"https://example.com/docs/a": "<html>a</html>",
	}}
	links := staticLinks(map[string][]string{
		"https://example.com/docs":   {"https://example.com/docs/a", "https://example.com/docs/a", "https://example.com/docs"},
		"https://example.com/docs/a": {"https://example.com/docs"},
	})

	c := &crawl.Crawler{Fetcher: s.fetcher(), Links: links, Limiter: fastLimiter()}
	out, err := c.Crawl(context.Background(), "https://example.com/docs", nil, 2)

	require.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Len(t, s.fetched, 2, "each URL fetched exactly once")
}

func TestCrawler_never_fetches_outside_host_or_path_scope(t *testing.T) {
	t.Parallel()

	s := &site{pages: map[string]string{
		"https://example.com/docs": "<html>root</html>",
	}}
	links := staticLinks(map[string][]string{
		"https://example.com/docs": {
			"https://other.com/docs/page",      // different host
			"https://example.com/blog/post",    // outside path prefix
			"https://example.com/docs/allowed", // in scope but 404s
		},
	})

	c := &crawl.Crawler{Fetcher: s.fetcher(), Links: links, Limiter: fastLimiter()}
	out, err := c.Crawl(context.Background(), "https://example.com/docs", []string{"/docs"}, 1)

	require.NoError(t, err)
	assert.Len(t, out, 1)
	assert.ElementsMatch(t, []string{"https://example.com/docs", "https://example.com/docs/allowed"}, s.fetched,
		"out-of-scope URLs never reach the fetcher")
}

func TestCrawler_respects_robots_disallow(t *testing.T) {
	t.Parallel()

	// 3-page site: root links to one allowed and one robots-disallowed page.
	s := &site{pages: map[string]string{
		"https://example.com/robots.txt": "", // handled below
		"https://example.com/docs":       "<html>root</html>",
		"https://example.com/docs/ok":    "<html>ok</html>",
		"https://example.com/docs/no":    "<html>no</html>",
	}}
	robotsFetcher := &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (*docbase.FetchResult, error) {
			return &docbase.FetchResult{
				StatusCode:  200,
				ContentType: "text/plain",
				Body:        "User-agent: *\nDisallow: /docs/no\n",
			}, nil
		},
	}
	links := staticLinks(map[string][]string{
		"https://example.com/docs": {"https://example.com/docs/ok", "https://example.com/docs/no"},
	})

	c := &crawl.Crawler{
		Fetcher: s.fetcher(),
		Links:   links,
		Robots:  crawl.NewRobotsCache(robotsFetcher),
		Limiter: fastLimiter(),
	}
	out, err := c.Crawl(context.Background(), "https://example.com/docs", []string{"/docs"}, 1)

	require.NoError(t, err)
	assert.Len(t, out, 2, "root + allowed link")
	assert.Contains(t, out, "https://example.com/docs/ok")
	assert.NotContains(t, out, "https://example.com/docs/no")
	assert.NotContains(t, s.fetched, "https://example.com/docs/no", "disallowed path never fetched")
}

func TestCrawler_cache_hit_skips_network_fetch(t *testing.T) {
	t.Parallel()

	s := &site{pages: map[string]string{}}
	cache := &mock.PageCache{
		GetFn: func(url string) (string, bool) {
			return "<html>cached</html>", true
		},
		PutFn: func(url, body string) error { return nil },
	}
	links := staticLinks(nil)

	c := &crawl.Crawler{Fetcher: s.fetcher(), Cache: cache, Links: links, Limiter: fastLimiter()}
	out, err := c.Crawl(context.Background(), "https://example.com/docs", nil, 0)

	require.NoError(t, err)
	assert.Equal(t, "<html>cached</html>", out["https://example.com/docs"])
	assert.Empty(t, s.fetched, "cache hit must not touch the network")
}

func TestCrawler_rejected_responses_are_not_cached(t *testing.T) {
	t.Parallel()

	var puts int
	cache := &mock.PageCache{
		GetFn: func(url string) (string, bool) { return "", false },
		PutFn: func(url, body string) error {
			puts++
			return nil
		},
	}
	fetcher := &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (*docbase.FetchResult, error) {
			return &docbase.FetchResult{StatusCode: 200, ContentType: "application/json", Body: "{}"}, nil
		},
	}

	c := &crawl.Crawler{Fetcher: fetcher, Cache: cache, Links: staticLinks(nil), Limiter: fastLimiter()}
	out, err := c.Crawl(context.Background(), "https://example.com/api", nil, 0)

	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Zero(t, puts, "non-HTML response must not be cached")
}

func TestCrawler_fetch_error_skips_URL_and_continues(t *testing.T) {
	t.Parallel()

	fetcher := &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (*docbase.FetchResult, error) {
			if url == "https://example.com/docs/bad" {
				return nil, errors.New("connection reset")
			}
			return &docbase.FetchResult{StatusCode: 200, ContentType: "text/html", Body: "<html>ok</html>"}, nil
		},
	}
	links := staticLinks(map[string][]string{
		"https://example.com/docs": {"https://example.com/docs/bad", "https://example.com/docs/good"},
	})

	var failures []string
	c := &crawl.Crawler{
		Fetcher: fetcher,
		Links:   links,
		Limiter: fastLimiter(),
		OnPage: func(ev crawl.PageEvent) {
			if ev.Err != nil {
				failures = append(failures, ev.URL)
			}
		},
	}
	out, err := c.Crawl(context.Background(), "https://example.com/docs", nil, 1)

	require.NoError(t, err)
	assert.Len(t, out, 2, "crawl continues past the failed URL")
	assert.Equal(t, []string{"https://example.com/docs/bad"}, failures)
}

func TestCrawler_depth_limits_link_following(t *testing.T) {
	t.Parallel()

	s := &site{pages: map[string]string{
		"https://example.com/a": "<html>a</html>",
		"https://example.com/b": "<html>b</html>",
		"https://example.com/c": "<html>c</html>",
	}}
	links := staticLinks(map[string][]string{
		"https://example.com/a": {"https://example.com/b"},
		"https://example.com/b": {"https://example.com/c"},
	})

	c := &crawl.Crawler{Fetcher: s.fetcher(), Links: links, Limiter: fastLimiter()}
	out, err := c.Crawl(context.Background(), "https://example.com/a", nil, 1)

	require.NoError(t, err)
	assert.Len(t, out, 2, "links on pages at max depth are not followed")
	assert.NotContains(t, out, "https://example.com/c")
}

func TestCrawler_invalid_start_URL(t *testing.T) {
	t.Parallel()

	c := &crawl.Crawler{Fetcher: &mock.Fetcher{}, Links: staticLinks(nil), Limiter: fastLimiter()}
	_, err := c.Crawl(context.Background(), "://bad", nil, 1)

	require.Error(t, err)
	assert.Equal(t, docbase.EINVALID, docbase.ErrorCode(err))
}
