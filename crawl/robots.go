package crawl

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/docbase/docbase"
	"github.com/temoto/robotstxt"
)

// DefaultUserAgent identifies the crawler to robots.txt and servers.
const DefaultUserAgent = "docbase/0.1 (+local; respectful crawler)"

// RobotsCache resolves robots.txt permission per URL with get-or-fetch
// semantics. Each host's robots.txt is fetched once and cached for the
// lifetime of the cache. A fetch failure, non-200 status, or an HTML
// response (a 404 page served with status 200) is treated as "no
// restrictions" for that host.
type RobotsCache struct {
	Fetcher   docbase.Fetcher
	UserAgent string

	mu    sync.Mutex
	hosts map[string]*robotstxt.RobotsData // nil value = allow all
}

// NewRobotsCache creates a RobotsCache backed by the given fetcher.
func NewRobotsCache(fetcher docbase.Fetcher) *RobotsCache {
	return &RobotsCache{
		Fetcher:   fetcher,
		UserAgent: DefaultUserAgent,
		hosts:     make(map[string]*robotstxt.RobotsData),
	}
}

// Allowed reports whether the crawler may fetch rawURL according to the
// host's robots.txt. Unparseable URLs are disallowed; hosts without a
// usable robots.txt allow everything.
func (r *RobotsCache) Allowed(ctx context.Context, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	data := r.groupFor(ctx, u)
	if data == nil {
		return true
	}
	return data.FindGroup(r.UserAgent).Test(u.Path)
}

// groupFor returns the cached robots data for the URL's host, fetching it
// on first use.
func (r *RobotsCache) groupFor(ctx context.Context, u *url.URL) *robotstxt.RobotsData {
	key := u.Scheme + "://" + u.Host

	r.mu.Lock()
	defer r.mu.Unlock()

	if data, ok := r.hosts[key]; ok {
		return data
	}

	data := r.fetchRobots(ctx, key+"/robots.txt")
	r.hosts[key] = data
	return data
}

// fetchRobots retrieves and parses a robots.txt. Returns nil (allow all)
// on any failure.
func (r *RobotsCache) fetchRobots(ctx context.Context, robotsURL string) *robotstxt.RobotsData {
	res, err := r.Fetcher.Fetch(ctx, robotsURL)
	if err != nil {
		return nil
	}
	if res.StatusCode != 200 || strings.Contains(res.ContentType, "text/html") {
		return nil
	}

	data, err := robotstxt.FromString(res.Body)
	if err != nil {
		return nil
	}
	return data
}
