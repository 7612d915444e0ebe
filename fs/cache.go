// Package fs provides filesystem-backed implementations: the crawler's page
// cache, the local-file scanner, and the plain-file parser.
package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/docbase/docbase"
)

// Ensure PageCache implements docbase.PageCache at compile time.
var _ docbase.PageCache = (*PageCache)(nil)

// PageCache stores fetched page bodies on disk, one file per URL, named by
// the URL's hash. Entries persist across runs so re-crawls of unchanged
// sites skip the network entirely.
type PageCache struct {
	dir string
}

// NewPageCache creates a PageCache rooted at dir.
func NewPageCache(dir string) *PageCache {
	return &PageCache{dir: dir}
}

func (c *PageCache) path(url string) string {
	return filepath.Join(c.dir, fmt.Sprintf("%016x.html", xxhash.Sum64String(url)))
}

// Get returns the cached body for a URL, if present.
func (c *PageCache) Get(url string) (string, bool) {
	body, err := os.ReadFile(c.path(url))
	if err != nil {
		return "", false
	}
	return string(body), true
}

// Put stores the body for a URL.
func (c *PageCache) Put(url string, body string) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(c.path(url), []byte(body), 0o644)
}
