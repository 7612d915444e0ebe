package change

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// volatilePatterns match substrings that change without the content
// meaningfully changing. They are stripped before hashing so timestamp and
// build churn does not register as a content change. Kept as a data table
// so the set stays easy to test and extend.
var volatilePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}`), // ISO timestamps
	regexp.MustCompile(`(?i)generated on .+`),
	regexp.MustCompile(`(?i)last updated: .+`),
	regexp.MustCompile(`(?s)<!--.*?-->`), // HTML comments
	regexp.MustCompile(`data-timestamp="[^"]*"`),
	regexp.MustCompile(`id="[a-f0-9]{8,}"`), // generated hex IDs
}

// StableHash computes a content hash that is insensitive to cosmetic
// churn: the content is trimmed, lowercased, and stripped of volatile
// substrings before hashing.
func StableHash(content string) string {
	normalized := strings.ToLower(strings.TrimSpace(content))
	for _, re := range volatilePatterns {
		normalized = re.ReplaceAllString(normalized, "")
	}
	return fmt.Sprintf("%016x", xxhash.Sum64String(normalized))
}
