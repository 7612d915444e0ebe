package docbase

import "time"

// FileInfo is the basic metadata a parser reports for a local file.
type FileInfo struct {
	Filename  string
	Path      string
	Size      int64
	Modified  time.Time
	Extension string
	MIME      string
}

// ParseResult is the outcome of parsing one local file. Parsers never fail
// outright; a failure is reported through the Err field with empty content.
type ParseResult struct {
	Content string
	Info    FileInfo
	Err     string
}

// FileParser converts a local file into plain text plus metadata.
type FileParser interface {
	Parse(path string) *ParseResult
}

// Scanner enumerates parseable files under a root path. A types filter
// restricts results by extension; empty or containing "all" means no filter.
type Scanner interface {
	Scan(root string, types []string) ([]string, error)
}
