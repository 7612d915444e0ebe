package docbase

// SourceType identifies where a source's content comes from.
type SourceType string

// Supported source types.
const (
	SourceWeb   SourceType = "web"
	SourceLocal SourceType = "local"
	SourceMixed SourceType = "mixed"
)

// Source identifies one crawl root and/or set of local paths for a profile.
// A Source is immutable once an ingestion run starts; runs operate on a
// copy taken at start time.
type Source struct {
	Type SourceType `toml:"type"`

	// Domain is the crawl root for web sources, e.g. "https://docs.example.com".
	Domain string `toml:"domain,omitempty"`

	// AllowedPaths restricts crawling to URLs whose path starts with one of
	// these prefixes. Empty means all paths on the domain's host.
	AllowedPaths []string `toml:"allowed_paths,omitempty"`

	// Depth is the maximum crawl depth from each start URL.
	Depth int `toml:"depth,omitempty"`

	// LocalPaths lists files or directories to scan for local sources.
	LocalPaths []string `toml:"local_paths,omitempty"`

	// FileTypes filters scanned files by extension (e.g. ".md"). Empty or
	// containing "all" means no filter.
	FileTypes []string `toml:"file_types,omitempty"`
}

// Validate returns an error if the source is not usable for ingestion.
func (s *Source) Validate() error {
	switch s.Type {
	case SourceWeb, SourceLocal, SourceMixed:
	default:
		return Errorf(EINVALID, "unknown source type %q", s.Type)
	}
	if (s.Type == SourceWeb || s.Type == SourceMixed) && s.Domain == "" {
		return Errorf(EINVALID, "web source requires a domain")
	}
	if (s.Type == SourceLocal || s.Type == SourceMixed) && len(s.LocalPaths) == 0 {
		return Errorf(EINVALID, "local source requires at least one path")
	}
	return nil
}
