package docbase

// Strategy selects a boundary-aware splitting algorithm. Dispatch is by
// matching on the tag; every structure-aware strategy degrades to
// StrategySlidingWindow when its structural markers are absent.
type Strategy string

// Chunking strategies.
const (
	StrategySlidingWindow Strategy = "sliding_window"
	StrategySection       Strategy = "section_aware"
	StrategyConversation  Strategy = "conversation_aware"
	StrategyMessage       Strategy = "message_boundary"
	StrategyEndpoint      Strategy = "endpoint_aware"
	StrategyChapter       Strategy = "chapter_aware"
	StrategyRecord        Strategy = "record_aware"
	StrategyTimestamp     Strategy = "time_aware"
)

// Chunk is a bounded span of text extracted from a document, the unit of
// retrieval. The identifier is a pure function of (origin, sequence, text),
// so re-ingesting unchanged content reproduces identical identifiers and
// index upserts stay idempotent.
type Chunk struct {
	// ID is the stable chunk identifier.
	ID string

	// Origin identifies the source document (URL or file path).
	Origin string

	// Seq is the chunk's position within its document.
	Seq int

	Text string

	// Type is the strategy-specific tag, e.g. "section", "conversation",
	// "records".
	Type string

	// Metadata carries boundary metadata (speakers, endpoint, chapter,
	// record count) plus document-level extractor output. Values are
	// primitive strings, the index store contract.
	Metadata map[string]string
}

// Validate returns an error if the chunk cannot be indexed.
func (c *Chunk) Validate() error {
	if c.ID == "" {
		return Errorf(EINVALID, "chunk ID required")
	}
	if c.Origin == "" {
		return Errorf(EINVALID, "chunk origin required")
	}
	if c.Text == "" {
		return Errorf(EINVALID, "chunk text required")
	}
	return nil
}
