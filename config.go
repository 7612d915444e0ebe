package docbase

import "context"

// RetrievalConfig bounds the retrieval engine.
type RetrievalConfig struct {
	// KLexical and KEmbed bound the two independent rankings.
	KLexical int `toml:"k_lexical"`
	KEmbed   int `toml:"k_embed"`

	// CombineTopK bounds the fused result list.
	CombineTopK int `toml:"combine_top_k"`

	// SnapshotLimit bounds the corpus snapshot pulled per query.
	SnapshotLimit int `toml:"snapshot_limit"`
}

// IngestConfig bounds chunking during ingestion.
type IngestConfig struct {
	// ChunkOverlap is the word overlap carried between adjacent chunks.
	ChunkOverlap int `toml:"chunk_overlap"`

	// MinTextLen drops chunks shorter than this many bytes.
	MinTextLen int `toml:"min_text_len"`

	// MinContentLen skips source documents shorter than this many bytes.
	MinContentLen int `toml:"min_content_len"`
}

// ModelConfig names the external models.
type ModelConfig struct {
	Embedding string `toml:"embedding"`
	LLM       string `toml:"llm"`
}

// Config is the per-profile configuration.
type Config struct {
	Source    Source          `toml:"source"`
	Retrieval RetrievalConfig `toml:"retrieval"`
	Ingest    IngestConfig    `toml:"ingest"`
	Model     ModelConfig     `toml:"model"`
}

// DefaultConfig returns the configuration defaults merged under every
// loaded profile. The retrieval constants are deliberate: downstream
// behavior depends on them.
func DefaultConfig() Config {
	return Config{
		Source: Source{
			Type:  SourceWeb,
			Depth: 2,
		},
		Retrieval: RetrievalConfig{
			KLexical:      40,
			KEmbed:        40,
			CombineTopK:   10,
			SnapshotLimit: 200,
		},
		Ingest: IngestConfig{
			ChunkOverlap:  120,
			MinTextLen:    180,
			MinContentLen: 100,
		},
		Model: ModelConfig{
			Embedding: "gemini-embedding-001",
			LLM:       "gemini-2.5-flash",
		},
	}
}

// ConfigStore persists per-profile configuration.
type ConfigStore interface {
	// Load returns the profile's configuration with defaults applied.
	// Returns ENOTFOUND if the profile does not exist.
	Load(ctx context.Context, profile string) (*Config, error)

	// Save writes the profile's configuration, creating the profile if needed.
	Save(ctx context.Context, profile string, cfg *Config) error

	// List returns all profile names.
	List(ctx context.Context) ([]string, error)

	// Delete removes a profile and its configuration.
	// Returns ENOTFOUND if the profile does not exist.
	Delete(ctx context.Context, profile string) error
}
