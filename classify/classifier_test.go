package classify_test

import (
	"testing"

	"github.com/docbase/docbase"
	"github.com/docbase/docbase/classify"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		origin   string
		content  string
		category docbase.Category
		strategy docbase.Strategy
		size     int
	}{
		{
			name:     "install guide is technical",
			origin:   "https://example.com/docs/install-guide.md",
			content:  "# Installation\n\nRun the setup script and edit the config file.",
			category: docbase.CategoryTechnical,
			strategy: docbase.StrategySection,
			size:     1000,
		},
		{
			name:     "meeting transcript is conversation",
			origin:   "team-meeting-transcript.txt",
			content:  "Alice: let's start the call.\nBob: sounds good.",
			category: docbase.CategoryConversation,
			strategy: docbase.StrategyConversation,
			size:     800,
		},
		{
			name:     "api reference",
			origin:   "api-reference.md",
			content:  "GET /users returns the user list per the specification.",
			category: docbase.CategoryReference,
			strategy: docbase.StrategyEndpoint,
			size:     500,
		},
		{
			name:     "subtitles are media",
			origin:   "movie-subtitle.srt",
			content:  "00:01:02 hello there",
			category: docbase.CategoryMedia,
			strategy: docbase.StrategyTimestamp,
			size:     300,
		},
		{
			name:     "weak signals fall back to general",
			origin:   "notes.xyz",
			content:  "Some loose thoughts about nothing in particular.",
			category: docbase.CategoryGeneral,
			strategy: docbase.StrategySlidingWindow,
			size:     800,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := classify.Classify(tt.origin, tt.content)
			assert.Equal(t, tt.category, c.Category)
			assert.Equal(t, tt.strategy, c.Strategy)
			assert.Equal(t, tt.size, c.ChunkSize)
		})
	}
}

func TestClassify_confidence(t *testing.T) {
	t.Parallel()

	t.Run("fallback confidence is fixed", func(t *testing.T) {
		t.Parallel()

		c := classify.Classify("notes.xyz", "nothing in here matches")
		assert.Equal(t, docbase.CategoryGeneral, c.Category)
		assert.Equal(t, 0.3, c.Confidence)
		assert.Equal(t, []docbase.Extractor{docbase.ExtractorBasic}, c.Extractors)
	})

	t.Run("strong match caps at one", func(t *testing.T) {
		t.Parallel()

		// Filename hits several technical keywords at once.
		c := classify.Classify("install-setup-config-guide-manual.md",
			"manual guide documentation install setup config")
		assert.Equal(t, docbase.CategoryTechnical, c.Category)
		assert.Equal(t, 1.0, c.Confidence)
	})

	t.Run("normalized against ceiling", func(t *testing.T) {
		t.Parallel()

		// One filename keyword and the extension: 10 + 5 = 15.
		c := classify.Classify("guide.pdf", "")
		assert.Equal(t, docbase.CategoryTechnical, c.Category)
		assert.InDelta(t, 0.75, c.Confidence, 1e-9)
	})
}

func TestClassify_extension_alone_meets_floor(t *testing.T) {
	t.Parallel()

	// .srt matches only media and scores exactly the floor.
	c := classify.Classify("x.srt", "")
	assert.Equal(t, docbase.CategoryMedia, c.Category)
	assert.Equal(t, docbase.StrategyTimestamp, c.Strategy)
}
