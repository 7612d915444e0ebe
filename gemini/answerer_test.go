package gemini_test

import (
	"context"
	"testing"

	"github.com/docbase/docbase"
	"github.com/docbase/docbase/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerer_Answer_ReturnsErrorWhenQuestionEmpty(t *testing.T) {
	t.Parallel()

	answerer := gemini.NewAnswerer(nil, "gemini-2.5-flash")

	_, err := answerer.Answer(context.Background(), "", nil)

	require.Error(t, err)
	assert.Equal(t, docbase.EINVALID, docbase.ErrorCode(err))
	assert.Contains(t, docbase.ErrorMessage(err), "question required")
}

func TestAnswerer_Answer_ReturnsErrorWhenNoPassages(t *testing.T) {
	t.Parallel()

	answerer := gemini.NewAnswerer(nil, "gemini-2.5-flash")

	_, err := answerer.Answer(context.Background(), "what is this?", nil)

	require.Error(t, err)
	assert.Equal(t, docbase.ENOTFOUND, docbase.ErrorCode(err))
	assert.Contains(t, docbase.ErrorMessage(err), "no passages")
}

func TestBuildConfig_SetsSystemInstruction(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "helpful assistant")
}

func TestBuildConfig_SetsTemperature(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.4, *config.Temperature, 0.001)
}

func TestBuildUserPrompt_ContainsPassages(t *testing.T) {
	t.Parallel()

	passages := []docbase.SearchResult{
		{
			ChunkID: "c1",
			Text:    "Restart the daemon after editing the config.",
			Metadata: map[string]string{
				"source":   "https://docs.example.com/setup",
				"category": "technical",
			},
		},
	}

	prompt := gemini.BuildUserPrompt(passages, "How do I apply config changes?")

	assert.Contains(t, prompt, "<passages>")
	assert.Contains(t, prompt, "Restart the daemon")
	assert.Contains(t, prompt, "<source>https://docs.example.com/setup</source>")
	assert.Contains(t, prompt, "<category>technical</category>")
	assert.Contains(t, prompt, "</passages>")
}

func TestBuildUserPrompt_ContainsQuestion(t *testing.T) {
	t.Parallel()

	passages := []docbase.SearchResult{{ChunkID: "c1", Text: "content"}}

	prompt := gemini.BuildUserPrompt(passages, "How do I use this?")

	assert.Contains(t, prompt, "Question: How do I use this?")
}

func TestBuildUserPrompt_OmitsMissingMetadata(t *testing.T) {
	t.Parallel()

	passages := []docbase.SearchResult{{ChunkID: "c1", Text: "content"}}

	prompt := gemini.BuildUserPrompt(passages, "question")

	assert.NotContains(t, prompt, "<source>")
	assert.NotContains(t, prompt, "<category>")
}

func TestBuildUserPrompt_DoesNotContainSystemInstruction(t *testing.T) {
	t.Parallel()

	passages := []docbase.SearchResult{{ChunkID: "c1", Text: "content"}}

	prompt := gemini.BuildUserPrompt(passages, "question")

	assert.NotContains(t, prompt, "You are a helpful assistant")
}
