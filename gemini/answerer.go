package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/docbase/docbase"
	"google.golang.org/genai"
)

// Ensure Answerer implements docbase.Answerer at compile time.
var _ docbase.Answerer = (*Answerer)(nil)

// Answerer implements docbase.Answerer using Google Gemini.
type Answerer struct {
	client *genai.Client
	model  string
}

// NewAnswerer creates a new Answerer for the given generation model.
func NewAnswerer(client *genai.Client, model string) *Answerer {
	return &Answerer{client: client, model: model}
}

// Answer produces a natural-language answer grounded in the retrieved passages.
func (a *Answerer) Answer(ctx context.Context, question string, passages []docbase.SearchResult) (string, error) {
	if question == "" {
		return "", docbase.Errorf(docbase.EINVALID, "question required")
	}
	if len(passages) == 0 {
		return "", docbase.Errorf(docbase.ENOTFOUND, "no passages to answer from")
	}

	prompt := BuildUserPrompt(passages, question)
	config := BuildConfig()

	result, err := a.client.Models.GenerateContent(ctx, a.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", docbase.Errorf(docbase.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a helpful assistant answering questions from a personal knowledge base. Answer based only on the passages provided. Cite the source of each claim. If the answer is not in the passages, say so.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt containing the passages and question.
func BuildUserPrompt(passages []docbase.SearchResult, question string) string {
	var sb strings.Builder
	sb.WriteString("<passages>\n")
	for i, p := range passages {
		sb.WriteString("<passage>\n")
		fmt.Fprintf(&sb, "<index>%d</index>\n", i+1)
		if source := p.Metadata["source"]; source != "" {
			fmt.Fprintf(&sb, "<source>%s</source>\n", source)
		}
		if category := p.Metadata["category"]; category != "" {
			fmt.Fprintf(&sb, "<category>%s</category>\n", category)
		}
		fmt.Fprintf(&sb, "<content>%s</content>\n", p.Text)
		sb.WriteString("</passage>\n")
	}
	sb.WriteString("</passages>\n\n")
	fmt.Fprintf(&sb, "Question: %s", question)
	return sb.String()
}
