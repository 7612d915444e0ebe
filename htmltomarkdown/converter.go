// Package htmltomarkdown converts crawled HTML into Markdown for chunking.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/docbase/docbase"
)

// Ensure Converter implements docbase.Converter at compile time.
var _ docbase.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

var (
	zeroWidthRe  = regexp.MustCompile(`[\x{200B}\x{200C}\x{200D}\x{FEFF}]`)
	blankLinesRe = regexp.MustCompile(`\n{3,}`)
)

// Convert transforms HTML content into Markdown. Zero-width characters are
// stripped and runs of blank lines squeezed, so markup noise does not leak
// into the content hash or the chunker.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", docbase.Errorf(docbase.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	result = zeroWidthRe.ReplaceAllString(result, "")
	result = blankLinesRe.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result), nil
}
