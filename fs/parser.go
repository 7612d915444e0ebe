package fs

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/docbase/docbase"
)

// Ensure Parser implements docbase.FileParser at compile time.
var _ docbase.FileParser = (*Parser)(nil)

// Parser converts local files into plain text. It never fails outright: any
// problem is reported through the result's Err field with empty content, so
// a bad file costs one warning, not the ingestion run.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads the file and returns its text content plus file metadata.
// HTML files are reduced to their visible text; every other extension,
// known or not, is read verbatim.
func (p *Parser) Parse(path string) *docbase.ParseResult {
	result := &docbase.ParseResult{}

	info, err := os.Stat(path)
	if err != nil {
		result.Err = "file not found"
		return result
	}

	ext := strings.ToLower(filepath.Ext(path))
	result.Info = docbase.FileInfo{
		Filename:  filepath.Base(path),
		Path:      path,
		Size:      info.Size(),
		Modified:  info.ModTime(),
		Extension: ext,
		MIME:      mime.TypeByExtension(ext),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		result.Err = fmt.Sprintf("read failed: %v", err)
		return result
	}

	switch ext {
	case ".html", ".htm":
		text, err := htmlText(string(raw))
		if err != nil {
			result.Err = fmt.Sprintf("failed to parse %s file: %v", ext, err)
			return result
		}
		result.Content = text
	default:
		result.Content = string(raw)
	}
	return result
}

// htmlText strips markup and returns the document's visible text with
// whitespace collapsed per line.
func htmlText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	doc.Find("script, style").Remove()

	var lines []string
	for _, line := range strings.Split(doc.Text(), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return strings.Join(lines, "\n"), nil
}
