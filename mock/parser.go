package mock

import "github.com/docbase/docbase"

var _ docbase.FileParser = (*FileParser)(nil)

// FileParser is a mock implementation of docbase.FileParser.
type FileParser struct {
	ParseFn func(path string) *docbase.ParseResult
}

func (p *FileParser) Parse(path string) *docbase.ParseResult {
	return p.ParseFn(path)
}

var _ docbase.Scanner = (*Scanner)(nil)

// Scanner is a mock implementation of docbase.Scanner.
type Scanner struct {
	ScanFn func(root string, types []string) ([]string, error)
}

func (s *Scanner) Scan(root string, types []string) ([]string, error) {
	return s.ScanFn(root, types)
}

var _ docbase.Converter = (*Converter)(nil)

// Converter is a mock implementation of docbase.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
