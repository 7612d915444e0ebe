package fs

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/docbase/docbase"
)

// Ensure Scanner implements docbase.Scanner at compile time.
var _ docbase.Scanner = (*Scanner)(nil)

// Scanner enumerates parseable files under a root path. Hidden files and
// directories are skipped.
type Scanner struct{}

// NewScanner creates a new Scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan walks root and returns the paths of files matching the types filter,
// in lexical order. An empty filter or one containing "all" accepts every
// extension. A root that is itself a file is returned directly when it
// matches.
func (s *Scanner) Scan(root string, types []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, docbase.Errorf(docbase.ENOTFOUND, "path %q not found", root)
	}

	accept := extensionFilter(types)

	if !info.IsDir() {
		if accept(filepath.Ext(root)) {
			return []string{root}, nil
		}
		return nil, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") && path != root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && accept(filepath.Ext(name)) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func extensionFilter(types []string) func(ext string) bool {
	if len(types) == 0 {
		return func(string) bool { return true }
	}
	allowed := make(map[string]bool, len(types))
	for _, t := range types {
		if t == "all" {
			return func(string) bool { return true }
		}
		t = strings.ToLower(t)
		if !strings.HasPrefix(t, ".") {
			t = "." + t
		}
		allowed[t] = true
	}
	return func(ext string) bool {
		return allowed[strings.ToLower(ext)]
	}
}
