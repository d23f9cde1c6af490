package eval

import (
	"path/filepath"

	"github.com/jsonnetlang/jsonnet/internal/value"
)

// FileLoader resolves and reads Jsonnet source files and arbitrary
// imported data, searching the importing file's directory (the working
// directory for source with no file) and then the configured JPATH entries.
type FileLoader interface {
	// Resolve returns the absolute path that importing `path` from
	// `importingFile` should read, trying each search root in order.
	Resolve(importingFile, path string) (string, error)
	// Read returns the raw bytes at an already-resolved absolute path.
	Read(absPath string) ([]byte, error)
}

// OSFileLoader resolves imports against the filesystem, relative first to
// the importing file's own directory and then to each JPath entry.
type OSFileLoader struct {
	JPath []string
}

func (l *OSFileLoader) Resolve(importingFile, path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	candidates := make([]string, 0, len(l.JPath)+1)
	if importingFile != "" {
		candidates = append(candidates, filepath.Join(filepath.Dir(importingFile), path))
	} else {
		candidates = append(candidates, path)
	}
	for _, jp := range l.JPath {
		candidates = append(candidates, filepath.Join(jp, path))
	}
	for _, c := range candidates {
		if fileExists(c) {
			return filepath.Clean(c), nil
		}
	}
	// Fall through to the first candidate so the caller's Read reports a
	// useful "not found" error rather than a resolution error.
	return filepath.Clean(candidates[0]), nil
}

func (l *OSFileLoader) Read(absPath string) ([]byte, error) {
	return readFile(absPath)
}

// importCache memoizes already-evaluated `import` targets keyed by resolved
// absolute path, so a file imported from many places is parsed and
// evaluated exactly once, per SPEC_FULL.md's import cache requirement.
type importCache struct {
	entries map[string]*value.Thunk
	strs    map[string]string
	bins    map[string]value.Value
}

func newImportCache() *importCache {
	return &importCache{
		entries: make(map[string]*value.Thunk),
		strs:    make(map[string]string),
		bins:    make(map[string]value.Value),
	}
}
