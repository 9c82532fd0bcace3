package extractor

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"docingest/internal/port"
)

// Registry maps file extensions to text extractors. Formats become
// supported by registering an extractor; call sites never special-case
// individual file types.
type Registry struct {
	extractors map[string]port.Extractor
}

func NewRegistry() *Registry {
	return &Registry{
		extractors: make(map[string]port.Extractor),
	}
}

// Register adds an extractor for an extension (with or without leading dot).
// Registering the same extension twice replaces the earlier extractor.
func (r *Registry) Register(ext string, e port.Extractor) {
	r.extractors[normalizeExt(ext)] = e
}

// Lookup returns the extractor for the file's extension.
func (r *Registry) Lookup(fileName string) (port.Extractor, error) {
	ext := normalizeExt(filepath.Ext(fileName))
	if ext == "" {
		return nil, fmt.Errorf("file %q has no extension; supported types: %s", fileName, strings.Join(r.Supported(), ", "))
	}

	e, ok := r.extractors[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported file type %q; supported types: %s", ext, strings.Join(r.Supported(), ", "))
	}
	return e, nil
}

// Supported returns the registered extensions in sorted order.
func (r *Registry) Supported() []string {
	exts := make([]string, 0, len(r.extractors))
	for ext := range r.extractors {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
