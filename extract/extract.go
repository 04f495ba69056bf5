package extract

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Extractor pulls plain text out of one resume file format.
type Extractor interface {
	// ExtractText reads the document and returns its textual contents.
	ExtractText(ctx context.Context, r io.Reader) (string, error)
}

// Registry maps file extensions to extractors.
type Registry struct {
	extractors map[string]Extractor
}

// NewRegistry creates a registry with the default extractors registered.
func NewRegistry() *Registry {
	r := &Registry{
		extractors: make(map[string]Extractor),
	}
	r.Register(".txt", PlainText{})
	r.Register(".text", PlainText{})
	r.Register(".md", PlainText{})
	return r
}

// Register associates an extractor with a file extension.
// The extension must include the leading dot; matching is case-insensitive.
func (r *Registry) Register(ext string, extractor Extractor) {
	r.extractors[strings.ToLower(ext)] = extractor
}

// Supports reports whether the registry can handle the file extension.
func (r *Registry) Supports(ext string) bool {
	_, ok := r.extractors[strings.ToLower(ext)]
	return ok
}

// ExtractText extracts text from a reader using the extractor registered for
// the extension. Returns ErrUnsupportedType for unknown extensions.
func (r *Registry) ExtractText(ctx context.Context, ext string, reader io.Reader) (string, error) {
	extractor, ok := r.extractors[strings.ToLower(ext)]
	if !ok {
		return "", ErrUnsupportedType
	}
	return extractor.ExtractText(ctx, reader)
}

// ExtractFile extracts text from a file on disk, choosing the extractor by
// the file's extension.
func (r *Registry) ExtractFile(ctx context.Context, path string) (string, error) {
	ext := filepath.Ext(path)
	if !r.Supports(ext) {
		return "", ErrUnsupportedType
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	return r.ExtractText(ctx, ext, f)
}

// PlainText extracts text from files that already are text.
type PlainText struct{}

var _ Extractor = PlainText{}

// ExtractText reads the whole document as UTF-8 text.
func (PlainText) ExtractText(ctx context.Context, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
