package extract

import "errors"

var (
	// ErrUnsupportedType indicates that no extractor is registered for the
	// file's extension.
	ErrUnsupportedType = errors.New("unsupported document type")
)
