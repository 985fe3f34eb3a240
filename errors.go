package extractor

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyDocument = errors.New("document content cannot be empty")
	ErrParseDocument = errors.New("failed to parse document")
)
