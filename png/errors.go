package png

import "errors"

// Package-level errors for container parsing and editing.
var (
	// ErrBadSignature indicates the input does not start with the
	// eight-byte file signature.
	ErrBadSignature = errors.New("png: bad file signature")

	// ErrChunkNotFound indicates no chunk with the requested tag exists
	// in the file.
	ErrChunkNotFound = errors.New("png: chunk not found")

	// ErrChunkTooLarge indicates a chunk declared a payload length above
	// the reader's configured maximum.
	ErrChunkTooLarge = errors.New("png: chunk exceeds maximum length")
)
