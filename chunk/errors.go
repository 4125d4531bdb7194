package chunk

import "errors"

// Kind is a stable category for programmatic error handling.
//
// The categories are part of the package's API contract and remain stable
// across versions. Callers should branch on Kind rather than matching
// error strings.
//
// NOTE: Error() strings are intentionally kept human-readable and may evolve.
// Use errors.As to extract *Error for structured handling.
type Kind string

const (
	// KindTagLength reports a tag string whose length is not exactly four bytes.
	KindTagLength Kind = "InvalidTagLength"
	// KindTagByte reports a tag byte outside A-Z and a-z.
	KindTagByte Kind = "InvalidTagByte"
	// KindTruncated reports input that ends before a complete chunk.
	KindTruncated Kind = "TruncatedInput"
	// KindChecksum reports a stored CRC that does not match the recomputed one.
	KindChecksum Kind = "ChecksumMismatch"
	// KindTrailing reports leftover bytes after a single complete chunk.
	KindTrailing Kind = "TrailingBytes"
	// KindEncoding reports a payload that is not valid UTF-8 where text was asked for.
	KindEncoding Kind = "InvalidEncoding"
)

// Error is the codec's structured error type.
//
// Message is intended for humans; do not match on it.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func newError(kind Kind, msg string) error {
	return &Error{Kind: kind, Message: msg}
}

func wrapError(kind Kind, msg string, cause error) error {
	if cause == nil {
		return newError(kind, msg)
	}
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
