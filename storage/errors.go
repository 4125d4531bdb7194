package storage

import "errors"

var (
	// ErrNotFound reports a CID with no object behind it.
	ErrNotFound = errors.New("storage: not found")
	// ErrInvalidCID reports an undefined or undecodable CID.
	ErrInvalidCID = errors.New("storage: invalid cid")
	// ErrCIDMismatch reports bytes that do not hash to the CID they were
	// stored or requested under.
	ErrCIDMismatch = errors.New("storage: cid mismatch")
	// ErrImmutable reports an attempt to change the bytes behind an
	// existing CID, which the archive never permits.
	ErrImmutable = errors.New("storage: immutable object mismatch")
)

// IsNotFound reports whether err is (or wraps) ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
