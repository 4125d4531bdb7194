package png

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"xdao.co/pngstash/chunk"
)

// DefaultMaxChunkLength caps the payload length a Reader accepts before
// allocating. Hostile length fields otherwise force multi-gigabyte
// allocations from a handful of input bytes.
const DefaultMaxChunkLength = 64 << 20 // 64 MiB

// Reader pulls chunks off a stream one at a time without buffering the
// whole file. The signature is validated when the Reader is built.
type Reader struct {
	br        *bufio.Reader
	maxLength uint32
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithMaxChunkLength sets the largest declared payload length Next will
// accept (default DefaultMaxChunkLength).
func WithMaxChunkLength(n uint32) ReaderOption {
	return func(r *Reader) {
		r.maxLength = n
	}
}

// NewReader validates the file signature on r and returns a Reader
// positioned at the first chunk.
func NewReader(r io.Reader, opts ...ReaderOption) (*Reader, error) {
	pr := &Reader{
		br:        bufio.NewReader(r),
		maxLength: DefaultMaxChunkLength,
	}
	for _, opt := range opts {
		opt(pr)
	}
	var sig [len(signature)]byte
	if _, err := io.ReadFull(pr.br, sig[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSignature, err)
	}
	if !bytes.Equal(sig[:], signature[:]) {
		return nil, ErrBadSignature
	}
	return pr, nil
}

// Next reads and returns the next chunk. It returns io.EOF at a clean
// end of stream; a stream ending inside a chunk surfaces the chunk
// codec's TruncatedInput error.
func (r *Reader) Next() (*chunk.Chunk, error) {
	head, err := r.br.Peek(lengthPrefixSize)
	if err != nil {
		if err == io.EOF && len(head) == 0 {
			return nil, io.EOF
		}
		// A partial length prefix is a truncated chunk; let the codec
		// report it in its own taxonomy.
		return chunk.Read(r.br)
	}
	if length := binary.BigEndian.Uint32(head); length > r.maxLength {
		return nil, fmt.Errorf("%w: declared %d bytes, maximum %d", ErrChunkTooLarge, length, r.maxLength)
	}
	return chunk.Read(r.br)
}
