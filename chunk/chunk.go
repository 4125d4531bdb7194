package chunk

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"unicode/utf8"
)

const (
	lengthSize = 4
	typeSize   = 4
	crcSize    = 4

	// overhead is the fixed framing cost of a chunk: length and type
	// before the payload, CRC after it.
	overhead = lengthSize + typeSize + crcSize
)

// crcTable selects CRC-32/ISO-HDLC: the reflected 0x04C11DB7 polynomial
// with 0xFFFFFFFF initial value and final XOR, which is crc32.IEEE.
var crcTable = crc32.MakeTable(crc32.IEEE)

// checksum computes the chunk CRC over the type bytes followed by the
// payload. The length field is not covered.
func checksum(typ ChunkType, data []byte) uint32 {
	tb := typ.Bytes()
	sum := crc32.Update(0, crcTable, tb[:])
	return crc32.Update(sum, crcTable, data)
}

// Chunk is one length-prefixed, checksummed record. A decoded Chunk has
// always passed CRC verification; a built one has its CRC computed. The
// payload is owned by the Chunk and never aliased to caller memory, so a
// Chunk cannot be corrupted after construction.
type Chunk struct {
	length uint32
	typ    ChunkType
	data   []byte
	crc    uint32
}

// New builds a chunk from a tag and payload, computing the checksum.
// The payload is copied. New never fails: any payload bytes are legal.
func New(typ ChunkType, data []byte) *Chunk {
	d := make([]byte, len(data))
	copy(d, data)
	return &Chunk{
		length: uint32(len(d)),
		typ:    typ,
		data:   d,
		crc:    checksum(typ, d),
	}
}

// Parse decodes exactly one chunk from data.
//
// Parse is strict: data must hold one complete, well-formed chunk and
// nothing else. Buffers carrying several chunks go through Read or a
// container reader instead; surplus bytes are a TrailingBytes error, not
// an invitation to keep decoding.
func Parse(data []byte) (*Chunk, error) {
	if len(data) < overhead {
		return nil, newError(KindTruncated,
			fmt.Sprintf("chunk needs at least %d bytes, have %d", overhead, len(data)))
	}
	length := binary.BigEndian.Uint32(data[:lengthSize])
	need := uint64(overhead) + uint64(length)
	if uint64(len(data)) < need {
		return nil, newError(KindTruncated,
			fmt.Sprintf("declared %d-byte payload needs %d bytes in total, have %d", length, need, len(data)))
	}
	var tb [4]byte
	copy(tb[:], data[lengthSize:lengthSize+typeSize])
	typ, err := NewChunkType(tb)
	if err != nil {
		return nil, err
	}
	body := data[lengthSize+typeSize : need-crcSize]
	stored := binary.BigEndian.Uint32(data[need-crcSize : need])
	if sum := checksum(typ, body); sum != stored {
		return nil, newError(KindChecksum,
			fmt.Sprintf("crc mismatch: computed 0x%08x, stored 0x%08x", sum, stored))
	}
	if uint64(len(data)) > need {
		return nil, newError(KindTrailing,
			fmt.Sprintf("%d trailing bytes after chunk", uint64(len(data))-need))
	}
	d := make([]byte, length)
	copy(d, body)
	return &Chunk{length: length, typ: typ, data: d, crc: stored}, nil
}

// Read decodes one chunk from r, leaving the reader positioned at the
// first byte past the chunk's CRC. Unlike Parse it does not require the
// stream to be exhausted, so callers can pull back-to-back chunks.
//
// A clean end of stream before any chunk bytes is reported as io.EOF; a
// stream that ends inside a chunk is a TruncatedInput error. Read trusts
// the declared length when sizing the payload buffer; callers decoding
// untrusted streams should bound it at the I/O layer.
func Read(r io.Reader) (*Chunk, error) {
	var head [lengthSize + typeSize]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, wrapError(KindTruncated, "short read of chunk header", err)
	}
	length := binary.BigEndian.Uint32(head[:lengthSize])
	var tb [4]byte
	copy(tb[:], head[lengthSize:])
	typ, err := NewChunkType(tb)
	if err != nil {
		return nil, err
	}
	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, wrapError(KindTruncated,
			fmt.Sprintf("short read of %d-byte payload", length), noEOF(err))
	}
	var tail [crcSize]byte
	if _, err := io.ReadFull(r, tail[:]); err != nil {
		return nil, wrapError(KindTruncated, "short read of chunk crc", noEOF(err))
	}
	stored := binary.BigEndian.Uint32(tail[:])
	if sum := checksum(typ, data); sum != stored {
		return nil, newError(KindChecksum,
			fmt.Sprintf("crc mismatch: computed 0x%08x, stored 0x%08x", sum, stored))
	}
	return &Chunk{length: length, typ: typ, data: data, crc: stored}, nil
}

// noEOF converts a bare io.EOF into io.ErrUnexpectedEOF. Once the header
// has been read, end of stream inside a chunk is always unexpected.
func noEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// Length returns the payload byte count carried by the length field.
func (c *Chunk) Length() uint32 { return c.length }

// Type returns the chunk's tag.
func (c *Chunk) Type() ChunkType { return c.typ }

// Data returns a copy of the payload.
func (c *Chunk) Data() []byte {
	d := make([]byte, len(c.data))
	copy(d, c.data)
	return d
}

// CRC returns the stored checksum.
func (c *Chunk) CRC() uint32 { return c.crc }

// Bytes returns the chunk's wire form: big-endian length, four tag bytes,
// payload, big-endian CRC. Parse(c.Bytes()) reproduces c exactly.
func (c *Chunk) Bytes() []byte {
	out := make([]byte, overhead+len(c.data))
	binary.BigEndian.PutUint32(out[:lengthSize], c.length)
	tb := c.typ.Bytes()
	copy(out[lengthSize:], tb[:])
	copy(out[lengthSize+typeSize:], c.data)
	binary.BigEndian.PutUint32(out[len(out)-crcSize:], c.crc)
	return out
}

// WriteTo serializes the chunk to w.
func (c *Chunk) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(c.Bytes())
	return int64(n), err
}

// Text returns the payload as a string. The payload must be valid UTF-8;
// anything else is an InvalidEncoding error, never a lossy conversion.
func (c *Chunk) Text() (string, error) {
	if !utf8.Valid(c.data) {
		return "", newError(KindEncoding, "payload is not valid UTF-8")
	}
	return string(c.data), nil
}

// String returns a one-line summary for listings.
func (c *Chunk) String() string {
	return fmt.Sprintf("%s length=%d crc=0x%08x", c.typ, c.length, c.crc)
}
