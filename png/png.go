// Package png assembles chunk records into container files.
//
// The container grammar is an eight-byte signature followed by zero or
// more chunks. That is all this package understands: chunk payloads are
// opaque, so a File is a list of records, not a decoded image. The one
// structural tag it knows is the IEND end marker, which editing keeps in
// trailing position.
package png

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"xdao.co/pngstash/chunk"
)

// signature is the fixed file header: \x89PNG\r\n\x1a\n.
var signature = [8]byte{137, 80, 78, 71, 13, 10, 26, 10}

// endMarker is the tag of the chunk that terminates a well-formed file.
const endMarker = "IEND"

const (
	lengthPrefixSize = 4
	chunkOverhead    = 12
)

// Signature returns a copy of the eight-byte file signature.
func Signature() []byte {
	s := signature
	return s[:]
}

// File is an ordered list of chunks with the container signature implied.
// The zero value is an empty file; its serialization is just the signature.
type File struct {
	chunks []*chunk.Chunk
}

// FromChunks builds a file from chunks in order. The slice is copied;
// the chunks themselves are immutable and shared.
func FromChunks(chunks []*chunk.Chunk) *File {
	f := &File{chunks: make([]*chunk.Chunk, len(chunks))}
	copy(f.chunks, chunks)
	return f
}

// Parse decodes a whole container file from data. The buffer must hold
// the signature followed by well-formed chunks and nothing else; chunk
// decode failures are wrapped with the chunk index and byte offset and
// keep their structured kind for errors.As.
func Parse(data []byte) (*File, error) {
	if !bytes.HasPrefix(data, signature[:]) {
		return nil, ErrBadSignature
	}
	f := &File{}
	r := bytes.NewReader(data[len(signature):])
	for {
		offset := len(data) - r.Len()
		rest := data[offset:]
		if len(rest) == 0 {
			return f, nil
		}
		// Check the declared length against what the buffer actually
		// holds, so a forged length field cannot make chunk.Read size a
		// payload buffer the input could never fill.
		if len(rest) >= lengthPrefixSize {
			declared := binary.BigEndian.Uint32(rest[:lengthPrefixSize])
			if uint64(len(rest)) < uint64(declared)+chunkOverhead {
				err := &chunk.Error{Kind: chunk.KindTruncated, Message: fmt.Sprintf(
					"declared %d-byte payload needs %d bytes, have %d", declared, uint64(declared)+chunkOverhead, len(rest))}
				return nil, fmt.Errorf("chunk %d at offset %d: %w", len(f.chunks), offset, err)
			}
		}
		c, err := chunk.Read(r)
		if err != nil {
			return nil, fmt.Errorf("chunk %d at offset %d: %w", len(f.chunks), offset, err)
		}
		f.chunks = append(f.chunks, c)
	}
}

// Bytes returns the file's serialization: the signature followed by each
// chunk's wire form. Parse(f.Bytes()) reproduces f.
func (f *File) Bytes() []byte {
	out := make([]byte, 0, f.size())
	out = append(out, signature[:]...)
	for _, c := range f.chunks {
		out = append(out, c.Bytes()...)
	}
	return out
}

func (f *File) size() int {
	n := len(signature)
	for _, c := range f.chunks {
		n += chunkOverhead + int(c.Length())
	}
	return n
}

// Chunks returns the file's chunks in order. The slice is a copy.
func (f *File) Chunks() []*chunk.Chunk {
	out := make([]*chunk.Chunk, len(f.chunks))
	copy(out, f.chunks)
	return out
}

// ChunkByType returns the first chunk whose tag matches. A tag string
// that is not a legal tag matches nothing.
func (f *File) ChunkByType(tag string) (*chunk.Chunk, bool) {
	for _, c := range f.chunks {
		if c.Type().String() == tag {
			return c, true
		}
	}
	return nil, false
}

// AppendChunk adds a chunk to the file. When the file ends with the
// IEND marker the chunk is inserted just before it, so edited files stay
// end-marker-terminated; otherwise it is appended.
func (f *File) AppendChunk(c *chunk.Chunk) {
	if n := len(f.chunks); n > 0 && f.chunks[n-1].Type().String() == endMarker {
		f.chunks = append(f.chunks[:n-1], c, f.chunks[n-1])
		return
	}
	f.chunks = append(f.chunks, c)
}

// RemoveFirstChunk removes and returns the first chunk whose tag matches.
// The tag string must be a legal tag; a missing chunk is ErrChunkNotFound.
func (f *File) RemoveFirstChunk(tag string) (*chunk.Chunk, error) {
	if _, err := chunk.ParseChunkType(tag); err != nil {
		return nil, err
	}
	for i, c := range f.chunks {
		if c.Type().String() == tag {
			f.chunks = append(f.chunks[:i], f.chunks[i+1:]...)
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrChunkNotFound, tag)
}
