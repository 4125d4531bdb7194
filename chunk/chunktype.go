package chunk

import "fmt"

// propertyBit is the per-byte case bit that encodes one tag property.
// An uppercase letter leaves the bit clear, a lowercase letter sets it.
const propertyBit = 0x20

// ChunkType is a four-byte tag that names a chunk and encodes its handling
// properties in the case of each byte.
//
// The zero value is not a legal tag; construct values with NewChunkType or
// ParseChunkType. ChunkType is comparable with ==.
type ChunkType struct {
	b [4]byte
}

// NewChunkType builds a tag from its four raw bytes. Each byte must be an
// ASCII letter (A-Z or a-z); the property bits carry no legality meaning.
func NewChunkType(b [4]byte) (ChunkType, error) {
	for i, c := range b {
		if !isTagByte(c) {
			return ChunkType{}, newError(KindTagByte,
				fmt.Sprintf("tag byte %d is 0x%02x, want an ASCII letter", i, c))
		}
	}
	return ChunkType{b: b}, nil
}

// ParseChunkType builds a tag from a string, which must be exactly four
// ASCII letters. Multi-byte runes fail the per-byte rule; they are never
// truncated or re-encoded.
func ParseChunkType(s string) (ChunkType, error) {
	if len(s) != 4 {
		return ChunkType{}, newError(KindTagLength,
			fmt.Sprintf("tag must be exactly 4 bytes, got %d", len(s)))
	}
	var b [4]byte
	copy(b[:], s)
	return NewChunkType(b)
}

// Bytes returns the four tag bytes.
func (t ChunkType) Bytes() [4]byte { return t.b }

// String returns the tag as a four-letter ASCII string.
func (t ChunkType) String() string { return string(t.b[:]) }

// IsCritical reports whether decoders must understand the chunk to make
// sense of the file (first byte uppercase).
func (t ChunkType) IsCritical() bool { return t.b[0]&propertyBit == 0 }

// IsPublic reports whether the tag belongs to the public registry
// (second byte uppercase).
func (t ChunkType) IsPublic() bool { return t.b[1]&propertyBit == 0 }

// IsReservedBitValid reports whether the reserved property bit is clear
// (third byte uppercase). Tags with the bit set are not usable under the
// current format version.
func (t ChunkType) IsReservedBitValid() bool { return t.b[2]&propertyBit == 0 }

// IsSafeToCopy reports whether an editor that does not understand the
// chunk may carry it across a rewrite (fourth byte lowercase).
func (t ChunkType) IsSafeToCopy() bool { return t.b[3]&propertyBit != 0 }

// IsValid reports whether the tag is usable under the current format
// version, which requires the reserved bit to be clear. Byte legality is
// enforced at construction and not re-checked here.
func (t ChunkType) IsValid() bool { return t.IsReservedBitValid() }

func isTagByte(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
