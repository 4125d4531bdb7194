// Package chunk implements the length-prefixed, checksummed record that
// PNG-style container files are built from.
//
// # Wire Layout
//
// A chunk is serialized as four fields, all integers big-endian:
//
//	Bytes 0-3:  payload length N (uint32, counts payload bytes only)
//	Bytes 4-7:  chunk type (four ASCII letters)
//	Bytes 8..:  payload (N bytes, arbitrary)
//	Last 4:     CRC-32 over type and payload (not the length field)
//
// The checksum is CRC-32/ISO-HDLC: reflected polynomial 0x04C11DB7 with
// 0xFFFFFFFF initial value and final XOR, i.e. crc32.IEEE from hash/crc32.
//
// # Chunk Types
//
// The four type bytes must each be an ASCII letter. Letter case carries
// meaning: bit 0x20 of each byte is a property flag, read in order as
// ancillary (clear = critical), private (clear = public), reserved (must
// be clear under this format version), and safe-to-copy (set = safe).
// Property bits are orthogonal to byte legality.
//
// # Strictness
//
// Decoding never repairs input. Parse demands exactly one well-formed
// chunk and nothing else; Read pulls one chunk off a stream and leaves
// the rest for the caller. All failures are structured *Error values
// with a stable Kind; the package never logs and never panics on input.
package chunk
