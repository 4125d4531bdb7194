package main

// Regenerates the conformance vectors under chunk/testdata/conformance.
// Each corrupt variant flips exactly one property of the reference wire
// image so the matching test can assert a single error kind.

import (
	"encoding/binary"
	"flag"
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"

	"xdao.co/pngstash/chunk"
)

const referenceMessage = "This is where your secret message will be!"

func mustChunk(tag string, payload []byte) *chunk.Chunk {
	typ, err := chunk.ParseChunkType(tag)
	if err != nil {
		panic(err)
	}
	return chunk.New(typ, payload)
}

func main() {
	outDir := flag.String("out", filepath.Join("chunk", "testdata", "conformance"), "output directory")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		panic(err)
	}
	write := func(name string, b []byte) {
		path := filepath.Join(*outDir, name)
		if err := os.WriteFile(path, b, 0o644); err != nil {
			panic(err)
		}
		fmt.Printf("wrote %s (%d bytes)\n", path, len(b))
	}

	ref := mustChunk("RuSt", []byte(referenceMessage))
	wire := ref.Bytes()

	write("reference_rust.bin", wire)
	write("reference_rust.txt", []byte(referenceMessage))
	write("reference_rust.crc", []byte(fmt.Sprintf("%d\n", ref.CRC())))

	// Stored CRC with its lowest bit flipped.
	badCRC := append([]byte(nil), wire...)
	binary.BigEndian.PutUint32(badCRC[len(badCRC)-4:], ref.CRC()^1)
	write("reference_rust.bad_crc.bin", badCRC)

	// Cut mid-payload.
	write("reference_rust.truncated.bin", append([]byte(nil), wire[:20]...))

	// One surplus byte after a complete chunk.
	write("reference_rust.trailing.bin", append(append([]byte(nil), wire...), 0x00))

	// Digit in the tag, CRC recomputed over the altered bytes, so tag
	// validation is the only thing wrong with this image.
	badTag := append([]byte(nil), wire...)
	badTag[6] = '1'
	sum := crc32.Checksum(badTag[4:len(badTag)-4], crc32.MakeTable(crc32.IEEE))
	binary.BigEndian.PutUint32(badTag[len(badTag)-4:], sum)
	write("reference_rust.bad_tag.bin", badTag)

	write("empty_test.bin", mustChunk("TeSt", nil).Bytes())
}
