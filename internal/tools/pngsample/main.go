package main

// Emits a minimal container fixture for walkthroughs and manual testing:
// signature, a zeroed 13-byte IHDR, an optional teXt chunk, and IEND.

import (
	"flag"
	"fmt"
	"os"

	"xdao.co/pngstash/chunk"
	"xdao.co/pngstash/png"
)

func mustChunk(tag string, payload []byte) *chunk.Chunk {
	typ, err := chunk.ParseChunkType(tag)
	if err != nil {
		panic(err)
	}
	return chunk.New(typ, payload)
}

func main() {
	outPath := flag.String("out", "", "output file (default stdout)")
	text := flag.String("text", "", "optional teXt payload to embed")
	flag.Parse()

	chunks := []*chunk.Chunk{mustChunk("IHDR", make([]byte, 13))}
	if *text != "" {
		chunks = append(chunks, mustChunk("teXt", []byte(*text)))
	}
	chunks = append(chunks, mustChunk("IEND", nil))

	b := png.FromChunks(chunks).Bytes()
	if *outPath == "" {
		_, _ = os.Stdout.Write(b)
		return
	}
	if err := os.WriteFile(*outPath, b, 0o644); err != nil {
		panic(err)
	}
	fmt.Printf("wrote %s (%d bytes)\n", *outPath, len(b))
}
