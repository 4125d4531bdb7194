package png

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"xdao.co/pngstash/chunk"
)

func TestReader_StreamsChunksInOrder(t *testing.T) {
	f := sampleFile(t)
	r, err := NewReader(bytes.NewReader(f.Bytes()))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	var tags []string
	for {
		c, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		tags = append(tags, c.Type().String())
	}
	want := []string{"IHDR", "FrSt", "miDl", "IEND"}
	if len(tags) != len(want) {
		t.Fatalf("chunk count: got %v want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("chunk %d: got %s want %s", i, tags[i], want[i])
		}
	}
}

func TestReader_BadSignature(t *testing.T) {
	_, err := NewReader(bytes.NewReader([]byte("definitely not a png")))
	if !errors.Is(err, ErrBadSignature) {
		t.Fatalf("expected ErrBadSignature, got %v", err)
	}
	_, err = NewReader(bytes.NewReader(Signature()[:3]))
	if !errors.Is(err, ErrBadSignature) {
		t.Fatalf("expected ErrBadSignature for short input, got %v", err)
	}
}

func TestReader_EmptyFile(t *testing.T) {
	r, err := NewReader(bytes.NewReader(Signature()))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if _, err := r.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestReader_MaxChunkLength(t *testing.T) {
	big := mustChunk(t, "BiGg", bytes.Repeat([]byte{'a'}, 32))
	stream := append(Signature(), big.Bytes()...)

	r, err := NewReader(bytes.NewReader(stream), WithMaxChunkLength(16))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	_, err = r.Next()
	if !errors.Is(err, ErrChunkTooLarge) {
		t.Fatalf("expected ErrChunkTooLarge, got %v", err)
	}

	// The same stream passes with the cap above the payload size.
	r, err = NewReader(bytes.NewReader(stream), WithMaxChunkLength(32))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if _, err := r.Next(); err != nil {
		t.Fatalf("Next under cap: %v", err)
	}
}

func TestReader_HostileLengthFieldRejectedBeforeAllocation(t *testing.T) {
	var head [8]byte
	binary.BigEndian.PutUint32(head[:4], 0xFFFFFFFF)
	copy(head[4:], "HuGe")
	stream := append(Signature(), head[:]...)

	r, err := NewReader(bytes.NewReader(stream))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	_, err = r.Next()
	if !errors.Is(err, ErrChunkTooLarge) {
		t.Fatalf("expected ErrChunkTooLarge, got %v", err)
	}
}

func TestReader_TruncatedMidChunk(t *testing.T) {
	data := sampleFile(t).Bytes()
	r, err := NewReader(bytes.NewReader(data[:len(data)-5]))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	var lastErr error
	for {
		_, err := r.Next()
		if err != nil {
			lastErr = err
			break
		}
	}
	if !chunk.IsKind(lastErr, chunk.KindTruncated) {
		t.Fatalf("expected KindTruncated, got %v", lastErr)
	}
}

func TestWriter_MatchesFileBytes(t *testing.T) {
	f := sampleFile(t)

	var streamed bytes.Buffer
	w, err := NewWriter(&streamed)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.WriteFile(f); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if !bytes.Equal(streamed.Bytes(), f.Bytes()) {
		t.Fatalf("streamed bytes differ from File.Bytes")
	}

	var chunked bytes.Buffer
	w, err = NewWriter(&chunked)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	for _, c := range f.Chunks() {
		if err := w.WriteChunk(c); err != nil {
			t.Fatalf("WriteChunk: %v", err)
		}
	}
	if !bytes.Equal(chunked.Bytes(), f.Bytes()) {
		t.Fatalf("per-chunk stream differs from File.Bytes")
	}
}

func TestReader_RoundTripThroughWriter(t *testing.T) {
	f := sampleFile(t)
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.WriteFile(f); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	parsed, err := Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !bytes.Equal(parsed.Bytes(), f.Bytes()) {
		t.Fatalf("round trip mismatch")
	}
}
