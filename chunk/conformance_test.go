package chunk

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func readVector(t *testing.T, name string) []byte {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", "conformance", name))
	if err != nil {
		t.Fatalf("read vector %s: %v", name, err)
	}
	return b
}

func TestConformanceVectors_ReferenceChunk(t *testing.T) {
	wire := readVector(t, "reference_rust.bin")
	wantCRC, err := strconv.ParseUint(strings.TrimSpace(string(readVector(t, "reference_rust.crc"))), 10, 32)
	if err != nil {
		t.Fatalf("parse expected crc: %v", err)
	}
	wantText := string(readVector(t, "reference_rust.txt"))

	c, err := Parse(wire)
	if err != nil {
		t.Fatalf("Parse(reference): %v", err)
	}
	if got := c.Type().String(); got != "RuSt" {
		t.Fatalf("tag: got %q want RuSt", got)
	}
	if c.Length() != 42 {
		t.Fatalf("length: got %d want 42", c.Length())
	}
	if c.CRC() != uint32(wantCRC) {
		t.Fatalf("crc: got %d want %d", c.CRC(), wantCRC)
	}
	text, err := c.Text()
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if text != wantText {
		t.Fatalf("text: got %q want %q", text, wantText)
	}
	if !bytes.Equal(c.Bytes(), wire) {
		t.Fatalf("re-serialized bytes differ from vector")
	}

	typ := c.Type()
	if !typ.IsCritical() || typ.IsPublic() || !typ.IsReservedBitValid() || !typ.IsSafeToCopy() {
		t.Fatalf("property bits wrong for RuSt: critical=%v public=%v reserved=%v safe=%v",
			typ.IsCritical(), typ.IsPublic(), typ.IsReservedBitValid(), typ.IsSafeToCopy())
	}
}

func TestConformanceVectors_EmptyChunk(t *testing.T) {
	wire := readVector(t, "empty_test.bin")
	c, err := Parse(wire)
	if err != nil {
		t.Fatalf("Parse(empty): %v", err)
	}
	if c.Length() != 0 {
		t.Fatalf("length: got %d want 0", c.Length())
	}
	if !bytes.Equal(c.Bytes(), wire) {
		t.Fatalf("re-serialized bytes differ from vector")
	}
}

func TestConformanceVectors_CorruptRejected(t *testing.T) {
	cases := []struct {
		file string
		kind Kind
	}{
		{"reference_rust.bad_crc.bin", KindChecksum},
		{"reference_rust.truncated.bin", KindTruncated},
		{"reference_rust.trailing.bin", KindTrailing},
		{"reference_rust.bad_tag.bin", KindTagByte},
	}
	for _, c := range cases {
		t.Run(c.file, func(t *testing.T) {
			_, err := Parse(readVector(t, c.file))
			if err == nil {
				t.Fatalf("expected Parse to reject %s", c.file)
			}
			if !IsKind(err, c.kind) {
				t.Fatalf("expected %s, got %v", c.kind, err)
			}
		})
	}
}
