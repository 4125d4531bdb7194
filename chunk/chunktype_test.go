package chunk

import (
	"errors"
	"testing"
)

func mustType(t *testing.T, s string) ChunkType {
	t.Helper()
	typ, err := ParseChunkType(s)
	if err != nil {
		t.Fatalf("ParseChunkType(%q): %v", s, err)
	}
	return typ
}

func TestParseChunkType_RoundTrip(t *testing.T) {
	typ := mustType(t, "RuSt")
	if got := typ.String(); got != "RuSt" {
		t.Fatalf("String: got %q want %q", got, "RuSt")
	}
	if got := typ.Bytes(); got != [4]byte{'R', 'u', 'S', 't'} {
		t.Fatalf("Bytes: got %v", got)
	}
}

func TestNewChunkType_MatchesParse(t *testing.T) {
	fromBytes, err := NewChunkType([4]byte{'R', 'u', 'S', 't'})
	if err != nil {
		t.Fatalf("NewChunkType: %v", err)
	}
	if fromBytes != mustType(t, "RuSt") {
		t.Fatalf("constructors disagree: %v vs %v", fromBytes, mustType(t, "RuSt"))
	}
}

func TestChunkType_PropertyBits(t *testing.T) {
	cases := []struct {
		tag                                       string
		critical, public, reservedValid, safeCopy bool
	}{
		{"RuSt", true, false, true, true},
		{"ruSt", false, false, true, true},
		{"RUSt", true, true, true, true},
		{"Rust", true, false, false, true},
		{"RuST", true, false, true, false},
		{"IEND", true, true, true, false},
		{"ieND", false, false, true, false},
	}
	for _, c := range cases {
		t.Run(c.tag, func(t *testing.T) {
			typ := mustType(t, c.tag)
			if got := typ.IsCritical(); got != c.critical {
				t.Errorf("IsCritical: got %v want %v", got, c.critical)
			}
			if got := typ.IsPublic(); got != c.public {
				t.Errorf("IsPublic: got %v want %v", got, c.public)
			}
			if got := typ.IsReservedBitValid(); got != c.reservedValid {
				t.Errorf("IsReservedBitValid: got %v want %v", got, c.reservedValid)
			}
			if got := typ.IsSafeToCopy(); got != c.safeCopy {
				t.Errorf("IsSafeToCopy: got %v want %v", got, c.safeCopy)
			}
		})
	}
}

func TestChunkType_IsValidTracksReservedBitOnly(t *testing.T) {
	if !mustType(t, "RuSt").IsValid() {
		t.Fatalf("expected RuSt to be valid")
	}
	// "Rust" is four legal letters, so construction succeeds, but the
	// lowercase third byte sets the reserved bit.
	typ := mustType(t, "Rust")
	if typ.IsValid() {
		t.Fatalf("expected Rust to be invalid (reserved bit set)")
	}
}

func TestParseChunkType_WrongLength(t *testing.T) {
	for _, s := range []string{"", "RuS", "RuStX", "Ruét"} {
		t.Run(s, func(t *testing.T) {
			_, err := ParseChunkType(s)
			if err == nil {
				t.Fatalf("expected error for %q", s)
			}
			if !IsKind(err, KindTagLength) {
				t.Fatalf("expected KindTagLength, got %v", err)
			}
		})
	}
}

func TestParseChunkType_IllegalByte(t *testing.T) {
	// '@', '[', '`' and '{' sit just outside the two letter ranges.
	for _, s := range []string{"Ru1t", "Ru t", "@ust", "R[st", "Ru`t", "Rus{", "Rué"} {
		t.Run(s, func(t *testing.T) {
			if len(s) != 4 {
				t.Fatalf("test case %q must be 4 bytes, got %d", s, len(s))
			}
			_, err := ParseChunkType(s)
			if err == nil {
				t.Fatalf("expected error for %q", s)
			}
			if !IsKind(err, KindTagByte) {
				t.Fatalf("expected KindTagByte, got %v", err)
			}
			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("expected structured *chunk.Error, got %T", err)
			}
		})
	}
}

func TestParseChunkType_BoundaryLettersLegal(t *testing.T) {
	if _, err := ParseChunkType("AZaz"); err != nil {
		t.Fatalf("expected AZaz to be legal, got %v", err)
	}
}
