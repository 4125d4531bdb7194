// Package testkit carries the shared conformance suite every archive
// backend runs, plus an in-memory CAS for tests that need a store
// without touching the filesystem or network.
package testkit

import (
	"bytes"
	"sync"
	"testing"

	"github.com/ipfs/go-cid"

	"xdao.co/pngstash/cidutil"
	"xdao.co/pngstash/storage"
)

// Mem is a map-backed CAS. Safe for concurrent use.
type Mem struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

var _ storage.CAS = (*Mem)(nil)

// NewMem returns an empty in-memory CAS.
func NewMem() *Mem {
	return &Mem{objects: make(map[string][]byte)}
}

func (m *Mem) Put(b []byte) (cid.Cid, error) {
	id, err := cidutil.CIDv1RawSHA256CID(b)
	if err != nil {
		return cid.Undef, err
	}
	if !id.Defined() {
		return cid.Undef, storage.ErrInvalidCID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.objects[id.String()]; ok {
		if !bytes.Equal(existing, b) {
			return cid.Undef, storage.ErrImmutable
		}
		return id, nil
	}
	m.objects[id.String()] = append([]byte(nil), b...)
	return id, nil
}

func (m *Mem) Get(id cid.Cid) ([]byte, error) {
	if !id.Defined() {
		return nil, storage.ErrInvalidCID
	}
	m.mu.RLock()
	b, ok := m.objects[id.String()]
	m.mu.RUnlock()
	if !ok {
		return nil, storage.ErrNotFound
	}
	if !cidutil.Matches(id, b) {
		return nil, storage.ErrCIDMismatch
	}
	return append([]byte(nil), b...), nil
}

func (m *Mem) Has(id cid.Cid) bool {
	if !id.Defined() {
		return false
	}
	m.mu.RLock()
	_, ok := m.objects[id.String()]
	m.mu.RUnlock()
	return ok
}

// Corrupt swaps the bytes behind id without changing the key, for tests
// that need to prove verify-on-read works.
func (m *Mem) Corrupt(id cid.Cid, b []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[id.String()] = append([]byte(nil), b...)
}

// NewCAS constructs a fresh, empty CAS for one subtest. Implementations
// must be isolated from each other.
type NewCAS func(t *testing.T) storage.CAS

// RunCASConformance drives the archive CAS contract against a backend.
// Every backend package runs this from its own tests.
func RunCASConformance(t *testing.T, newCAS NewCAS) {
	t.Helper()

	t.Run("PutGetRoundTrip", func(t *testing.T) {
		cas := newCAS(t)
		want := []byte("snapshot of a file about to be rewritten")

		id, err := cas.Put(want)
		if err != nil {
			t.Fatalf("Put: %v", err)
		}
		wantID, err := cidutil.CIDv1RawSHA256CID(want)
		if err != nil {
			t.Fatalf("CIDv1RawSHA256CID: %v", err)
		}
		if !id.Equals(wantID) {
			t.Fatalf("Put CID: got %s want %s", id, wantID)
		}

		got, err := cas.Get(id)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("Get bytes mismatch")
		}
	})

	t.Run("BinaryPayloadRoundTrip", func(t *testing.T) {
		cas := newCAS(t)
		// Archive objects are container files and raw payloads: full
		// byte range, embedded NULs, no text assumptions.
		want := []byte{137, 80, 78, 71, 13, 10, 26, 10, 0x00, 0xFF, 0x7F, 0x80, 0x00}

		id, err := cas.Put(want)
		if err != nil {
			t.Fatalf("Put: %v", err)
		}
		got, err := cas.Get(id)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("binary bytes mismatch: got %v want %v", got, want)
		}
	})

	t.Run("PutIdempotent", func(t *testing.T) {
		cas := newCAS(t)
		b := []byte("same bytes twice")

		id1, err := cas.Put(b)
		if err != nil {
			t.Fatalf("Put(1): %v", err)
		}
		id2, err := cas.Put(b)
		if err != nil {
			t.Fatalf("Put(2): %v", err)
		}
		if !id1.Equals(id2) {
			t.Fatalf("Put not idempotent: %s vs %s", id1, id2)
		}
	})

	t.Run("HasAndNotFound", func(t *testing.T) {
		cas := newCAS(t)
		b := []byte("never stored")
		id, err := cidutil.CIDv1RawSHA256CID(b)
		if err != nil {
			t.Fatalf("CIDv1RawSHA256CID: %v", err)
		}

		if cas.Has(id) {
			t.Fatalf("Has true for missing CID")
		}
		if _, err := cas.Get(id); !storage.IsNotFound(err) {
			t.Fatalf("Get missing: got %v want ErrNotFound", err)
		}

		if _, err := cas.Put(b); err != nil {
			t.Fatalf("Put: %v", err)
		}
		if !cas.Has(id) {
			t.Fatalf("Has false after Put")
		}
	})

	t.Run("RejectUndefCID", func(t *testing.T) {
		cas := newCAS(t)
		var undef cid.Cid
		if cas.Has(undef) {
			t.Fatalf("Has must be false for undefined CID")
		}
		if _, err := cas.Get(undef); err == nil {
			t.Fatalf("Get must fail for undefined CID")
		}
	})
}
