package storage_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ipfs/go-cid"

	"xdao.co/pngstash/cidutil"
	"xdao.co/pngstash/storage"
	"xdao.co/pngstash/storage/testkit"
)

// failingCAS breaks every operation, standing in for a backend that is
// reachable but unhealthy.
type failingCAS struct{ err error }

func (f failingCAS) Put([]byte) (cid.Cid, error) { return cid.Undef, f.err }
func (f failingCAS) Get(cid.Cid) ([]byte, error) { return nil, f.err }
func (f failingCAS) Has(cid.Cid) bool            { return false }

func TestMultiCAS_OrderedFallback(t *testing.T) {
	first := testkit.NewMem()
	second := testkit.NewMem()
	b := []byte("only in the second store")
	id, err := second.Put(b)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	m := storage.MultiCAS{Stores: []storage.CAS{first, second}}
	got, err := m.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, b) {
		t.Fatalf("bytes mismatch")
	}
	if !m.Has(id) {
		t.Fatalf("Has: expected true via fallback")
	}
}

func TestMultiCAS_PutWritesFirstOnly(t *testing.T) {
	first := testkit.NewMem()
	second := testkit.NewMem()
	m := storage.MultiCAS{Stores: []storage.CAS{first, second}}

	id, err := m.Put([]byte("write policy first"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !first.Has(id) {
		t.Fatalf("first store missing object")
	}
	if second.Has(id) {
		t.Fatalf("second store must not receive writes")
	}
}

func TestMultiCAS_StopsOnRealError(t *testing.T) {
	boom := errors.New("backend exploded")
	healthy := testkit.NewMem()
	id, err := healthy.Put([]byte("shadowed"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	m := storage.MultiCAS{Stores: []storage.CAS{failingCAS{err: boom}, healthy}}
	if _, err := m.Get(id); !errors.Is(err, boom) {
		t.Fatalf("expected the backend error to surface, got %v", err)
	}
}

func TestMultiCAS_NotFoundWhenAbsentEverywhere(t *testing.T) {
	id, err := cidutil.CIDv1RawSHA256CID([]byte("nowhere"))
	if err != nil {
		t.Fatalf("CIDv1RawSHA256CID: %v", err)
	}
	m := storage.MultiCAS{Stores: []storage.CAS{testkit.NewMem(), testkit.NewMem()}}
	if _, err := m.Get(id); !storage.IsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReplicatingCAS_PutAllWritesEverywhere(t *testing.T) {
	a := testkit.NewMem()
	b := testkit.NewMem()
	r := storage.ReplicatingCAS{Backends: []storage.NamedCAS{
		{Name: "a", CAS: a},
		{Name: "b", CAS: b},
	}}

	payload := []byte("replicate me")
	id, perBackend, err := r.PutAll(payload)
	if err != nil {
		t.Fatalf("PutAll: %v", err)
	}
	if !a.Has(id) || !b.Has(id) {
		t.Fatalf("object missing from a replica")
	}
	if len(perBackend) != 2 {
		t.Fatalf("per-backend map: got %d entries want 2", len(perBackend))
	}
	for name, got := range perBackend {
		if !got.Equals(id) {
			t.Fatalf("backend %s CID: got %s want %s", name, got, id)
		}
	}
}

func TestReplicatingCAS_Conformance(t *testing.T) {
	testkit.RunCASConformance(t, func(t *testing.T) storage.CAS {
		t.Helper()
		return storage.ReplicatingCAS{Backends: []storage.NamedCAS{
			{Name: "a", CAS: testkit.NewMem()},
			{Name: "b", CAS: testkit.NewMem()},
		}}
	})
}

func TestMultiCAS_Conformance(t *testing.T) {
	testkit.RunCASConformance(t, func(t *testing.T) storage.CAS {
		t.Helper()
		return storage.MultiCAS{Stores: []storage.CAS{testkit.NewMem(), testkit.NewMem()}}
	})
}
