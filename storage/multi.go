package storage

import (
	"errors"

	"github.com/ipfs/go-cid"
)

// MultiCAS reads from several stores with deterministic, ordered fallback.
//
// The order of Stores is the lookup order; callers supply a fixed slice so
// restore behavior never depends on map iteration. Writes go only to the
// first store; use ReplicatingCAS to write everywhere.
type MultiCAS struct {
	Stores []CAS
}

var _ CAS = MultiCAS{}

func (m MultiCAS) Put(bytes []byte) (cid.Cid, error) {
	if len(m.Stores) == 0 {
		return cid.Undef, errors.New("storage: MultiCAS has no stores")
	}
	return m.Stores[0].Put(bytes)
}

// Get tries each store in order. A store that simply lacks the object
// does not stop the search; any other failure does, since it may hide a
// copy that a later, slower store would shadow.
func (m MultiCAS) Get(id cid.Cid) ([]byte, error) {
	for _, cas := range m.Stores {
		b, err := cas.Get(id)
		if err == nil {
			return b, nil
		}
		if !IsNotFound(err) {
			return nil, err
		}
	}
	return nil, ErrNotFound
}

func (m MultiCAS) Has(id cid.Cid) bool {
	for _, cas := range m.Stores {
		if cas.Has(id) {
			return true
		}
	}
	return false
}
