// Package storage defines the content-addressed archive substrate the
// toolkit snapshots files into before rewriting them. Backends are
// interchangeable: a snapshot taken against a local directory can be
// restored from a gRPC daemon as long as both honor the CAS contract.
package storage

import "github.com/ipfs/go-cid"

// CAS is a minimal content-addressable store keyed by CIDv1(raw, sha2-256).
//
// Contract:
//   - Put is idempotent: storing the same bytes twice returns the same CID.
//   - Stored objects are immutable; a backend must never let bytes change
//     under a CID.
//   - Get returns ErrNotFound for absent CIDs and ErrCIDMismatch when the
//     stored bytes no longer hash to the requested CID.
//   - Has is a cheap existence probe and never verifies content.
type CAS interface {
	Put(bytes []byte) (cid.Cid, error)
	Get(id cid.Cid) ([]byte, error)
	Has(id cid.Cid) bool
}
