// Package cidutil fixes the content-identifier contract used across the
// archive: CIDv1 with the raw multicodec and a sha2-256 multihash. Every
// stored object, whether a file snapshot or a stashed payload, is keyed
// this way, so the same bytes get the same identifier in every backend.
package cidutil

import (
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// CIDv1RawSHA256 returns the identifier for data as a string.
func CIDv1RawSHA256(data []byte) string {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		// multihash.Sum only fails for unknown hash codes; SHA2_256 with
		// default length cannot.
		return ""
	}
	return cid.NewCidV1(cid.Raw, sum).String()
}

// CIDv1RawSHA256CID returns the identifier for data as a cid.Cid.
func CIDv1RawSHA256CID(data []byte) (cid.Cid, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}

// Matches reports whether data hashes to id under the archive's CID
// contract. Backends use it to verify bytes on the way in and out.
func Matches(id cid.Cid, data []byte) bool {
	got, err := CIDv1RawSHA256CID(data)
	if err != nil {
		return false
	}
	return got.Equals(id)
}
