// Package archive stores PNG snapshots and stashed payloads in a
// content-addressed store. Snapshots are whole-file blocks keyed by
// CIDv1(raw, sha2-256); payloads are stored as their own blocks so a
// message can be recovered even if the carrier file is rewritten.
package archive

import (
	"fmt"

	"github.com/ipfs/go-cid"

	"xdao.co/pngstash/chunk"
	"xdao.co/pngstash/cidutil"
	"xdao.co/pngstash/png"
	"xdao.co/pngstash/storage"
)

// ManifestVersion is the current manifest schema version.
const ManifestVersion = 1

// Snapshot validates b as a PNG file and stores it as a single block.
// Validation failures surface the png/chunk errors unchanged.
func Snapshot(cas storage.CAS, b []byte) (cid.Cid, error) {
	if cas == nil {
		return cid.Undef, fmt.Errorf("archive: nil CAS")
	}
	if _, err := png.Parse(b); err != nil {
		return cid.Undef, err
	}
	return cas.Put(b)
}

// Restore fetches a snapshot by CID and re-validates it before returning
// the bytes. A block that fetches cleanly but no longer parses as a PNG
// is an error, not a payload.
func Restore(cas storage.CAS, id cid.Cid) ([]byte, error) {
	if cas == nil {
		return nil, fmt.Errorf("archive: nil CAS")
	}
	b, err := cas.Get(id)
	if err != nil {
		return nil, err
	}
	if _, err := png.Parse(b); err != nil {
		return nil, err
	}
	return b, nil
}

// StashPayload stores a chunk's payload bytes as their own block and
// returns the payload CID.
func StashPayload(cas storage.CAS, c *chunk.Chunk) (cid.Cid, error) {
	if cas == nil {
		return cid.Undef, fmt.Errorf("archive: nil CAS")
	}
	if c == nil {
		return cid.Undef, fmt.Errorf("archive: nil chunk")
	}
	return cas.Put(c.Data())
}

// Record describes one chunk of a snapshot.
type Record struct {
	Index      int    `json:"index"`
	Type       string `json:"type"`
	Length     uint32 `json:"length"`
	CRC        uint32 `json:"crc"`
	PayloadCID string `json:"payloadCid"`
}

// Manifest describes a snapshot: the file CID plus one record per chunk.
// Payload CIDs are computed, not stored; the manifest is metadata, the
// blocks are authoritative.
type Manifest struct {
	Version int      `json:"version"`
	FileCID string   `json:"fileCid"`
	Chunks  []Record `json:"chunks"`
}

// Describe parses b as a PNG and builds its manifest without storing
// anything.
func Describe(b []byte) (Manifest, error) {
	f, err := png.Parse(b)
	if err != nil {
		return Manifest{}, err
	}

	chunks := f.Chunks()
	m := Manifest{
		Version: ManifestVersion,
		FileCID: cidutil.CIDv1RawSHA256(b),
		Chunks:  make([]Record, 0, len(chunks)),
	}
	for i, c := range chunks {
		m.Chunks = append(m.Chunks, Record{
			Index:      i,
			Type:       c.Type().String(),
			Length:     c.Length(),
			CRC:        c.CRC(),
			PayloadCID: cidutil.CIDv1RawSHA256(c.Data()),
		})
	}
	return m, nil
}
