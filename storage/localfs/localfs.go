// Package localfs is the default archive backend: a sharded directory of
// immutable, read-only block files. It is offline and deterministic, so a
// snapshot directory can be copied around or diffed with ordinary tools.
package localfs

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"

	"github.com/ipfs/go-cid"

	"xdao.co/pngstash/cidutil"
	"xdao.co/pngstash/storage"
)

// CAS stores each object as blocks/<2-char shard>/<cid>, mode 0444.
// Writes stage into tmp/ and publish with an atomic rename, so a crash
// mid-write never leaves a partial object under its final name.
type CAS struct {
	root string
}

// New constructs a store rooted at root, creating the directory layout
// as needed.
func New(root string) (*CAS, error) {
	if root == "" {
		return nil, errors.New("localfs: root directory is required")
	}
	for _, dir := range []string{root, filepath.Join(root, "blocks"), filepath.Join(root, "tmp")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return &CAS{root: root}, nil
}

func (c *CAS) Put(b []byte) (cid.Cid, error) {
	id, err := cidutil.CIDv1RawSHA256CID(b)
	if err != nil {
		return cid.Undef, err
	}
	if !id.Defined() {
		return cid.Undef, storage.ErrInvalidCID
	}

	path := c.pathFor(id)
	if existing, err := os.ReadFile(path); err == nil {
		// Idempotent re-put of identical bytes; anything else means the
		// stored object was tampered with.
		if bytes.Equal(existing, b) {
			return id, nil
		}
		return cid.Undef, storage.ErrImmutable
	} else if !os.IsNotExist(err) {
		return cid.Undef, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return cid.Undef, err
	}
	if err := c.publish(path, b); err != nil {
		return cid.Undef, err
	}
	return id, nil
}

// publish writes b to a staging file, syncs it, and renames it into
// place read-only.
func (c *CAS) publish(path string, b []byte) error {
	tmp, err := os.CreateTemp(filepath.Join(c.root, "tmp"), "put-*")
	if err != nil {
		return err
	}
	defer func() {
		if tmp != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(b); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Chmod(0o444); err != nil {
		return err
	}
	name := tmp.Name()
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		tmp = nil
		return err
	}
	if err := os.Rename(name, path); err != nil {
		_ = os.Remove(name)
		tmp = nil
		return err
	}
	tmp = nil
	return nil
}

func (c *CAS) Get(id cid.Cid) ([]byte, error) {
	if !id.Defined() {
		return nil, storage.ErrInvalidCID
	}
	b, err := os.ReadFile(c.pathFor(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	if !cidutil.Matches(id, b) {
		return nil, storage.ErrCIDMismatch
	}
	return b, nil
}

func (c *CAS) Has(id cid.Cid) bool {
	if !id.Defined() {
		return false
	}
	_, err := os.Stat(c.pathFor(id))
	return err == nil
}

func (c *CAS) pathFor(id cid.Cid) string {
	s := id.String()
	if len(s) < 2 {
		return filepath.Join(c.root, "blocks", s)
	}
	return filepath.Join(c.root, "blocks", s[:2], s)
}

// Root returns the store's root directory, mainly for messages.
func (c *CAS) Root() string { return c.root }
