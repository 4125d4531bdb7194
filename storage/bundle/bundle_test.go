package bundle_test

import (
	"archive/tar"
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/ipfs/go-cid"

	"xdao.co/pngstash/cidutil"
	"xdao.co/pngstash/storage"
	"xdao.co/pngstash/storage/bundle"
	"xdao.co/pngstash/storage/localfs"
	"xdao.co/pngstash/storage/testkit"
)

func TestBundle_ExportIsDeterministic(t *testing.T) {
	cas, err := localfs.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	id1, err := cas.Put([]byte("hello"))
	if err != nil {
		t.Fatal(err)
	}
	id2, err := cas.Put([]byte("world"))
	if err != nil {
		t.Fatal(err)
	}

	var outA bytes.Buffer
	if err := bundle.Export(&outA, cas, []cid.Cid{id2, id1}, bundle.ExportOptions{IncludeIndex: true}); err != nil {
		t.Fatal(err)
	}
	var outB bytes.Buffer
	if err := bundle.Export(&outB, cas, []cid.Cid{id1, id2}, bundle.ExportOptions{IncludeIndex: true}); err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(outA.Bytes(), outB.Bytes()) {
		t.Fatalf("expected deterministic bundle bytes")
	}
}

func TestBundle_ImportRoundTrip(t *testing.T) {
	src, err := localfs.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	payload := []byte("payload")
	id, err := src.Put(payload)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	labels := map[string]cid.Cid{"snapshot.png": id}
	if err := bundle.Export(&buf, src, []cid.Cid{id}, bundle.ExportOptions{IncludeIndex: true, Labels: labels}); err != nil {
		t.Fatal(err)
	}

	dst, err := localfs.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := bundle.Import(bytes.NewReader(buf.Bytes()), dst); err != nil {
		t.Fatal(err)
	}

	got, err := dst.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("payload mismatch")
	}
}

func TestBundle_IndexListsLabels(t *testing.T) {
	cas := testkit.NewMem()
	id, err := cas.Put([]byte("labeled block"))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	err = bundle.Export(&buf, cas, []cid.Cid{id}, bundle.ExportOptions{
		IncludeIndex: true,
		Labels:       map[string]cid.Cid{"art.png": id},
	})
	if err != nil {
		t.Fatal(err)
	}

	tr := tar.NewReader(bytes.NewReader(buf.Bytes()))
	var index []byte
	for {
		h, err := tr.Next()
		if err != nil {
			break
		}
		if h.Name == "index.json" {
			index, err = io.ReadAll(tr)
			if err != nil {
				t.Fatal(err)
			}
		}
	}
	if index == nil {
		t.Fatalf("bundle missing index.json")
	}
	s := string(index)
	if !strings.Contains(s, `"art.png"`) || !strings.Contains(s, id.String()) {
		t.Errorf("index.json missing label or CID: %s", s)
	}
}

func TestBundle_ImportRejectsCIDMismatch(t *testing.T) {
	good := []byte("good")
	goodCID, err := cidutil.CIDv1RawSHA256CID(good)
	if err != nil {
		t.Fatal(err)
	}
	otherCID, err := cidutil.CIDv1RawSHA256CID([]byte("other"))
	if err != nil {
		t.Fatal(err)
	}
	if goodCID.Equals(otherCID) {
		t.Fatal("expected different CIDs")
	}

	// Name says "otherCID" but bytes are "good" => computed CID mismatch.
	bundleBytes := makeDeterministicTar(t, "blocks/"+otherCID.String(), good)

	dst := testkit.NewMem()
	if err := bundle.Import(bytes.NewReader(bundleBytes), dst); err != storage.ErrCIDMismatch {
		t.Fatalf("expected ErrCIDMismatch, got %v", err)
	}
	if dst.Has(otherCID) || dst.Has(goodCID) {
		t.Fatalf("rejected block leaked into the store")
	}
}

func TestBundle_ImportRejectsTraversal(t *testing.T) {
	payload := []byte("escape attempt")
	bundleBytes := makeDeterministicTar(t, "blocks/../../etc/passwd", payload)

	if err := bundle.Import(bytes.NewReader(bundleBytes), testkit.NewMem()); err == nil {
		t.Fatalf("expected error for traversal path")
	}
}

func TestBundle_ImportUnknownEntry(t *testing.T) {
	payload := []byte("stray file")
	bundleBytes := makeDeterministicTar(t, "notes.txt", payload)

	if err := bundle.Import(bytes.NewReader(bundleBytes), testkit.NewMem()); err == nil {
		t.Fatalf("expected error for unknown entry (fail-closed default)")
	}
	err := bundle.ImportWithOptions(bytes.NewReader(bundleBytes), testkit.NewMem(), bundle.ImportOptions{IgnoreUnknown: true})
	if err != nil {
		t.Fatalf("IgnoreUnknown import: %v", err)
	}
}

func TestBundle_ImportRejectsDuplicateBlock(t *testing.T) {
	payload := []byte("twice over")
	id, err := cidutil.CIDv1RawSHA256CID(payload)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	name := "blocks/" + id.String()
	for i := 0; i < 2; i++ {
		writeTarEntry(t, tw, name, payload)
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}

	err = bundle.Import(bytes.NewReader(buf.Bytes()), testkit.NewMem())
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate entry error, got %v", err)
	}
}

func makeDeterministicTar(t *testing.T, name string, content []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	writeTarEntry(t, tw, name, content)
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func writeTarEntry(t *testing.T, tw *tar.Writer, name string, content []byte) {
	t.Helper()

	h := &tar.Header{
		Name:     name,
		Mode:     0o644,
		Size:     int64(len(content)),
		Uid:      0,
		Gid:      0,
		Uname:    "",
		Gname:    "",
		ModTime:  time.Unix(0, 0).UTC(),
		Typeflag: tar.TypeReg,
	}
	if err := tw.WriteHeader(h); err != nil {
		t.Fatal(err)
	}
	if _, err := tw.Write(content); err != nil {
		t.Fatal(err)
	}
}
