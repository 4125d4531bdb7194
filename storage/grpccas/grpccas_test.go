package grpccas

import (
	"context"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"xdao.co/pngstash/storage"
	"xdao.co/pngstash/storage/localfs"
	"xdao.co/pngstash/storage/testkit"
)

func dialBuf(t *testing.T, cas storage.CAS) *Client {
	t.Helper()

	lis := bufconn.Listen(1024 * 1024)
	srv := grpc.NewServer()
	RegisterCASServer(srv, &Server{CAS: cas})

	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	dialer := func(ctx context.Context, s string) (net.Conn, error) { return lis.Dial() }
	cc, err := grpc.DialContext(
		context.Background(),
		"bufnet",
		grpc.WithContextDialer(dialer),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("DialContext: %v", err)
	}
	t.Cleanup(func() { _ = cc.Close() })

	return &Client{cc: cc, client: NewCASClient(cc), Timeout: 2 * time.Second}
}

func TestGRPCCAS_LocalFS_RoundTrip(t *testing.T) {
	cas, err := localfs.New(t.TempDir())
	if err != nil {
		t.Fatalf("localfs.New: %v", err)
	}
	client := dialBuf(t, cas)

	payload := []byte("hello grpccas")
	id, err := client.Put(payload)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !id.Defined() {
		t.Fatalf("expected defined CID")
	}
	if !client.Has(id) {
		t.Fatalf("Has: expected true")
	}
	got, err := client.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("payload mismatch")
	}
}

func TestGRPCCAS_Conformance(t *testing.T) {
	testkit.RunCASConformance(t, func(t *testing.T) storage.CAS {
		return dialBuf(t, testkit.NewMem())
	})
}

func TestGRPCCAS_ErrorMapping(t *testing.T) {
	mem := testkit.NewMem()
	client := dialBuf(t, mem)

	id, err := client.Put([]byte("mapped errors"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	mem.Corrupt(id, []byte("swapped bytes"))
	if _, err := client.Get(id); err != storage.ErrCIDMismatch {
		t.Errorf("Get corrupted: err = %v, want ErrCIDMismatch", err)
	}
	if _, err := client.Put([]byte("mapped errors")); err != storage.ErrImmutable {
		t.Errorf("Put over corrupted: err = %v, want ErrImmutable", err)
	}

	missing, err := client.Put([]byte("soon to be queried elsewhere"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	otherClient := dialBuf(t, testkit.NewMem())
	if _, err := otherClient.Get(missing); err != storage.ErrNotFound {
		t.Errorf("Get missing: err = %v, want ErrNotFound", err)
	}
	if otherClient.Has(missing) {
		t.Errorf("Has missing: got true, want false")
	}
}
