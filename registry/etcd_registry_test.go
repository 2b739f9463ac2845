package registry

import (
	"net"
	"testing"
	"time"
)

const etcdAddr = "127.0.0.1:2379"

// requireEtcd skips registry tests when no local etcd is listening.
func requireEtcd(t *testing.T) {
	t.Helper()
	conn, err := net.DialTimeout("tcp", etcdAddr, 200*time.Millisecond)
	if err != nil {
		t.Skipf("etcd not reachable at %s: %v", etcdAddr, err)
	}
	conn.Close()
}

func TestRegisterAndDiscover(t *testing.T) {
	requireEtcd(t)

	reg, err := NewEtcdRegistry([]string{etcdAddr})
	if err != nil {
		t.Fatal(err)
	}

	ep1 := Endpoint{Host: "127.0.0.1:8001", Path: "/rpc", Weight: 10, Version: "1.0"}
	ep2 := Endpoint{Host: "127.0.0.1:8002", Path: "/rpc", Weight: 5, Version: "1.0"}

	if err := reg.Register("math", ep1, 10); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register("math", ep2, 10); err != nil {
		t.Fatal(err)
	}

	endpoints, err := reg.Discover("math")
	if err != nil {
		t.Fatal(err)
	}
	if len(endpoints) != 2 {
		t.Fatalf("expect 2 endpoints, got %d", len(endpoints))
	}

	// Deregister one and discover again.
	if err := reg.Deregister("math", ep1.Host); err != nil {
		t.Fatal(err)
	}
	endpoints, err = reg.Discover("math")
	if err != nil {
		t.Fatal(err)
	}
	if len(endpoints) != 1 {
		t.Fatalf("expect 1 endpoint after deregister, got %d", len(endpoints))
	}
	if endpoints[0].Host != ep2.Host {
		t.Errorf("wrong endpoint remained: %v", endpoints[0])
	}

	if err := reg.Deregister("math", ep2.Host); err != nil {
		t.Fatal(err)
	}
}
