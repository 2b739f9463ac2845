package registry

import (
	"context"
	"encoding/json"

	clientv3 "go.etcd.io/etcd/client/v3"
)

const keyPrefix = "/jrpc/"

// EtcdRegistry implements Registry on etcd v3.
//
// Layout:
//
//	Key:   /jrpc/{service}/{host}
//	Value: JSON-encoded Endpoint
//
// Registration uses TTL leases: if the publisher dies, the lease expires
// and the entry disappears on its own, so stale endpoints never linger.
type EtcdRegistry struct {
	client *clientv3.Client // thread-safe, shared across goroutines
}

// NewEtcdRegistry connects to the given etcd endpoints.
func NewEtcdRegistry(endpoints []string) (*EtcdRegistry, error) {
	c, err := clientv3.New(clientv3.Config{
		Endpoints: endpoints,
	})
	if err != nil {
		return nil, err
	}
	return &EtcdRegistry{client: c}, nil
}

// Register publishes an endpoint under a TTL lease and starts background
// lease renewal. The lease id stays local so one EtcdRegistry can be
// shared by several publishers without racing.
func (r *EtcdRegistry) Register(service string, ep Endpoint, ttl int64) error {
	ctx := context.TODO()

	lease, err := r.client.Grant(ctx, ttl)
	if err != nil {
		return err
	}

	val, err := json.Marshal(ep)
	if err != nil {
		return err
	}

	_, err = r.client.Put(ctx, keyPrefix+service+"/"+ep.Host, string(val), clientv3.WithLease(lease.ID))
	if err != nil {
		return err
	}

	ch, err := r.client.KeepAlive(ctx, lease.ID)
	if err != nil {
		return err
	}

	// Drain KeepAlive responses so the channel never fills up.
	go func() {
		for range ch {
		}
	}()
	return nil
}

// Deregister removes an endpoint, typically during graceful shutdown.
func (r *EtcdRegistry) Deregister(service string, host string) error {
	_, err := r.client.Delete(context.TODO(), keyPrefix+service+"/"+host)
	return err
}

// Watch emits the full endpoint list whenever anything under the service
// prefix changes. Re-fetching the list is simpler than folding individual
// watch events.
func (r *EtcdRegistry) Watch(service string) <-chan []Endpoint {
	ctx := context.TODO()
	ch := make(chan []Endpoint, 1)
	prefix := keyPrefix + service + "/"

	go func() {
		watchChan := r.client.Watch(ctx, prefix, clientv3.WithPrefix())
		for range watchChan {
			endpoints, _ := r.Discover(service)
			ch <- endpoints
		}
	}()

	return ch
}

// Discover returns all currently registered endpoints for a service.
func (r *EtcdRegistry) Discover(service string) ([]Endpoint, error) {
	resp, err := r.client.Get(context.TODO(), keyPrefix+service+"/", clientv3.WithPrefix())
	if err != nil {
		return nil, err
	}

	endpoints := make([]Endpoint, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		var ep Endpoint
		if err := json.Unmarshal(kv.Value, &ep); err != nil {
			continue // skip malformed entries
		}
		endpoints = append(endpoints, ep)
	}
	return endpoints, nil
}
