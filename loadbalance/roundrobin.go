package loadbalance

import (
	"fmt"
	"sync/atomic"

	"jrpc/registry"
)

// RoundRobinBalancer cycles through endpoints in order. The atomic counter
// keeps it lock-free and goroutine-safe.
type RoundRobinBalancer struct {
	counter int64
}

func (b *RoundRobinBalancer) Pick(endpoints []registry.Endpoint) (*registry.Endpoint, error) {
	if len(endpoints) == 0 {
		return nil, fmt.Errorf("no endpoints available")
	}
	index := atomic.AddInt64(&b.counter, 1) % int64(len(endpoints))
	return &endpoints[index], nil
}

func (b *RoundRobinBalancer) Name() string {
	return "RoundRobin"
}
