// Package loadbalance selects a target endpoint when a proxy resolves its
// service through a registry.
//
// Three strategies:
//   - RoundRobin:      stateless services, equal-capacity endpoints
//   - WeightedRandom:  heterogeneous endpoints (different capacity)
//   - ConsistentHash:  method-affine routing (same method → same endpoint)
package loadbalance

import "jrpc/registry"

// Balancer picks one endpoint from the discovered list. Pick runs before
// every call, so implementations must be goroutine-safe.
type Balancer interface {
	Pick(endpoints []registry.Endpoint) (*registry.Endpoint, error)

	// Name returns the strategy name (for logging/debugging).
	Name() string
}
