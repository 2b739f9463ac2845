package loadbalance

import (
	"fmt"
	"hash/crc32"
	"sort"

	"jrpc/registry"
)

// ConsistentHashBalancer maps keys (method names) to endpoints on a hash
// ring, so the same method keeps hitting the same endpoint until the ring
// changes. Each endpoint is placed on the ring as 100 virtual nodes to
// spread load evenly.
//
// Note: Pick takes a string key rather than an endpoint list, so this
// type does not implement the Balancer interface directly. Build the ring
// with Add, then route per call with Pick(method).
type ConsistentHashBalancer struct {
	replicas int
	ring     []uint32                     // sorted hash values on the ring
	nodes    map[uint32]registry.Endpoint // hash value → endpoint
}

// NewConsistentHashBalancer creates an empty ring with 100 virtual nodes
// per endpoint.
func NewConsistentHashBalancer() *ConsistentHashBalancer {
	return &ConsistentHashBalancer{
		replicas: 100,
		nodes:    make(map[uint32]registry.Endpoint),
	}
}

// Add places an endpoint onto the ring. Each virtual node hashes
// "{host}#{i}" to scatter the endpoint across the ring.
func (b *ConsistentHashBalancer) Add(ep registry.Endpoint) {
	for i := 0; i < b.replicas; i++ {
		hash := crc32.ChecksumIEEE([]byte(fmt.Sprintf("%s#%d", ep.Host, i)))
		b.ring = append(b.ring, hash)
		b.nodes[hash] = ep
	}
	sort.Slice(b.ring, func(i, j int) bool {
		return b.ring[i] < b.ring[j]
	})
}

// Pick finds the endpoint responsible for the key: binary search for the
// first node at or past the key's hash, wrapping to the start of the ring.
func (b *ConsistentHashBalancer) Pick(key string) (*registry.Endpoint, error) {
	if len(b.ring) == 0 {
		return nil, fmt.Errorf("no endpoints on the ring")
	}

	hash := crc32.ChecksumIEEE([]byte(key))
	idx := sort.Search(len(b.ring), func(i int) bool {
		return b.ring[i] >= hash
	})
	if idx == len(b.ring) {
		idx = 0
	}

	ep := b.nodes[b.ring[idx]]
	return &ep, nil
}

func (b *ConsistentHashBalancer) Name() string {
	return "ConsistentHash"
}
