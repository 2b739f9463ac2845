package loadbalance

import (
	"fmt"
	"math/rand"

	"jrpc/registry"
)

// WeightedRandomBalancer picks endpoints with probability proportional to
// their weight. Endpoints with no weight set count as weight 1 so a list
// of unweighted endpoints degrades to plain random choice.
type WeightedRandomBalancer struct{}

func (b *WeightedRandomBalancer) Pick(endpoints []registry.Endpoint) (*registry.Endpoint, error) {
	if len(endpoints) == 0 {
		return nil, fmt.Errorf("no endpoints available")
	}

	total := 0
	for _, ep := range endpoints {
		total += effectiveWeight(ep)
	}

	r := rand.Intn(total)
	for i := range endpoints {
		r -= effectiveWeight(endpoints[i])
		if r < 0 {
			return &endpoints[i], nil
		}
	}

	return nil, fmt.Errorf("unexpected error in weighted random selection")
}

func effectiveWeight(ep registry.Endpoint) int {
	if ep.Weight <= 0 {
		return 1
	}
	return ep.Weight
}

func (b *WeightedRandomBalancer) Name() string {
	return "WeightedRandom"
}
