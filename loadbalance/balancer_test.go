package loadbalance

import (
	"testing"

	"jrpc/registry"
)

var testEndpoints = []registry.Endpoint{
	{Host: "10.0.0.1:8001", Weight: 10, Version: "1.0"},
	{Host: "10.0.0.2:8002", Weight: 5, Version: "1.0"},
	{Host: "10.0.0.3:8003", Weight: 10, Version: "1.0"},
}

func TestRoundRobin(t *testing.T) {
	b := &RoundRobinBalancer{}

	// Pick 3 times, should cycle through all endpoints.
	results := make([]string, 3)
	for i := 0; i < 3; i++ {
		ep, err := b.Pick(testEndpoints)
		if err != nil {
			t.Fatal(err)
		}
		results[i] = ep.Host
	}

	// Pick again, should wrap around to the first.
	ep, _ := b.Pick(testEndpoints)
	if ep.Host != results[0] {
		t.Fatalf("expect wrap around to %s, got %s", results[0], ep.Host)
	}
}

func TestRoundRobinEmpty(t *testing.T) {
	b := &RoundRobinBalancer{}
	if _, err := b.Pick([]registry.Endpoint{}); err == nil {
		t.Fatal("expect error for empty endpoint list")
	}
}

func TestWeightedRandom(t *testing.T) {
	b := &WeightedRandomBalancer{}

	// Every pick must land on one of the endpoints.
	seen := make(map[string]int)
	for i := 0; i < 200; i++ {
		ep, err := b.Pick(testEndpoints)
		if err != nil {
			t.Fatal(err)
		}
		seen[ep.Host]++
	}
	if len(seen) < 2 {
		t.Errorf("weighted random never varied: %v", seen)
	}
}

func TestWeightedRandomZeroWeights(t *testing.T) {
	b := &WeightedRandomBalancer{}
	unweighted := []registry.Endpoint{{Host: "a"}, {Host: "b"}}

	for i := 0; i < 20; i++ {
		if _, err := b.Pick(unweighted); err != nil {
			t.Fatalf("zero-weight endpoints should still pick: %v", err)
		}
	}
}

func TestWeightedRandomEmpty(t *testing.T) {
	b := &WeightedRandomBalancer{}
	if _, err := b.Pick(nil); err == nil {
		t.Fatal("expect error for empty endpoint list")
	}
}

func TestConsistentHash(t *testing.T) {
	b := NewConsistentHashBalancer()
	for _, ep := range testEndpoints {
		b.Add(ep)
	}

	// Same key maps to the same endpoint every time.
	first, err := b.Pick("math.add")
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		ep, err := b.Pick("math.add")
		if err != nil {
			t.Fatal(err)
		}
		if ep.Host != first.Host {
			t.Fatalf("key affinity broken: got %s, want %s", ep.Host, first.Host)
		}
	}
}

func TestConsistentHashEmptyRing(t *testing.T) {
	b := NewConsistentHashBalancer()
	if _, err := b.Pick("math.add"); err == nil {
		t.Fatal("expect error for empty ring")
	}
}
