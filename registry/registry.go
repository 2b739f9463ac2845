// Package registry provides endpoint discovery for JSON-RPC services.
//
// A proxy can be bound to a fixed URI, or to a service name resolved
// through a Registry at call time — useful when several replicas serve the
// same JSON-RPC API behind different hosts.
package registry

// Endpoint is one reachable instance of a JSON-RPC service.
type Endpoint struct {
	Host    string // host:port the transport connects to
	Path    string // handler path, defaults to "/"
	Weight  int    // load-balancing weight
	Version string // deployment version, informational
}

// Registry is the endpoint registry interface.
type Registry interface {
	Register(service string, ep Endpoint, ttl int64) error
	Deregister(service string, host string) error
	Discover(service string) ([]Endpoint, error)
	Watch(service string) <-chan []Endpoint
}
