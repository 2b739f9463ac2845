// Package client implements the caller-facing side of the message layer:
// the dynamic proxy issuing single calls and notifications, and the batch
// engine aggregating many calls into one exchange.
//
// A Proxy is configured once at construction (protocol version, codec,
// marshalling, transport, middleware) and is independent of every other
// proxy — there is no process-wide protocol state. A single Proxy or
// MultiCall instance is not safe for concurrent use; give each concurrent
// caller its own, or serialize access externally.
package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"

	"jrpc/codec"
	"jrpc/loadbalance"
	"jrpc/message"
	"jrpc/middleware"
	"jrpc/registry"
	"jrpc/transport"
)

// Proxy issues JSON-RPC calls to one service, either at a fixed host or
// resolved through a registry per call.
type Proxy struct {
	host    string
	path    string
	version message.Version

	transport   transport.Transport
	codec       codec.Codec
	marshaller  codec.Marshaller
	history     *History
	middlewares []middleware.Middleware
	logger      zerolog.Logger

	registry registry.Registry
	service  string
	balancer loadbalance.Balancer

	send middleware.SendFunc
}

// Option configures a Proxy at construction.
type Option func(*Proxy)

// WithVersion sets the protocol version envelopes are built for.
func WithVersion(v message.Version) Option {
	return func(p *Proxy) { p.version = v }
}

// WithTransport injects a transport (an encrypted one, or a test double).
func WithTransport(t transport.Transport) Option {
	return func(p *Proxy) { p.transport = t }
}

// WithCodec sets a custom text codec.
func WithCodec(c codec.Codec) Option {
	return func(p *Proxy) { p.codec = c }
}

// WithMarshaller enables object marshalling: params go through Dump before
// encoding and responses through Load after decoding.
func WithMarshaller(m codec.Marshaller) Option {
	return func(p *Proxy) { p.marshaller = m }
}

// WithHistory attaches a recorder that sees every outbound envelope and
// inbound response in call order.
func WithHistory(h *History) Option {
	return func(p *Proxy) { p.history = h }
}

// WithMiddleware wraps the send path with the given middlewares, outermost
// first.
func WithMiddleware(mw ...middleware.Middleware) Option {
	return func(p *Proxy) { p.middlewares = append(p.middlewares, mw...) }
}

// WithLogger sets the proxy logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Proxy) { p.logger = logger }
}

// WithRegistry resolves the target endpoint through a registry and
// balancer on every call instead of the fixed URI host.
func WithRegistry(reg registry.Registry, service string, b loadbalance.Balancer) Option {
	return func(p *Proxy) {
		p.registry = reg
		p.service = service
		p.balancer = b
	}
}

// NewProxy creates a proxy for the given URI. Only http and https schemes
// are supported; the path defaults to "/". The scheme picks the default
// transport unless one is injected.
func NewProxy(uri string, opts ...Option) (*Proxy, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON-RPC URI: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported JSON-RPC protocol: %q", u.Scheme)
	}

	p := &Proxy{
		host:    u.Host,
		path:    u.Path,
		version: message.DefaultVersion,
		codec:   codec.Default,
		logger:  zerolog.Nop(),
	}
	if p.path == "" {
		p.path = "/"
	}
	if u.Scheme == "https" {
		p.transport = transport.NewHTTPSTransport(nil)
	} else {
		p.transport = transport.NewHTTPTransport()
	}

	for _, opt := range opts {
		opt(p)
	}

	base := func(ctx context.Context, host, path, body string) (string, error) {
		return p.transport.Send(ctx, host, path, body)
	}
	p.send = middleware.Chain(p.middlewares...)(base)

	return p, nil
}

// Call issues a request with positional arguments and returns the
// unwrapped result.
func (p *Proxy) Call(ctx context.Context, method string, args ...any) (any, error) {
	return p.invoke(ctx, method, args, nil, false)
}

// CallNamed issues a request with keyword-style arguments.
func (p *Proxy) CallNamed(ctx context.Context, method string, kwargs map[string]any) (any, error) {
	return p.invoke(ctx, method, nil, kwargs, false)
}

// Notify issues a notification: no response is awaited and no result is
// returned. Only a local or transport failure surfaces.
func (p *Proxy) Notify(ctx context.Context, method string, args ...any) error {
	_, err := p.invoke(ctx, method, args, nil, true)
	return err
}

// NotifyNamed issues a notification with keyword-style arguments.
func (p *Proxy) NotifyNamed(ctx context.Context, method string, kwargs map[string]any) error {
	_, err := p.invoke(ctx, method, nil, kwargs, true)
	return err
}

// invoke is the single-call pipeline: bind params, build the envelope,
// encode, exchange, decode, classify, unwrap.
func (p *Proxy) invoke(ctx context.Context, method string, args []any, kwargs map[string]any, notify bool) (any, error) {
	params, err := bindParams(args, kwargs)
	if err != nil {
		return nil, err
	}

	text, err := message.Dumps(p.codec, params, message.BuildOptions{
		Method:     method,
		Version:    p.version,
		Notify:     notify,
		Marshaller: p.marshaller,
	})
	if err != nil {
		return nil, err
	}

	p.logger.Debug().Str("method", method).Bool("notify", notify).Msg("issuing request")

	respText, err := p.runRequest(ctx, text)
	if err != nil {
		return nil, err
	}
	if notify {
		return nil, nil
	}

	decoded, err := message.Loads(p.codec, p.marshaller, respText)
	if err != nil {
		return nil, err
	}
	classified, err := message.Classify(decoded)
	if err != nil {
		return nil, err
	}
	return resultOf(classified), nil
}

// runRequest performs one transport exchange through the middleware chain.
// It is shared by single calls and batch submission, so history sees both.
func (p *Proxy) runRequest(ctx context.Context, body string) (string, error) {
	host, path, err := p.endpoint()
	if err != nil {
		return "", err
	}

	if p.history != nil {
		p.history.AddRequest(body)
	}
	resp, err := p.send(ctx, host, path, body)
	if err != nil {
		return "", err
	}
	if p.history != nil {
		p.history.AddResponse(resp)
	}
	return resp, nil
}

// endpoint resolves the exchange target: the fixed URI host, or a
// balancer pick over the registry's current endpoint list.
func (p *Proxy) endpoint() (string, string, error) {
	if p.registry == nil {
		return p.host, p.path, nil
	}

	endpoints, err := p.registry.Discover(p.service)
	if err != nil {
		return "", "", err
	}
	ep, err := p.balancer.Pick(endpoints)
	if err != nil {
		return "", "", err
	}
	path := ep.Path
	if path == "" {
		path = "/"
	}
	return ep.Host, path, nil
}

// bindParams merges the two argument shapes into the single params value.
// Positional and keyword arguments are mutually exclusive; supplying both
// fails before any envelope is built.
func bindParams(args []any, kwargs map[string]any) (any, error) {
	if len(args) > 0 && len(kwargs) > 0 {
		return nil, &message.ValidationError{
			Reason: "cannot use both positional and keyword arguments",
		}
	}
	if len(kwargs) > 0 {
		return kwargs, nil
	}
	if args == nil {
		// A no-argument call still carries a sequence: a nil slice would
		// encode as null, and params is never null on the wire.
		return []any{}, nil
	}
	return args, nil
}

// resultOf unwraps the result member of a classified success. Pass-through
// values (no response expected) unwrap to nil.
func resultOf(classified any) any {
	if m, ok := classified.(map[string]any); ok {
		return m["result"]
	}
	if m, ok := classified.(message.Envelope); ok {
		return m["result"]
	}
	return nil
}
