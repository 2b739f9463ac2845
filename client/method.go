package client

import "context"

// Method is a not-yet-issued remote call: an accumulated dotted method
// path bound to a proxy. Method is a value type — Sub returns an extended
// copy, so a retained Method can never be mutated by later accesses and
// each call chain starts from a stable name.
type Method struct {
	proxy  *Proxy
	name   string
	notify bool
}

// Method starts a method path on the proxy.
func (p *Proxy) Method(name string) Method {
	return Method{proxy: p, name: name}
}

// Notifier starts a method path in the notification namespace: invoking
// it issues a notification instead of a request.
func (p *Proxy) Notifier(name string) Method {
	return Method{proxy: p, name: name, notify: true}
}

// Sub appends a path segment, returning a new Method.
func (m Method) Sub(segment string) Method {
	m.name = m.name + "." + segment
	return m
}

// Name returns the accumulated dotted method name.
func (m Method) Name() string {
	return m.name
}

// Call invokes the accumulated path with positional arguments. In the
// notification namespace the result is always nil.
func (m Method) Call(ctx context.Context, args ...any) (any, error) {
	return m.proxy.invoke(ctx, m.name, args, nil, m.notify)
}

// CallNamed invokes the accumulated path with keyword-style arguments.
func (m Method) CallNamed(ctx context.Context, kwargs map[string]any) (any, error) {
	return m.proxy.invoke(ctx, m.name, nil, kwargs, m.notify)
}

// Invoke is the general form taking both argument shapes. They are
// mutually exclusive: supplying both fails before any envelope is built.
func (m Method) Invoke(ctx context.Context, args []any, kwargs map[string]any) (any, error) {
	return m.proxy.invoke(ctx, m.name, args, kwargs, m.notify)
}
