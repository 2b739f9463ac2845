// Package transport implements the byte transport collaborator: one
// request/response exchange carrying a single JSON value as UTF-8 text.
//
// The message layer never touches the network directly. It hands the
// encoded envelope to a Transport and gets response text back; deadlines,
// retries and connection management are this layer's problem (or the
// middleware wrapped around it), never the envelope builder's.
package transport

import "context"

// Transport performs one exchange: POST the body to host+path and return
// the response text. An empty response means no content (a notification
// answered with 204, for instance).
type Transport interface {
	Send(ctx context.Context, host, path, body string) (string, error)
}

// Recorder is an in-memory Transport double for tests. It appends every
// outbound body to Requests and answers via Handler, or with empty text
// when no Handler is set.
type Recorder struct {
	Requests []string
	Handler  func(body string) (string, error)
}

func (r *Recorder) Send(_ context.Context, _, _, body string) (string, error) {
	r.Requests = append(r.Requests, body)
	if r.Handler != nil {
		return r.Handler(body)
	}
	return "", nil
}
