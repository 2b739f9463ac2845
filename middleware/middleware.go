// Package middleware wraps the transport send path with cross-cutting
// behavior: logging, retries, deadlines, and client-side rate limiting.
//
// A Middleware wraps a SendFunc the same way HTTP middleware wraps a
// handler. Chain composes them into the onion model:
//
//	Chain(A, B, C)(send) → A(B(C(send)))
//	Execution: A.before → B.before → C.before → send → C.after → B.after → A.after
package middleware

import "context"

// SendFunc is one transport exchange: body out, response text back.
type SendFunc func(ctx context.Context, host, path, body string) (string, error)

// Middleware wraps a SendFunc with additional behavior.
type Middleware func(next SendFunc) SendFunc

// Chain combines multiple middlewares into one.
func Chain(middlewares ...Middleware) Middleware {
	return func(next SendFunc) SendFunc {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}
