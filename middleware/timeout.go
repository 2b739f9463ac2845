package middleware

import (
	"context"
	"time"
)

// Timeout bounds each exchange with a context deadline. The message layer
// itself never imposes deadlines; this is where callers opt in.
func Timeout(timeout time.Duration) Middleware {
	return func(next SendFunc) SendFunc {
		return func(ctx context.Context, host, path, body string) (string, error) {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			return next(ctx, host, path, body)
		}
	}
}
