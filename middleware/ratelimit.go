package middleware

import (
	"context"
	"errors"

	"golang.org/x/time/rate"
)

// ErrRateLimited is returned when an exchange is rejected by RateLimit.
var ErrRateLimited = errors.New("rate limit exceeded")

// RateLimit rejects exchanges beyond r per second with a burst allowance,
// using a token bucket. Rejected calls fail fast rather than queue.
func RateLimit(r float64, burst int) Middleware {
	limiter := rate.NewLimiter(rate.Limit(r), burst)
	return func(next SendFunc) SendFunc {
		return func(ctx context.Context, host, path, body string) (string, error) {
			if !limiter.Allow() {
				return "", ErrRateLimited
			}
			return next(ctx, host, path, body)
		}
	}
}
