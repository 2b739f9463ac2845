package middleware

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"
)

// Retry retries transient transport failures with exponential backoff
// (baseDelay, 2*baseDelay, 4*baseDelay, ...). Non-retryable errors and
// context cancellation return immediately.
func Retry(maxRetries int, baseDelay time.Duration) Middleware {
	return func(next SendFunc) SendFunc {
		return func(ctx context.Context, host, path, body string) (string, error) {
			resp, err := next(ctx, host, path, body)
			for i := 0; i < maxRetries && err != nil && isRetryable(err); i++ {
				select {
				case <-ctx.Done():
					return "", ctx.Err()
				case <-time.After(baseDelay * time.Duration(1<<i)):
				}
				resp, err = next(ctx, host, path, body)
			}
			return resp, err
		}
	}
}

// isRetryable reports whether an error looks like a transient connection
// failure worth another attempt.
func isRetryable(err error) bool {
	if errors.Is(err, io.EOF) {
		return true
	}
	text := err.Error()
	return strings.Contains(text, "EOF") ||
		strings.Contains(text, "connection reset") ||
		strings.Contains(text, "connection refused") ||
		strings.Contains(text, "broken pipe")
}
