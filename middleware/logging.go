package middleware

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Logging logs every exchange: target, body size, duration, and the error
// if the exchange failed.
func Logging(logger zerolog.Logger) Middleware {
	return func(next SendFunc) SendFunc {
		return func(ctx context.Context, host, path, body string) (string, error) {
			start := time.Now()
			resp, err := next(ctx, host, path, body)
			event := logger.Debug()
			if err != nil {
				event = logger.Error().Err(err)
			}
			event.
				Str("host", host).
				Str("path", path).
				Int("bytes", len(body)).
				Dur("duration", time.Since(start)).
				Msg("jsonrpc exchange")
			return resp, err
		}
	}
}
