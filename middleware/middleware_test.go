package middleware

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// echoSend answers every exchange with a fixed response.
func echoSend(_ context.Context, _, _, _ string) (string, error) {
	return "ok", nil
}

func TestChainOrder(t *testing.T) {
	var trace []string
	tag := func(name string) Middleware {
		return func(next SendFunc) SendFunc {
			return func(ctx context.Context, host, path, body string) (string, error) {
				trace = append(trace, name)
				return next(ctx, host, path, body)
			}
		}
	}

	send := Chain(tag("A"), tag("B"), tag("C"))(echoSend)
	if _, err := send(context.Background(), "h", "/", "{}"); err != nil {
		t.Fatal(err)
	}

	want := []string{"A", "B", "C"}
	for i := range want {
		if trace[i] != want[i] {
			t.Fatalf("chain order mismatch: got %v, want %v", trace, want)
		}
	}
}

func TestLogging(t *testing.T) {
	send := Logging(zerolog.Nop())(echoSend)
	resp, err := send(context.Background(), "h", "/", "{}")
	if err != nil {
		t.Fatal(err)
	}
	if resp != "ok" {
		t.Fatalf("expect response to pass through, got %q", resp)
	}
}

func TestRetryTransient(t *testing.T) {
	attempts := 0
	flaky := func(_ context.Context, _, _, _ string) (string, error) {
		attempts++
		if attempts < 3 {
			return "", errors.New("connection refused")
		}
		return "ok", nil
	}

	send := Retry(3, time.Millisecond)(flaky)
	resp, err := send(context.Background(), "h", "/", "{}")
	if err != nil {
		t.Fatal(err)
	}
	if resp != "ok" || attempts != 3 {
		t.Fatalf("expect success on attempt 3, got resp=%q attempts=%d", resp, attempts)
	}
}

func TestRetryNonRetryable(t *testing.T) {
	attempts := 0
	failing := func(_ context.Context, _, _, _ string) (string, error) {
		attempts++
		return "", fmt.Errorf("received status code: 500")
	}

	send := Retry(3, time.Millisecond)(failing)
	if _, err := send(context.Background(), "h", "/", "{}"); err == nil {
		t.Fatal("expect error")
	}
	if attempts != 1 {
		t.Fatalf("non-retryable error should not be retried, got %d attempts", attempts)
	}
}

func TestTimeoutExceeded(t *testing.T) {
	slow := func(ctx context.Context, _, _, _ string) (string, error) {
		select {
		case <-time.After(200 * time.Millisecond):
			return "ok", nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	send := Timeout(20 * time.Millisecond)(slow)
	if _, err := send(context.Background(), "h", "/", "{}"); err == nil {
		t.Fatal("expect timeout error")
	}
}

func TestTimeoutPass(t *testing.T) {
	send := Timeout(500 * time.Millisecond)(echoSend)
	if _, err := send(context.Background(), "h", "/", "{}"); err != nil {
		t.Fatalf("expect no error, got %v", err)
	}
}

func TestRateLimit(t *testing.T) {
	// rate=1/s, burst=2: first two pass, third rejected.
	send := RateLimit(1, 2)(echoSend)

	for i := 0; i < 2; i++ {
		if _, err := send(context.Background(), "h", "/", "{}"); err != nil {
			t.Fatalf("request %d should pass, got %v", i, err)
		}
	}

	_, err := send(context.Background(), "h", "/", "{}")
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("request 3 should be rate limited, got %v", err)
	}
}
