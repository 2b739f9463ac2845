package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ContentType is the media type declared on every exchange.
const ContentType = "application/json-rpc"

const userAgent = "jrpc/1.0"

const defaultTimeout = 30 * time.Second

// HTTPTransport sends each exchange as an HTTP POST. The scheme is fixed
// at construction (http or https); the host comes in per call so one
// transport can serve registry-resolved endpoints.
type HTTPTransport struct {
	scheme string
	client *http.Client
}

// NewHTTPTransport creates a plain-HTTP transport with a 30s overall
// timeout. Connections are pooled and reused by net/http; per-call
// deadlines come from the context.
func NewHTTPTransport() *HTTPTransport {
	return &HTTPTransport{
		scheme: "http",
		client: &http.Client{Timeout: defaultTimeout},
	}
}

// NewHTTPSTransport creates a TLS transport. A nil tlsConfig uses the
// default verification behavior.
func NewHTTPSTransport(tlsConfig *tls.Config) *HTTPTransport {
	return &HTTPTransport{
		scheme: "https",
		client: &http.Client{
			Timeout:   defaultTimeout,
			Transport: &http.Transport{TLSClientConfig: tlsConfig},
		},
	}
}

// Send posts the body and returns the response text. Any non-2xx status
// is an error; the body is fully drained before close so the connection
// can be reused.
func (t *HTTPTransport) Send(ctx context.Context, host, path, body string) (string, error) {
	if path == "" {
		path = "/"
	}
	url := t.scheme + "://" + host + path

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", ContentType)
	req.Header.Set("User-Agent", userAgent)
	req.ContentLength = int64(len(body))

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to issue request: %w", err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("received status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	return string(data), nil
}

// drainAndClose reads any remaining data before closing so the underlying
// connection stays reusable.
func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
