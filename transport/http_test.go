package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
)

func TestHTTPTransportSend(t *testing.T) {
	var gotContentType, gotContentLength, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotContentLength = strconv.FormatInt(r.ContentLength, 10)
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		io.WriteString(w, `{"result":53,"id":"x","jsonrpc":"2.0"}`)
	}))
	defer server.Close()

	u, _ := url.Parse(server.URL)
	body := `{"id":"x","method":"add","params":[3,50],"jsonrpc":"2.0"}`

	resp, err := NewHTTPTransport().Send(context.Background(), u.Host, "/", body)
	if err != nil {
		t.Fatal(err)
	}

	if gotContentType != ContentType {
		t.Errorf("content type: got %q, want %q", gotContentType, ContentType)
	}
	if gotContentLength != strconv.Itoa(len(body)) {
		t.Errorf("content length: got %s, want %d", gotContentLength, len(body))
	}
	if gotBody != body {
		t.Errorf("body mismatch: got %s", gotBody)
	}
	if resp != `{"result":53,"id":"x","jsonrpc":"2.0"}` {
		t.Errorf("response mismatch: got %s", resp)
	}
}

func TestHTTPTransportEmptyPath(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
	}))
	defer server.Close()

	u, _ := url.Parse(server.URL)
	if _, err := NewHTTPTransport().Send(context.Background(), u.Host, "", "{}"); err != nil {
		t.Fatal(err)
	}
	if gotPath != "/" {
		t.Errorf("empty path should default to /, got %q", gotPath)
	}
}

func TestHTTPTransportErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()

	u, _ := url.Parse(server.URL)
	_, err := NewHTTPTransport().Send(context.Background(), u.Host, "/", "{}")
	if err == nil {
		t.Fatal("expect error for 500 status")
	}
}

func TestHTTPTransportContextCancel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	u, _ := url.Parse(server.URL)
	if _, err := NewHTTPTransport().Send(ctx, u.Host, "/", "{}"); err == nil {
		t.Fatal("expect error for cancelled context")
	}
}

func TestRecorder(t *testing.T) {
	rec := &Recorder{Handler: func(body string) (string, error) {
		return `{"result":1,"id":"x","jsonrpc":"2.0"}`, nil
	}}

	resp, err := rec.Send(context.Background(), "example.com", "/", `{"id":"x"}`)
	if err != nil {
		t.Fatal(err)
	}
	if resp == "" {
		t.Fatal("expect handler response")
	}
	if len(rec.Requests) != 1 || rec.Requests[0] != `{"id":"x"}` {
		t.Errorf("request not recorded: %v", rec.Requests)
	}
}
