package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/codr1/futplan/internal/futapi"
)

// UpstreamRequest is one request seen by a fake upstream.
type UpstreamRequest struct {
	Method string
	Path   string
	Auth   string
	Body   []byte
}

// Upstream is a fake of the remote REST API that records every request.
type Upstream struct {
	URL string

	mu       sync.Mutex
	requests []UpstreamRequest
	handler  http.HandlerFunc
}

// NewUpstream starts a fake upstream answering with handler and returns a
// client pointed at it.
func NewUpstream(t *testing.T, handler http.HandlerFunc) (*Upstream, *futapi.Client) {
	t.Helper()

	u := &Upstream{handler: handler}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		u.mu.Lock()
		u.requests = append(u.requests, UpstreamRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Auth:   r.Header.Get("Authorization"),
			Body:   body,
		})
		handler := u.handler
		u.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	u.URL = server.URL

	client, err := futapi.New(server.URL)
	if err != nil {
		t.Fatalf("new upstream client: %v", err)
	}
	return u, client
}

// SetHandler swaps the response behavior mid-test.
func (u *Upstream) SetHandler(handler http.HandlerFunc) {
	u.mu.Lock()
	u.handler = handler
	u.mu.Unlock()
}

func (u *Upstream) Requests() []UpstreamRequest {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]UpstreamRequest(nil), u.requests...)
}

// Count returns how many requests matched method and path.
func (u *Upstream) Count(method, path string) int {
	n := 0
	for _, req := range u.Requests() {
		if req.Method == method && req.Path == path {
			n++
		}
	}
	return n
}

// JSON writes payload with status.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// HTMX marks req as an htmx request.
func HTMX(req *http.Request) *http.Request {
	req.Header.Set("HX-Request", "true")
	return req
}
