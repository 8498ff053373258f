package mock

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
)

// ResendServer stands in for the Resend HTTP API. It records every request
// body it receives and answers with a configurable status.
type ResendServer struct {
	mu       sync.Mutex
	server   *httptest.Server
	requests map[string][]map[string]any
	status   map[string]int
	sent     int
}

func NewResendServer() *ResendServer {
	r := &ResendServer{
		requests: map[string][]map[string]any{},
		status:   map[string]int{},
	}
	r.server = httptest.NewServer(http.HandlerFunc(r.handle))
	return r
}

func (r *ResendServer) handle(w http.ResponseWriter, req *http.Request) {
	key := req.Method + req.URL.Path

	body, _ := io.ReadAll(req.Body)
	var request map[string]any
	_ = json.Unmarshal(body, &request)
	if request == nil {
		request = map[string]any{}
	}

	r.mu.Lock()
	r.requests[key] = append(r.requests[key], request)
	status, ok := r.status[key]
	if !ok {
		status = http.StatusOK
	}
	r.sent++
	id := fmt.Sprintf("resend-%d", r.sent)
	r.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if status >= http.StatusBadRequest {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"statusCode": status,
			"name":       "validation_error",
			"message":    "invalid recipient address",
		})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"id": id})
}

// Client returns an HTTP client that delivers every request to the mock
// server regardless of the host it names.
func (r *ResendServer) Client() *http.Client {
	target, _ := url.Parse(r.server.URL)
	return &http.Client{Transport: rewriteTransport{target: target}}
}

func (r *ResendServer) SetStatus(method, path string, status int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status[method+path] = status
}

func (r *ResendServer) Requests(method, path string) []map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]map[string]any(nil), r.requests[method+path]...)
}

func (r *ResendServer) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = map[string][]map[string]any{}
	r.status = map[string]int{}
	r.sent = 0
}

type rewriteTransport struct {
	target *url.URL
}

func (t rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	out.URL.Scheme = t.target.Scheme
	out.URL.Host = t.target.Host
	out.Host = t.target.Host
	return http.DefaultTransport.RoundTrip(out)
}
