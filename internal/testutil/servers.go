package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/go-chi/chi/v5"
)

// ToastTestServer fakes the Toast SMS get-message endpoint and records every request
type ToastTestServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []*http.Request
}

// NewToastTestServer serves /sms/v{version}/appKeys/{appKey}/sender/sms/{requestId}.
// It answers 401 unless X-Secret-Key is TestSecretKey and 404 unless the request id is TestRequestID.
func NewToastTestServer() *ToastTestServer {
	s := &ToastTestServer{}

	r := chi.NewRouter()
	r.Get("/sms/v{version}/appKeys/{appKey}/sender/sms/{requestId}", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		w.Header().Set("Content-Type", "application/json;charset=UTF-8")

		if r.Header.Get("X-Secret-Key") != TestSecretKey {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(AuthErrorResponse))
			return
		}
		if chi.URLParam(r, "requestId") != TestRequestID {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(NotFoundResponse))
			return
		}
		_, _ = w.Write([]byte(MessageResponse))
	})

	s.Server = httptest.NewServer(r)
	return s
}

func (s *ToastTestServer) record(r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, r.Clone(r.Context()))
}

// Requests returns the requests received so far
func (s *ToastTestServer) Requests() []*http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*http.Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request, or nil
func (s *ToastTestServer) LastRequest() *http.Request {
	reqs := s.Requests()
	if len(reqs) == 0 {
		return nil
	}
	return reqs[len(reqs)-1]
}

// NewClosedServerURL returns the URL of a server that is no longer listening,
// for exercising transport failures
func NewClosedServerURL() string {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return url
}
