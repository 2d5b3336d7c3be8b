package testutil

import (
	"context"
	"io"
	"net/http"
	"strings"

	relayhttp "github.com/brendan.keane/toastsms/internal/http"
	"github.com/stretchr/testify/mock"
)

// MockHTTPClient records requests and answers with a canned response
type MockHTTPClient struct {
	Response *http.Response
	Error    error
	Requests []*http.Request
}

// Do implements the HTTPClientProvider interface
func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	m.Requests = append(m.Requests, req)
	return m.Response, m.Error
}

// NewMockHTTPClient creates a mock HTTP client with the given response and error
func NewMockHTTPClient(body string, statusCode int, headers map[string]string, err error) *MockHTTPClient {
	var resp *http.Response
	if err == nil {
		resp = &http.Response{
			StatusCode: statusCode,
			Body:       io.NopCloser(strings.NewReader(body)),
			Header:     make(http.Header),
		}
		for key, value := range headers {
			resp.Header.Set(key, value)
		}
	}

	return &MockHTTPClient{
		Response: resp,
		Error:    err,
		Requests: make([]*http.Request, 0),
	}
}

// MockFetcher is a testify mock of relayhttp.MessageFetcher
type MockFetcher struct {
	mock.Mock
}

// GetMessage records the call and returns the configured result
func (m *MockFetcher) GetMessage(ctx context.Context, req relayhttp.MessageRequest) (*relayhttp.Message, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*relayhttp.Message), args.Error(1)
}

// JSONMessage builds a successful Message with a JSON body
func JSONMessage(body string) *relayhttp.Message {
	return &relayhttp.Message{
		StatusCode:  http.StatusOK,
		ContentType: "application/json",
		Header:      http.Header{"Content-Type": []string{"application/json"}},
		Body:        []byte(body),
	}
}
