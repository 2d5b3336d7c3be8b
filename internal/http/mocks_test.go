package http

import (
	"context"
	"net/http"
)

// Mock implementations for testing

type mockError struct {
	msg string
}

func (e *mockError) Error() string {
	return e.msg
}

type mockHTTPClient struct {
	response *http.Response
	err      error
	requests []*http.Request
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	m.requests = append(m.requests, req)
	return m.response, m.err
}

type mockURLResolver struct {
	url string
	err error
}

func (m *mockURLResolver) ResolveURL(ctx context.Context, req MessageRequest) (string, error) {
	return m.url, m.err
}

type mockResponseHandler struct {
	message *Message
	err     error
}

func (m *mockResponseHandler) HandleResponse(resp *http.Response) (*Message, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.message, nil
}
