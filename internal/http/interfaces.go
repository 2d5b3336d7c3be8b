package http

import (
	"context"
	"net/http"
)

// MessageFetcher retrieves one SMS message from the upstream API.
// This is the seam the server, CLI and MCP handlers depend on.
type MessageFetcher interface {
	GetMessage(ctx context.Context, req MessageRequest) (*Message, error)
}

// URLResolver builds the upstream URL for a request
// Separates templating from transport for better testing
type URLResolver interface {
	ResolveURL(ctx context.Context, req MessageRequest) (string, error)
}

// ResponseHandler turns an upstream response into a Message or an upstream error
type ResponseHandler interface {
	HandleResponse(resp *http.Response) (*Message, error)
}

// HTTPClientProvider defines interface for the underlying HTTP client
// Enables testing with mock HTTP clients
type HTTPClientProvider interface {
	Do(req *http.Request) (*http.Response, error)
}
