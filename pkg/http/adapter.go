package http

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/awslabs/aws-lambda-go-api-proxy/core"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
)

// LambdaHandler serves API Gateway v2 HTTP events (and Function URL events, which share
// the wire format) through a regular http.Handler
type LambdaHandler struct {
	adapter *httpadapter.HandlerAdapterV2
}

// NewLambdaHandler wraps handler for the Lambda runtime
func NewLambdaHandler(handler http.Handler) *LambdaHandler {
	return &LambdaHandler{adapter: httpadapter.NewV2(withGatewayRequestID(handler))}
}

// Handle converts the event to an *http.Request, serves it and converts the result back
func (h *LambdaHandler) Handle(ctx context.Context, event events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	return h.adapter.ProxyWithContext(ctx, event)
}

// withGatewayRequestID uses the API Gateway request id as X-Request-Id when the caller sent none
func withGatewayRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Request-Id") == "" {
			if gw, ok := core.GetAPIGatewayV2ContextFromContext(r.Context()); ok && gw.RequestID != "" {
				r.Header.Set("X-Request-Id", gw.RequestID)
			}
		}
		next.ServeHTTP(w, r)
	})
}
