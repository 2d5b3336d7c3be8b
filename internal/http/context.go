package http

import "context"

type contextKey string

const requestIDKey contextKey = "request_id"

// WithRequestID stores the correlation id forwarded upstream as X-Request-Id
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the correlation id, if any
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok && id != ""
}
