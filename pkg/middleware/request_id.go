package middleware

import (
	"context"
	"net/http"
)

type contextKey string

const RequestIDKey contextKey = "request_id"

// RequestID returns the id RequestLogging attached to the request, if any.
func RequestID(r *http.Request) string {
	return requestIDFromContext(r.Context())
}

func requestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}
