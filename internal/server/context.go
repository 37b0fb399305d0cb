package server

import (
	"context"
	"net/http"
)

// contextWithRequestID attaches the request's UUID to its context.
func contextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// requestIDFrom retrieves the request UUID, or "" when untagged.
func requestIDFrom(r *http.Request) string {
	if id, ok := r.Context().Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
