package rest

import "context"

// ErrorResponse is the JSON body returned for request-level failures.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type contextKey string

const requestIdKey contextKey = "requestId"

// WithRequestId attaches a request correlation id to the context.
func WithRequestId(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIdKey, id)
}

// RequestId returns the request correlation id, or "" when none was set.
func RequestId(ctx context.Context) string {
	id, _ := ctx.Value(requestIdKey).(string)
	return id
}
