package logging

import (
	"context"

	"github.com/rs/zerolog"
)

type contextKey string

const (
	traceIDKey contextKey = "trace_id"
	userIDKey  contextKey = "user_id"
)

// WithTraceID stores the request trace id so that Ctx can attach it.
func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceIDKey, id)
}

// WithUserID stores the authenticated user id.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

func TraceIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(traceIDKey).(string)
	return id
}

// Ctx returns the global logger enriched with trace_id and user_id from ctx.
func Ctx(ctx context.Context) *zerolog.Logger {
	l := Logger()
	if ctx == nil {
		return &l
	}
	c := l.With()
	if id := TraceIDFromContext(ctx); id != "" {
		c = c.Str("trace_id", id)
	}
	if uid, _ := ctx.Value(userIDKey).(string); uid != "" {
		c = c.Str("user_id", uid)
	}
	l = c.Logger()
	return &l
}
