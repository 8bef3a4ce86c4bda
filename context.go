package goGuard

import (
	"context"

	"github.com/MrEthical07/goGuard/transport"
)

// WithLocale overrides the Accept-Language header for API calls carrying
// ctx, without changing the persisted locale. Useful for one-off fetches in
// the other language (e.g. previewing the Arabic copy of an English form).
func WithLocale(ctx context.Context, locale string) context.Context {
	return transport.WithLocale(ctx, locale)
}

// WithRequestID pins the X-Request-ID header for API calls carrying ctx.
// Without it each request gets a fresh generated identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	return transport.WithRequestID(ctx, id)
}
