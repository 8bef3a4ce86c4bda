package transport

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Header names the interceptor writes.
const (
	HeaderAuthorization  = "Authorization"
	HeaderAcceptLanguage = "Accept-Language"
	HeaderRequestID      = "X-Request-ID"
)

const bearerPrefix = "Bearer "

// CredentialSource is the read-only session view the interceptor consults
// per request.
type CredentialSource interface {
	// Token returns the bearer token and whether one is held.
	Token() (string, bool)
	// Locale returns the active display locale code.
	Locale() string
}

// UnauthorizedSink receives the session-invalidation signal. It is called
// once per HTTP 401 response, regardless of which endpoint produced it, and
// must itself be idempotent under concurrent calls.
type UnauthorizedSink interface {
	OnUnauthorized(ctx context.Context)
}

// UnauthorizedFunc adapts a function to [UnauthorizedSink].
type UnauthorizedFunc func(ctx context.Context)

// OnUnauthorized implements [UnauthorizedSink].
func (f UnauthorizedFunc) OnUnauthorized(ctx context.Context) { f(ctx) }

type localeOverrideKey struct{}

// WithLocale overrides the Accept-Language header for requests carrying ctx,
// without touching the persisted locale.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeOverrideKey{}, locale)
}

func localeFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	locale, ok := ctx.Value(localeOverrideKey{}).(string)
	return locale, ok && locale != ""
}

type requestIDKey struct{}

// WithRequestID pins the X-Request-ID header for requests carrying ctx,
// letting hosts correlate a UI action with every call it fans out to.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext reports the identifier pinned by [WithRequestID],
// if any.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}

// Interceptor is the request/response pipeline. It wraps a base
// RoundTripper, decorates requests with Authorization, Accept-Language, and
// X-Request-ID headers, and signals the sink on 401 responses.
type Interceptor struct {
	base  http.RoundTripper
	creds CredentialSource
	sink  UnauthorizedSink
}

// New creates an [Interceptor]. A nil base falls back to
// [http.DefaultTransport]; creds is required; a nil sink disables the 401
// signal (responses still pass through).
func New(base http.RoundTripper, creds CredentialSource, sink UnauthorizedSink) *Interceptor {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Interceptor{base: base, creds: creds, sink: sink}
}

// RoundTrip implements [net/http.RoundTripper]. The request is cloned before
// decoration, per the RoundTripper contract.
func (t *Interceptor) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())

	if token, ok := t.creds.Token(); ok {
		out.Header.Set(HeaderAuthorization, bearerPrefix+token)
	}

	locale, ok := localeFromContext(req.Context())
	if !ok {
		locale = t.creds.Locale()
	}
	out.Header.Set(HeaderAcceptLanguage, locale)

	if out.Header.Get(HeaderRequestID) == "" {
		if id, ok := RequestIDFromContext(req.Context()); ok {
			out.Header.Set(HeaderRequestID, id)
		} else {
			out.Header.Set(HeaderRequestID, uuid.NewString())
		}
	}

	resp, err := t.base.RoundTrip(out)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && t.sink != nil {
		t.sink.OnUnauthorized(req.Context())
	}

	return resp, nil
}
