// Package transport provides the single HTTP chokepoint for goGuard: an
// [net/http.RoundTripper] that attaches session credentials and the active
// locale to every outbound request and reports authentication failures to an
// injected sink.
//
// # Ports
//
//   - [CredentialSource] — read-only view of the session (token, locale).
//   - [UnauthorizedSink] — invoked once per HTTP 401 response.
//
// The transport never touches storage or navigation itself; the sink
// decouples it from both, so transport behavior is testable with fakes.
//
// # Architecture boundaries
//
// This package translates session state into HTTP headers and HTTP status
// into sink calls. It makes no authorization decisions and swallows no
// responses: every response, 401 included, is returned to the caller
// unmodified.
//
// # What this package must NOT do
//
//   - Import session, guard, or goGuard (ports only).
//   - Retry requests or mutate response bodies.
//   - Perform teardown itself.
package transport
