// Package goGuard provides the client-side session and authorization core
// for admin front-ends of the bilingual CMS backend: a durable bearer-token
// session with a cached permission set, route guards and menu filtering
// built on one capability rule, and an HTTP pipeline that attaches
// credentials to every request and tears the session down on any 401.
//
// The package is designed for event-driven UI shells: guard evaluation is
// synchronous and memory-only, and every session mutation notifies
// dependents before the mutating call returns. Engine methods are safe to
// call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// goGuard is the public surface. It exposes [Engine], [Builder], [Config],
// and value types (Credentials, SessionInfo, MetricsSnapshot, etc.). Flow
// orchestration, metric storage, and audit dispatch live under internal/
// and are never exported. Session, guard, nav, transport, and api are
// importable building blocks for hosts that wire their own shells.
//
// # What this package must NOT do
//
//   - Validate tokens or evaluate permissions server-side (the backend is
//     authoritative; the client reacts to 401s).
//   - Expose storage backends or wire-protocol details in its public API.
//   - Import any sub-package that re-imports goGuard (no import cycles).
//
// # Teardown contract
//
// Token and permissions always clear together, and a clear is idempotent:
// concurrent 401s and an explicit logout race to exactly one effective
// teardown, one notification, one navigation.
package goGuard
