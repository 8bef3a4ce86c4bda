// Package audit provides the audit event model, sink implementations, and
// the asynchronous dispatcher goGuard uses to record session-lifecycle
// events (login, logout, teardown, guard denials).
//
// # Architecture boundaries
//
// The dispatcher decouples event producers from sink latency: Emit never
// blocks the session path when DropIfFull is set, and dropped events are
// counted rather than silently lost.
//
// # What this package must NOT do
//
//   - Import goGuard or any sibling package.
//   - Interpret events (sinks decide formatting and destination).
package audit
