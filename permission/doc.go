// Package permission provides the permission-key set model, the capability
// rule used by goGuard authorization checks, and a known-key registry for
// startup linting.
//
// # Capability rule
//
// [Allowed] is the single decision point shared by route guards, menu
// filtering, and inline UI conditionals. An empty key is the documented
// "unrestricted" marker and always passes; an empty set denies every
// non-empty key (fail closed).
//
// # Architecture boundaries
//
// This package is a pure in-memory data structure with no I/O. The session
// store owns persistence of the set; this package only interprets it.
//
// # What this package must NOT do
//
//   - Access storage, Redis, or the network.
//   - Import goGuard, session, or transport.
//   - Make navigation or notification decisions.
package permission
