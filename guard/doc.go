// Package guard provides the two route guards of the admin shell:
// authentication ([RequireAuth]) and permission ([RequirePermission]).
//
// # Guards
//
//   - [RequireAuth] — token present or silent replace-redirect to login.
//   - [RequirePermission] — additionally requires a permission key; denial
//     shows one notification and redirects to the home route, since the
//     operator is authenticated but under-privileged.
//
// Both evaluate synchronously against in-memory session state and never
// perform I/O on the render path, so a guarded view either renders or
// redirects with no intermediate flash of privileged content. An empty
// not-yet-fetched permission set denies (fail closed).
//
// # Architecture boundaries
//
// Guards read the session and call the injected [Navigator] and [Notifier]
// ports. They never mutate session state — teardown belongs to the
// unauthorized sink.
//
// # What this package must NOT do
//
//   - Issue network requests.
//   - Clear or write session state.
//   - Duplicate the capability rule (delegates to the session's Can).
package guard
