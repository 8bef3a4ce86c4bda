// Package session provides the durable, observable session store for goGuard:
// one bearer token, one permission-key set, and one display locale per
// running application.
//
// # Storage slots
//
// State persists through a [Storage] implementation as three independent
// string slots: the raw token, a JSON array of permission keys, and the
// locale code. [MemoryStorage], [FileStorage], and [RedisStorage] are
// provided. Clearing a session removes the first two slots and never the
// locale.
//
// # Failure semantics
//
// Reads fail closed: a missing or malformed permissions slot hydrates as the
// empty set, which denies every capability check. Hydration never returns a
// parse error to the caller.
//
// # Architecture boundaries
//
// This package owns session state and its persistence. It does NOT issue
// network requests, interpret tokens, or decide navigation — those belong to
// the transport, tokeninfo, and guard packages.
//
// # What this package must NOT do
//
//   - Import goGuard, transport, or guard (no upward imports).
//   - Perform I/O on the read path after hydration.
//   - Keep permissions alive after the token is gone.
package session
