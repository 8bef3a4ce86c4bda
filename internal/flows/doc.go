// Package flows orchestrates the session lifecycle: login, logout,
// permission refresh, and unauthorized teardown.
//
// Each flow takes a deps struct of functions supplied by the root engine.
// Flows own ordering and failure policy (what is fatal, what is swallowed);
// they perform no I/O themselves and hold no state, which keeps every path
// testable with plain function fakes.
package flows
