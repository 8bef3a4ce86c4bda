// Package api is the typed REST client for the CMS admin backend: credential
// exchange, best-effort logout, and the permission-set fetch.
//
// All calls go through the transport interceptor, so every request carries
// the bearer token and Accept-Language headers and every 401 reaches the
// unauthorized sink. Server error messages travel verbatim in [*APIError];
// the backend localizes them using the request locale.
//
// # Architecture boundaries
//
// This package speaks the wire protocol and nothing else. Session writes,
// notifications, and navigation happen in the flows that call it.
//
// # What this package must NOT do
//
//   - Write to the session store.
//   - Interpret 401 responses (the transport sink owns teardown).
//   - Retry or cache.
package api
