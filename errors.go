package goGuard

import "errors"

var (
	// ErrEngineNotReady is returned by Engine methods before Build completed.
	ErrEngineNotReady = errors.New("engine not initialized")
	// ErrMissingCredentials is returned by Login for an empty identifier or secret.
	ErrMissingCredentials = errors.New("identifier and secret required")
	// ErrLoginInFlight is returned by Login while a previous submit is still running.
	ErrLoginInFlight = errors.New("login already in flight")
	// ErrUnauthenticated is returned by operations that require an active session.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrPermissionDenied is returned when a capability check fails.
	ErrPermissionDenied = errors.New("permission denied")
)
