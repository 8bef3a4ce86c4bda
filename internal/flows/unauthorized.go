package flows

import "context"

// UnauthorizedDeps captures 401-teardown dependencies.
type UnauthorizedDeps struct {
	ClearSession func(ctx context.Context) (bool, error)
	Navigate     func(route string)

	LoginRoute string

	OnTeardown   func()
	OnClearError func(err error)
}

// RunUnauthorized handles the session-invalidation signal. The clear is
// idempotent: only the call that actually tears a session down navigates
// and reports, so concurrent 401s (or a 401 racing an explicit logout)
// produce exactly one effective teardown. In-memory state is wiped even
// when durable storage fails; that failure surfaces through OnClearError.
func RunUnauthorized(ctx context.Context, deps UnauthorizedDeps) {
	cleared, err := deps.ClearSession(ctx)
	if err != nil && deps.OnClearError != nil {
		deps.OnClearError(err)
	}
	if !cleared {
		return
	}

	if deps.OnTeardown != nil {
		deps.OnTeardown()
	}
	deps.Navigate(deps.LoginRoute)
}
