package flows

import "context"

// LogoutDeps captures logout flow dependencies.
type LogoutDeps struct {
	ServerLogout func(ctx context.Context) error
	ClearSession func(ctx context.Context) (bool, error)

	NotifySuccess func(message string)
	Navigate      func(route string)

	LoginRoute     string
	SuccessMessage string

	OnLogout      func()
	OnServerError func(err error)
	OnClearError  func(err error)
}

// RunLogout invalidates the server session best-effort, then unconditionally
// clears local state and navigates to login. A server or storage failure
// never leaves the client logged in: the flow always succeeds, and swallowed
// failures are reported through OnServerError and OnClearError.
func RunLogout(ctx context.Context, deps LogoutDeps) {
	if err := deps.ServerLogout(ctx); err != nil && deps.OnServerError != nil {
		deps.OnServerError(err)
	}

	if _, err := deps.ClearSession(ctx); err != nil && deps.OnClearError != nil {
		deps.OnClearError(err)
	}

	if deps.OnLogout != nil {
		deps.OnLogout()
	}
	if deps.NotifySuccess != nil {
		deps.NotifySuccess(deps.SuccessMessage)
	}
	deps.Navigate(deps.LoginRoute)
}
