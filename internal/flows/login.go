package flows

import "context"

// LoginExchange is the flow-local credential exchange result.
type LoginExchange struct {
	Token       string
	Permissions []string
}

// LoginEvents carries audit event names used by the login flow.
type LoginEvents struct {
	Success string
	Failure string
}

// LoginErrors carries host-level sentinel errors used by the login flow.
type LoginErrors struct {
	MissingCredentials error
}

// LoginDeps captures login flow dependencies.
type LoginDeps struct {
	Exchange         func(ctx context.Context, identifier, secret string) (LoginExchange, error)
	FetchPermissions func(ctx context.Context) ([]string, error)

	SetToken       func(ctx context.Context, token string) error
	SetPermissions func(ctx context.Context, keys []string) error

	NotifySuccess func(message string)
	Navigate      func(route string)

	HomeRoute      string
	SuccessMessage string

	OnSuccess           func(identifier string)
	OnFailure           func(identifier string, err error)
	OnPermissionFailure func(err error)

	Errors LoginErrors
}

// RunLogin performs the credential exchange and, on success, writes the
// token, loads the permission set, notifies, and navigates home.
//
// Validation stops at non-empty: the server is authoritative for credential
// format. On exchange failure the session is untouched and the error (an
// *api.APIError carrying the server message verbatim, or a transport
// error) returns to the caller for inline display.
//
// The permission set is populated before the success path completes. When
// the exchange bundles no permissions, a follow-up fetch runs; a failed
// fetch leaves the set empty, which denies every gated destination until a
// later refresh succeeds — fail closed beats failing the whole login.
func RunLogin(ctx context.Context, identifier, secret string, deps LoginDeps) error {
	if identifier == "" || secret == "" {
		return deps.Errors.MissingCredentials
	}

	exchange, err := deps.Exchange(ctx, identifier, secret)
	if err != nil {
		if deps.OnFailure != nil {
			deps.OnFailure(identifier, err)
		}
		return err
	}

	if err := deps.SetToken(ctx, exchange.Token); err != nil {
		if deps.OnFailure != nil {
			deps.OnFailure(identifier, err)
		}
		return err
	}

	keys := exchange.Permissions
	if len(keys) == 0 {
		fetched, err := deps.FetchPermissions(ctx)
		if err != nil {
			if deps.OnPermissionFailure != nil {
				deps.OnPermissionFailure(err)
			}
		} else {
			keys = fetched
		}
	}
	if len(keys) > 0 {
		if err := deps.SetPermissions(ctx, keys); err != nil && deps.OnPermissionFailure != nil {
			deps.OnPermissionFailure(err)
		}
	}

	if deps.OnSuccess != nil {
		deps.OnSuccess(identifier)
	}
	if deps.NotifySuccess != nil {
		deps.NotifySuccess(deps.SuccessMessage)
	}
	deps.Navigate(deps.HomeRoute)
	return nil
}
