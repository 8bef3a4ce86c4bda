package goGuard

import (
	"context"

	"github.com/MrEthical07/goGuard/internal/flows"
)

// Notification text keys for the login and logout flows, dot-namespaced
// like [guard.DeniedMessage]. Hosts localize them before display; server
// failure messages bypass these and surface verbatim.
const (
	LoginSuccessMessage  = "login.success"
	LogoutSuccessMessage = "logout.success"
)

// Login exchanges credentials for a session. At most one exchange runs at a
// time; a submit while another is in flight returns [ErrLoginInFlight]
// without touching the session or the backend.
//
// On success the token and permission set are persisted, a success
// notification fires, and navigation replaces to the home route. On failure
// the session is untouched and the returned error carries the server
// message verbatim when one was sent (see [api.APIError]).
func (e *Engine) Login(ctx context.Context, creds Credentials) error {
	if e == nil || e.store == nil {
		return ErrEngineNotReady
	}

	if creds.Identifier == "" || creds.Secret == "" {
		e.metricInc(MetricLoginRejected)
		return ErrMissingCredentials
	}

	if !e.loginInFlight.CompareAndSwap(false, true) {
		e.metricInc(MetricLoginRejected)
		return ErrLoginInFlight
	}
	defer e.loginInFlight.Store(false)

	return flows.RunLogin(ctx, creds.Identifier, creds.Secret, flows.LoginDeps{
		Exchange: func(ctx context.Context, identifier, secret string) (flows.LoginExchange, error) {
			resp, err := e.api.Login(ctx, Credentials{Identifier: identifier, Secret: secret})
			if err != nil {
				return flows.LoginExchange{}, err
			}
			return flows.LoginExchange{Token: resp.Token, Permissions: resp.Permissions}, nil
		},
		FetchPermissions: e.api.FetchPermissions,

		SetToken:       e.store.SetToken,
		SetPermissions: e.store.SetPermissions,

		NotifySuccess: e.notifySuccess,
		Navigate:      e.navigator.Replace,

		HomeRoute:      e.config.Routes.Home,
		SuccessMessage: LoginSuccessMessage,

		OnSuccess: func(identifier string) {
			e.metricInc(MetricLoginSuccess)
			e.auditEmit(ctx, AuditEvent{
				EventType:  AuditLoginSuccess,
				Identifier: identifier,
				Success:    true,
			})
		},
		OnFailure: func(identifier string, err error) {
			e.metricInc(MetricLoginFailure)
			e.auditEmit(ctx, AuditEvent{
				EventType:  AuditLoginFailure,
				Identifier: identifier,
				Error:      err.Error(),
			})
		},
		OnPermissionFailure: func(err error) {
			e.metricInc(MetricPermissionRefreshFailure)
		},

		Errors: flows.LoginErrors{MissingCredentials: ErrMissingCredentials},
	})
}

func (e *Engine) notifySuccess(message string) {
	if e.notifier != nil {
		e.notifier.Success(message)
	}
}
