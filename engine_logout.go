package goGuard

import (
	"context"

	"github.com/MrEthical07/goGuard/internal/flows"
)

// Logout ends the session. The server invalidation call is best-effort: a
// network or server failure is recorded but never blocks the local
// teardown, so Logout always leaves the client logged out and at the login
// route.
func (e *Engine) Logout(ctx context.Context) error {
	if e == nil || e.store == nil {
		return ErrEngineNotReady
	}

	flows.RunLogout(ctx, flows.LogoutDeps{
		ServerLogout: e.api.Logout,
		ClearSession: e.store.Clear,

		NotifySuccess: e.notifySuccess,
		Navigate:      e.navigator.Replace,

		LoginRoute:     e.config.Routes.Login,
		SuccessMessage: LogoutSuccessMessage,

		OnLogout: func() {
			e.metricInc(MetricLogout)
			e.auditEmit(ctx, AuditEvent{EventType: AuditLogout, Success: true})
		},
		OnServerError: func(err error) {
			e.metricInc(MetricLogoutServerError)
		},
		OnClearError: func(err error) {
			e.metricInc(MetricSessionClearError)
		},
	})
	return nil
}
