package goGuard

import (
	"context"

	"github.com/MrEthical07/goGuard/internal/flows"
)

// RefreshPermissions refetches the effective permission set and applies it
// to the session. Guards and menus observe the new set immediately. Requires
// an active session; without one the apply step fails with
// [session.ErrNoSession].
func (e *Engine) RefreshPermissions(ctx context.Context) error {
	if e == nil || e.store == nil {
		return ErrEngineNotReady
	}

	return flows.RunPermissionRefresh(ctx, flows.PermissionDeps{
		Fetch: e.api.FetchPermissions,
		Apply: e.store.SetPermissions,

		OnSuccess: func(count int) {
			e.metricInc(MetricPermissionRefreshSuccess)
			e.auditEmit(ctx, AuditEvent{
				EventType: AuditPermissionRefresh,
				Success:   true,
			})
		},
		OnFailure: func(err error) {
			e.metricInc(MetricPermissionRefreshFailure)
			e.auditEmit(ctx, AuditEvent{
				EventType: AuditPermissionRefresh,
				Error:     err.Error(),
			})
		},
	})
}
