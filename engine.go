package goGuard

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/MrEthical07/goGuard/api"
	"github.com/MrEthical07/goGuard/guard"
	"github.com/MrEthical07/goGuard/internal/flows"
	"github.com/MrEthical07/goGuard/nav"
	"github.com/MrEthical07/goGuard/permission"
	"github.com/MrEthical07/goGuard/session"
	"github.com/MrEthical07/goGuard/tokeninfo"
)

// Engine is the session context object for one running admin shell: it owns
// the session store, the intercepted HTTP client, the typed API client, and
// the login/logout/teardown flows. Construct it through [Builder.Build];
// there is no ambient global instance.
type Engine struct {
	config    Config
	store     *session.Store
	registry  *permission.Registry
	api       *api.Client
	http      *http.Client
	navigator guard.Navigator
	notifier  guard.Notifier
	audit     *auditDispatcher
	metrics   *Metrics

	loginInFlight atomic.Bool
}

// Close flushes and stops the audit dispatcher.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped reports audit events dropped under dispatcher backpressure.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot returns a point-in-time copy of all metrics.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

// Store exposes the session store for hosts wiring their own guard or menu
// instances. The store is the single shared mutable resource; treat it as
// read-only outside the engine flows.
func (e *Engine) Store() *session.Store {
	return e.store
}

// HTTPClient returns the intercepted client. Every request issued through
// it carries the bearer token and Accept-Language headers, and any 401
// tears the session down. Page-level data fetching must use this client.
func (e *Engine) HTTPClient() *http.Client {
	return e.http
}

// Token returns the bearer token and whether a session is active.
func (e *Engine) Token() (string, bool) {
	return e.store.Token()
}

// Can evaluates the capability rule for a permission key.
func (e *Engine) Can(key string) bool {
	return e.store.Can(key)
}

// Snapshot returns a consistent copy of the session state.
func (e *Engine) Snapshot() SessionSnapshot {
	return e.store.Snapshot()
}

// Locale returns the active display locale.
func (e *Engine) Locale() string {
	return e.store.Locale()
}

// SetLocale persists the display locale. Locale is independent of the
// session: it survives logout and teardown.
func (e *Engine) SetLocale(ctx context.Context, locale string) error {
	if err := e.store.SetLocale(ctx, locale); err != nil {
		return err
	}
	e.metricInc(MetricLocaleChanged)
	return nil
}

// SessionInfo peeks at the current token's claims for profile display.
// Returns [ErrUnauthenticated] without a session and [tokeninfo.ErrNotJWT]
// for opaque tokens.
func (e *Engine) SessionInfo() (SessionInfo, error) {
	token, ok := e.store.Token()
	if !ok {
		return SessionInfo{}, ErrUnauthenticated
	}
	return tokeninfo.Peek(token)
}

// Subscribe registers a session observer; see [session.Store.Subscribe].
func (e *Engine) Subscribe(fn func(SessionSnapshot)) func() {
	return e.store.Subscribe(fn)
}

// LintKeys checks permission keys used by guards or menu entries against
// the registered catalog. Without a catalog (no [Builder.WithPermissionKeys])
// it only checks the key shape.
func (e *Engine) LintKeys(keys []string) error {
	if e.registry != nil {
		return e.registry.Lint(keys)
	}
	var errs []error
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := permission.ValidateKey(key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// guardConfig assembles the guard wiring shared by RequireAuth and
// RequirePermission.
func (e *Engine) guardConfig() guard.Config {
	return guard.Config{
		Store:      e.store,
		Navigator:  e.navigator,
		Notifier:   e.notifier,
		LoginRoute: e.config.Routes.Login,
		HomeRoute:  e.config.Routes.Home,
		OnDecision: func(outcome guard.Outcome) {
			switch outcome {
			case guard.OutcomeAllowed:
				e.metricInc(MetricGuardAllowed)
			case guard.OutcomeRedirectLogin:
				e.metricInc(MetricGuardRedirectLogin)
			case guard.OutcomeRedirectHome:
				e.metricInc(MetricGuardDenied)
			}
		},
	}
}

// RequireAuth wraps a view with the authentication guard.
func (e *Engine) RequireAuth(next guard.Handler) guard.Handler {
	return guard.RequireAuth(e.guardConfig(), next)
}

// RequirePermission wraps a view with the permission guard for key. The
// denial audit event carries the invocation context so request-scoped
// values (see [WithRequestID]) stay attached to the record.
func (e *Engine) RequirePermission(key string, next guard.Handler) guard.Handler {
	return func(ctx context.Context) error {
		cfg := e.guardConfig()
		base := cfg.OnDecision
		cfg.OnDecision = func(outcome guard.Outcome) {
			base(outcome)
			if outcome == guard.OutcomeRedirectHome {
				e.auditEmit(ctx, AuditEvent{
					EventType:     AuditGuardDenied,
					PermissionKey: key,
				})
			}
		}
		return guard.RequirePermission(cfg, key, next)(ctx)
	}
}

// VisibleMenu filters menu entries for the current session.
func (e *Engine) VisibleMenu(menu *nav.Menu) []nav.Entry {
	return menu.Visible(e.store)
}

// OnUnauthorized implements the transport's unauthorized sink: any 401
// anywhere tears the session down and navigates to login. Idempotent under
// concurrent invalidation signals.
func (e *Engine) OnUnauthorized(ctx context.Context) {
	flows.RunUnauthorized(ctx, flows.UnauthorizedDeps{
		ClearSession: e.store.Clear,
		Navigate:     e.navigator.Replace,
		LoginRoute:   e.config.Routes.Login,
		OnClearError: func(err error) {
			e.metricInc(MetricSessionClearError)
		},
		OnTeardown: func() {
			e.metricInc(MetricUnauthorizedTeardown)
			e.auditEmit(ctx, AuditEvent{EventType: AuditSessionTeardown, Success: true})
		},
	})
}
