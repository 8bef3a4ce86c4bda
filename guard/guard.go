package guard

import (
	"context"

	"github.com/MrEthical07/goGuard/session"
)

// Navigator performs history-replacing navigation. Replace must not leave
// the guarded route reachable via back-navigation.
type Navigator interface {
	Replace(route string)
}

// Notifier shows transient notifications to the operator.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Handler renders a guarded view.
type Handler func(ctx context.Context) error

// Outcome is a guard decision.
type Outcome int

const (
	// OutcomeAllowed renders the guarded view.
	OutcomeAllowed Outcome = iota
	// OutcomeRedirectLogin redirects to the login route, silently.
	OutcomeRedirectLogin
	// OutcomeRedirectHome redirects to the home route after a denial
	// notification.
	OutcomeRedirectHome
)

// DeniedMessage is the denial notification text key; hosts localize it
// before display.
const DeniedMessage = "errors.permission_denied"

// Auth evaluates the authentication guard: authenticated when a token is
// held, otherwise redirect to login.
func Auth(store *session.Store) Outcome {
	if _, ok := store.Token(); !ok {
		return OutcomeRedirectLogin
	}
	return OutcomeAllowed
}

// Permission evaluates the permission guard for a required key. Without a
// token the outcome is a silent login redirect (the authentication guard
// owns messaging); with a token but no capability the outcome is a home
// redirect.
func Permission(store *session.Store, key string) Outcome {
	if _, ok := store.Token(); !ok {
		return OutcomeRedirectLogin
	}
	if !store.Can(key) {
		return OutcomeRedirectHome
	}
	return OutcomeAllowed
}

// Config carries the guard wiring: session source, navigation and
// notification ports, and the two redirect targets.
type Config struct {
	Store     *session.Store
	Navigator Navigator
	Notifier  Notifier

	LoginRoute string
	HomeRoute  string

	// OnDecision, when set, observes every guard evaluation (metrics).
	OnDecision func(Outcome)
}

// RequireAuth wraps a handler with the authentication guard.
func RequireAuth(cfg Config, next Handler) Handler {
	return func(ctx context.Context) error {
		outcome := Auth(cfg.Store)
		cfg.observe(outcome)

		if outcome == OutcomeRedirectLogin {
			cfg.Navigator.Replace(cfg.LoginRoute)
			return nil
		}
		return next(ctx)
	}
}

// RequirePermission wraps a handler with the permission guard. It assumes
// [RequireAuth] messaging already ran when both wrap the same view, so the
// no-session path stays silent.
func RequirePermission(cfg Config, key string, next Handler) Handler {
	return func(ctx context.Context) error {
		outcome := Permission(cfg.Store, key)
		cfg.observe(outcome)

		switch outcome {
		case OutcomeRedirectLogin:
			cfg.Navigator.Replace(cfg.LoginRoute)
			return nil
		case OutcomeRedirectHome:
			if cfg.Notifier != nil {
				cfg.Notifier.Error(DeniedMessage)
			}
			cfg.Navigator.Replace(cfg.HomeRoute)
			return nil
		}
		return next(ctx)
	}
}

func (cfg Config) observe(outcome Outcome) {
	if cfg.OnDecision != nil {
		cfg.OnDecision(outcome)
	}
}
