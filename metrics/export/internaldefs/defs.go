package internaldefs

import (
	goGuard "github.com/MrEthical07/goGuard"
)

// CounterDef binds a metric identifier to its exported name and help text.
type CounterDef struct {
	ID   goGuard.MetricID
	Name string
	Help string
}

// HistogramDef binds a histogram identifier to its exported name and help
// text.
type HistogramDef struct {
	ID   goGuard.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter. Exporters iterate this slice so
// Prometheus and OTel stay name-for-name identical.
var CounterDefs = []CounterDef{
	{ID: goGuard.MetricLoginSuccess, Name: "goguard_login_success_total", Help: "Completed logins."},
	{ID: goGuard.MetricLoginFailure, Name: "goguard_login_failure_total", Help: "Credential exchanges the server rejected."},
	{ID: goGuard.MetricLoginRejected, Name: "goguard_login_rejected_total", Help: "Login submits rejected before reaching the server."},
	{ID: goGuard.MetricLogout, Name: "goguard_logout_total", Help: "Explicit logouts."},
	{ID: goGuard.MetricLogoutServerError, Name: "goguard_logout_server_error_total", Help: "Swallowed server-side logout failures."},
	{ID: goGuard.MetricUnauthorizedTeardown, Name: "goguard_unauthorized_teardown_total", Help: "Effective session teardowns triggered by 401 responses."},
	{ID: goGuard.MetricPermissionRefreshSuccess, Name: "goguard_permission_refresh_success_total", Help: "Applied permission fetches."},
	{ID: goGuard.MetricPermissionRefreshFailure, Name: "goguard_permission_refresh_failure_total", Help: "Failed permission fetches."},
	{ID: goGuard.MetricGuardAllowed, Name: "goguard_guard_allowed_total", Help: "Guard evaluations that rendered the guarded view."},
	{ID: goGuard.MetricGuardRedirectLogin, Name: "goguard_guard_redirect_login_total", Help: "Silent login redirects."},
	{ID: goGuard.MetricGuardDenied, Name: "goguard_guard_denied_total", Help: "Permission denials."},
	{ID: goGuard.MetricLocaleChanged, Name: "goguard_locale_changed_total", Help: "Locale toggles."},
	{ID: goGuard.MetricSessionClearError, Name: "goguard_session_clear_error_total", Help: "Durable-storage failures swallowed during session teardown."},
}

// HistogramDefs lists every exported histogram.
var HistogramDefs = []HistogramDef{
	{ID: goGuard.MetricRequestLatency, Name: "goguard_request_latency_seconds", Help: "API round-trip latency histogram."},
}

// HistogramBounds are the Prometheus le labels matching the core bucket
// layout.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"1",
	"+Inf",
}

// HistogramBoundSuffix are bound labels in instrument-name-safe form.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"1",
	"inf",
}

// NormalizeBuckets pads or truncates a raw bucket slice to the fixed width.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts to the cumulative form both
// exposition formats expect.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
