package goGuard

import (
	internalmetrics "github.com/MrEthical07/goGuard/internal/metrics"
)

// MetricID identifies a specific counter or histogram bucket in the
// in-process metrics system.
type MetricID = internalmetrics.MetricID

const (
	// MetricLoginSuccess counts completed logins.
	MetricLoginSuccess = MetricID(internalmetrics.MetricLoginSuccess)
	// MetricLoginFailure counts credential exchanges the server rejected.
	MetricLoginFailure = MetricID(internalmetrics.MetricLoginFailure)
	// MetricLoginRejected counts submits rejected before reaching the server
	// (missing credentials, submit already in flight).
	MetricLoginRejected = MetricID(internalmetrics.MetricLoginRejected)
	// MetricLogout counts explicit logouts.
	MetricLogout = MetricID(internalmetrics.MetricLogout)
	// MetricLogoutServerError counts swallowed server-side logout failures.
	MetricLogoutServerError = MetricID(internalmetrics.MetricLogoutServerError)
	// MetricUnauthorizedTeardown counts effective 401 teardowns.
	MetricUnauthorizedTeardown = MetricID(internalmetrics.MetricUnauthorizedTeardown)
	// MetricPermissionRefreshSuccess counts applied permission fetches.
	MetricPermissionRefreshSuccess = MetricID(internalmetrics.MetricPermissionRefreshSuccess)
	// MetricPermissionRefreshFailure counts failed permission fetches.
	MetricPermissionRefreshFailure = MetricID(internalmetrics.MetricPermissionRefreshFailure)
	// MetricGuardAllowed counts guard evaluations that rendered children.
	MetricGuardAllowed = MetricID(internalmetrics.MetricGuardAllowed)
	// MetricGuardRedirectLogin counts silent login redirects.
	MetricGuardRedirectLogin = MetricID(internalmetrics.MetricGuardRedirectLogin)
	// MetricGuardDenied counts permission denials (notification + home redirect).
	MetricGuardDenied = MetricID(internalmetrics.MetricGuardDenied)
	// MetricLocaleChanged counts locale toggles.
	MetricLocaleChanged = MetricID(internalmetrics.MetricLocaleChanged)
	// MetricSessionClearError counts durable-storage failures swallowed
	// during session teardown (logout or 401). In-memory state still clears.
	MetricSessionClearError = MetricID(internalmetrics.MetricSessionClearError)
	// MetricRequestLatency is the API round-trip latency histogram.
	MetricRequestLatency = MetricID(internalmetrics.MetricRequestLatency)

	metricIDCount = internalmetrics.MetricIDCount
)
