// Package prometheus renders goGuard metrics in Prometheus text exposition
// format.
//
// [NewPrometheusExporter] accepts a [goGuard.Engine] and exposes an
// [net/http.Handler] that renders all goGuard counters and histograms.
// Counter names are prefixed goguard_*_total; the single histogram is
// goguard_request_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry. Callers mount the
//     Handler.
//   - Mutate engine state.
package prometheus
