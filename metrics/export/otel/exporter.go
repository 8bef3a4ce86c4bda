package otel

import (
	"context"
	"errors"
	"fmt"

	goGuard "github.com/MrEthical07/goGuard"
	"github.com/MrEthical07/goGuard/metrics/export/internaldefs"
	"go.opentelemetry.io/otel/metric"
)

var (
	ErrNilMeter  = errors.New("nil meter")
	ErrNilSource = errors.New("nil metrics source")
)

type metricsSource interface {
	MetricsSnapshot() goGuard.MetricsSnapshot
	AuditDropped() uint64
}

// counterBinding ties a snapshot counter slot to its instrument.
type counterBinding struct {
	id  goGuard.MetricID
	obs metric.Int64ObservableCounter
}

// histogramBinding exposes one bucket gauge per bound plus a sample-count
// gauge. Bucket values are observed in cumulative form so they line up with
// the Prometheus exposition of the same histogram.
type histogramBinding struct {
	id      goGuard.MetricID
	buckets []metric.Int64ObservableGauge
	count   metric.Int64ObservableGauge
}

// OTelExporter observes the engine's metric set through a caller-supplied
// Meter. Instrument names come from the shared definition tables, so OTel
// and Prometheus report name-for-name identical series.
type OTelExporter struct {
	source       metricsSource
	registration metric.Registration
	counters     []counterBinding
	histograms   []histogramBinding
	auditDropped metric.Int64ObservableCounter
}

// NewOTelExporter registers observable instruments that read from engine.
func NewOTelExporter(meter metric.Meter, engine *goGuard.Engine) (*OTelExporter, error) {
	return NewOTelExporterFromSource(meter, engine)
}

// NewOTelExporterFromSource registers observable instruments that read from
// a custom source.
func NewOTelExporterFromSource(meter metric.Meter, source metricsSource) (*OTelExporter, error) {
	if meter == nil {
		return nil, ErrNilMeter
	}
	if source == nil {
		return nil, ErrNilSource
	}

	exporter := &OTelExporter{source: source}
	var observables []metric.Observable

	for _, def := range internaldefs.CounterDefs {
		obs, err := meter.Int64ObservableCounter(def.Name, metric.WithDescription(def.Help))
		if err != nil {
			return nil, fmt.Errorf("create observable counter %s: %w", def.Name, err)
		}
		exporter.counters = append(exporter.counters, counterBinding{id: def.ID, obs: obs})
		observables = append(observables, obs)
	}

	for _, def := range internaldefs.HistogramDefs {
		binding, obs, err := bindHistogram(meter, def)
		if err != nil {
			return nil, err
		}
		exporter.histograms = append(exporter.histograms, binding)
		observables = append(observables, obs...)
	}

	dropped, err := meter.Int64ObservableCounter(
		"goguard_audit_dropped_total",
		metric.WithDescription("Dropped audit events due to dispatcher backpressure."),
	)
	if err != nil {
		return nil, fmt.Errorf("create audit dropped counter: %w", err)
	}
	exporter.auditDropped = dropped
	observables = append(observables, dropped)

	registration, err := meter.RegisterCallback(exporter.observe, observables...)
	if err != nil {
		return nil, fmt.Errorf("register callback: %w", err)
	}
	exporter.registration = registration
	return exporter, nil
}

func bindHistogram(meter metric.Meter, def internaldefs.HistogramDef) (histogramBinding, []metric.Observable, error) {
	binding := histogramBinding{id: def.ID}
	observables := make([]metric.Observable, 0, len(internaldefs.HistogramBoundSuffix)+1)

	for _, suffix := range internaldefs.HistogramBoundSuffix {
		name := def.Name + "_bucket_le_" + suffix
		gauge, err := meter.Int64ObservableGauge(name, metric.WithDescription("Cumulative histogram bucket count."))
		if err != nil {
			return histogramBinding{}, nil, fmt.Errorf("create histogram bucket gauge %s: %w", name, err)
		}
		binding.buckets = append(binding.buckets, gauge)
		observables = append(observables, gauge)
	}

	countName := def.Name + "_count"
	count, err := meter.Int64ObservableGauge(countName, metric.WithDescription("Histogram total sample count."))
	if err != nil {
		return histogramBinding{}, nil, fmt.Errorf("create histogram count gauge %s: %w", countName, err)
	}
	binding.count = count
	observables = append(observables, count)
	return binding, observables, nil
}

// observe is the collection callback. One snapshot per cycle keeps every
// observed series consistent with the others.
func (e *OTelExporter) observe(_ context.Context, observer metric.Observer) error {
	snapshot := e.source.MetricsSnapshot()

	for _, c := range e.counters {
		observer.ObserveInt64(c.obs, int64(snapshot.Counters[c.id]))
	}

	for _, h := range e.histograms {
		cumulative := internaldefs.CumulativeBuckets(internaldefs.NormalizeBuckets(snapshot.Histograms[h.id]))
		for i, gauge := range h.buckets {
			observer.ObserveInt64(gauge, int64(cumulative[i]))
		}
		observer.ObserveInt64(h.count, int64(cumulative[len(cumulative)-1]))
	}

	observer.ObserveInt64(e.auditDropped, int64(e.source.AuditDropped()))
	return nil
}

// Close unregisters the collection callback.
func (e *OTelExporter) Close() error {
	if e == nil || e.registration == nil {
		return nil
	}
	return e.registration.Unregister()
}
