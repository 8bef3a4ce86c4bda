package metrics

import (
	"sync/atomic"
	"time"
)

// MetricID indexes one counter or histogram slot.
type MetricID uint16

// Metric identifiers. The root package re-exports these with goGuard names;
// MetricIDCount must stay last.
const (
	MetricLoginSuccess MetricID = iota
	MetricLoginFailure
	MetricLoginRejected
	MetricLogout
	MetricLogoutServerError
	MetricUnauthorizedTeardown
	MetricPermissionRefreshSuccess
	MetricPermissionRefreshFailure
	MetricGuardAllowed
	MetricGuardRedirectLogin
	MetricGuardDenied
	MetricLocaleChanged
	MetricSessionClearError
	MetricRequestLatency

	MetricIDCount
)

// BucketCount is the fixed histogram width.
const BucketCount = 8

// BucketBounds are the upper bounds of the first seven buckets; the eighth
// is +Inf.
var BucketBounds = [BucketCount - 1]time.Duration{
	5 * time.Millisecond,
	10 * time.Millisecond,
	25 * time.Millisecond,
	50 * time.Millisecond,
	100 * time.Millisecond,
	250 * time.Millisecond,
	time.Second,
}

// Config controls metric collection.
type Config struct {
	Enabled       bool
	EnableLatency bool
}

type paddedCounter struct {
	value uint64
	_     [7]uint64
}

// Metrics holds atomic counters and optional latency histograms. A nil or
// disabled Metrics is a no-op on every method.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [MetricIDCount]paddedCounter
	histograms    [MetricIDCount][BucketCount]paddedCounter
}

// New creates a [Metrics] per config. Disabled metrics never allocate
// beyond the struct itself.
func New(cfg Config) *Metrics {
	return &Metrics{enabled: cfg.Enabled, enableLatency: cfg.EnableLatency}
}

// Inc atomically increments a counter.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= MetricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Observe records one latency sample into the histogram for id.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.enabled || !m.enableLatency || id >= MetricIDCount {
		return
	}

	bucket := BucketCount - 1
	for i, bound := range BucketBounds {
		if d <= bound {
			bucket = i
			break
		}
	}
	atomic.AddUint64(&m.histograms[id][bucket].value, 1)
}

// Snapshot is a point-in-time deep copy of all metrics.
type Snapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

// Snapshot copies every non-zero counter and histogram.
func (m *Metrics) Snapshot() Snapshot {
	snap := Snapshot{
		Counters:   make(map[MetricID]uint64),
		Histograms: make(map[MetricID][]uint64),
	}
	if m == nil || !m.enabled {
		return snap
	}

	for id := MetricID(0); id < MetricIDCount; id++ {
		if v := atomic.LoadUint64(&m.counters[id].value); v != 0 {
			snap.Counters[id] = v
		}

		var buckets []uint64
		for b := 0; b < BucketCount; b++ {
			if v := atomic.LoadUint64(&m.histograms[id][b].value); v != 0 {
				if buckets == nil {
					buckets = make([]uint64, BucketCount)
				}
				buckets[b] = v
			}
		}
		if buckets != nil {
			snap.Histograms[id] = buckets
		}
	}
	return snap
}
