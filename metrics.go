package prayerkit

import "sync/atomic"

// MetricID defines a public type used by prayerkit APIs.
//
// MetricID instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricID uint16

const (
	// MetricLoginCommitted is an exported constant or variable used by the session core.
	MetricLoginCommitted MetricID = iota
	// MetricLogout is an exported constant or variable used by the session core.
	MetricLogout
	// MetricSessionInvalidated is an exported constant or variable used by the session core.
	MetricSessionInvalidated
	// MetricSessionRestored is an exported constant or variable used by the session core.
	MetricSessionRestored
	// MetricRestoreRejected is an exported constant or variable used by the session core.
	MetricRestoreRejected
	// MetricSettingsCorrupt is an exported constant or variable used by the session core.
	MetricSettingsCorrupt
	// MetricAuthorizeDenied is an exported constant or variable used by the session core.
	MetricAuthorizeDenied
	// MetricUnauthorizedObserved is an exported constant or variable used by the session core.
	MetricUnauthorizedObserved
	// MetricEnforcementEntered is an exported constant or variable used by the session core.
	MetricEnforcementEntered
	// MetricEnforcementResolved is an exported constant or variable used by the session core.
	MetricEnforcementResolved
	metricIDCount
)

const (
	cacheLineSize = 64
)

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics defines a public type used by prayerkit APIs.
//
// Metrics instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Metrics struct {
	enabled  bool
	counters [metricIDCount]paddedCounter
}

// MetricsSnapshot defines a public type used by prayerkit APIs.
//
// MetricsSnapshot instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

// NewMetrics describes the newmetrics operation and its observable behavior.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{enabled: cfg.Enabled}
}

// Enabled reports whether counters advance.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// Inc advances one counter. Hot-path safe: a disabled or nil receiver is a
// branch, never an allocation.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Value reads one counter.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot copies every counter into a map.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{Counters: make(map[MetricID]uint64, metricIDCount)}
	if m == nil {
		return snap
	}
	for id := MetricID(0); id < metricIDCount; id++ {
		snap.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}
	return snap
}
