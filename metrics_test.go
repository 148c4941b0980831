package prayerkit

import "testing"

func TestMetricsCountersAdvance(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	m.Inc(MetricLoginCommitted)
	m.Inc(MetricLoginCommitted)
	m.Inc(MetricUnauthorizedObserved)

	if got := m.Value(MetricLoginCommitted); got != 2 {
		t.Fatalf("expected 2 logins, got %d", got)
	}
	if got := m.Value(MetricUnauthorizedObserved); got != 1 {
		t.Fatalf("expected 1 observed 401, got %d", got)
	}

	snap := m.Snapshot()
	if snap.Counters[MetricLoginCommitted] != 2 {
		t.Fatalf("snapshot mismatch: %+v", snap.Counters)
	}
	if len(snap.Counters) != int(metricIDCount) {
		t.Fatalf("snapshot must cover every id, got %d", len(snap.Counters))
	}
}

func TestMetricsDisabledIsInert(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false})

	m.Inc(MetricLoginCommitted)
	if got := m.Value(MetricLoginCommitted); got != 0 {
		t.Fatalf("disabled metrics advanced to %d", got)
	}
	if m.Enabled() {
		t.Fatal("expected disabled")
	}
}

func TestMetricsNilReceiverIsSafe(t *testing.T) {
	var m *Metrics

	m.Inc(MetricLogout)
	if got := m.Value(MetricLogout); got != 0 {
		t.Fatalf("nil metrics returned %d", got)
	}
	if snap := m.Snapshot(); len(snap.Counters) != 0 {
		t.Fatalf("nil snapshot not empty: %+v", snap)
	}
	if m.Enabled() {
		t.Fatal("nil metrics cannot be enabled")
	}
}

func TestMetricsOutOfRangeIDIgnored(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	m.Inc(metricIDCount)
	m.Inc(metricIDCount + 100)
	if got := m.Value(metricIDCount); got != 0 {
		t.Fatalf("out of range id advanced to %d", got)
	}
}
