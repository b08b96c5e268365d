package infra

import (
	"sync/atomic"
	"time"
)

// Metrics provides lightweight observability without external dependencies.
// Uses atomic operations for thread-safety.
type Metrics struct {
	// Counters
	tabulations    atomic.Uint64
	linesProcessed atomic.Uint64
	ordersRecorded atomic.Uint64
	failuresTotal  atomic.Uint64

	// Latency tracking
	latencySumNs atomic.Int64
	latencyCount atomic.Uint64
}

// GlobalMetrics is the singleton metrics instance.
var GlobalMetrics = &Metrics{}

// RecordTabulation records a successful tabulation of lines line items.
func (m *Metrics) RecordTabulation(lines int, latency time.Duration) {
	m.tabulations.Add(1)
	m.linesProcessed.Add(uint64(lines))
	m.latencySumNs.Add(latency.Nanoseconds())
	m.latencyCount.Add(1)
}

// RecordFailure records a rejected tabulation.
func (m *Metrics) RecordFailure() {
	m.failuresTotal.Add(1)
}

// RecordOrder records an order whose ledger was persisted.
func (m *Metrics) RecordOrder() {
	m.ordersRecorded.Add(1)
}

// MetricsSnapshot is a point-in-time view of all metrics.
type MetricsSnapshot struct {
	Tabulations    uint64
	LinesProcessed uint64
	OrdersRecorded uint64
	FailuresTotal  uint64
	AvgLatencyNs   int64
	Timestamp      time.Time
}

// Snapshot returns current metrics as a snapshot.
func (m *Metrics) Snapshot() MetricsSnapshot {
	var avgLatency int64
	count := m.latencyCount.Load()
	if count > 0 {
		avgLatency = m.latencySumNs.Load() / int64(count)
	}

	return MetricsSnapshot{
		Tabulations:    m.tabulations.Load(),
		LinesProcessed: m.linesProcessed.Load(),
		OrdersRecorded: m.ordersRecorded.Load(),
		FailuresTotal:  m.failuresTotal.Load(),
		AvgLatencyNs:   avgLatency,
		Timestamp:      time.Now(),
	}
}

// Reset clears all metrics (for testing).
func (m *Metrics) Reset() {
	m.tabulations.Store(0)
	m.linesProcessed.Store(0)
	m.ordersRecorded.Store(0)
	m.failuresTotal.Store(0)
	m.latencySumNs.Store(0)
	m.latencyCount.Store(0)
}
