package monitoring

import "time"

// Snapshot returns a copy of the tracked values for the JSON stats API
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}

// AverageLatency returns the mean request duration, zero before any request
func (s MetricsSnapshot) AverageLatency() time.Duration {
	if s.RequestCount == 0 {
		return 0
	}
	return time.Duration(s.TotalDuration / float64(s.RequestCount) * float64(time.Second))
}

// Uptime reports how long the collector has existed
func (m *Metrics) Uptime() time.Duration {
	return time.Since(m.startTime)
}
