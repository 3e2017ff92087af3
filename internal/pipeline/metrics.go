package pipeline

import (
	"sync/atomic"
	"time"
)

// Metrics is the shared counter surface mutated by both worker pools and
// read by the presentation layer at any point, including mid-run. All
// increments are atomic; a snapshot is not atomic across counters, which
// is acceptable for a monitoring surface.
type Metrics struct {
	checked     atomic.Uint64
	valid       atomic.Uint64
	errors      atomic.Uint64
	rateLimited atomic.Uint64
	// startTime is unix nanoseconds; zero until the first run starts.
	startTime atomic.Int64
}

// Snapshot is a point-in-time read of the counters plus derived values.
type Snapshot struct {
	Checked     uint64        `json:"checked"`
	Valid       uint64        `json:"valid"`
	Errors      uint64        `json:"errors"`
	RateLimited uint64        `json:"rate_limited"`
	Elapsed     time.Duration `json:"elapsed"`
	// Rate is completed probes per second since the run started.
	Rate float64 `json:"rate"`
}

// Reset zeroes the counters and records the start of a new run.
func (m *Metrics) Reset(start time.Time) {
	m.checked.Store(0)
	m.valid.Store(0)
	m.errors.Store(0)
	m.rateLimited.Store(0)
	m.startTime.Store(start.UnixNano())
}

func (m *Metrics) RecordChecked()     { m.checked.Add(1) }
func (m *Metrics) RecordValid()       { m.valid.Add(1) }
func (m *Metrics) RecordError()       { m.errors.Add(1) }
func (m *Metrics) RecordRateLimited() { m.rateLimited.Add(1) }

// Snapshot reads all counters. Safe to call concurrently with writers.
func (m *Metrics) Snapshot() Snapshot {
	snap := Snapshot{
		Checked:     m.checked.Load(),
		Valid:       m.valid.Load(),
		Errors:      m.errors.Load(),
		RateLimited: m.rateLimited.Load(),
	}
	if start := m.startTime.Load(); start > 0 {
		snap.Elapsed = time.Since(time.Unix(0, start))
	}
	if secs := snap.Elapsed.Seconds(); secs > 0 {
		snap.Rate = float64(snap.Checked) / secs
	}
	return snap
}
