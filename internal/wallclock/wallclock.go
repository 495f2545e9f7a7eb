// Package wallclock abstracts the clock so time-based logic can be driven
// deterministically in tests.
package wallclock

import (
	"sync"
	"time"
)

type (
	// Clock abstracts time.Now.
	Clock interface {
		Now() time.Time
	}

	system struct{}

	// Manual is a Clock that only moves when told to. Safe for concurrent use.
	Manual struct {
		mu  sync.Mutex
		now time.Time
	}
)

// System is the process clock. Instants it returns carry Go's monotonic
// reading, so differences between them are immune to wall-clock jumps.
var System Clock = system{}

// Now indirects time.Now.
func (system) Now() time.Time {
	return time.Now()
}

// NewManual returns a Manual clock set to start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the current manual instant.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Set moves the clock to t.
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

// Advance moves the clock forward by d and returns the new instant.
func (m *Manual) Advance(d time.Duration) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
	return m.now
}
