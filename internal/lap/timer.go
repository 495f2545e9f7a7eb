// Package lap tracks lap boundaries, the personal best and the live delta to
// it. It does not know where lap triggers come from.
package lap

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"pitdash.klederson.com/internal/wallclock"
)

// Record describes one completed lap.
type Record struct {
	Number       int
	Duration     time.Duration
	PersonalBest bool
}

// Timer is the lap-timing state machine. It is idle until StartSession and
// then stays active until the process ends. Safe for concurrent use.
type Timer struct {
	clock  wallclock.Clock
	logger *slog.Logger

	mu         sync.Mutex
	sessionID  string
	active     bool
	lapStart   time.Time
	currentLap int
	laps       []time.Duration
	best       time.Duration
	hasBest    bool
	last       Record
	hasLast    bool
}

// Option configures a Timer.
type Option func(*Timer)

// WithClock sets the clock lap boundaries are measured with.
func WithClock(c wallclock.Clock) Option {
	return func(t *Timer) {
		t.clock = c
	}
}

// WithLogger sets the logger. Defaults to discarding.
func WithLogger(l *slog.Logger) Option {
	return func(t *Timer) {
		t.logger = l
	}
}

// NewTimer creates an idle timer.
func NewTimer(opts ...Option) *Timer {
	t := &Timer{
		clock:  wallclock.System,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// StartSession starts lap 1 now. Calling it again re-arms the current lap and
// restarts numbering; completed laps and the best time are kept.
func (t *Timer) StartSession() string {
	t.mu.Lock()
	t.active = true
	t.lapStart = t.clock.Now()
	t.currentLap = 1
	t.sessionID = uuid.NewString()
	id, kept := t.sessionID, len(t.laps)
	t.mu.Unlock()

	t.logger.Info("lap session started", "session", id, "laps_kept", kept)
	return id
}

// CompleteLap closes the running lap and starts the next one. It returns false
// while idle.
func (t *Timer) CompleteLap() (Record, bool) {
	t.mu.Lock()
	if !t.active {
		t.mu.Unlock()
		return Record{}, false
	}

	now := t.clock.Now()
	d := now.Sub(t.lapStart)

	pb := !t.hasBest || d < t.best
	if pb {
		t.best = d
		t.hasBest = true
	}

	rec := Record{Number: t.currentLap, Duration: d, PersonalBest: pb}
	t.laps = append(t.laps, d)
	t.last = rec
	t.hasLast = true

	t.lapStart = now
	t.currentLap++
	id := t.sessionID
	t.mu.Unlock()

	t.logger.Info("lap completed",
		"session", id,
		"lap", rec.Number,
		"time", FormatTime(rec.Duration),
		"personal_best", rec.PersonalBest)
	return rec, true
}

// Active reports whether a session has been started.
func (t *Timer) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// SessionID returns the ID assigned by the last StartSession, or "" while idle.
func (t *Timer) SessionID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sessionID
}

// Elapsed returns the running time of the current lap, 0 while idle.
func (t *Timer) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.active {
		return 0
	}
	return t.clock.Now().Sub(t.lapStart)
}

// Delta returns current lap time minus the best lap. Negative means ahead of
// the best lap. Undefined while idle or before a best exists.
func (t *Timer) Delta() (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.active || !t.hasBest {
		return 0, false
	}
	return t.clock.Now().Sub(t.lapStart) - t.best, true
}

// Best returns the personal best lap time.
func (t *Timer) Best() (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.best, t.hasBest
}

// LastLap returns the most recently completed lap.
func (t *Timer) LastLap() (Record, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last, t.hasLast
}

// CurrentLap returns the number of the running lap, 0 while idle.
func (t *Timer) CurrentLap() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.currentLap
}

// TotalLaps returns how many laps have been completed.
func (t *Timer) TotalLaps() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.laps)
}

// Laps returns a copy of completed lap durations, oldest first.
func (t *Timer) Laps() []time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]time.Duration, len(t.laps))
	copy(out, t.laps)
	return out
}

// Status is a consistent view of the timer taken under one lock.
type Status struct {
	Active     bool
	SessionID  string
	CurrentLap int
	TotalLaps  int
	Elapsed    time.Duration
	Delta      time.Duration
	HasDelta   bool
	Best       time.Duration
	HasBest    bool
	Last       Record
	HasLast    bool
}

// Status returns all read-only properties at one instant.
func (t *Timer) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()

	st := Status{
		Active:     t.active,
		SessionID:  t.sessionID,
		CurrentLap: t.currentLap,
		TotalLaps:  len(t.laps),
		Best:       t.best,
		HasBest:    t.hasBest,
		Last:       t.last,
		HasLast:    t.hasLast,
	}
	if t.active {
		st.Elapsed = t.clock.Now().Sub(t.lapStart)
		if t.hasBest {
			st.Delta = st.Elapsed - t.best
			st.HasDelta = true
		}
	}
	return st
}
