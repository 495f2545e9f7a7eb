package signal

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"pitdash.klederson.com/internal/wallclock"
)

// Reading is what consumers see for one signal. Observed=false means no sample
// was ever recorded; such a reading is always stale.
type Reading struct {
	Value     float64
	Timestamp time.Time
	Observed  bool
	Stale     bool
}

type sample struct {
	value float64
	ts    time.Time
}

// Store is a thread-safe cache of the latest sample per schema signal.
type Store struct {
	schema *Schema
	clock  wallclock.Clock
	logger *slog.Logger

	mu      sync.RWMutex
	samples map[string]sample

	dropped atomic.Uint64
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock sets the clock used for default timestamps and read instants.
func WithClock(c wallclock.Clock) StoreOption {
	return func(s *Store) {
		s.clock = c
	}
}

// WithLogger sets the logger. Defaults to discarding.
func WithLogger(l *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = l
	}
}

// NewStore creates an empty store over schema.
func NewStore(schema *Schema, opts ...StoreOption) (*Store, error) {
	if schema == nil || schema.Len() == 0 {
		return nil, ErrEmptySchema
	}

	s := &Store{
		schema:  schema,
		clock:   wallclock.System,
		logger:  slog.New(slog.DiscardHandler),
		samples: make(map[string]sample, schema.Len()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Schema returns the schema the store was built over.
func (s *Store) Schema() *Schema {
	return s.schema
}

// Update records v as the latest sample of name, timestamped now.
func (s *Store) Update(name string, v float64) error {
	return s.UpdateAt(name, v, s.clock.Now())
}

// UpdateAt records v as the latest sample of name with timestamp ts,
// overwriting any prior sample. NaN and infinite values are dropped without
// error and leave the prior sample in place.
func (s *Store) UpdateAt(name string, v float64, ts time.Time) error {
	if _, ok := s.schema.Lookup(name); !ok {
		return unknownSignal(name)
	}
	if !isFinite(v) {
		n := s.dropped.Add(1)
		s.logger.Debug("dropped non-finite sample", "signal", name, "value", v, "dropped_total", n)
		return nil
	}

	s.mu.Lock()
	s.samples[name] = sample{value: v, ts: ts}
	s.mu.Unlock()
	return nil
}

// UpdateValue is Update for loosely typed producers: any Go number or numeric
// string is accepted, anything else fails with ErrValueType.
func (s *Store) UpdateValue(name string, v any) error {
	if _, ok := s.schema.Lookup(name); !ok {
		return unknownSignal(name)
	}
	f, ok := toFloat(v)
	if !ok {
		return fmt.Errorf("%w: signal %q got %T", ErrValueType, name, v)
	}
	return s.Update(name, f)
}

// Get returns the reading for name as of now.
func (s *Store) Get(name string) (Reading, error) {
	return s.GetAt(name, s.clock.Now())
}

// GetAt returns the reading for name with staleness evaluated at now.
func (s *Store) GetAt(name string, now time.Time) (Reading, error) {
	def, ok := s.schema.Lookup(name)
	if !ok {
		return Reading{}, unknownSignal(name)
	}

	s.mu.RLock()
	smp, seen := s.samples[name]
	s.mu.RUnlock()

	return readingOf(def, smp, seen, now), nil
}

// GetMany returns readings for names, all evaluated at one instant against one
// copy of the store.
func (s *Store) GetMany(names ...string) (map[string]Reading, error) {
	return s.GetManyAt(s.clock.Now(), names...)
}

// GetManyAt is GetMany with an explicit read instant.
func (s *Store) GetManyAt(now time.Time, names ...string) (map[string]Reading, error) {
	defs := make([]Definition, len(names))
	for i, name := range names {
		def, ok := s.schema.Lookup(name)
		if !ok {
			return nil, unknownSignal(name)
		}
		defs[i] = def
	}

	type entry struct {
		smp  sample
		seen bool
	}
	local := make([]entry, len(names))

	s.mu.RLock()
	for i, name := range names {
		local[i].smp, local[i].seen = s.samples[name]
	}
	s.mu.RUnlock()

	out := make(map[string]Reading, len(names))
	for i, name := range names {
		out[name] = readingOf(defs[i], local[i].smp, local[i].seen, now)
	}
	return out, nil
}

// Snapshot returns readings for every schema signal.
func (s *Store) Snapshot() map[string]Reading {
	return s.SnapshotAt(s.clock.Now())
}

// SnapshotAt is Snapshot with an explicit read instant.
func (s *Store) SnapshotAt(now time.Time) map[string]Reading {
	// Names come from the schema, so the lookup cannot fail.
	out, _ := s.GetManyAt(now, s.schema.names...)
	return out
}

// Dropped returns how many non-finite samples have been discarded.
func (s *Store) Dropped() uint64 {
	return s.dropped.Load()
}

func readingOf(def Definition, smp sample, seen bool, now time.Time) Reading {
	if !seen {
		return Reading{Stale: true}
	}
	return Reading{
		Value:     smp.value,
		Timestamp: smp.ts,
		Observed:  true,
		Stale:     now.Sub(smp.ts) > def.StaleAfter,
	}
}
