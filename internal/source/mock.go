// Package source holds the producers that feed the dashboard: a simulated
// vehicle and a simulated lap beacon.
package source

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"pitdash.klederson.com/internal/signal"
)

// Sink receives signal samples.
type Sink interface {
	Update(name string, v float64) error
}

// Gear ratios, 1st to 5th. Higher ratio is a lower gear.
var gearRatios = []float64{3.5, 2.0, 1.4, 1.0, 0.8}

const (
	idleRPM      = 1000.0
	rpmPerTPS    = 120.0
	rpmLag       = 0.1
	limiterRPM   = 13500.0
	upshiftRPM   = 6500.0
	downshiftRPM = 2500.0
	warmCoolant  = 90.0
)

type vehicle struct {
	rpm     float64
	speed   float64
	tps     float64
	coolant float64
	battery float64
	lambda  float64
	gear    int
}

// Mock simulates an engine and drivetrain and publishes its state to a Sink
// at a fixed interval.
type Mock struct {
	sink     Sink
	interval time.Duration
	logger   *slog.Logger
	rng      *rand.Rand

	car     vehicle
	skipped map[string]bool

	paused atomic.Bool
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// MockOption configures a Mock.
type MockOption func(*Mock)

// WithInterval sets the publish interval.
func WithInterval(d time.Duration) MockOption {
	return func(m *Mock) {
		m.interval = d
	}
}

// WithSeed makes the simulation deterministic.
func WithSeed(seed int64) MockOption {
	return func(m *Mock) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

// WithMockLogger sets the logger.
func WithMockLogger(l *slog.Logger) MockOption {
	return func(m *Mock) {
		m.logger = l
	}
}

// NewMock creates a mock vehicle at idle in first gear with a cold engine.
func NewMock(sink Sink, opts ...MockOption) *Mock {
	m := &Mock{
		sink:     sink,
		interval: 50 * time.Millisecond,
		logger:   slog.New(slog.DiscardHandler),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		car: vehicle{
			rpm:     idleRPM,
			coolant: 20,
			battery: 13.5,
			lambda:  1,
			gear:    1,
		},
		skipped: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start begins publishing in a goroutine until ctx is done or Stop is called.
func (m *Mock) Start(ctx context.Context) error {
	if m.interval <= 0 {
		return errors.New("mock interval must be > 0")
	}
	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel

	m.wg.Add(1)
	go m.loop(ctx)
	m.logger.Info("mock source started", "interval", m.interval)
	return nil
}

func (m *Mock) loop(ctx context.Context) {
	defer m.wg.Done()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if m.paused.Load() {
				continue
			}
			m.Step()
		}
	}
}

// Step advances the simulation one tick and publishes every signal. It must
// not be called while the Start loop is running.
func (m *Mock) Step() {
	c := &m.car

	// Throttle: random walk
	c.tps = clamp(c.tps+m.uniform(-5, 5), 0, 100)

	// RPM follows throttle with lag, capped by the limiter
	target := idleRPM + c.tps*rpmPerTPS
	c.rpm += (target - c.rpm) * rpmLag
	if c.rpm > limiterRPM {
		c.rpm = limiterRPM
	}

	c.speed = (c.rpm / 13000) * 120 / gearRatios[c.gear-1]

	switch {
	case c.rpm > upshiftRPM && c.gear < len(gearRatios):
		c.gear++
		m.logger.Debug("mock upshift", "gear", c.gear)
	case c.rpm < downshiftRPM && c.gear > 1 && c.speed > 10:
		c.gear--
		m.logger.Debug("mock downshift", "gear", c.gear)
	}

	if c.coolant < warmCoolant {
		c.coolant += 0.05
	} else {
		c.coolant += m.uniform(-0.1, 0.1)
	}

	c.battery = 13.8 + m.uniform(-0.2, 0.2)
	c.lambda = 1.0 + m.uniform(-0.05, 0.05)

	m.publish("rpm", c.rpm)
	m.publish("speed", c.speed)
	m.publish("gear", float64(c.gear))
	m.publish("tps", c.tps)
	m.publish("coolant", c.coolant)
	m.publish("battery", c.battery)
	m.publish("lambda", c.lambda)
}

func (m *Mock) publish(name string, v float64) {
	if m.skipped[name] {
		return
	}
	if err := m.sink.Update(name, v); err != nil {
		if errors.Is(err, signal.ErrUnknownSignal) {
			// Schema does not carry this signal; stop producing it.
			m.skipped[name] = true
			m.logger.Warn("mock signal not in schema", "signal", name)
			return
		}
		m.logger.Error("mock update failed", "signal", name, "err", err)
	}
}

// Pause stops publishing without stopping the loop. Readers will see the
// signals go stale.
func (m *Mock) Pause() {
	m.paused.Store(true)
}

// Resume continues publishing after Pause.
func (m *Mock) Resume() {
	m.paused.Store(false)
}

// Paused reports whether publishing is paused.
func (m *Mock) Paused() bool {
	return m.paused.Load()
}

// Stop halts the loop and waits for it to exit.
func (m *Mock) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
	m.logger.Info("mock source stopped")
}

func (m *Mock) uniform(lo, hi float64) float64 {
	return lo + m.rng.Float64()*(hi-lo)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
