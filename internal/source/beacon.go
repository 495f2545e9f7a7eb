package source

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"pitdash.klederson.com/internal/lap"
)

// Lapper receives lap boundary events.
type Lapper interface {
	CompleteLap() (lap.Record, bool)
}

// Beacon simulates a trackside timing beacon: it signals a lap boundary once
// per lap period, with some random variation.
type Beacon struct {
	lapper Lapper
	period time.Duration
	jitter float64
	logger *slog.Logger

	rng *rand.Rand

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewBeacon creates a beacon that fires every period +/- jitter*period.
func NewBeacon(lapper Lapper, period time.Duration, jitter float64, logger *slog.Logger) *Beacon {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Beacon{
		lapper: lapper,
		period: period,
		jitter: clamp(jitter, 0, 0.9),
		logger: logger,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Start begins firing until ctx is done or Stop is called.
func (b *Beacon) Start(ctx context.Context) error {
	if b.period <= 0 {
		return errors.New("beacon period must be > 0")
	}
	ctx, cancel := context.WithCancel(ctx)
	b.cancel = cancel

	b.wg.Add(1)
	go b.loop(ctx)
	return nil
}

func (b *Beacon) loop(ctx context.Context) {
	defer b.wg.Done()

	t := time.NewTimer(b.next())
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if rec, ok := b.lapper.CompleteLap(); ok {
				b.logger.Debug("beacon lap", "lap", rec.Number, "time", lap.FormatTime(rec.Duration))
			}
			t.Reset(b.next())
		}
	}
}

// next returns the wait until the following boundary.
func (b *Beacon) next() time.Duration {
	f := 1 + (b.rng.Float64()*2-1)*b.jitter
	return time.Duration(float64(b.period) * f)
}

// Stop halts the beacon and waits for it to exit.
func (b *Beacon) Stop() {
	if b.cancel != nil {
		b.cancel()
	}
	b.wg.Wait()
}
