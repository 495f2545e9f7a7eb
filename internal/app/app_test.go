package app_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"pitdash.klederson.com/internal/app"
	"pitdash.klederson.com/internal/config"
	"pitdash.klederson.com/internal/lap"
	"pitdash.klederson.com/internal/signal"
	"pitdash.klederson.com/internal/wallclock"
)

type fakeProducer struct {
	started atomic.Bool
	stopped atomic.Bool
	paused  atomic.Bool
}

func (f *fakeProducer) Start(context.Context) error { f.started.Store(true); return nil }
func (f *fakeProducer) Pause()                      { f.paused.Store(true) }
func (f *fakeProducer) Resume()                     { f.paused.Store(false) }
func (f *fakeProducer) Paused() bool                { return f.paused.Load() }
func (f *fakeProducer) Stop()                       { f.stopped.Store(true) }

type fixture struct {
	model    tea.Model
	store    *signal.Store
	timer    *lap.Timer
	clock    *wallclock.Manual
	producer *fakeProducer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	schema, err := signal.Parse(config.DefaultSchema, signal.FormatYAML)
	require.NoError(t, err)

	clock := wallclock.NewManual(time.Unix(1_700_000_000, 0))
	store, err := signal.NewStore(schema, signal.WithClock(clock))
	require.NoError(t, err)
	timer := lap.NewTimer(lap.WithClock(clock))
	producer := &fakeProducer{}

	m := app.New(app.Options{
		Store:    store,
		Timer:    timer,
		Producer: producer,
		Source:   "test",
		FPS:      20,
	})
	f := &fixture{model: m, store: store, timer: timer, clock: clock, producer: producer}
	f.send(tea.WindowSizeMsg{Width: 140, Height: 40})
	return f
}

func (f *fixture) send(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.model, cmd = f.model.Update(msg)
	return cmd
}

func (f *fixture) key(k string) tea.Cmd {
	if k == " " {
		return f.send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	}
	return f.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
}

func (f *fixture) tick() {
	f.send(app.TickMsg(f.clock.Now()))
}

func TestViewBeforeSize(t *testing.T) {
	m := app.New(app.Options{})
	require.Equal(t, "Initializing dashboard...", m.View())
}

func TestTickRendersSnapshot(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Update("rpm", 6543))
	require.NoError(t, f.store.Update("coolant", 88.4))

	cmd := f.send(app.TickMsg(f.clock.Now()))
	require.NotNil(t, cmd, "tick reschedules itself")

	view := f.model.View()
	require.Contains(t, view, "SIGNALS [7]")
	require.Contains(t, view, "6543")
	require.Contains(t, view, "88.4")
	require.Contains(t, view, "NO DATA")
	require.Contains(t, view, "No session")
	require.Contains(t, view, "No data: 5")

	f.clock.Advance(600 * time.Millisecond)
	f.tick()
	view = f.model.View()
	require.Contains(t, view, "STALE")
	require.Contains(t, view, "Stale: 1")
}

func TestLapKeys(t *testing.T) {
	f := newFixture(t)

	f.key(" ")
	require.Zero(t, f.timer.TotalLaps(), "lap key is a no-op while idle")

	f.key("n")
	require.True(t, f.timer.Active())

	f.clock.Advance(62500 * time.Millisecond)
	f.key("l")
	require.Equal(t, 1, f.timer.TotalLaps())

	f.clock.Advance(61 * time.Second)
	f.key(" ")
	require.Equal(t, 2, f.timer.TotalLaps())

	f.clock.Advance(30 * time.Second)
	f.tick()
	view := f.model.View()
	require.Contains(t, view, "1:01.000")
	require.Contains(t, view, "NEW PB")
	require.Contains(t, view, "-31.000")
	require.Contains(t, view, "0:30.000")
}

func TestPauseKeyTogglesProducer(t *testing.T) {
	f := newFixture(t)

	f.key("p")
	require.True(t, f.producer.Paused())
	f.tick()
	require.Contains(t, f.model.View(), "PAUSED")

	f.key("p")
	require.False(t, f.producer.Paused())
	f.tick()
	require.Contains(t, f.model.View(), "LIVE")
}

func TestQuitStopsSources(t *testing.T) {
	f := newFixture(t)
	m := f.model.(app.AppModel)
	require.NoError(t, m.StartSources(context.Background()))
	require.True(t, f.producer.started.Load())

	cmd := f.key("q")
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
	require.True(t, f.producer.stopped.Load())
}
