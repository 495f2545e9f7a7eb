package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"pitdash.klederson.com/internal/config"
	"pitdash.klederson.com/internal/lap"
	"pitdash.klederson.com/internal/signal"
	"pitdash.klederson.com/internal/ui"
)

// Producer is a data source the dashboard can pause and stop.
type Producer interface {
	Start(ctx context.Context) error
	Pause()
	Resume()
	Paused() bool
	Stop()
}

// Trigger is a lap boundary source.
type Trigger interface {
	Start(ctx context.Context) error
	Stop()
}

// Options wires the dashboard to the core and its collaborators.
type Options struct {
	Store    *signal.Store
	Timer    *lap.Timer
	Producer Producer // optional
	Trigger  Trigger  // optional
	Source   string   // label shown in the menu bar
	FPS      int
}

// shared holds state shared between the Bubble Tea model copies and main.go.
// Because Bubble Tea uses value receivers, pointer fields ensure all copies
// see the same underlying data.
type shared struct {
	store    *signal.Store
	timer    *lap.Timer
	producer Producer
	trigger  Trigger
	cancel   context.CancelFunc
}

// AppModel is the root Bubble Tea model for the dashboard.
type AppModel struct {
	width  int
	height int

	source       string
	fps          int
	scrollOffset int

	shared *shared

	// Cached per tick
	rows     []ui.SignalRow
	lap      ui.LapView
	seenLaps int
	pbUntil  time.Time
}

// New creates a new AppModel.
func New(opts Options) AppModel {
	fps := opts.FPS
	if fps <= 0 {
		fps = config.TargetFPS
	}
	return AppModel{
		source: opts.Source,
		fps:    fps,
		shared: &shared{
			store:    opts.Store,
			timer:    opts.Timer,
			producer: opts.Producer,
			trigger:  opts.Trigger,
		},
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.tickCmd()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		m.refresh(time.Time(msg))
		return m, m.tickCmd()
	}

	return m, nil
}

// refresh polls the store and the lap timer. Neither is mutated here.
func (m *AppModel) refresh(now time.Time) {
	schema := m.shared.store.Schema()
	snap := m.shared.store.Snapshot()

	rows := make([]ui.SignalRow, 0, schema.Len())
	for _, name := range schema.Names() {
		def, _ := schema.Lookup(name)
		rows = append(rows, ui.SignalRow{Def: def, Reading: snap[name]})
	}
	m.rows = rows

	st := m.shared.timer.Status()
	if st.TotalLaps != m.seenLaps {
		m.seenLaps = st.TotalLaps
		if st.HasLast && st.Last.PersonalBest {
			m.pbUntil = now.Add(config.PBFlash)
		}
	}
	m.lap = ui.LapView{
		Status:  st,
		History: m.shared.timer.Laps(),
		FlashPB: now.Before(m.pbUntil),
	}
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "Q", "ctrl+c":
		m.StopSources()
		return m, tea.Quit

	case "n", "N":
		m.shared.timer.StartSession()

	case " ", "l", "L":
		m.shared.timer.CompleteLap()

	case "p", "P":
		if p := m.shared.producer; p != nil {
			if p.Paused() {
				p.Resume()
			} else {
				p.Pause()
			}
		}

	case "up", "k":
		if m.scrollOffset > 0 {
			m.scrollOffset--
		}

	case "down", "j":
		if m.scrollOffset < len(m.rows)-1 {
			m.scrollOffset++
		}

	case "home":
		m.scrollOffset = 0

	case "end":
		if len(m.rows) > 0 {
			m.scrollOffset = len(m.rows) - 1
		}
	}

	return m, nil
}

func (m AppModel) live() bool {
	return m.shared.producer != nil && !m.shared.producer.Paused()
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing dashboard..."
	}

	menuH := 1
	rpmH := 2
	statusH := 1
	bodyH := max(8, m.height-menuH-rpmH-statusH)

	listW := max(40, m.width*3/5)
	lapW := m.width - listW
	if lapW < 28 {
		lapW = 28
		listW = max(20, m.width-lapW)
	}

	menuBar := ui.RenderMenuBar(m.width, m.source, m.live())
	rpmBar := ui.RenderRPMBar(m.width, config.RPMBarCells, m.driveInfo())
	signalPanel := ui.RenderSignalList(m.rows, listW, bodyH, m.scrollOffset)
	lapPanel := ui.RenderLapPanel(m.lap, lapW, bodyH, config.LapHistory)
	statusBar := ui.RenderStatusBar(m.width, m.live(), m.statusInfo())

	return ui.ComposeLayout(menuBar, rpmBar, signalPanel, lapPanel, statusBar)
}

func (m AppModel) driveInfo() ui.DriveInfo {
	d := ui.DriveInfo{Redline: config.RPMRedline}
	for _, row := range m.rows {
		switch row.Def.Name {
		case "rpm":
			d.RPM, d.RPMDef, d.HasRPM = row.Reading, row.Def, true
		case "gear":
			d.Gear, d.HasGear = row.Reading, true
		case "speed":
			d.Speed, d.SpeedDef, d.HasSpeed = row.Reading, row.Def, true
		}
	}
	return d
}

func (m AppModel) statusInfo() ui.StatusInfo {
	info := ui.StatusInfo{
		Signals:   len(m.rows),
		Dropped:   m.shared.store.Dropped(),
		SessionID: m.lap.Status.SessionID,
		FPS:       m.fps,
	}
	for _, row := range m.rows {
		switch {
		case !row.Reading.Observed:
			info.NoData++
		case row.Reading.Stale:
			info.Stale++
		}
	}
	return info
}

// StartSources starts the producer and lap trigger. Must be called before
// p.Run().
func (m *AppModel) StartSources(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	m.shared.cancel = cancel

	if p := m.shared.producer; p != nil {
		if err := p.Start(ctx); err != nil {
			cancel()
			return err
		}
	}
	if t := m.shared.trigger; t != nil {
		if err := t.Start(ctx); err != nil {
			m.StopSources()
			return err
		}
	}
	return nil
}

// StopSources stops the producer and lap trigger.
func (m *AppModel) StopSources() {
	if m.shared.cancel != nil {
		m.shared.cancel()
	}
	if m.shared.producer != nil {
		m.shared.producer.Stop()
	}
	if m.shared.trigger != nil {
		m.shared.trigger.Stop()
	}
}

func (m AppModel) tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
