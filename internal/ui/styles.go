package ui

import "github.com/charmbracelet/lipgloss"

// Pit-wall palette
var (
	ColorBackground = lipgloss.Color("#0A0A0A")
	ColorBar        = lipgloss.Color("#141414")
	ColorText       = lipgloss.Color("#EAEAEA")
	ColorValue      = lipgloss.Color("#D0D0D0")
	ColorLapTime    = lipgloss.Color("#AAAAAA")
	ColorUnit       = lipgloss.Color("#555555")
	ColorTick       = lipgloss.Color("#444444")
	ColorDim        = lipgloss.Color("#2A2A2A")
	ColorDimText    = lipgloss.Color("#3A3A3A")
	ColorBorderNorm = lipgloss.Color("#2A2A2A")
	ColorBorderLive = lipgloss.Color("#1DB954")
	ColorFaster     = lipgloss.Color("#1DB954")
	ColorSlower     = lipgloss.Color("#CC1100")
	ColorPB         = lipgloss.Color("#B266FF")
	ColorWarning    = lipgloss.Color("#F5A623")
	ColorError      = lipgloss.Color("#E8471B")
	ColorRedline    = lipgloss.Color("#CC1100")
)

// Pre-built styles
var (
	StyleMenuBar = lipgloss.NewStyle().
			Background(ColorBar).
			Foreground(ColorText).
			Bold(true).
			Padding(0, 1)

	StyleMenuKey = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true)

	StyleMenuLabel = lipgloss.NewStyle().
			Foreground(ColorLapTime)

	StyleStatusBar = lipgloss.NewStyle().
			Background(ColorBar).
			Foreground(ColorLapTime).
			Padding(0, 1)

	StyleStatusLive = lipgloss.NewStyle().
			Foreground(ColorFaster).
			Bold(true)

	StyleStatusPaused = lipgloss.NewStyle().
				Foreground(ColorWarning).
				Bold(true)

	StylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderNorm)

	StylePanelTitle = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true).
			Padding(0, 1)

	StyleSeparator = lipgloss.NewStyle().
			Foreground(ColorDim)

	StyleSignalName = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true)

	StyleSignalValue = lipgloss.NewStyle().
				Foreground(ColorValue).
				Bold(true)

	StyleSignalUnit = lipgloss.NewStyle().
			Foreground(ColorUnit)

	StyleSignalDesc = lipgloss.NewStyle().
			Foreground(ColorDimText)

	StyleStale = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	StyleNoData = lipgloss.NewStyle().
			Foreground(ColorDimText).
			Bold(true)

	StyleOutOfRange = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	StyleGaugeOn = lipgloss.NewStyle().
			Foreground(ColorFaster)

	StyleGaugeOff = lipgloss.NewStyle().
			Foreground(ColorDim)

	StyleLapLabel = lipgloss.NewStyle().
			Foreground(ColorUnit)

	StyleLapTime = lipgloss.NewStyle().
			Foreground(ColorLapTime).
			Bold(true)

	StyleLapCurrent = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true)

	StyleDeltaFaster = lipgloss.NewStyle().
				Foreground(ColorFaster).
				Bold(true)

	StyleDeltaSlower = lipgloss.NewStyle().
				Foreground(ColorSlower).
				Bold(true)

	StylePB = lipgloss.NewStyle().
		Foreground(ColorPB).
		Bold(true)

	StyleTick = lipgloss.NewStyle().
			Foreground(ColorTick)

	StyleRedline = lipgloss.NewStyle().
			Foreground(ColorRedline).
			Bold(true)

	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorDimText)
)
