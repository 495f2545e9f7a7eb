package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"pitdash.klederson.com/internal/signal"
)

type colorStop struct {
	at      float64
	r, g, b int
}

// Segment colours: dark green, green, amber, red.
var rpmStops = []colorStop{
	{0.00, 0x0D, 0x4D, 0x0D},
	{0.40, 0x1D, 0xB9, 0x54},
	{0.70, 0x4A, 0xDE, 0x40},
	{0.82, 0xF5, 0xA6, 0x23},
	{0.88, 0xE8, 0x47, 0x1B},
	{1.00, 0xCC, 0x11, 0x00},
}

// SegmentColor returns the gradient colour at ratio in [0, 1].
func SegmentColor(ratio float64) lipgloss.Color {
	for i := 0; i < len(rpmStops)-1; i++ {
		s0, s1 := rpmStops[i], rpmStops[i+1]
		if ratio <= s1.at {
			t := 0.0
			if s1.at != s0.at {
				t = (ratio - s0.at) / (s1.at - s0.at)
			}
			if t < 0 {
				t = 0
			}
			return hexColor(lerp(s0.r, s1.r, t), lerp(s0.g, s1.g, t), lerp(s0.b, s1.b, t))
		}
	}
	last := rpmStops[len(rpmStops)-1]
	return hexColor(last.r, last.g, last.b)
}

func lerp(a, b int, t float64) int {
	return a + int(float64(b-a)*t)
}

func hexColor(r, g, b int) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r, g, b))
}

// DriveInfo is what the RPM bar needs from the store.
type DriveInfo struct {
	RPM      signal.Reading
	RPMDef   signal.Definition
	HasRPM   bool
	Gear     signal.Reading
	HasGear  bool
	Speed    signal.Reading
	SpeedDef signal.Definition
	HasSpeed bool
	Redline  float64
}

// RenderRPMBar renders the segmented RPM bar with a redline marker and a
// gear/speed readout underneath.
func RenderRPMBar(width, cells int, d DriveInfo) string {
	innerW := max(10, width-2)
	cells = max(1, min(cells, innerW))

	ratio := 0.0
	live := d.HasRPM && d.RPM.Observed && !d.RPM.Stale
	if live {
		ratio = d.RPMDef.Fraction(d.RPM.Value)
	}
	filled := int(ratio * float64(cells))

	redlineCell := -1
	if d.HasRPM && d.Redline > d.RPMDef.Min {
		redlineCell = int(d.RPMDef.Fraction(d.Redline) * float64(cells))
	}

	var bar strings.Builder
	for i := 0; i < cells; i++ {
		switch {
		case i == redlineCell:
			bar.WriteString(StyleRedline.Render("|"))
		case i < filled:
			bar.WriteString(lipgloss.NewStyle().Foreground(SegmentColor(float64(i) / float64(cells))).Render("#"))
		default:
			bar.WriteString(StyleGaugeOff.Render("."))
		}
	}

	readout := StyleLapLabel.Render("RPM ") + readingText(d.RPM, d.HasRPM, "%.0f") +
		StyleLapLabel.Render("   GEAR ") + gearText(d.Gear, d.HasGear) +
		StyleLapLabel.Render("   SPEED ") + readingText(d.Speed, d.HasSpeed, "%.0f")
	if d.HasSpeed {
		readout += " " + StyleSignalUnit.Render(d.SpeedDef.Unit)
	}

	return lipgloss.NewStyle().Width(width).Padding(0, 1).Render(bar.String() + "\n" + readout)
}

func readingText(r signal.Reading, has bool, format string) string {
	switch {
	case !has || !r.Observed:
		return StyleNoData.Render("--")
	case r.Stale:
		return StyleStale.Render(fmt.Sprintf(format, r.Value))
	}
	return StyleSignalValue.Render(fmt.Sprintf(format, r.Value))
}

func gearText(r signal.Reading, has bool) string {
	switch {
	case !has || !r.Observed:
		return StyleNoData.Render("-")
	case r.Stale:
		return StyleStale.Render(gearLabel(r.Value))
	}
	return StyleSignalValue.Render(gearLabel(r.Value))
}

func gearLabel(v float64) string {
	g := int(v + 0.5)
	if g <= 0 {
		return "N"
	}
	return fmt.Sprintf("%d", g)
}
