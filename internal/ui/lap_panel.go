package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"pitdash.klederson.com/internal/lap"
)

// LapView is what the lap panel shows.
type LapView struct {
	Status  lap.Status
	History []time.Duration // oldest first
	FlashPB bool
}

// RenderLapPanel renders lap number, running time, delta to best, last and
// best lap, and the most recent completed laps.
func RenderLapPanel(v LapView, width, height, historyRows int) string {
	innerW := max(20, width-4)
	innerH := max(3, height-2)

	title := StylePanelTitle.Render("LAP")
	sep := StyleSeparator.Render(strings.Repeat("-", innerW))
	lines := []string{title, sep}

	st := v.Status
	if !st.Active {
		lines = append(lines, "",
			StyleHelp.Render(" No session"),
			StyleHelp.Render(" Press [N] to start"))
		return finishPanel(lines, width, innerH, height)
	}

	field := func(label, value string) string {
		return StyleLapLabel.Render(fmt.Sprintf(" %-6s", label)) + value
	}

	lines = append(lines,
		field("LAP", StyleLapCurrent.Render(fmt.Sprintf("%d", st.CurrentLap))),
		field("TIME", StyleLapCurrent.Render(lap.FormatTime(st.Elapsed))),
		field("DELTA", deltaText(st)),
		"",
	)

	last := StyleHelp.Render("--")
	if st.HasLast {
		last = StyleLapTime.Render(lap.FormatTime(st.Last.Duration))
		if st.Last.PersonalBest {
			pb := " PB"
			if v.FlashPB {
				pb = " NEW PB"
			}
			last += StylePB.Render(pb)
		}
	}
	best := StyleHelp.Render("--")
	if st.HasBest {
		best = StylePB.Render(lap.FormatTime(st.Best))
	}
	lines = append(lines,
		field("LAST", last),
		field("BEST", best),
		"",
		StyleLapLabel.Render(fmt.Sprintf(" LAPS %d", st.TotalLaps)),
	)

	lines = append(lines, renderHistory(v.History, st, historyRows)...)

	return finishPanel(lines, width, innerH, height)
}

func deltaText(st lap.Status) string {
	if !st.HasDelta {
		return StyleHelp.Render("--")
	}
	text := lap.FormatDelta(st.Delta)
	if st.Delta < 0 {
		return StyleDeltaFaster.Render(text)
	}
	return StyleDeltaSlower.Render(text)
}

// renderHistory lists the newest laps first, marking the best one.
func renderHistory(history []time.Duration, st lap.Status, rows int) []string {
	if rows <= 0 || len(history) == 0 {
		return nil
	}

	var out []string
	for i := len(history) - 1; i >= 0 && len(out) < rows; i-- {
		d := history[i]
		line := fmt.Sprintf("  #%-3d %s", i+1, lap.FormatTime(d))
		if st.HasBest && d == st.Best {
			out = append(out, StylePB.Render(line))
		} else {
			out = append(out, StyleLapTime.Render(line))
		}
	}
	return out
}

func finishPanel(lines []string, width, innerH, height int) string {
	if len(lines) > innerH {
		lines = lines[:innerH]
	}
	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	rendered := StylePanelBorder.Width(width - 2).Height(innerH).Render(content)
	return clampLines(rendered, height)
}
