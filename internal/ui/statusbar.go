package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StatusInfo is the data shown in the bottom bar.
type StatusInfo struct {
	Signals   int
	Stale     int
	NoData    int
	Dropped   uint64
	SessionID string
	FPS       int
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, live bool, info StatusInfo) string {
	status := ""
	if live {
		status = StyleStatusLive.Render("[LIVE]")
	} else {
		status = StyleStatusPaused.Render("[PAUSED]")
	}

	session := "none"
	if info.SessionID != "" {
		session = info.SessionID
		if len(session) > 8 {
			session = session[:8]
		}
	}

	text := fmt.Sprintf(" Signals: %d  Stale: %d  No data: %d  Dropped: %d  Session: %s  Refresh: %dHz",
		info.Signals, info.Stale, info.NoData, info.Dropped, session, info.FPS)

	content := status + StyleStatusBar.Render(text)

	gap := max(0, width-2-lipgloss.Width(content))

	return StyleStatusBar.Width(width).Render(content + strings.Repeat(" ", gap))
}
