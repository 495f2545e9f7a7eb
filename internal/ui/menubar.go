package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"pitdash.klederson.com/internal/config"
)

// RenderMenuBar renders the top menu bar.
func RenderMenuBar(width int, source string, live bool) string {
	title := fmt.Sprintf(" %s v%s ", config.AppName, config.AppVersion)

	keys := []struct{ key, label string }{
		{"N", "ew session"},
		{"L", "ap"},
		{"P", "ause feed"},
		{"Q", "uit"},
	}

	menu := ""
	for _, k := range keys {
		menu += "  " + StyleMenuKey.Render("["+k.key+"]") + StyleMenuLabel.Render(k.label)
	}

	status := ""
	if live {
		status = StyleStatusLive.Render("LIVE")
	} else {
		status = StyleStatusPaused.Render("PAUSED")
	}

	sourceInfo := StyleMenuLabel.Render(fmt.Sprintf("Source: %s", source))

	left := StyleMenuKey.Render(title) + menu
	right := status + "  " + sourceInfo + " "

	gap := max(0, width-2-lipgloss.Width(left)-lipgloss.Width(right))

	return StyleMenuBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
