package ui

import "github.com/charmbracelet/lipgloss"

// ComposeLayout stacks the menu bar, RPM bar, the signal/lap panels side by
// side and the status bar.
func ComposeLayout(menuBar, rpmBar, signalPanel, lapPanel, statusBar string) string {
	middle := lipgloss.JoinHorizontal(lipgloss.Top, signalPanel, lapPanel)
	return lipgloss.JoinVertical(lipgloss.Left, menuBar, rpmBar, middle, statusBar)
}
