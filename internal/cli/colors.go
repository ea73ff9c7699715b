package cli

import "github.com/charmbracelet/lipgloss"

// Signal palette, shared by the CLI output and the TUI.
var (
	SignalCyan   = lipgloss.Color("#00D7FF")
	SignalTeal   = lipgloss.Color("#00AF87")
	SignalViolet = lipgloss.Color("#AF87FF")
	SignalAmber  = lipgloss.Color("#FFAF00")
	SignalRed    = lipgloss.Color("#FF5F5F")

	CoolGray = lipgloss.Color("#8A8A8A")
	White    = lipgloss.Color("#FFFFFF")
)
