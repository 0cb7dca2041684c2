package cli

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	colorRed    = lipgloss.Color("#ff5555")
	colorGreen  = lipgloss.Color("#50fa7b")
	colorYellow = lipgloss.Color("#f1fa8c")
	colorBlue   = lipgloss.Color("#8be9fd")
	colorPurple = lipgloss.Color("#bd93f9")
	colorDim    = lipgloss.Color("#6272a4")
)

// Style definitions for terminal reports.
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(colorPurple).
			Bold(true)

	fileStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)

	highStyle   = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	mediumStyle = lipgloss.NewStyle().Foreground(colorYellow)
	lowStyle    = lipgloss.NewStyle().Foreground(colorGreen)
	infoStyle   = lipgloss.NewStyle().Foreground(colorDim)

	okStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	failStyle = lipgloss.NewStyle().Foreground(colorRed)
	dimStyle  = lipgloss.NewStyle().Foreground(colorDim)
)
