package submodels

import "github.com/charmbracelet/lipgloss"

const (
	accent   = lipgloss.Color("#0AF")
	darkGray = lipgloss.Color("#767676")
	warn     = lipgloss.Color("#F25D94")
)

var (
	labelStyle    = lipgloss.NewStyle().Foreground(darkGray)
	focusedLabel  = lipgloss.NewStyle().Foreground(accent).Bold(true)
	requiredStyle = lipgloss.NewStyle().Foreground(warn)
	titleStyle    = lipgloss.NewStyle().
			Foreground(accent).
			Padding(0, 0, 1, 0)
	buttonStyle        = lipgloss.NewStyle().Foreground(darkGray)
	focusedButtonStyle = lipgloss.NewStyle().Foreground(accent).Bold(true)
)
