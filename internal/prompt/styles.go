package prompt

import (
	"khelp/internal/color"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = color.AccentStyle
	cursorStyle   = lipgloss.NewStyle().Foreground(color.Primary).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(color.Success)
	helpStyle     = color.SubtleStyle
	itemStyle     = lipgloss.NewStyle()
)
