package color

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
)

// Define colors
var (
	Primary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	Success = lipgloss.AdaptiveColor{Light: "#05A167", Dark: "#05D176"}
	Error   = lipgloss.AdaptiveColor{Light: "#E06A56", Dark: "#F97171"}
	Warning = lipgloss.AdaptiveColor{Light: "#E0A956", Dark: "#F9C171"}
	Info    = lipgloss.AdaptiveColor{Light: "#5A9FE0", Dark: "#71B7F9"}
	Subtle  = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
)

// Define styles
var (
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	InfoStyle    = lipgloss.NewStyle().Foreground(Info)
	SubtleStyle  = lipgloss.NewStyle().Foreground(Subtle)
	AccentStyle  = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	HeaderStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
)

// Icon constants
const (
	IconCheck     = "✓"
	IconCross     = "✗"
	IconRefresh   = "↻"
	IconSkip      = "−"
	IconWarning   = "⚠"
	IconLightbulb = "💡"
	IconCurrent   = "*"
	IconTrash     = "🗑"
)

// Initialize configures the global lipgloss renderer. With noColor set, or
// NO_COLOR present in the environment, every style renders as plain text.
func Initialize(noColor bool) {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		noColor = true
	}
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// SafeIcon pads an icon so that wide glyphs do not swallow the next
// character: one space after a single-cell icon, two after a double-cell one.
func SafeIcon(icon string) string {
	spaces := 1
	if runewidth.StringWidth(icon) >= 2 {
		spaces = 2
	}
	return icon + strings.Repeat(" ", spaces)
}

// IconText formats an icon with text, handling spacing properly
func IconText(icon string, text string) string {
	return fmt.Sprintf("%s%s", SafeIcon(icon), text)
}

// Successf renders a success line prefixed with a check mark.
func Successf(format string, args ...interface{}) string {
	return SuccessStyle.Render(IconText(IconCheck, fmt.Sprintf(format, args...)))
}

// Warnf renders a warning line.
func Warnf(format string, args ...interface{}) string {
	return WarningStyle.Render(IconText(IconWarning, fmt.Sprintf(format, args...)))
}

// Tipf renders a hint line.
func Tipf(format string, args ...interface{}) string {
	return InfoStyle.Render(IconText(IconLightbulb, "Tip: "+fmt.Sprintf(format, args...)))
}
