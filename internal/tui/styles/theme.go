package styles

import (
	"github.com/allbin/go-usbrelay/internal/tui/colors"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Status indicator styles
	StatusConnectedStyle = lipgloss.NewStyle().
				Foreground(colors.Green).
				Bold(true)

	StatusDisconnectedStyle = lipgloss.NewStyle().
				Foreground(colors.Red).
				Bold(true)

	StatusConnectingStyle = lipgloss.NewStyle().
				Foreground(colors.Yellow).
				Bold(true)

	// Content area styles
	ContentBorderStyle = lipgloss.NewStyle().
				BorderTop(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(colors.Surface1)

	// Verdict styles, shared by the transaction log and the status bar
	VerdictOnStyle = lipgloss.NewStyle().
			Foreground(colors.VerdictOn).
			Bold(true)

	VerdictOffStyle = lipgloss.NewStyle().
			Foreground(colors.VerdictOff).
			Bold(true)

	VerdictUnknownStyle = lipgloss.NewStyle().
				Foreground(colors.VerdictUnknown).
				Bold(true)

	// Help line below the status bar
	HelpStyle = lipgloss.NewStyle().
			Foreground(colors.Overlay0).
			Padding(0, 1)

	// Spinner shown while a transaction is in flight
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(colors.Mauve)
)

// VerdictStyle picks the style for a rendered verdict label.
func VerdictStyle(label string) lipgloss.Style {
	switch label {
	case "ON":
		return VerdictOnStyle
	case "OFF":
		return VerdictOffStyle
	default:
		return VerdictUnknownStyle
	}
}
