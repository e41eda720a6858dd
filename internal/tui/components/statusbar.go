package components

import (
	"fmt"

	"github.com/allbin/go-usbrelay/internal/tui/colors"
	"github.com/allbin/go-usbrelay/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
)

// StatusBar is the single-line summary at the bottom of the watch panel:
// port and connection state on the left, line settings, transaction count,
// last verdict and clock on the right.
type StatusBar struct {
	portPath string
	err      error
	width    int

	lastCommand string
	lastVerdict string
	txCount     int
}

func NewStatusBar(portPath string) *StatusBar {
	return &StatusBar{portPath: portPath}
}

func (sb *StatusBar) SetWidth(width int) {
	sb.width = width
}

// SetPortPath records the resolved path once discovery has run.
func (sb *StatusBar) SetPortPath(path string) {
	sb.portPath = path
}

func (sb *StatusBar) SetConnecting() {
	sb.err = nil
}

func (sb *StatusBar) SetConnected() {
	sb.err = nil
}

func (sb *StatusBar) SetDisconnected(err error) {
	sb.err = err
}

// RecordTransaction updates the running counters after a completed exchange.
func (sb *StatusBar) RecordTransaction(command, verdict string) {
	sb.lastCommand = command
	sb.lastVerdict = verdict
	sb.txCount++
}

func (sb *StatusBar) View(connected bool, spinnerView, timestamp string) string {
	terminalWidth := sb.width
	if terminalWidth <= 0 {
		terminalWidth = 80
	}

	badgeStyle := lipgloss.NewStyle().
		Foreground(colors.Base).
		Background(colors.Blue).
		Bold(true).
		Padding(0, 1)
	badge := badgeStyle.Render("RELAY")

	portText := sb.portPath
	if portText == "" {
		portText = "(detecting)"
	}
	portStyle := lipgloss.NewStyle().
		Foreground(colors.Mauve).
		Bold(true).
		Padding(0, 1)
	port := portStyle.Render(portText)

	var indicator string
	switch {
	case sb.err != nil:
		indicator = styles.StatusDisconnectedStyle.Render("✗")
	case connected:
		indicator = styles.StatusConnectedStyle.Render("●")
	default:
		indicator = styles.StatusConnectingStyle.Render("○")
	}
	if spinnerView != "" {
		indicator += " " + spinnerView
	}

	leftSide := lipgloss.JoinHorizontal(lipgloss.Left, badge, port, indicator)

	detailStyle := lipgloss.NewStyle().
		Foreground(colors.Subtext0).
		Padding(0, 1)
	divider := lipgloss.NewStyle().
		Foreground(colors.Surface2).
		Render("│")

	rightParts := []string{
		detailStyle.Render("⚡ 9600 8N1"),
		divider,
		detailStyle.Render(fmt.Sprintf("tx %d", sb.txCount)),
	}

	if sb.lastCommand != "" {
		verdict := styles.VerdictStyle(sb.lastVerdict).Render(sb.lastVerdict)
		last := detailStyle.Render(sb.lastCommand+" →") + verdict + " "
		rightParts = append(rightParts, divider, last)
	}

	rightParts = append(rightParts, divider, detailStyle.Render(timestamp))
	rightSide := lipgloss.JoinHorizontal(lipgloss.Left, rightParts...)

	leftWidth := lipgloss.Width(leftSide)
	rightWidth := lipgloss.Width(rightSide)
	spacerWidth := terminalWidth - leftWidth - rightWidth
	if spacerWidth < 1 {
		spacerWidth = 1
	}
	spacer := lipgloss.NewStyle().Width(spacerWidth).Render("")

	barStyle := lipgloss.NewStyle().
		Foreground(colors.Text).
		Background(colors.Surface0).
		Width(terminalWidth)

	content := lipgloss.JoinHorizontal(lipgloss.Left, leftSide, spacer, rightSide)
	return barStyle.Render(content)
}
