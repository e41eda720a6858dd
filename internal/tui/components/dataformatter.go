package components

import (
	"fmt"
	"time"

	"github.com/allbin/go-usbrelay/internal/tui/colors"
	"github.com/allbin/go-usbrelay/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
)

// EntryKind distinguishes what a transaction log line describes.
type EntryKind int

const (
	EntryTX EntryKind = iota
	EntryRX
	EntrySystem
	EntryError
)

// LogEntry is one line in the transaction log. TX entries carry the command
// name and frame, RX entries carry the verdict and raw reply.
type LogEntry struct {
	Timestamp time.Time
	Kind      EntryKind
	Label     string
	Data      []byte
}

// TransactionFormatter renders log entries with direction glyphs and an
// optional hex dump of the frame bytes.
type TransactionFormatter struct {
	showHex bool
}

func NewTransactionFormatter(showHex bool) *TransactionFormatter {
	return &TransactionFormatter{showHex: showHex}
}

func (f *TransactionFormatter) ToggleHex() {
	f.showHex = !f.showHex
}

func (f *TransactionFormatter) ShowingHex() bool {
	return f.showHex
}

func (f *TransactionFormatter) FormatEntry(entry LogEntry) string {
	timestamp := lipgloss.NewStyle().
		Foreground(colors.Subtext0).
		Render(fmt.Sprintf("[%s]", entry.Timestamp.Format("15:04:05.000")))

	var indicator string
	switch entry.Kind {
	case EntryTX:
		indicator = lipgloss.NewStyle().
			Foreground(colors.Transmit).
			Bold(true).
			Render("↗ TX " + entry.Label)
	case EntryRX:
		arrow := lipgloss.NewStyle().
			Foreground(colors.Receive).
			Bold(true).
			Render("↙ RX")
		indicator = arrow + " " + styles.VerdictStyle(entry.Label).Render(entry.Label)
	case EntryError:
		indicator = lipgloss.NewStyle().
			Foreground(colors.Red).
			Bold(true).
			Render("✗ " + entry.Label)
	default:
		indicator = lipgloss.NewStyle().
			Foreground(colors.Overlay0).
			Render("● " + entry.Label)
	}

	line := fmt.Sprintf("%s %s", timestamp, indicator)

	if entry.Kind == EntryRX && len(entry.Data) == 0 {
		line += "  " + lipgloss.NewStyle().Foreground(colors.Overlay0).Render("(no reply)")
		return line
	}

	if f.showHex && len(entry.Data) > 0 {
		hex := lipgloss.NewStyle().
			Foreground(colors.Text).
			Render(fmt.Sprintf("% X", entry.Data))
		line += "  " + hex
	}

	return line
}

func (f *TransactionFormatter) FormatEntries(entries []LogEntry) []string {
	formatted := make([]string, len(entries))
	for i, entry := range entries {
		formatted[i] = f.FormatEntry(entry)
	}
	return formatted
}
