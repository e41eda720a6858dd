package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// LogView is a scrolling viewport over the transaction log. Raw entries are
// kept so toggling the hex dump re-renders the whole history.
type LogView struct {
	viewport  viewport.Model
	formatter *TransactionFormatter
	entries   []LogEntry
}

func NewLogView(width, height int) *LogView {
	return &LogView{
		viewport:  viewport.New(width, height),
		formatter: NewTransactionFormatter(true),
		entries:   make([]LogEntry, 0),
	}
}

func (lv *LogView) SetSize(width, height int) {
	lv.viewport.Width = width
	lv.viewport.Height = height
}

func (lv *LogView) Append(entry LogEntry) {
	lv.entries = append(lv.entries, entry)
	lv.refresh()
}

func (lv *LogView) Clear() {
	lv.entries = make([]LogEntry, 0)
	lv.viewport.SetContent("")
}

func (lv *LogView) ToggleHex() {
	lv.formatter.ToggleHex()
	lv.refresh()
}

func (lv *LogView) ShowingHex() bool {
	return lv.formatter.ShowingHex()
}

// refresh re-renders every entry and pins the viewport to the newest line.
func (lv *LogView) refresh() {
	lines := lv.formatter.FormatEntries(lv.entries)
	lv.viewport.SetContent(strings.Join(lines, "\n"))
	lv.viewport.GotoBottom()
}

func (lv *LogView) Update(msg tea.Msg) (viewport.Model, tea.Cmd) {
	// Only window resizes reach the viewport so it cannot swallow the
	// panel's key bindings.
	switch msg.(type) {
	case tea.WindowSizeMsg:
		var cmd tea.Cmd
		lv.viewport, cmd = lv.viewport.Update(msg)
		return lv.viewport, cmd
	default:
		return lv.viewport, nil
	}
}

func (lv *LogView) View() string {
	return lv.viewport.View()
}
