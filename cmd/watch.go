/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/allbin/go-usbrelay"
	"github.com/allbin/go-usbrelay/internal/tui/components"
	"github.com/allbin/go-usbrelay/internal/tui/keys"
	"github.com/allbin/go-usbrelay/internal/tui/models"
	"github.com/allbin/go-usbrelay/internal/tui/styles"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Interactive relay control panel",
	Long: `Open an interactive control panel for the relay.

The panel shows every transaction as it happens, with the command frame
sent and the raw reply received. A background poll keeps the displayed
state fresh, and single keys switch the relay:

  o  switch on          s  query status
  x  switch off         r  usb reset
  t  toggle             q  quit

Example usage:
  usbrelay watch
  usbrelay watch --port /dev/ttyUSB1
  usbrelay watch --interval 5s
  usbrelay watch --no-poll`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		interval, _ := cmd.Flags().GetDuration("interval")
		if noPoll, _ := cmd.Flags().GetBool("no-poll"); noPoll {
			interval = 0
		}

		if err := runWatchTUI(viper.GetString("port"), interval); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationP("interval", "i", 2*time.Second, "status poll interval")
	watchCmd.Flags().Bool("no-poll", false, "disable background status polling")
}

// watchModel represents the Bubble Tea model for the watch command
type watchModel struct {
	*models.RelayModel
	log       *components.LogView
	statusBar *components.StatusBar
	spinner   spinner.Model
	help      help.Model
	keys      keys.RelayKeys

	openPath    string        // original port argument, "" means auto-detect
	interval    time.Duration // 0 disables the background poll
	pollStarted bool
	width       int
	height      int
}

func runWatchTUI(portPath string, interval time.Duration) error {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	m := watchModel{
		RelayModel: models.NewRelayModel(portPath),
		log:        components.NewLogView(0, 0),
		statusBar:  components.NewStatusBar(portPath),
		spinner:    sp,
		help:       help.New(),
		keys:       keys.NewRelayKeys(),
		openPath:   portPath,
		interval:   interval,
	}
	m.statusBar.SetConnecting()

	p := tea.NewProgram(&m, tea.WithAltScreen())

	// Open the relay in the background so the panel paints immediately.
	go func() {
		ctrl, err := usbrelay.Open(portPath, controllerOptions()...)
		if err != nil {
			p.Send(models.ConnectionStatusMsg{Connected: false, Error: err})
			return
		}
		m.SetController(ctrl)
		p.Send(models.ConnectionStatusMsg{Connected: true, PortPath: ctrl.Path()})
	}()

	_, err := p.Run()
	m.Cleanup()
	return err
}

func (m *watchModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// pollTick schedules the next background status poll, or nothing when
// polling is disabled.
func (m *watchModel) pollTick() tea.Cmd {
	if m.interval <= 0 {
		return nil
	}
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return models.PollTickMsg(t)
	})
}

// transact runs one relay exchange off the update loop.
func (m *watchModel) transact(command usbrelay.Command) tea.Cmd {
	return func() tea.Msg {
		ctrl := m.Controller()
		if ctrl == nil {
			return models.TransactionResultMsg{Command: command, Err: usbrelay.ErrNotOpen, Timestamp: time.Now()}
		}
		verdict, raw, err := ctrl.Exchange(command)
		return models.TransactionResultMsg{Command: command, Verdict: verdict, Raw: raw, Err: err, Timestamp: time.Now()}
	}
}

// issue guards the command keys: one transaction in flight at a time.
func (m *watchModel) issue(command usbrelay.Command) tea.Cmd {
	if m.IsBusy() || !m.IsConnected() {
		return nil
	}
	m.SetBusy(true)
	return m.transact(command)
}

// resetDevice releases the port, runs the USB reset and reopens. The board
// re-enumerates, so reopening goes through discovery again when the panel
// was started without an explicit port.
func (m *watchModel) resetDevice() tea.Cmd {
	return func() tea.Msg {
		m.CloseController()
		if err := usbrelay.ResetDevice(m.PortPath()); err != nil {
			return models.ResetResultMsg{Err: err}
		}
		ctrl, err := usbrelay.Open(m.openPath, controllerOptions()...)
		if err != nil {
			return models.ConnectionStatusMsg{Connected: false, Error: err}
		}
		m.SetController(ctrl)
		return models.ConnectionStatusMsg{Connected: true, PortPath: ctrl.Path()}
	}
}

// verticalMargin is the height everything except the log occupies.
func (m *watchModel) verticalMargin() int {
	helpHeight := lipgloss.Height(styles.HelpStyle.Render(m.help.View(m.keys)))
	return 1 + 1 + helpHeight // content border, status bar, help
}

func (m *watchModel) resizeLog() {
	m.log.SetSize(m.width, m.height-m.verticalMargin())
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.statusBar.SetWidth(msg.Width)
		m.resizeLog()
		m.SetReady(true)

	case models.ConnectionStatusMsg:
		m.SetConnected(msg.Connected)
		m.SetBusy(false)
		if msg.Error != nil {
			m.SetError(msg.Error)
			m.statusBar.SetDisconnected(msg.Error)
			m.log.Append(components.LogEntry{
				Timestamp: time.Now(),
				Kind:      components.EntryError,
				Label:     fmt.Sprintf("connect: %v", msg.Error),
			})
		} else {
			m.SetError(nil)
			m.statusBar.SetPortPath(msg.PortPath)
			m.statusBar.SetConnected()
			m.log.Append(components.LogEntry{
				Timestamp: time.Now(),
				Kind:      components.EntrySystem,
				Label:     "opened " + msg.PortPath,
			})

			// Establish the initial state, then keep it fresh.
			m.SetBusy(true)
			cmds = append(cmds, m.transact(usbrelay.CommandStatus))
			if !m.pollStarted {
				m.pollStarted = true
				if tick := m.pollTick(); tick != nil {
					cmds = append(cmds, tick)
				}
			}
		}

	case models.PollTickMsg:
		if m.IsConnected() && !m.IsBusy() {
			m.SetBusy(true)
			cmds = append(cmds, m.transact(usbrelay.CommandStatus))
		}
		if tick := m.pollTick(); tick != nil {
			cmds = append(cmds, tick)
		}

	case models.TransactionResultMsg:
		m.SetBusy(false)
		if msg.Err != nil {
			m.log.Append(components.LogEntry{
				Timestamp: msg.Timestamp,
				Kind:      components.EntryError,
				Label:     fmt.Sprintf("%s: %v", msg.Command, msg.Err),
			})
		} else {
			frame := msg.Command.Frame()
			m.log.Append(components.LogEntry{
				Timestamp: msg.Timestamp,
				Kind:      components.EntryTX,
				Label:     msg.Command.String(),
				Data:      frame[:],
			})
			m.log.Append(components.LogEntry{
				Timestamp: msg.Timestamp,
				Kind:      components.EntryRX,
				Label:     msg.Verdict.String(),
				Data:      msg.Raw,
			})
			m.statusBar.RecordTransaction(msg.Command.String(), msg.Verdict.String())
		}

	case models.ResetResultMsg:
		m.SetBusy(false)
		m.SetError(msg.Err)
		m.statusBar.SetDisconnected(msg.Err)
		m.log.Append(components.LogEntry{
			Timestamp: time.Now(),
			Kind:      components.EntryError,
			Label:     fmt.Sprintf("usb reset: %v", msg.Err),
		})

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.Cleanup()
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.resizeLog()

		case key.Matches(msg, m.keys.Clear):
			m.log.Clear()

		case key.Matches(msg, m.keys.Hex):
			m.log.ToggleHex()

		case key.Matches(msg, m.keys.On):
			cmds = append(cmds, m.issue(usbrelay.CommandOn))

		case key.Matches(msg, m.keys.Off):
			cmds = append(cmds, m.issue(usbrelay.CommandOff))

		case key.Matches(msg, m.keys.Toggle):
			cmds = append(cmds, m.issue(usbrelay.CommandToggle))

		case key.Matches(msg, m.keys.Status):
			cmds = append(cmds, m.issue(usbrelay.CommandStatus))

		case key.Matches(msg, m.keys.Reset):
			if m.IsBusy() {
				break
			}
			if !usbrelay.IsResetAvailable() {
				m.log.Append(components.LogEntry{
					Timestamp: time.Now(),
					Kind:      components.EntryError,
					Label:     "usb reset: usbreset utility not installed",
				})
				break
			}
			m.SetBusy(true)
			m.SetConnected(false)
			m.statusBar.SetConnecting()
			m.log.Append(components.LogEntry{
				Timestamp: time.Now(),
				Kind:      components.EntrySystem,
				Label:     "usb reset: releasing " + m.PortPath(),
			})
			cmds = append(cmds, m.resetDevice())
		}
	}

	switch msg.(type) {
	case tea.WindowSizeMsg:
		_, cmd := m.log.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *watchModel) View() string {
	var content string
	if m.IsReady() {
		content = m.log.View()
	} else {
		content = "Initializing..."
	}

	var spinnerView string
	if m.IsBusy() {
		spinnerView = m.spinner.View()
	}

	statusBar := m.statusBar.View(m.IsConnected(), spinnerView, time.Now().Format("15:04:05"))
	helpView := styles.HelpStyle.Render(m.help.View(m.keys))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ContentBorderStyle.Render(content),
		statusBar,
		helpView,
	)
}
