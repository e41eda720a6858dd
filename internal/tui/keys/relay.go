package keys

import "github.com/charmbracelet/bubbles/key"

// RelayKeys drive the watch panel: one key per relay command plus log
// housekeeping.
type RelayKeys struct {
	CommonKeys
	On     key.Binding
	Off    key.Binding
	Toggle key.Binding
	Status key.Binding
	Reset  key.Binding
	Clear  key.Binding
	Hex    key.Binding
}

func NewRelayKeys() RelayKeys {
	return RelayKeys{
		CommonKeys: NewCommonKeys(),
		On: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "switch on"),
		),
		Off: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "switch off"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle"),
		),
		Status: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "query status"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "usb reset"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear log"),
		),
		Hex: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "toggle hex"),
		),
	}
}

func (k RelayKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.On, k.Off, k.Toggle, k.Status, k.Help, k.Quit}
}

func (k RelayKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.On, k.Off, k.Toggle, k.Status},
		{k.Reset, k.Clear, k.Hex},
		{k.Help, k.Quit},
	}
}
