package models

import (
	"sync"
	"time"

	"github.com/allbin/go-usbrelay"
)

// ConnectionStatusMsg reports the outcome of the background open.
type ConnectionStatusMsg struct {
	Connected bool
	PortPath  string
	Error     error
}

// TransactionResultMsg carries one completed relay exchange.
type TransactionResultMsg struct {
	Command   usbrelay.Command
	Verdict   usbrelay.State
	Raw       []byte
	Err       error
	Timestamp time.Time
}

// PollTickMsg schedules the next background status poll.
type PollTickMsg time.Time

// ResetResultMsg reports a failed USB reset issued from the panel. A
// successful reset continues into a fresh ConnectionStatusMsg instead.
type ResetResultMsg struct {
	Err error
}

// RelayModel holds the state shared between the Bubble Tea update loop and
// the background goroutines that open, exchange and reset. The controller
// and path cross goroutines, hence the lock; the panel flags stay on the
// update loop.
type RelayModel struct {
	controller *usbrelay.Controller
	portPath   string
	mu         sync.RWMutex

	connected bool
	busy      bool
	ready     bool
	err       error
}

func NewRelayModel(portPath string) *RelayModel {
	return &RelayModel{portPath: portPath}
}

func (m *RelayModel) Controller() *usbrelay.Controller {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.controller
}

// SetController attaches an opened controller and records its resolved path.
func (m *RelayModel) SetController(ctrl *usbrelay.Controller) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.controller = ctrl
	if ctrl != nil {
		m.portPath = ctrl.Path()
	}
}

// CloseController closes and detaches the controller. The reset flow must
// release the port before usbreset touches the device.
func (m *RelayModel) CloseController() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.controller != nil {
		m.controller.Close()
		m.controller = nil
	}
}

func (m *RelayModel) PortPath() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.portPath
}

func (m *RelayModel) IsConnected() bool {
	return m.connected
}

func (m *RelayModel) SetConnected(connected bool) {
	m.connected = connected
}

func (m *RelayModel) IsBusy() bool {
	return m.busy
}

func (m *RelayModel) SetBusy(busy bool) {
	m.busy = busy
}

func (m *RelayModel) IsReady() bool {
	return m.ready
}

func (m *RelayModel) SetReady(ready bool) {
	m.ready = ready
}

func (m *RelayModel) Error() error {
	return m.err
}

func (m *RelayModel) SetError(err error) {
	m.err = err
}

func (m *RelayModel) Cleanup() {
	m.CloseController()
}
