package usbrelay

import (
	"fmt"
	"io"
	"sync"
	"time"

	"go.bug.st/serial"
	"go.uber.org/zap"
)

// responseBufferSize is how many bytes one poll reads. Replies are four
// bytes but some module revisions echo the request back first.
const responseBufferSize = 32

// devicePort is the slice of the transport's Port interface the controller
// needs. Narrow so tests can substitute a mock device.
type devicePort interface {
	io.ReadWriteCloser
	Drain() error
	ResetInputBuffer() error
	ResetOutputBuffer() error
	SetReadTimeout(t time.Duration) error
}

// relayMode returns the fixed 9600 8N1 framing every CH340 relay module
// uses.
func relayMode() *serial.Mode {
	return &serial.Mode{
		BaudRate: BaudRate,
		DataBits: DataBits,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
}

// Controller drives a single-relay CH340 module over an open serial
// connection.
//
// A controller is created by Open and must be released with Close. The
// internal lock serializes transactions, so a background status poller and
// an interactive caller cannot interleave frames on the wire.
type Controller struct {
	mu     sync.Mutex
	port   devicePort
	path   string
	config Config
	logger *zap.Logger
}

// Open connects to the relay module on path. An empty path triggers
// auto-detection, see DetectPort.
//
// The connection is opened at 9600 8N1 and any bytes left over from a
// previous session are discarded in both directions, so stale data cannot
// be misread as a reply to the first command.
func Open(path string, opts ...Option) (*Controller, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}
	logger := config.logger()

	if path == "" {
		detected, err := detectPort(logger)
		if err != nil {
			return nil, err
		}
		path = detected
	}

	port, err := serial.Open(path, relayMode())
	if err != nil {
		return nil, classifyAccessError(path, err)
	}
	if err := setupPort(port, config.ReadTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrTransport, path, err)
	}

	c := &Controller{
		port:   port,
		path:   path,
		config: config,
		logger: logger.With(zap.String("port", path)),
	}
	c.logger.Debug("connection opened",
		zap.Int("baud", BaudRate),
		zap.Duration("settle_delay", config.SettleDelay))
	return c, nil
}

// setupPort applies the read timeout and clears both directions of the
// freshly opened port.
func setupPort(port devicePort, readTimeout time.Duration) error {
	if err := port.SetReadTimeout(readTimeout); err != nil {
		return fmt.Errorf("set read timeout: %v", err)
	}
	if err := port.ResetInputBuffer(); err != nil {
		return fmt.Errorf("reset input buffer: %v", err)
	}
	if err := port.ResetOutputBuffer(); err != nil {
		return fmt.Errorf("reset output buffer: %v", err)
	}
	return nil
}

// Path returns the device path the controller is connected to. For
// auto-detected modules this is the resolved path.
func (c *Controller) Path() string {
	return c.path
}

// Close releases the serial connection. It is safe to call more than once.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.port == nil {
		return nil
	}
	err := c.port.Close()
	c.port = nil
	c.logger.Debug("connection closed")
	return err
}

// On closes the relay contacts. The verdict confirms the new state when the
// module answers; StateUnknown means the command went out without readable
// confirmation.
func (c *Controller) On() (State, error) {
	state, _, err := c.Exchange(CommandOn)
	return state, err
}

// Off opens the relay contacts.
func (c *Controller) Off() (State, error) {
	state, _, err := c.Exchange(CommandOff)
	return state, err
}

// Toggle flips the relay and reports the state after the flip.
func (c *Controller) Toggle() (State, error) {
	state, _, err := c.Exchange(CommandToggle)
	return state, err
}

// Status reports the current relay state without changing it.
func (c *Controller) Status() (State, error) {
	state, _, err := c.Exchange(CommandStatus)
	return state, err
}

// Exchange performs one request/response transaction and returns the
// verdict together with the raw reply bytes, which may be empty. Most
// callers want On, Off, Toggle or Status instead; the raw bytes exist for
// diagnostics.
//
// An error is returned only when the connection is not open or the
// transport itself fails. A missing or garbled reply is a StateUnknown
// verdict, not an error.
func (c *Controller) Exchange(cmd Command) (State, []byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.port == nil {
		return StateUnknown, nil, ErrNotOpen
	}

	frame := cmd.Frame()
	if err := c.writeFrame(frame); err != nil {
		return StateUnknown, nil, err
	}
	c.logger.Debug("command sent",
		zap.Stringer("command", cmd),
		zap.String("frame", fmt.Sprintf("% X", frame[:])))

	// The settle interval is a hardware accommodation, not a timeout: the
	// relay transient has to resolve before the status byte means anything,
	// so the wait runs in full even if bytes are already queued.
	time.Sleep(c.config.SettleDelay)

	resp, err := c.readAvailable()
	if err != nil {
		return StateUnknown, nil, err
	}
	if len(resp) == 0 {
		c.logger.Debug("no reply within settle window", zap.Stringer("command", cmd))
		return StateUnknown, nil, nil
	}
	c.logger.Debug("reply received", zap.String("bytes", fmt.Sprintf("% X", resp)))
	return ParseResponse(resp), resp, nil
}

// writeFrame writes the frame and drains the transmit path so the device
// sees the bytes before the settle wait starts. The configured write
// timeout bounds the whole step.
func (c *Controller) writeFrame(frame [4]byte) error {
	done := make(chan error, 1)
	go func() {
		n, err := c.port.Write(frame[:])
		if err != nil {
			done <- fmt.Errorf("%w: write failed: %v", ErrTransport, err)
			return
		}
		if n != len(frame) {
			done <- fmt.Errorf("%w: incomplete write: % X", ErrTransport, frame[:n])
			return
		}
		if err := c.port.Drain(); err != nil {
			done <- fmt.Errorf("%w: drain failed: %v", ErrTransport, err)
			return
		}
		done <- nil
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(c.config.WriteTimeout):
		return fmt.Errorf("%w: write timed out after %v", ErrTransport, c.config.WriteTimeout)
	}
}

// readAvailable polls the receive buffer without blocking and returns
// whatever the device has produced so far, then restores the configured
// read timeout. A zero-length result is the "no reply" outcome, not an
// error.
func (c *Controller) readAvailable() ([]byte, error) {
	if err := c.port.SetReadTimeout(0); err != nil {
		return nil, fmt.Errorf("%w: set read timeout: %v", ErrTransport, err)
	}
	buf := make([]byte, responseBufferSize)
	n, err := c.port.Read(buf)
	if err != nil {
		return nil, fmt.Errorf("%w: read failed: %v", ErrTransport, err)
	}
	if err := c.port.SetReadTimeout(c.config.ReadTimeout); err != nil {
		return nil, fmt.Errorf("%w: restore read timeout: %v", ErrTransport, err)
	}
	return buf[:n], nil
}
