package usbrelay

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

// mockPort implements devicePort so transactions can be tested without
// hardware. Each Read consumes one queued response; an empty queue reads
// zero bytes, like a non-blocking poll on a silent device.
type mockPort struct {
	writes       [][]byte
	responses    [][]byte
	respIdx      int
	writeErr     error
	readErr      error
	drainErr     error
	shortWrite   int
	closed       bool
	readTimeouts []time.Duration
}

func (m *mockPort) Write(p []byte) (int, error) {
	if m.writeErr != nil {
		return 0, m.writeErr
	}
	m.writes = append(m.writes, append([]byte(nil), p...))
	if m.shortWrite > 0 {
		return m.shortWrite, nil
	}
	return len(p), nil
}

func (m *mockPort) Read(p []byte) (int, error) {
	if m.readErr != nil {
		return 0, m.readErr
	}
	if m.respIdx >= len(m.responses) {
		return 0, nil
	}
	n := copy(p, m.responses[m.respIdx])
	m.respIdx++
	return n, nil
}

func (m *mockPort) Drain() error             { return m.drainErr }
func (m *mockPort) ResetInputBuffer() error  { return nil }
func (m *mockPort) ResetOutputBuffer() error { return nil }
func (m *mockPort) Close() error             { m.closed = true; return nil }

func (m *mockPort) SetReadTimeout(t time.Duration) error {
	m.readTimeouts = append(m.readTimeouts, t)
	return nil
}

func (m *mockPort) addResponse(resp ...byte) {
	m.responses = append(m.responses, resp)
}

// newTestController wires a controller directly to a mock port. The settle
// delay is shortened so the test suite stays fast.
func newTestController(m devicePort) *Controller {
	config := DefaultConfig()
	config.SettleDelay = time.Millisecond
	return &Controller{
		port:   m,
		path:   "/dev/ttyUSB0",
		config: config,
		logger: zap.NewNop(),
	}
}

func TestExchangeOnConfirmed(t *testing.T) {
	mock := &mockPort{}
	mock.addResponse(0xA0, 0x01, 0x01, 0xA2)
	c := newTestController(mock)

	state, resp, err := c.Exchange(CommandOn)
	if err != nil {
		t.Fatalf("Exchange(on) error = %v", err)
	}
	if state != StateOn {
		t.Errorf("verdict = %v, expected ON", state)
	}
	if !bytes.Equal(resp, []byte{0xA0, 0x01, 0x01, 0xA2}) {
		t.Errorf("raw reply = % X, expected A0 01 01 A2", resp)
	}
	if len(mock.writes) != 1 || !bytes.Equal(mock.writes[0], []byte{0xA0, 0x01, 0x03, 0xA4}) {
		t.Errorf("writes = %v, expected exactly one ON frame", mock.writes)
	}
}

// TestExchangeToggleShortReply verifies a truncated reply degrades to an
// UNKNOWN verdict instead of an error.
func TestExchangeToggleShortReply(t *testing.T) {
	mock := &mockPort{}
	mock.addResponse(0xA0, 0x01)
	c := newTestController(mock)

	state, _, err := c.Exchange(CommandToggle)
	if err != nil {
		t.Fatalf("Exchange(toggle) error = %v", err)
	}
	if state != StateUnknown {
		t.Errorf("verdict = %v, expected UNKNOWN", state)
	}
}

// TestExchangeStatusNoReply verifies a silent device yields UNKNOWN and the
// transaction completes without error.
func TestExchangeStatusNoReply(t *testing.T) {
	mock := &mockPort{}
	c := newTestController(mock)

	state, resp, err := c.Exchange(CommandStatus)
	if err != nil {
		t.Fatalf("Exchange(status) error = %v", err)
	}
	if state != StateUnknown {
		t.Errorf("verdict = %v, expected UNKNOWN", state)
	}
	if len(resp) != 0 {
		t.Errorf("raw reply = % X, expected none", resp)
	}
}

func TestOperationFrames(t *testing.T) {
	tests := []struct {
		name  string
		op    func(*Controller) (State, error)
		frame []byte
	}{
		{"On", (*Controller).On, []byte{0xA0, 0x01, 0x03, 0xA4}},
		{"Off", (*Controller).Off, []byte{0xA0, 0x01, 0x00, 0xA1}},
		{"Toggle", (*Controller).Toggle, []byte{0xA0, 0x01, 0x04, 0xA5}},
		{"Status", (*Controller).Status, []byte{0xA0, 0x01, 0x05, 0xA6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockPort{}
			c := newTestController(mock)

			if _, err := tt.op(c); err != nil {
				t.Fatalf("%s() error = %v", tt.name, err)
			}
			if len(mock.writes) != 1 {
				t.Fatalf("writes = %d, expected 1", len(mock.writes))
			}
			if !bytes.Equal(mock.writes[0], tt.frame) {
				t.Errorf("%s() wrote % X, expected % X", tt.name, mock.writes[0], tt.frame)
			}
		})
	}
}

func TestOperationVerdicts(t *testing.T) {
	tests := []struct {
		name     string
		op       func(*Controller) (State, error)
		reply    []byte
		expected State
	}{
		{"On confirmed", (*Controller).On, []byte{0xA0, 0x01, 0x01, 0xA2}, StateOn},
		{"Off confirmed", (*Controller).Off, []byte{0xA0, 0x01, 0x00, 0xA1}, StateOff},
		{"Toggle reports new state", (*Controller).Toggle, []byte{0xA0, 0x01, 0x00, 0xA1}, StateOff},
		{"Status reports current state", (*Controller).Status, []byte{0xA0, 0x01, 0x01, 0xA2}, StateOn},
		{"Off unacknowledged", (*Controller).Off, nil, StateUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockPort{}
			if tt.reply != nil {
				mock.responses = append(mock.responses, tt.reply)
			}
			c := newTestController(mock)

			state, err := tt.op(c)
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if state != tt.expected {
				t.Errorf("verdict = %v, expected %v", state, tt.expected)
			}
		})
	}
}

// TestStatusIdempotent issues STATUS twice with no state change in between;
// the verdict must not drift.
func TestStatusIdempotent(t *testing.T) {
	mock := &mockPort{}
	mock.addResponse(0xA0, 0x01, 0x01, 0xA2)
	mock.addResponse(0xA0, 0x01, 0x01, 0xA2)
	c := newTestController(mock)

	first, err := c.Status()
	if err != nil {
		t.Fatalf("first Status() error = %v", err)
	}
	second, err := c.Status()
	if err != nil {
		t.Fatalf("second Status() error = %v", err)
	}
	if first != second {
		t.Errorf("Status() verdicts differ: %v then %v", first, second)
	}
	if first != StateOn {
		t.Errorf("Status() = %v, expected ON", first)
	}
}

func TestExchangeNotOpen(t *testing.T) {
	mock := &mockPort{}
	c := newTestController(mock)
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	_, _, err := c.Exchange(CommandOn)
	if !errors.Is(err, ErrNotOpen) {
		t.Errorf("Exchange() after Close error = %v, expected ErrNotOpen", err)
	}
}

func TestCloseIdempotent(t *testing.T) {
	mock := &mockPort{}
	c := newTestController(mock)

	if err := c.Close(); err != nil {
		t.Fatalf("first Close() error = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("second Close() error = %v, expected nil", err)
	}
	if !mock.closed {
		t.Error("underlying port was not closed")
	}
}

func TestExchangeTransportFailures(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(*mockPort)
		wantMsg string
	}{
		{"write error", func(m *mockPort) { m.writeErr = errors.New("input/output error") }, "write failed"},
		{"incomplete write", func(m *mockPort) { m.shortWrite = 2 }, "incomplete write"},
		{"drain error", func(m *mockPort) { m.drainErr = errors.New("input/output error") }, "drain failed"},
		{"read error", func(m *mockPort) { m.readErr = errors.New("device reports readiness to read but returned no data") }, "read failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockPort{}
			tt.setup(mock)
			c := newTestController(mock)

			state, _, err := c.Exchange(CommandToggle)
			if !errors.Is(err, ErrTransport) {
				t.Fatalf("error = %v, expected ErrTransport", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
			if state != StateUnknown {
				t.Errorf("verdict = %v, expected UNKNOWN on transport failure", state)
			}

			// The connection must still release cleanly after the failure.
			if err := c.Close(); err != nil {
				t.Errorf("Close() after failure error = %v", err)
			}
			if !mock.closed {
				t.Error("port left open after transport failure")
			}
		})
	}
}

// TestExchangePollIsNonBlocking verifies the post-settle availability check
// switches the port to a zero timeout and restores the configured one.
func TestExchangePollIsNonBlocking(t *testing.T) {
	mock := &mockPort{}
	mock.addResponse(0xA0, 0x01, 0x00, 0xA1)
	c := newTestController(mock)

	if _, _, err := c.Exchange(CommandOff); err != nil {
		t.Fatalf("Exchange() error = %v", err)
	}

	if len(mock.readTimeouts) != 2 {
		t.Fatalf("SetReadTimeout calls = %d, expected 2 (poll + restore)", len(mock.readTimeouts))
	}
	if mock.readTimeouts[0] != 0 {
		t.Errorf("poll timeout = %v, expected 0 (non-blocking)", mock.readTimeouts[0])
	}
	if mock.readTimeouts[1] != c.config.ReadTimeout {
		t.Errorf("restored timeout = %v, expected %v", mock.readTimeouts[1], c.config.ReadTimeout)
	}
}

// TestExchangeSettleWait verifies the settle interval elapses before the
// reply is read, even when bytes are already queued.
func TestExchangeSettleWait(t *testing.T) {
	mock := &mockPort{}
	mock.addResponse(0xA0, 0x01, 0x01, 0xA2)
	c := newTestController(mock)
	c.config.SettleDelay = 50 * time.Millisecond

	start := time.Now()
	if _, _, err := c.Exchange(CommandStatus); err != nil {
		t.Fatalf("Exchange() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("transaction finished in %v, expected the full 50ms settle wait", elapsed)
	}
}

func TestWriteTimeout(t *testing.T) {
	mock := &blockingPort{mockPort: &mockPort{}, release: make(chan struct{})}
	defer close(mock.release)

	c := newTestController(mock)
	c.config.WriteTimeout = 20 * time.Millisecond

	_, _, err := c.Exchange(CommandOn)
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("error = %v, expected ErrTransport", err)
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Errorf("error %q does not mention the timeout", err)
	}
}

// blockingPort hangs writes until released, for write-timeout tests.
type blockingPort struct {
	*mockPort
	release chan struct{}
}

func (b *blockingPort) Write(p []byte) (int, error) {
	<-b.release
	return len(p), nil
}
