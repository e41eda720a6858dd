package usbrelay

import (
	"bytes"
	"testing"
)

func TestCommandFrames(t *testing.T) {
	tests := []struct {
		cmd   Command
		frame []byte
	}{
		{CommandOff, []byte{0xA0, 0x01, 0x00, 0xA1}},
		{CommandOn, []byte{0xA0, 0x01, 0x03, 0xA4}},
		{CommandToggle, []byte{0xA0, 0x01, 0x04, 0xA5}},
		{CommandStatus, []byte{0xA0, 0x01, 0x05, 0xA6}},
	}

	for _, tt := range tests {
		t.Run(tt.cmd.String(), func(t *testing.T) {
			frame := tt.cmd.Frame()
			if !bytes.Equal(frame[:], tt.frame) {
				t.Errorf("Frame() = % X, expected % X", frame[:], tt.frame)
			}
		})
	}
}

// TestCommandFrameCopy verifies Frame returns an independent copy, so a
// caller scribbling on one frame cannot corrupt later transactions.
func TestCommandFrameCopy(t *testing.T) {
	first := CommandOn.Frame()
	first[3] = 0xFF

	second := CommandOn.Frame()
	if second[3] != 0xA4 {
		t.Errorf("Frame() after mutation = % X, expected A0 01 03 A4", second[:])
	}
}

func TestCommandString(t *testing.T) {
	tests := []struct {
		cmd      Command
		expected string
	}{
		{CommandOff, "off"},
		{CommandOn, "on"},
		{CommandToggle, "toggle"},
		{CommandStatus, "status"},
		{Command(42), "invalid"},
	}

	for _, tt := range tests {
		if got := tt.cmd.String(); got != tt.expected {
			t.Errorf("Command(%d).String() = %q, expected %q", int(tt.cmd), got, tt.expected)
		}
	}
}

func BenchmarkCommandFrame(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = CommandStatus.Frame()
	}
}
