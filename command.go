package usbrelay

// Command identifies one of the four operations a CH340 relay module
// understands. No other request is ever written to the device.
type Command int

const (
	CommandOff Command = iota
	CommandOn
	CommandToggle
	CommandStatus
)

// frameHeader prefixes every request and response frame.
var frameHeader = [2]byte{0xA0, 0x01}

// commandFrames holds the exact request frame for each command: header,
// opcode, checksum. The checksums come from the module documentation as
// literal values; they are not derived from the opcode here because the
// vendor never published a formula and only these four frames exist.
var commandFrames = [...][4]byte{
	CommandOff:    {0xA0, 0x01, 0x00, 0xA1},
	CommandOn:     {0xA0, 0x01, 0x03, 0xA4},
	CommandToggle: {0xA0, 0x01, 0x04, 0xA5},
	CommandStatus: {0xA0, 0x01, 0x05, 0xA6},
}

// Frame returns the 4-byte request frame for the command. The result is a
// copy; mutating it does not affect future calls.
func (c Command) Frame() [4]byte {
	return commandFrames[c]
}

// String returns the command name as used on the CLI.
func (c Command) String() string {
	switch c {
	case CommandOff:
		return "off"
	case CommandOn:
		return "on"
	case CommandToggle:
		return "toggle"
	case CommandStatus:
		return "status"
	default:
		return "invalid"
	}
}
