package usbrelay

// Response frame layout: bytes 0-1 are the A0 01 header, byte 2 carries the
// relay state, byte 3 is the checksum. The module sometimes appends extra
// bytes; anything past byte 3 is ignored.
const (
	responseMinLength = 4

	stateByteOff = 0x00
	stateByteOn  = 0x01
)

// ParseResponse interprets the raw bytes read back after a command.
//
// A frame shorter than four bytes, a header mismatch, or an unrecognized
// state byte all yield StateUnknown. None of these are errors: the module
// frequently answers an OFF command with silence.
func ParseResponse(resp []byte) State {
	if len(resp) < responseMinLength {
		return StateUnknown
	}
	if resp[0] != frameHeader[0] || resp[1] != frameHeader[1] {
		return StateUnknown
	}
	switch resp[2] {
	case stateByteOn:
		return StateOn
	case stateByteOff:
		return StateOff
	default:
		return StateUnknown
	}
}
