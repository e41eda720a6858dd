package usbrelay

// State is the verdict of one relay transaction.
//
// StateUnknown is a normal outcome rather than an error: the device sent
// nothing, too few bytes, or a frame that does not decode. For On, Off and
// Toggle the physical switch action has already been attempted by the time
// the reply is evaluated, so Unknown means "command sent, confirmation
// missing".
type State int

const (
	StateUnknown State = iota
	StateOff
	StateOn
)

func (s State) String() string {
	switch s {
	case StateOn:
		return "ON"
	case StateOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}
