package usbrelay

import (
	"errors"
	"fmt"

	"go.bug.st/serial"
)

// Predefined error types for robust error handling
var (
	ErrNoDeviceFound = errors.New("no USB relay device found")
	ErrDeviceAccess  = errors.New("relay device cannot be accessed")
	ErrNotOpen       = errors.New("relay connection not open")
	ErrTransport     = errors.New("relay transport failure")
	ErrInvalidConfig = errors.New("invalid relay configuration")

	// USB reset errors
	ErrUSBInfoNotAvailable  = errors.New("USB device information not available")
	ErrUSBResetNotAvailable = errors.New("usbreset utility not available")
)

// classifyAccessError wraps a failed open of path in ErrDeviceAccess with a
// message that tells the user what to fix. The transport library reports
// the reason through PortError codes; raw errors are passed along verbatim.
func classifyAccessError(path string, err error) error {
	var portErr *serial.PortError
	if errors.As(err, &portErr) {
		switch portErr.Code() {
		case serial.PortBusy:
			return fmt.Errorf("%w: %s is in use by another process", ErrDeviceAccess, path)
		case serial.PermissionDenied:
			return fmt.Errorf("%w: permission denied opening %s", ErrDeviceAccess, path)
		case serial.PortNotFound:
			return fmt.Errorf("%w: %s disappeared before it could be opened", ErrDeviceAccess, path)
		}
	}
	return fmt.Errorf("%w: %s: %v", ErrDeviceAccess, path, err)
}
