// Package usbrelay controls single-relay CH340 USB-serial modules: the
// common one-channel relay boards that pair a mechanical relay with a
// CH340/CH341 USB-to-serial bridge.
//
// The module speaks a fixed protocol of four 4-byte frames at 9600 8N1.
// This package finds the right device among the attached serial ports,
// performs one request/response exchange per command, and turns whatever
// bytes come back into an ON/OFF/UNKNOWN verdict.
//
// # Basic Usage
//
// Open a controller with auto-detection and switch the relay:
//
//	relay, err := usbrelay.Open("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer relay.Close()
//
//	state, err := relay.On()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(state) // ON, or UNKNOWN if the module sent no confirmation
//
// Pass a device path to skip detection:
//
//	relay, err := usbrelay.Open("/dev/ttyUSB0")
//
// # Device Discovery
//
// DetectPort ranks the attached serial ports by their USB description:
// CH340/CH341/USB-SERIAL devices first, generic USB serial devices second,
// everything else excluded. The best candidate is opened briefly at 9600
// baud to confirm the driver works before it is returned:
//
//	path, err := usbrelay.DetectPort()
//
// ListDevices exposes the underlying enumeration with USB metadata and the
// tier assigned to each port; Candidates filters and orders that list the
// way DetectPort would.
//
// # Commands and Verdicts
//
// The four commands map to literal frames; no other bytes are ever sent:
//
//	off    A0 01 00 A1
//	on     A0 01 03 A4
//	toggle A0 01 04 A5
//	status A0 01 05 A6
//
// Every operation returns a State verdict. StateUnknown is a normal
// outcome, not an error: the module answered with nothing, too few bytes,
// or a frame that does not decode. Errors are reserved for a connection
// that is not open and for transport failures:
//
//	state, err := relay.Toggle()
//	switch {
//	case errors.Is(err, usbrelay.ErrNotOpen):
//	    // caller bug: controller already closed
//	case err != nil:
//	    // write or read failed on the wire
//	case state == usbrelay.StateUnknown:
//	    // command sent, no readable confirmation
//	}
//
// # Configuration Options
//
// Use functional options to tune timing and logging:
//
//	relay, err := usbrelay.Open("",
//	    usbrelay.WithSettleDelay(150*time.Millisecond),
//	    usbrelay.WithWriteTimeout(time.Second),
//	    usbrelay.WithLogger(logger),
//	)
//
// The link parameters themselves (9600 8N1) are fixed by the module
// firmware and cannot be configured.
//
// # USB Device Recovery (Linux)
//
// A hung module can be power-cycled at the USB level without unplugging:
//
//	err := usbrelay.ResetDevice("/dev/ttyUSB0")
//	err = usbrelay.ResetDeviceBySerial("A50285BI")
//
// Requires the usbreset utility from usbutils and root/sudo permissions.
//
// # Platform Support
//
// The protocol engine and discovery work wherever the transport library
// does. USB reset relies on sysfs and the usbreset utility and is
// Linux-only.
package usbrelay
