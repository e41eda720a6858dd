package usbrelay

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// reenumerationDelay gives the kernel time to re-create the tty node after
// a reset before callers try to reopen the module.
const reenumerationDelay = 2 * time.Second

// sysfsTTYRoot is a variable so tests can point it at a scratch tree.
var sysfsTTYRoot = "/sys/class/tty"

// ResetDevice performs a USB-level reset of the relay module behind the
// given port path. This can recover a module that stopped acknowledging
// commands without physically unplugging it.
//
// Requirements:
// - usbreset utility must be installed (from usbutils package)
// - Requires appropriate permissions (typically root/sudo)
//
// The device re-enumerates afterwards and may come back under a different
// path; use ResetDeviceBySerial when that matters.
func ResetDevice(path string) error {
	if !IsResetAvailable() {
		return ErrUSBResetNotAvailable
	}

	bus, dev, err := usbBusAddress(filepath.Base(path))
	if err != nil {
		return err
	}

	usbPath := usbResetArg(bus, dev)
	if output, err := exec.Command("usbreset", usbPath).CombinedOutput(); err != nil {
		return fmt.Errorf("usbreset failed: %w (output: %s)", err, strings.TrimSpace(string(output)))
	}

	time.Sleep(reenumerationDelay)
	return nil
}

// ResetDeviceBySerial resets the relay module with the given USB serial
// number. Serial numbers survive re-enumeration while paths do not.
func ResetDeviceBySerial(serialNumber string) error {
	devices, err := ListDevices()
	if err != nil {
		return err
	}

	for _, d := range devices {
		if d.SerialNumber != "" && d.SerialNumber == serialNumber {
			return ResetDevice(d.Path)
		}
	}

	return fmt.Errorf("device with serial %s not found", serialNumber)
}

// usbResetArg formats a bus/device pair the way usbreset addresses devices:
// zero-padded 3-digit numbers joined with a slash.
func usbResetArg(bus, dev int) string {
	return fmt.Sprintf("%03d/%03d", bus, dev)
}

// IsResetAvailable checks if the usbreset utility is available in PATH
func IsResetAvailable() bool {
	_, err := exec.LookPath("usbreset")
	return err == nil
}

// usbBusAddress resolves the USB bus and device numbers for a tty name via
// sysfs. The port enumerator does not expose these, so they are read from
// the device directory directly.
func usbBusAddress(name string) (bus, dev int, err error) {
	devicePath := filepath.Join(sysfsTTYRoot, name, "device")
	resolved, err := filepath.EvalSymlinks(devicePath)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %s has no sysfs device entry", ErrUSBInfoNotAvailable, name)
	}

	// The tty node sits below <usb device>/<interface>/; busnum and devnum
	// live two levels up in the USB device directory.
	usbDevice := filepath.Dir(filepath.Dir(resolved))
	busStr := readSysfsFile(filepath.Join(usbDevice, "busnum"))
	devStr := readSysfsFile(filepath.Join(usbDevice, "devnum"))
	if busStr == "" || devStr == "" {
		return 0, 0, fmt.Errorf("%w: %s", ErrUSBInfoNotAvailable, name)
	}

	bus, err = strconv.Atoi(busStr)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: unexpected busnum %q", ErrUSBInfoNotAvailable, busStr)
	}
	dev, err = strconv.Atoi(devStr)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: unexpected devnum %q", ErrUSBInfoNotAvailable, devStr)
	}
	return bus, dev, nil
}

// readSysfsFile reads a single sysfs attribute, returning "" when the file
// is missing or unreadable.
func readSysfsFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
