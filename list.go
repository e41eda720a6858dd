package usbrelay

import (
	"fmt"

	"go.bug.st/serial/enumerator"
)

// DeviceInfo describes one enumerated serial port together with the tier
// the resolver would assign it. Tier is TierNone for ports that are not
// relay candidates.
type DeviceInfo struct {
	Path         string
	Description  string
	Tier         int
	VendorID     string
	ProductID    string
	SerialNumber string
}

// ListDevices enumerates every serial port visible to the operating system,
// with USB metadata where the platform provides it. The list preserves
// enumeration order and is rebuilt on every call.
func ListDevices() ([]DeviceInfo, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("enumerating serial ports: %w", err)
	}
	devices := make([]DeviceInfo, 0, len(ports))
	for _, p := range ports {
		devices = append(devices, DeviceInfo{
			Path:         p.Name,
			Description:  p.Product,
			Tier:         classifyDescription(p.Product),
			VendorID:     p.VID,
			ProductID:    p.PID,
			SerialNumber: p.SerialNumber,
		})
	}
	return devices, nil
}
