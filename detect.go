package usbrelay

import (
	"sort"
	"strings"

	"go.bug.st/serial"
	"go.uber.org/zap"
)

// Keyword sets used to classify port descriptions, checked against the
// uppercased description. A port matching neither set is not a candidate.
var (
	chipsetKeywords = []string{"CH340", "CH341", "USB-SERIAL"}
	genericKeywords = []string{"USB"}
)

// Candidate tiers, lower is better. TierNone ports are never probed or
// selected.
const (
	TierNone    = 0
	TierChipset = 1
	TierGeneric = 2
)

// classifyDescription maps a port description onto a priority tier. Ports
// without a description match nothing.
func classifyDescription(desc string) int {
	if desc == "" {
		return TierNone
	}
	upper := strings.ToUpper(desc)
	for _, kw := range chipsetKeywords {
		if strings.Contains(upper, kw) {
			return TierChipset
		}
	}
	for _, kw := range genericKeywords {
		if strings.Contains(upper, kw) {
			return TierGeneric
		}
	}
	return TierNone
}

// Candidates filters devices down to relay candidates ordered by tier,
// best first. The sort is stable so enumeration order breaks ties. The
// first entry is the device DetectPort would pick.
func Candidates(devices []DeviceInfo) []DeviceInfo {
	var candidates []DeviceInfo
	for _, d := range devices {
		if d.Tier == TierNone {
			continue
		}
		candidates = append(candidates, d)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Tier < candidates[j].Tier
	})
	return candidates
}

// DetectPort scans the attached serial devices for a relay module and
// returns the path of the best candidate after confirming it can be opened.
//
// It returns ErrNoDeviceFound when no description matches the keyword sets
// and ErrDeviceAccess when the chosen candidate fails the open probe. The
// candidate list is built fresh on every call.
func DetectPort() (string, error) {
	return detectPort(zap.NewNop())
}

func detectPort(logger *zap.Logger) (string, error) {
	devices, err := ListDevices()
	if err != nil {
		return "", err
	}
	return selectCandidate(devices, probePort, logger)
}

// selectCandidate ranks the devices, picks the best candidate and runs the
// confirmation probe against it. Split from detectPort so selection logic
// is testable without hardware.
func selectCandidate(devices []DeviceInfo, probe func(string) error, logger *zap.Logger) (string, error) {
	candidates := Candidates(devices)
	if len(candidates) == 0 {
		return "", ErrNoDeviceFound
	}
	best := candidates[0]
	logger.Info("relay device selected",
		zap.String("port", best.Path),
		zap.String("description", best.Description),
		zap.Int("tier", best.Tier))
	if err := probe(best.Path); err != nil {
		return "", err
	}
	return best.Path, nil
}

// probePort opens the port briefly at the relay baud rate and closes it
// again, verifying the driver works and nothing else holds the device.
func probePort(path string) error {
	port, err := serial.Open(path, relayMode())
	if err != nil {
		return classifyAccessError(path, err)
	}
	if err := port.Close(); err != nil {
		return classifyAccessError(path, err)
	}
	return nil
}
