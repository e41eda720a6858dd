package components

import (
	"fmt"

	"github.com/allbin/go-usbrelay"
	"github.com/allbin/go-usbrelay/internal/tui/colors"
	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"
)

const (
	columnKeyPath   = "path"
	columnKeyDesc   = "description"
	columnKeyMatch  = "match"
	columnKeyUSBID  = "usbid"
	columnKeySerial = "serial"
)

// DeviceTable renders enumerated serial devices as a static styled table.
// Callers pass devices in the order they want them shown, typically best
// relay candidate first.
func DeviceTable(devices []usbrelay.DeviceInfo) string {
	columns := []table.Column{
		table.NewColumn(columnKeyPath, "Port", 16),
		table.NewColumn(columnKeyDesc, "Description", 30),
		table.NewColumn(columnKeyMatch, "Match", 9),
		table.NewColumn(columnKeyUSBID, "VID:PID", 11),
		table.NewColumn(columnKeySerial, "Serial", 14),
	}

	rows := make([]table.Row, 0, len(devices))
	for _, dev := range devices {
		rows = append(rows, table.NewRow(table.RowData{
			columnKeyPath:   dev.Path,
			columnKeyDesc:   dev.Description,
			columnKeyMatch:  matchCell(dev.Tier),
			columnKeyUSBID:  usbIDCell(dev),
			columnKeySerial: dev.SerialNumber,
		}))
	}

	t := table.New(columns).
		WithRows(rows).
		BorderRounded().
		WithBaseStyle(lipgloss.NewStyle().Foreground(colors.Text))

	return t.View()
}

// matchCell colors the discovery tier so the preferred candidate stands out.
func matchCell(tier int) table.StyledCell {
	switch tier {
	case usbrelay.TierChipset:
		return table.NewStyledCell("chipset",
			lipgloss.NewStyle().Foreground(colors.Green).Bold(true))
	case usbrelay.TierGeneric:
		return table.NewStyledCell("usb",
			lipgloss.NewStyle().Foreground(colors.Yellow))
	default:
		return table.NewStyledCell("-",
			lipgloss.NewStyle().Foreground(colors.Overlay0))
	}
}

func usbIDCell(dev usbrelay.DeviceInfo) string {
	if dev.VendorID == "" && dev.ProductID == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s", dev.VendorID, dev.ProductID)
}
