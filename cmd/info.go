/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/allbin/go-usbrelay"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info [port]",
	Short: "Display detailed information about a relay device",
	Long: `Display detailed information about a relay device, including the USB
metadata the enumerator reports and how the discovery logic classifies
its description.

Without an argument the command inspects the device that automatic
discovery would pick.

Examples:
  usbrelay info
  usbrelay info /dev/ttyUSB0`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		devices, err := usbrelay.ListDevices()
		if err != nil {
			exitWithError(err)
		}

		target := viper.GetString("port")
		if len(args) == 1 {
			target = args[0]
		}

		var dev usbrelay.DeviceInfo
		if target == "" {
			candidates := usbrelay.Candidates(devices)
			if len(candidates) == 0 {
				exitWithError(usbrelay.ErrNoDeviceFound)
			}
			dev = candidates[0]
		} else {
			found := false
			for _, d := range devices {
				if d.Path == target {
					dev = d
					found = true
					break
				}
			}
			if !found {
				fmt.Fprintf(os.Stderr, "Error: %s is not an enumerated serial port\n", target)
				os.Exit(1)
			}
		}

		fmt.Printf("Device Information: %s\n\n", dev.Path)
		fmt.Printf("  Description: %s\n", dev.Description)
		fmt.Printf("  Match:       %s\n", matchDescription(dev.Tier))

		if dev.VendorID != "" || dev.ProductID != "" {
			fmt.Println("\nUSB Metadata:")
			if dev.VendorID != "" {
				fmt.Printf("  Vendor ID:  %s\n", dev.VendorID)
			}
			if dev.ProductID != "" {
				fmt.Printf("  Product ID: %s\n", dev.ProductID)
			}
			if dev.SerialNumber != "" {
				fmt.Printf("  Serial:     %s\n", dev.SerialNumber)
			}
		}

		fmt.Println()
		if usbrelay.IsResetAvailable() {
			fmt.Println("USB reset: available (usbreset found in PATH)")
		} else {
			fmt.Println("USB reset: unavailable (install usbutils for 'usbrelay reset')")
		}
	},
}

// matchDescription explains a discovery tier in words.
func matchDescription(tier int) string {
	switch tier {
	case usbrelay.TierChipset:
		return "CH340/CH341 chipset keyword (preferred candidate)"
	case usbrelay.TierGeneric:
		return "generic USB description (fallback candidate)"
	default:
		return "no keyword match (not a candidate)"
	}
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
