/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"

	"github.com/allbin/go-usbrelay"
	"github.com/allbin/go-usbrelay/internal/tui/components"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List relay candidate devices",
	Long: `List serial devices that look like USB relay boards.

A device qualifies as a candidate when its USB description mentions the
CH340/CH341 chipset family or, failing that, carries any USB serial
identity. Candidates are printed best match first; the first entry is
the port the other commands pick when --port is not given.

Examples:
  usbrelay list            # candidate ports, best first
  usbrelay list --all      # every enumerated serial port
  usbrelay list --table    # styled table with USB metadata`,
	Run: func(cmd *cobra.Command, args []string) {
		devices, err := usbrelay.ListDevices()
		if err != nil {
			exitWithError(err)
		}

		showAll, _ := cmd.Flags().GetBool("all")
		tableFormat, _ := cmd.Flags().GetBool("table")

		shown := usbrelay.Candidates(devices)
		if showAll {
			shown = devices
		}

		if len(shown) == 0 {
			if showAll {
				fmt.Println("No serial ports found")
			} else {
				fmt.Println("No relay candidates found (try --all to see every port)")
			}
			return
		}

		if tableFormat {
			fmt.Printf("Found %d device(s):\n\n", len(shown))
			fmt.Println(components.DeviceTable(shown))
		} else {
			renderPaths(shown)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolP("all", "a", false, "include ports that do not look like relay boards")
	listCmd.Flags().BoolP("table", "t", false, "display output in a styled table format")
}

// renderPaths prints one path per line, best candidate first, so the output
// can feed scripts directly.
func renderPaths(devices []usbrelay.DeviceInfo) {
	for _, dev := range devices {
		fmt.Println(dev.Path)
	}
}
