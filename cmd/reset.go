/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/allbin/go-usbrelay"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// resetCmd represents the reset command
var resetCmd = &cobra.Command{
	Use:   "reset [port]",
	Short: "USB-reset a hung relay device",
	Long: `Perform a USB-level reset on the relay device. This recovers boards whose
CH340 bridge has wedged without physically replugging them.

The device re-enumerates after the reset, so the port path may change
(/dev/ttyUSB0 can come back as /dev/ttyUSB1). Use --serial to target a
board by its USB serial number, which survives re-enumeration.

Without an argument or --serial the command resets the device automatic
discovery picks.

Requirements:
- the usbreset utility (from the usbutils package)
- root or sudo, as USB resets need raw device access

Examples:
  sudo usbrelay reset                   # reset the discovered relay
  sudo usbrelay reset /dev/ttyUSB0      # reset by port path
  sudo usbrelay reset --serial A12B3C   # reset by USB serial number`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) > 1 {
			return errors.New("accepts at most one port path argument")
		}
		serialFlag, _ := cmd.Flags().GetString("serial")
		if serialFlag != "" && len(args) > 0 {
			return errors.New("cannot combine a port path with --serial")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		if !usbrelay.IsResetAvailable() {
			fmt.Fprintln(os.Stderr, "Error: usbreset utility not available")
			fmt.Fprintln(os.Stderr, "Install with: sudo apt-get install usbutils")
			os.Exit(1)
		}

		serialFlag, _ := cmd.Flags().GetString("serial")

		var err error
		if serialFlag != "" {
			fmt.Printf("Resetting USB device with serial: %s\n", serialFlag)
			err = usbrelay.ResetDeviceBySerial(serialFlag)
		} else {
			portPath := viper.GetString("port")
			if len(args) == 1 {
				portPath = args[0]
			}
			if portPath == "" {
				portPath, err = usbrelay.DetectPort()
				if err != nil {
					exitWithError(err)
				}
			}
			fmt.Printf("Resetting USB device: %s\n", portPath)
			err = usbrelay.ResetDevice(portPath)
		}

		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			if errors.Is(err, usbrelay.ErrUSBInfoNotAvailable) {
				fmt.Fprintln(os.Stderr, "This device does not appear to be a USB device")
			}
			os.Exit(1)
		}

		fmt.Println("USB device reset successfully")
		fmt.Println("Device will re-enumerate (port path may change)")
		fmt.Println("\nUse 'usbrelay list --table' to see the updated device list")
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)

	resetCmd.Flags().StringP("serial", "s", "", "reset the device with this USB serial number")
}
