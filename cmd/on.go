/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"github.com/allbin/go-usbrelay"
	"github.com/spf13/cobra"
)

// onCmd represents the on command
var onCmd = &cobra.Command{
	Use:   "on",
	Short: "Switch the relay on",
	Long: `Switch the relay channel on.

Sends the ON command frame and reads back the board's reply to confirm
the new state. A board that stays silent is reported as UNKNOWN; that is
a verdict, not an error, so the command still exits zero.

Example usage:
  usbrelay on
  usbrelay on --port /dev/ttyUSB1
  usbrelay on --verbose`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runRelayCommand((*usbrelay.Controller).On)
	},
}

func init() {
	rootCmd.AddCommand(onCmd)
}
