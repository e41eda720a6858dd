/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"github.com/allbin/go-usbrelay"
	"github.com/spf13/cobra"
)

// offCmd represents the off command
var offCmd = &cobra.Command{
	Use:   "off",
	Short: "Switch the relay off",
	Long: `Switch the relay channel off.

Sends the OFF command frame and reads back the board's reply to confirm
the new state. Boards that acknowledge with a state byte report OFF;
boards that stay silent report UNKNOWN.

Example usage:
  usbrelay off
  usbrelay off --port /dev/ttyUSB1`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runRelayCommand((*usbrelay.Controller).Off)
	},
}

func init() {
	rootCmd.AddCommand(offCmd)
}
