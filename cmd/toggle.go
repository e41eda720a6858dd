/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"github.com/allbin/go-usbrelay"
	"github.com/spf13/cobra"
)

// toggleCmd represents the toggle command
var toggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Toggle the relay state",
	Long: `Invert the relay channel state.

The board flips the relay itself, so the command works without knowing
the current state. The reply reports the state the relay ended up in.

Example usage:
  usbrelay toggle
  usbrelay toggle --port /dev/ttyUSB1`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runRelayCommand((*usbrelay.Controller).Toggle)
	},
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}
