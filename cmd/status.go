/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"github.com/allbin/go-usbrelay"
	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Query the relay state without changing it",
	Long: `Query the current relay state.

Sends the STATUS command frame, which does not switch the relay, and
reports the state byte from the board's reply. Repeating the query
leaves the relay untouched.

Example usage:
  usbrelay status
  usbrelay status --port /dev/ttyUSB1
  watch -n 5 usbrelay status`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runRelayCommand((*usbrelay.Controller).Status)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
