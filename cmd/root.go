/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/allbin/go-usbrelay"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "usbrelay",
	Short: "Control CH340-based USB relay boards",
	Long: `Control single-channel USB relay boards built around the CH340/CH341
USB-to-serial bridge.

The tool locates the relay automatically by scanning serial port
descriptions for the CH340 chipset, opens it at 9600 8N1 and exchanges
the board's fixed 4-byte command frames. Every switching command reads
back the board's reply, so the reported state is what the hardware
confirmed rather than what was requested.

Configuration is resolved from flags, USBRELAY_* environment variables
and an optional config file, in that order of precedence.

Example usage:
  usbrelay on
  usbrelay off --port /dev/ttyUSB1
  usbrelay status --verbose
  usbrelay list --table
  USBRELAY_PORT=/dev/ttyUSB0 usbrelay toggle`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.usbrelay.yaml)")
	rootCmd.PersistentFlags().StringP("port", "p", "", "serial port path (default: auto-detect the relay)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log every transaction with raw frame bytes")
	rootCmd.PersistentFlags().String("log-file", "", "append structured logs to a size-rotated file")
	rootCmd.PersistentFlags().Duration("settle", usbrelay.DefaultSettleDelay, "wait between writing a command and reading the reply")

	_ = viper.BindPFlag("port", rootCmd.PersistentFlags().Lookup("port"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file"))
	_ = viper.BindPFlag("settle", rootCmd.PersistentFlags().Lookup("settle"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".usbrelay" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".usbrelay")
	}

	viper.SetEnvPrefix("usbrelay")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil && viper.GetBool("verbose") {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// controllerOptions assembles relay options from the resolved configuration.
func controllerOptions() []usbrelay.Option {
	opts := []usbrelay.Option{
		usbrelay.WithSettleDelay(viper.GetDuration("settle")),
	}

	if viper.GetBool("verbose") {
		opts = append(opts, usbrelay.WithVerbose())
	}

	if logPath := viper.GetString("log-file"); logPath != "" {
		opts = append(opts, usbrelay.WithLogger(fileLogger(logPath, viper.GetBool("verbose"))))
	}

	return opts
}

// fileLogger builds a zap logger that writes JSON lines to a size-rotated file.
// Rotation keeps the log bounded on appliances that run for months.
func fileLogger(path string, verbose bool) *zap.Logger {
	sink := zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	})

	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), sink, level)
	return zap.New(core)
}

// openController opens the relay on the configured port, falling back to
// automatic discovery when no port was given.
func openController() (*usbrelay.Controller, error) {
	return usbrelay.Open(viper.GetString("port"), controllerOptions()...)
}

// runRelayCommand opens the relay, executes a single transaction and renders
// the verdict. Discovery and transport failures exit non-zero; a silent
// device is reported as UNKNOWN and exits zero.
func runRelayCommand(op func(*usbrelay.Controller) (usbrelay.State, error)) {
	ctrl, err := openController()
	if err != nil {
		exitWithError(err)
	}
	defer ctrl.Close()

	infoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("99")).
		Bold(true)
	fmt.Printf("%s Using %s\n", infoStyle.Render("⚡"), ctrl.Path())

	state, err := op(ctrl)
	if err != nil {
		exitWithError(err)
	}

	fmt.Println(renderVerdict(state))
}

// renderVerdict formats a confirmed relay state for terminal output.
func renderVerdict(state usbrelay.State) string {
	successStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("40")).
		Bold(true)

	warnStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Bold(true)

	switch state {
	case usbrelay.StateOn:
		return fmt.Sprintf("%s Relay is %s", successStyle.Render("✓"), successStyle.Render("ON"))
	case usbrelay.StateOff:
		offStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
		return fmt.Sprintf("%s Relay is %s", successStyle.Render("✓"), offStyle.Render("OFF"))
	default:
		return fmt.Sprintf("%s Relay state is %s (device sent no confirmation)",
			warnStyle.Render("⚠"), warnStyle.Render("UNKNOWN"))
	}
}

// exitWithError prints the error with a remediation hint where one exists
// and terminates with a non-zero status.
func exitWithError(err error) {
	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("196")).
		Bold(true)

	fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("✗"), err)

	switch {
	case errors.Is(err, usbrelay.ErrNoDeviceFound):
		fmt.Fprintln(os.Stderr, "Plug in the relay board or pass an explicit --port")
		fmt.Fprintln(os.Stderr, "Use 'usbrelay list --all' to inspect every enumerated port")
	case errors.Is(err, usbrelay.ErrDeviceAccess):
		fmt.Fprintln(os.Stderr, "Check port permissions (add your user to the dialout group)")
		fmt.Fprintln(os.Stderr, "or free the port if another process is holding it open")
	}

	os.Exit(1)
}
