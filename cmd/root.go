package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Enhisir/android-manager/internal/adb"
)

// Version of android-manager.
const Version = "0.1.0"

var serialFlag string

var rootCmd = &cobra.Command{
	Use:     "android-manager",
	Short:   "Install packages and push data to Android devices over adb",
	Version: Version,
	Long: `android-manager lists devices attached to adb, reads their properties,
and installs .apk/.apks packages, optionally restoring data and OBB caches
onto the device first.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&serialFlag, "serial", "s", "", "Device serial (default: config default_serial, or the only device)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if hint := hintFor(err); hint != "" {
			fmt.Fprintln(os.Stderr, hint)
		}
		os.Exit(1)
	}
}

func hintFor(err error) string {
	switch {
	case errors.Is(err, adb.ErrAmbiguousDevice):
		return "Pass --serial, or set one with 'android-manager config set-default <serial>'."
	case errors.Is(err, adb.ErrNotDebuggable):
		return "Please turn your device into debug mode."
	case errors.Is(err, adb.ErrDeviceNotFound):
		return "Check the cable and that USB debugging is enabled, then run 'android-manager devices'."
	}
	return ""
}
