package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Enhisir/android-manager/internal/adb"
)

var devicesCmd = &cobra.Command{
	Use:               "devices",
	Short:             "List devices attached to adb",
	PersistentPreRunE: requireDeps(),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := connect()
		if err != nil {
			return err
		}
		defer e.Close()

		devices, err := e.client.Devices()
		if err != nil {
			if len(devices) == 0 {
				return err
			}
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}

		if len(devices) == 0 {
			fmt.Println("No devices connected.")
			return nil
		}

		for _, d := range devices {
			nickname := ""
			if n := e.cfg.Nickname(d.Serial); n != "" {
				nickname = fmt.Sprintf(" (%s)", n)
			}
			fmt.Printf("%-20s %s  [%s] [%s]%s\n",
				d.Serial, d.Model, d.ConnType, colorState(d), nickname)
		}
		return nil
	},
}

func colorState(d adb.Device) string {
	switch {
	case d.IsOnline():
		return color.GreenString(d.State)
	case !d.IsDebuggable():
		return color.RedString(d.State)
	default:
		return color.YellowString(d.State)
	}
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}
