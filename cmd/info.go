package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Enhisir/android-manager/internal/adb"
	"github.com/Enhisir/android-manager/internal/device"
)

var infoCmd = &cobra.Command{
	Use:               "info",
	Short:             "Show a device's manufacturer, name, codename and SDK level",
	PersistentPreRunE: requireDeps(),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := connect()
		if err != nil {
			return err
		}
		defer e.Close()

		h, err := device.Open(e.client, e.serial())
		if err != nil {
			return err
		}

		fmt.Printf("Serial: %s\n", h.Serial())
		if n := e.cfg.Nickname(h.Serial()); n != "" {
			fmt.Printf("Nickname: %s\n", n)
		}
		fmt.Printf("Name: %s\n", h.Name())
		info := h.Info()
		for _, key := range adb.PropertyKeys {
			fmt.Printf("  %-26s %v\n", key, info[key].Get())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
