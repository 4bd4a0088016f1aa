package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pushCmd = &cobra.Command{
	Use:               "push <local> <remote>",
	Short:             "Copy a local file or directory to the device",
	PersistentPreRunE: requireDeps(),
	Args:              cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := connect()
		if err != nil {
			return err
		}
		defer e.Close()

		res, err := e.deployer().Push(e.serial(), args[0], args[1])
		if err != nil {
			return err
		}
		if res.Err != nil {
			return res.Err
		}
		fmt.Printf("Pushed %s to %s:%s\n", args[0], res.DeviceSerial, args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pushCmd)
}
