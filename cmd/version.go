package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:               "version",
	Short:             "Print android-manager and adb versions",
	PersistentPreRunE: requireDeps(),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("android-manager %s\n", Version)
		e, err := connect()
		if err != nil {
			return err
		}
		defer e.Close()

		v, err := e.client.Version()
		if err != nil {
			return err
		}
		fmt.Printf("adb: %s\n%s\n", e.client.Path(), v)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
