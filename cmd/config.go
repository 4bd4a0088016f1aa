package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Enhisir/android-manager/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage android-manager configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		fmt.Printf("Config file: %s\n\n", config.ConfigPath())

		dir, source := cfg.ToolsDir()
		if source == "" {
			fmt.Printf("Platform tools: (adb from PATH)\n")
		} else {
			fmt.Printf("Platform tools: %s (%s)\n", dir, source)
		}
		fmt.Printf("adb: %s\n", cfg.ADBPath())
		fmt.Printf("Log file: %s (level %s)\n", cfg.LogFile, cfg.LogLevel)
		fmt.Printf("Staging dir: %s\n", cfg.StagingDir())
		if cfg.DefaultSerial != "" {
			fmt.Printf("Default serial: %s\n", cfg.DefaultSerial)
		}

		fmt.Printf("\nDevices:\n")
		if len(cfg.Devices) == 0 {
			fmt.Println("  (none configured)")
		}
		serials := make([]string, 0, len(cfg.Devices))
		for serial := range cfg.Devices {
			serials = append(serials, serial)
		}
		sort.Strings(serials)
		for _, serial := range serials {
			fmt.Printf("  - %s", serial)
			if n := cfg.Devices[serial].Nickname; n != "" {
				fmt.Printf(" (%s)", n)
			}
			fmt.Println()
		}
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.DefaultConfig()
		if err := config.Save(cfg); err != nil {
			return err
		}
		fmt.Printf("Config created at %s\n", config.ConfigPath())
		return nil
	},
}

var configNicknameCmd = &cobra.Command{
	Use:   "nickname <serial> <name>",
	Short: "Set a nickname for a device",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		serial := args[0]
		name := args[1]

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		dc := cfg.Devices[serial]
		dc.Nickname = name
		cfg.Devices[serial] = dc
		if err := config.Save(cfg); err != nil {
			return err
		}
		fmt.Printf("Set nickname for %s: %s\n", serial, name)
		return nil
	},
}

var configSetToolsCmd = &cobra.Command{
	Use:   "set-tools <dir>",
	Short: "Set the platform-tools directory containing adb",
	Long:  `Example: android-manager config set-tools ~/Android/Sdk/platform-tools`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		cfg.PlatformTools = args[0]
		if err := config.Save(cfg); err != nil {
			return err
		}
		fmt.Printf("Platform tools set to %s\n", args[0])
		return nil
	},
}

var configSetDefaultCmd = &cobra.Command{
	Use:   "set-default [serial]",
	Short: "Set (or clear) the serial used when --serial is not given",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		cfg.DefaultSerial = ""
		if len(args) > 0 {
			cfg.DefaultSerial = args[0]
		}
		if err := config.Save(cfg); err != nil {
			return err
		}
		if cfg.DefaultSerial == "" {
			fmt.Println("Default serial cleared")
		} else {
			fmt.Printf("Default serial set to %s\n", cfg.DefaultSerial)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configNicknameCmd)
	configCmd.AddCommand(configSetToolsCmd)
	configCmd.AddCommand(configSetDefaultCmd)
	rootCmd.AddCommand(configCmd)
}
