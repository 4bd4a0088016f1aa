package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Enhisir/android-manager/internal/config"
	"github.com/Enhisir/android-manager/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded installs and pushes",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := history.Open(config.ConfigDir())
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer db.Close()

		entries, err := db.List(serialFlag, historyLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No operations recorded.")
			return nil
		}
		for _, e := range entries {
			status := color.GreenString("ok")
			if !e.OK {
				status = color.RedString("failed")
			}
			target := e.Source
			if e.Destination != "" {
				target += " -> " + e.Destination
			}
			fmt.Printf("%s  %-20s %-7s %s [%s]\n",
				e.CreatedAt.Local().Format(time.DateTime), e.DeviceSerial, e.Op, target, status)
			if e.Options != "" {
				fmt.Printf("    options: %s\n", e.Options)
			}
			if e.Error != "" {
				fmt.Printf("    error: %s\n", e.Error)
			}
		}

		stats, err := db.GetStats(serialFlag)
		if err != nil {
			return err
		}
		fmt.Printf("\nTotal: %d | Succeeded: %d | Failed: %d\n", stats.Total, stats.Succeeded, stats.Failed)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of entries to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}
