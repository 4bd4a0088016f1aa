package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Enhisir/android-manager/internal/adb"
)

var (
	installOpts = adb.DefaultInstallOptions()
	installAll  bool
)

var installCmd = &cobra.Command{
	Use:               "install <package.apk|package.apks>",
	Short:             "Install a package, optionally restoring data/OBB caches first",
	PersistentPreRunE: requireDeps(),
	Long: `Installs an .apk or .apks package with adb.

--data-cache and --obb-cache take zip archives holding a single top-level
directory (usually the package name). It is pushed to /sdcard/Android/data
or /sdcard/Android/obb before the package is installed.

Example: android-manager install game.apk --obb-cache game-obb.zip`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pkg := args[0]
		if err := adb.ValidatePackage(pkg); err != nil {
			return err
		}

		e, err := connect()
		if err != nil {
			return err
		}
		defer e.Close()
		d := e.deployer()

		if !installAll {
			res, err := d.Install(e.serial(), pkg, installOpts)
			if err != nil {
				return err
			}
			if res.Err != nil {
				return res.Err
			}
			fmt.Printf("Installed %s on %s\n", pkg, res.DeviceSerial)
			return nil
		}

		results, err := d.InstallAll(pkg, installOpts)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("No connected devices found.")
			return nil
		}
		failed := 0
		for _, r := range results {
			if r.Err != nil {
				failed++
				fmt.Fprintf(os.Stderr, "%s: %v\n", r.DeviceSerial, r.Err)
				continue
			}
			fmt.Printf("%s: installed\n", r.DeviceSerial)
		}
		if failed > 0 {
			return fmt.Errorf("install failed on %d of %d devices", failed, len(results))
		}
		return nil
	},
}

func init() {
	installCmd.Flags().BoolVarP(&installOpts.Replace, "replace", "r", true, "Replace an existing installation")
	installCmd.Flags().BoolVar(&installOpts.Multiple, "multiple", false, "Use install-multi-package")
	installCmd.Flags().StringVar(&installOpts.DataCache, "data-cache", "", "Zip archive restored into /sdcard/Android/data")
	installCmd.Flags().StringVar(&installOpts.ObbCache, "obb-cache", "", "Zip archive restored into /sdcard/Android/obb")
	installCmd.Flags().BoolVar(&installAll, "all", false, "Install on every connected device")
	rootCmd.AddCommand(installCmd)
}
