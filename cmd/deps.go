package cmd

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Enhisir/android-manager/internal/config"
)

// requireDeps returns a PersistentPreRunE that checks adb is available
// before a device command runs.
func requireDeps() func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return checkADB(cfg)
	}
}

// GOOS -> install command for platform-tools.
var adbInstallCmd = map[string]string{
	"darwin":  "brew install android-platform-tools",
	"linux":   "sudo apt install android-tools-adb",
	"windows": "winget install Google.PlatformTools",
}

// checkADB verifies that the adb binary resolves. When adb is expected on
// PATH and missing, it offers to install platform-tools.
func checkADB(cfg *config.Config) error {
	path := cfg.ADBPath()
	if _, err := config.LookPath(path); err == nil {
		return nil
	}
	if dir, source := cfg.ToolsDir(); source != "" {
		return fmt.Errorf("adb not found in %s (platform tools from %s)", dir, source)
	}

	fmt.Println("android-manager requires ADB (Android Debug Bridge), which is not installed.")
	fmt.Println("Set PLATFORM_TOOLS, run 'android-manager config set-tools <dir>', or install it.")
	fmt.Println()

	install, ok := adbInstallCmd[runtime.GOOS]
	if !ok {
		return fmt.Errorf("adb is required but not installed")
	}
	fmt.Printf("Install ADB with: %s\n", install)
	fmt.Print("Run now? [Y/n] ")
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	answer = strings.TrimSpace(strings.ToLower(answer))
	if answer != "" && answer != "y" && answer != "yes" {
		return fmt.Errorf("adb is required but not installed")
	}

	fmt.Printf("Running: %s\n", install)
	parts := strings.Fields(install)
	c := exec.Command(parts[0], parts[1:]...)
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	c.Stdin = os.Stdin
	if err := c.Run(); err != nil {
		return fmt.Errorf("install adb: %w", err)
	}
	if _, err := config.LookPath(path); err != nil {
		return fmt.Errorf("adb is required but not installed")
	}
	return nil
}
