package config

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Environment variables that point at a platform-tools directory.
// PLATFORM-TOOLS is the historical name; PLATFORM_TOOLS is settable from
// any shell.
var ToolsEnv = []string{"PLATFORM-TOOLS", "PLATFORM_TOOLS"}

// DeviceConfig stores per-device settings.
type DeviceConfig struct {
	Nickname string `yaml:"nickname,omitempty"`
}

// Config is the top-level configuration.
type Config struct {
	PlatformTools string                  `yaml:"platform_tools,omitempty"`
	LogFile       string                  `yaml:"log_file"`
	LogLevel      string                  `yaml:"log_level"`
	TempDir       string                  `yaml:"temp_dir,omitempty"`
	DefaultSerial string                  `yaml:"default_serial,omitempty"`
	Devices       map[string]DeviceConfig `yaml:"devices,omitempty"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LogFile:  "android_manager.log",
		LogLevel: "debug",
		Devices:  make(map[string]DeviceConfig),
	}
}

// ConfigDir returns the config directory path.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "android-manager")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "android-manager")
}

// ConfigPath returns the config file path.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (*Config, error) {
	return LoadFile(ConfigPath())
}

// LoadFile reads the config at path, returning defaults if it doesn't exist.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Devices == nil {
		cfg.Devices = make(map[string]DeviceConfig)
	}
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg *Config) error {
	return SaveFile(cfg, ConfigPath())
}

// SaveFile writes the config to path, creating its directory.
func SaveFile(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ToolsDir returns the platform-tools directory to use and where it came
// from: "env", "config", "local", or "" when adb should come from PATH.
func (c *Config) ToolsDir() (string, string) {
	for _, name := range ToolsEnv {
		if dir := os.Getenv(name); dir != "" {
			return expandHome(dir), "env"
		}
	}
	if c.PlatformTools != "" {
		return expandHome(c.PlatformTools), "config"
	}
	if dir := localToolsDir(); dir != "" {
		if _, err := os.Stat(filepath.Join(dir, ExecutableName())); err == nil {
			return dir, "local"
		}
	}
	return "", ""
}

// ADBPath returns the adb binary to invoke.
func (c *Config) ADBPath() string {
	dir, _ := c.ToolsDir()
	if dir == "" {
		return ExecutableName()
	}
	return filepath.Join(dir, ExecutableName())
}

// StagingDir returns the directory cache archives are extracted under.
func (c *Config) StagingDir() string {
	if c.TempDir != "" {
		return expandHome(c.TempDir)
	}
	return os.TempDir()
}

// Nickname returns the configured nickname for serial, if any.
func (c *Config) Nickname(serial string) string {
	return c.Devices[serial].Nickname
}

// LookPath resolves the adb binary, following PATH for bare names.
func LookPath(adbPath string) (string, error) {
	return exec.LookPath(adbPath)
}

// ExecutableName is the adb binary name for this platform.
func ExecutableName() string {
	if runtime.GOOS == "windows" {
		return "adb.exe"
	}
	return "adb"
}

// localToolsDir is android_manager/platform-tools under the working
// directory, or beside it when the working directory is android_manager.
func localToolsDir() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	if filepath.Base(cwd) == "android_manager" {
		cwd = filepath.Dir(cwd)
	}
	return filepath.Join(cwd, "android_manager", "platform-tools")
}

func expandHome(p string) string {
	if len(p) > 0 && p[0] == '~' {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, p[1:])
	}
	return p
}
