package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearToolsEnv(t *testing.T) {
	t.Helper()
	for _, name := range ToolsEnv {
		t.Setenv(name, "")
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadFileMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogFile != "android_manager.log" || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Devices == nil {
		t.Fatalf("devices map not initialised")
	}
}

func TestLoadFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
platform_tools: /opt/android/platform-tools
log_level: warn
default_serial: ABC123
devices:
  ABC123:
    nickname: test-phone
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.PlatformTools != "/opt/android/platform-tools" {
		t.Fatalf("unexpected platform tools %q", cfg.PlatformTools)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("unexpected log level %q", cfg.LogLevel)
	}
	if cfg.LogFile != "android_manager.log" {
		t.Fatalf("default log file lost: %q", cfg.LogFile)
	}
	if cfg.Nickname("ABC123") != "test-phone" {
		t.Fatalf("unexpected nickname %q", cfg.Nickname("ABC123"))
	}
}

func TestLoadFileRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("devices: [\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestSaveFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.DefaultSerial = "XYZ"
	cfg.Devices["XYZ"] = DeviceConfig{Nickname: "tablet"}
	if err := SaveFile(cfg, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.DefaultSerial != "XYZ" || got.Nickname("XYZ") != "tablet" {
		t.Fatalf("unexpected config after round trip: %+v", got)
	}
}

func TestADBPathResolution(t *testing.T) {
	clearToolsEnv(t)
	chdir(t, t.TempDir())

	cfg := DefaultConfig()
	if got := cfg.ADBPath(); got != ExecutableName() {
		t.Fatalf("expected PATH lookup, got %q", got)
	}

	cfg.PlatformTools = "/opt/pt"
	if got, src := cfg.ToolsDir(); got != "/opt/pt" || src != "config" {
		t.Fatalf("ToolsDir() = %q, %q", got, src)
	}

	t.Setenv("PLATFORM_TOOLS", "/env/pt")
	if got := cfg.ADBPath(); got != filepath.Join("/env/pt", ExecutableName()) {
		t.Fatalf("env override ignored: %q", got)
	}
}

func TestADBPathLocalPlatformTools(t *testing.T) {
	clearToolsEnv(t)
	root := t.TempDir()
	local := filepath.Join(root, "android_manager", "platform-tools")
	if err := os.MkdirAll(local, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(local, ExecutableName()), []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("write adb: %v", err)
	}

	chdir(t, root)
	dir, src := DefaultConfig().ToolsDir()
	if src != "local" || !sameDir(t, dir, local) {
		t.Fatalf("ToolsDir() = %q, %q; want %q, local", dir, src, local)
	}

	chdir(t, filepath.Join(root, "android_manager"))
	dir, src = DefaultConfig().ToolsDir()
	if src != "local" || !sameDir(t, dir, local) {
		t.Fatalf("from android_manager: ToolsDir() = %q, %q", dir, src)
	}
}

func sameDir(t *testing.T, a, b string) bool {
	t.Helper()
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

func TestStagingDir(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.StagingDir() != os.TempDir() {
		t.Fatalf("unexpected default staging dir %q", cfg.StagingDir())
	}
	cfg.TempDir = "/var/tmp/am"
	if cfg.StagingDir() != "/var/tmp/am" {
		t.Fatalf("unexpected staging dir %q", cfg.StagingDir())
	}
}
