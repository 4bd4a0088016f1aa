// Package logging builds the zerolog logger shared by the CLI and the adb
// client: console output plus a daily-rotating log file.
package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

const (
	EnvLogLevel   = "ANDROID_MANAGER_LOG_LEVEL"
	EnvLogFile    = "ANDROID_MANAGER_LOG_FILE"
	EnvLogNoColor = "ANDROID_MANAGER_LOG_NOCOLOR"
)

// Config selects outputs and level.
type Config struct {
	Level   string    // trace, debug, info, warn, error, disabled
	File    string    // log file path; empty disables the file
	Console io.Writer // defaults to os.Stderr
	NoColor bool
}

// Logger is a configured logger and the file it may hold open.
type Logger struct {
	zerolog.Logger
	file *DailyFile
}

// Close releases the log file.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// New builds a logger from cfg after applying environment overrides.
func New(cfg Config) (*Logger, error) {
	applyEnvOverrides(&cfg)

	console := cfg.Console
	if console == nil {
		console = os.Stderr
		if fd := os.Stderr.Fd(); !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
			cfg.NoColor = true
		}
	}
	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.RFC3339,
		NoColor:    cfg.NoColor,
	}}

	var file *DailyFile
	if cfg.File != "" {
		f, err := OpenDailyFile(cfg.File)
		if err != nil {
			return nil, err
		}
		file = f
		writers = append(writers, f)
	}

	level, _ := ParseLevel(cfg.Level)
	zl := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Str("logger", "android_manager").
		Logger()
	return &Logger{Logger: zl, file: file}, nil
}

// ParseLevel maps a level name to a zerolog level, defaulting to debug.
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.DebugLevel, false
	}
}

func applyEnvOverrides(cfg *Config) {
	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		if _, ok := ParseLevel(lvl); ok {
			cfg.Level = lvl
		}
	}
	switch v := strings.TrimSpace(os.Getenv(EnvLogFile)); strings.ToLower(v) {
	case "":
	case "off", "none", "false", "0":
		cfg.File = ""
	default:
		cfg.File = v
	}
	if v, err := strconv.ParseBool(os.Getenv(EnvLogNoColor)); err == nil {
		cfg.NoColor = v
	}
}
