package adb

import (
	"errors"
	"fmt"
	"strings"
)

// Connection errors.
var (
	ErrServerStart     = errors.New("adb server failed to start")
	ErrDeviceNotFound  = errors.New("adb device not found")
	ErrNotDebuggable   = errors.New("device is not in debug mode")
	ErrAmbiguousDevice = errors.New("more than one device attached")
)

// Input errors, carried inside *ValidationError.
var (
	ErrPathNotFound = errors.New("path does not exist")
	ErrBadExtension = errors.New("adb can install only .apk and .apks files")
)

// Cache archive layout errors, carried inside *StagingError.
var (
	ErrNoCacheDir        = errors.New("archive has no top-level directory")
	ErrAmbiguousCacheDir = errors.New("archive has more than one top-level directory")
)

// ToolError describes an adb invocation that could not be started or
// exited with a non-zero status.
type ToolError struct {
	Args     []string
	ExitCode int // -1 when the process never ran
	Stdout   string
	Stderr   string
	Err      error
}

func (e *ToolError) Error() string {
	cmd := "adb " + strings.Join(e.Args, " ")
	if e.ExitCode < 0 {
		return fmt.Sprintf("%s: %v", cmd, e.Err)
	}
	msg := fmt.Sprintf("%s: exit status %d", cmd, e.ExitCode)
	if out := e.Output(); out != "" {
		msg += "\n" + out
	}
	return msg
}

func (e *ToolError) Unwrap() error { return e.Err }

// Output returns the trimmed stderr, or stdout when stderr is empty.
func (e *ToolError) Output() string {
	if s := strings.TrimSpace(e.Stderr); s != "" {
		return s
	}
	return strings.TrimSpace(e.Stdout)
}

func newToolError(args []string, stdout, stderr []byte, err error) *ToolError {
	code := -1
	var exit interface{ ExitCode() int }
	if errors.As(err, &exit) {
		code = exit.ExitCode()
	}
	return &ToolError{
		Args:     args,
		ExitCode: code,
		Stdout:   string(stdout),
		Stderr:   string(stderr),
		Err:      err,
	}
}

// ValidationError reports a bad input path. Err is ErrPathNotFound,
// ErrBadExtension, or the underlying stat error.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// StagingError reports a failure while extracting a cache archive or pushing
// its contents to the device.
type StagingError struct {
	Kind    string // "data" or "obb"
	Archive string
	Err     error
}

func (e *StagingError) Error() string {
	return fmt.Sprintf("stage %s cache %s: %v", e.Kind, e.Archive, e.Err)
}

func (e *StagingError) Unwrap() error { return e.Err }
