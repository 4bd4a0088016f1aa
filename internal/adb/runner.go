package adb

import (
	"bytes"
	"os/exec"
)

// Runner executes the adb binary and returns what it wrote to stdout and
// stderr. A non-nil error means the process could not be started or exited
// with a non-zero status; implementations report the status through an error
// that has an ExitCode() int method, as *exec.ExitError does.
type Runner interface {
	Run(bin string, args ...string) (stdout, stderr []byte, err error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run starts bin with args and waits for it to exit.
func (ExecRunner) Run(bin string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(bin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
