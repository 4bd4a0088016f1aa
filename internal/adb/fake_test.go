package adb

import (
	"fmt"
	"strings"
)

type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }
func (e exitError) ExitCode() int { return e.code }

type fakeResponse struct {
	stdout string
	stderr string
	code   int
}

// fakeRunner answers adb invocations keyed by their space-joined arguments.
// Unknown invocations fail with exit status 1.
type fakeRunner struct {
	responses map[string]fakeResponse
	calls     []string
}

func (f *fakeRunner) Run(bin string, args ...string) ([]byte, []byte, error) {
	key := strings.Join(args, " ")
	f.calls = append(f.calls, key)
	resp, ok := f.responses[key]
	if !ok {
		return nil, []byte("unexpected invocation: " + key), exitError{1}
	}
	var err error
	if resp.code != 0 {
		err = exitError{resp.code}
	}
	return []byte(resp.stdout), []byte(resp.stderr), err
}

func newFakeClient(responses map[string]fakeResponse, opts ...Option) (*Client, *fakeRunner) {
	r := &fakeRunner{responses: responses}
	opts = append([]Option{WithRunner(r)}, opts...)
	return NewClient("adb", opts...), r
}
