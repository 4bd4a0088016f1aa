package adb

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Client wraps ADB command-line calls against a single adb binary.
type Client struct {
	path    string
	runner  Runner
	log     zerolog.Logger
	tempDir string
}

// Option configures a Client.
type Option func(*Client)

// WithRunner replaces the os/exec runner.
func WithRunner(r Runner) Option {
	return func(c *Client) { c.runner = r }
}

// WithLogger sets the logger used for operation start/success/failure lines.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithTempDir sets the directory under which cache archives are extracted.
func WithTempDir(dir string) Option {
	return func(c *Client) { c.tempDir = dir }
}

// NewClient creates a client for the adb binary at path.
func NewClient(path string, opts ...Option) *Client {
	c := &Client{
		path:    path,
		runner:  ExecRunner{},
		log:     zerolog.Nop(),
		tempDir: os.TempDir(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Path returns the adb binary the client invokes.
func (c *Client) Path() string {
	return c.path
}

func (c *Client) run(args ...string) (string, error) {
	stdout, stderr, err := c.runner.Run(c.path, args...)
	if err != nil {
		return string(stdout), newToolError(args, stdout, stderr, err)
	}
	return string(stdout), nil
}

// StartServer starts the adb background server if it is not running.
func (c *Client) StartServer() error {
	c.log.Info().Str("adb", c.path).Msg("starting adb server")
	if _, err := c.run("start-server"); err != nil {
		c.log.Error().Err(err).Msg("adb server failed to start")
		return fmt.Errorf("%w: %w", ErrServerStart, err)
	}
	c.log.Info().Msg("adb server started")
	return nil
}

// Version returns the output of `adb version`.
func (c *Client) Version() (string, error) {
	c.log.Info().Msg("querying adb version")
	out, err := c.run("version")
	if err != nil {
		c.log.Error().Err(err).Msg("adb version failed")
		return "", err
	}
	c.log.Info().Msg("adb version finished")
	return strings.TrimSpace(out), nil
}

// Devices returns all connected ADB devices. When adb exits non-zero the
// devices parsed from its partial output are returned along with the error.
func (c *Client) Devices() ([]Device, error) {
	c.log.Info().Msg("listing devices")
	out, err := c.run("devices", "-l")
	devices := parseDeviceList(out)
	if err != nil {
		c.log.Error().Err(err).Msg("adb devices failed")
		return devices, err
	}
	c.log.Info().Int("count", len(devices)).Msg("devices listed")
	return devices, nil
}

// parseDeviceList parses `adb devices` and `adb devices -l` output.
func parseDeviceList(output string) []Device {
	devices := []Device{}
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		// "* daemon not running; starting now at tcp:5037"
		if line == "" || line == "List of devices attached" || strings.HasPrefix(line, "*") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		d := Device{
			Serial: fields[0],
			State:  fields[1],
		}
		if strings.Contains(d.Serial, ":") {
			d.ConnType = WiFi
		} else {
			d.ConnType = USB
		}
		for _, f := range fields[2:] {
			parts := strings.SplitN(f, ":", 2)
			if len(parts) != 2 {
				continue
			}
			switch parts[0] {
			case "model":
				d.Model = parts[1]
			case "product":
				d.Product = parts[1]
			case "transport_id":
				d.TransportID = parts[1]
			}
		}
		devices = append(devices, d)
	}
	return devices
}
