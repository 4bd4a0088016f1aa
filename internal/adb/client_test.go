package adb

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseDeviceList(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []Device
	}{
		{
			name:   "single device",
			output: "List of devices attached\n\nABC123\tdevice\n",
			want:   []Device{{Serial: "ABC123", State: "device", ConnType: USB}},
		},
		{
			name:   "empty",
			output: "List of devices attached\n\n",
			want:   []Device{},
		},
		{
			name: "daemon comments skipped",
			output: "* daemon not running; starting now at tcp:5037\n" +
				"* daemon started successfully\n" +
				"List of devices attached\n" +
				"emulator-5554\toffline\n" +
				"192.168.1.20:5555\tunauthorized\n",
			want: []Device{
				{Serial: "emulator-5554", State: "offline", ConnType: USB},
				{Serial: "192.168.1.20:5555", State: "unauthorized", ConnType: WiFi},
			},
		},
		{
			name:   "long format",
			output: "List of devices attached\n1WMHH8\tdevice usb:1-1 product:hollywood model:Quest_3 device:eureka transport_id:4\n",
			want: []Device{{
				Serial:      "1WMHH8",
				State:       "device",
				ConnType:    USB,
				Model:       "Quest_3",
				Product:     "hollywood",
				TransportID: "4",
			}},
		},
		{
			name:   "short line skipped",
			output: "List of devices attached\ngarbage\nXYZ\tfastboot\n",
			want:   []Device{{Serial: "XYZ", State: "fastboot", ConnType: USB}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseDeviceList(tt.output)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("parseDeviceList() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestDevicesReturnsPartialOutputOnFailure(t *testing.T) {
	c, _ := newFakeClient(map[string]fakeResponse{
		"devices -l": {stdout: "List of devices attached\nABC123\tdevice\n", stderr: "boom", code: 1},
	})
	devices, err := c.Devices()
	var terr *ToolError
	if !errors.As(err, &terr) {
		t.Fatalf("expected *ToolError, got %v", err)
	}
	if terr.ExitCode != 1 || terr.Output() != "boom" {
		t.Fatalf("unexpected tool error: %+v", terr)
	}
	if len(devices) != 1 || devices[0].Serial != "ABC123" {
		t.Fatalf("expected partial devices, got %#v", devices)
	}
}

func TestVersionTrimsOutput(t *testing.T) {
	c, _ := newFakeClient(map[string]fakeResponse{
		"version": {stdout: "Android Debug Bridge version 1.0.41\nVersion 35.0.2\n\n"},
	})
	got, err := c.Version()
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if got != "Android Debug Bridge version 1.0.41\nVersion 35.0.2" {
		t.Fatalf("unexpected version %q", got)
	}
}

func TestVersionFailure(t *testing.T) {
	c, _ := newFakeClient(map[string]fakeResponse{
		"version": {code: 2},
	})
	if _, err := c.Version(); err == nil {
		t.Fatalf("expected error")
	}
}

func TestStartServer(t *testing.T) {
	c, r := newFakeClient(map[string]fakeResponse{
		"start-server": {},
	})
	if err := c.StartServer(); err != nil {
		t.Fatalf("start server: %v", err)
	}
	if len(r.calls) != 1 || r.calls[0] != "start-server" {
		t.Fatalf("unexpected calls: %v", r.calls)
	}

	c, _ = newFakeClient(map[string]fakeResponse{
		"start-server": {stderr: "cannot bind", code: 1},
	})
	err := c.StartServer()
	if !errors.Is(err, ErrServerStart) {
		t.Fatalf("expected ErrServerStart, got %v", err)
	}
	var terr *ToolError
	if !errors.As(err, &terr) || terr.ExitCode != 1 {
		t.Fatalf("expected wrapped *ToolError, got %v", err)
	}
}

func TestToolErrorLaunchFailure(t *testing.T) {
	cause := errors.New("exec: \"adb\": executable file not found in $PATH")
	err := newToolError([]string{"version"}, nil, nil, cause)
	if err.ExitCode != -1 {
		t.Fatalf("expected exit code -1, got %d", err.ExitCode)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be wrapped")
	}
	if err.Error() != "adb version: "+cause.Error() {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
