// Package deploy runs installs and pushes against one or every connected
// device and records each attempt in the history database.
package deploy

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Enhisir/android-manager/internal/adb"
	"github.com/Enhisir/android-manager/internal/device"
	"github.com/Enhisir/android-manager/internal/history"
)

// Recorder stores operation history.
type Recorder interface {
	Record(e history.Entry) (int64, error)
}

// Deployer installs packages and pushes files.
type Deployer struct {
	ADB     device.Bridge
	History Recorder // optional
	Log     zerolog.Logger
}

// Result summarizes an operation on one device.
type Result struct {
	DeviceSerial string
	Err          error
}

// Install opens the device named by serial (or the only one attached) and
// installs pkg on it.
func (d *Deployer) Install(serial, pkg string, opts adb.InstallOptions) (Result, error) {
	h, err := device.Open(d.ADB, serial)
	if err != nil {
		return Result{DeviceSerial: serial}, err
	}
	return d.install(h.Serial(), pkg, opts), nil
}

// InstallAll installs pkg on every debuggable device, one after another.
// Devices that fail do not stop the rest.
func (d *Deployer) InstallAll(pkg string, opts adb.InstallOptions) ([]Result, error) {
	devices, err := d.ADB.Devices()
	if err != nil {
		if len(devices) == 0 {
			return nil, fmt.Errorf("list devices: %w", err)
		}
		d.Log.Warn().Err(err).Int("devices", len(devices)).Msg("device list incomplete")
	}
	var results []Result
	for _, dev := range devices {
		if !dev.IsDebuggable() {
			d.Log.Warn().Str("serial", dev.Serial).Str("state", dev.State).Msg("skipping device")
			continue
		}
		results = append(results, d.install(dev.Serial, pkg, opts))
	}
	return results, nil
}

// Push opens the device named by serial and copies local to remote on it.
func (d *Deployer) Push(serial, local, remote string) (Result, error) {
	h, err := device.Open(d.ADB, serial)
	if err != nil {
		return Result{DeviceSerial: serial}, err
	}
	err = h.Push(local, remote)
	d.record(history.Entry{
		DeviceSerial: h.Serial(),
		Op:           history.OpPush,
		Source:       local,
		Destination:  remote,
	}, err)
	return Result{DeviceSerial: h.Serial(), Err: err}, nil
}

func (d *Deployer) install(serial, pkg string, opts adb.InstallOptions) Result {
	err := d.ADB.Install(serial, pkg, opts)
	d.record(history.Entry{
		DeviceSerial: serial,
		Op:           history.OpInstall,
		Source:       pkg,
		Options:      FormatOptions(opts),
	}, err)
	return Result{DeviceSerial: serial, Err: err}
}

func (d *Deployer) record(e history.Entry, opErr error) {
	if d.History == nil {
		return
	}
	e.OK = opErr == nil
	if opErr != nil {
		e.Error = opErr.Error()
	}
	if _, err := d.History.Record(e); err != nil {
		d.Log.Warn().Err(err).Str("op", e.Op).Msg("could not record history")
	}
}

// FormatOptions renders install options as stored in history,
// e.g. "replace,data=/tmp/data.zip".
func FormatOptions(opts adb.InstallOptions) string {
	var parts []string
	if opts.Replace {
		parts = append(parts, "replace")
	}
	if opts.Multiple {
		parts = append(parts, "multiple")
	}
	if opts.DataCache != "" {
		parts = append(parts, "data="+opts.DataCache)
	}
	if opts.ObbCache != "" {
		parts = append(parts, "obb="+opts.ObbCache)
	}
	return strings.Join(parts, ",")
}
