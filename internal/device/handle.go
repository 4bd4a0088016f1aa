// Package device binds a connected adb device to a snapshot of its
// properties.
package device

import (
	"fmt"

	"github.com/Enhisir/android-manager/internal/adb"
)

// Bridge is the subset of *adb.Client a Handle needs.
type Bridge interface {
	Devices() ([]adb.Device, error)
	Properties(serial string) (adb.Properties, error)
	Install(serial, pkg string, opts adb.InstallOptions) error
	Push(serial, local, remote string) error
}

// Handle is a validated, connected device. Its properties are read once by
// Open and never refreshed.
type Handle struct {
	bridge Bridge
	serial string
	info   adb.Properties
}

// Open selects a device and reads its properties. An empty serial selects
// the only attached device; with several attached a serial is required.
// When enumeration fails after listing some devices, those devices are
// still used.
func Open(b Bridge, serial string) (*Handle, error) {
	devices, err := b.Devices()
	if err != nil && len(devices) == 0 {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	serial, err = Select(devices, serial)
	if err != nil {
		return nil, err
	}
	info, err := b.Properties(serial)
	if err != nil {
		return nil, fmt.Errorf("read properties of %s: %w", serial, err)
	}
	return &Handle{bridge: b, serial: serial, info: info}, nil
}

// Select picks the serial to bind from the enumerated devices.
func Select(devices []adb.Device, serial string) (string, error) {
	if len(devices) == 0 {
		return "", adb.ErrDeviceNotFound
	}
	if serial == "" {
		if len(devices) > 1 {
			return "", fmt.Errorf("%w: %d devices, give a serial number", adb.ErrAmbiguousDevice, len(devices))
		}
		return accept(devices[0])
	}
	for _, d := range devices {
		if d.Serial == serial {
			return accept(d)
		}
	}
	return "", fmt.Errorf("%w: serial %s", adb.ErrDeviceNotFound, serial)
}

func accept(d adb.Device) (string, error) {
	if !d.IsDebuggable() {
		return "", fmt.Errorf("%w: %s is %s", adb.ErrNotDebuggable, d.Serial, d.State)
	}
	return d.Serial, nil
}

// Serial returns the bound serial number.
func (h *Handle) Serial() string {
	return h.serial
}

// Info returns a copy of the property snapshot.
func (h *Handle) Info() adb.Properties {
	return h.info.Clone()
}

// Name returns the manufacturer and marketing name, e.g. "Xiaomi Redmi Note 12".
func (h *Handle) Name() string {
	return fmt.Sprintf("%s %s", h.info[adb.PropManufacturer], h.info[adb.PropMarketName])
}

func (h *Handle) String() string {
	return fmt.Sprintf("Device(serialno=%s)", h.serial)
}

// Install installs pkg on the device.
func (h *Handle) Install(pkg string, opts adb.InstallOptions) error {
	return h.bridge.Install(h.serial, pkg, opts)
}

// Push copies local to remote on the device.
func (h *Handle) Push(local, remote string) error {
	return h.bridge.Push(h.serial, local, remote)
}
