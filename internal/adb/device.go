package adb

// ConnectionType indicates how a device is connected.
type ConnectionType string

const (
	USB  ConnectionType = "usb"
	WiFi ConnectionType = "wifi"
)

// Device states reported by `adb devices`.
const (
	StateDevice       = "device"
	StateOffline      = "offline"
	StateFastboot     = "fastboot"
	StateUnauthorized = "unauthorized"
)

// Device represents a connected ADB device.
type Device struct {
	Serial      string
	State       string // "device", "offline", "unauthorized", etc.
	ConnType    ConnectionType
	Model       string
	Product     string
	TransportID string
}

// IsOnline returns true if the device is in "device" state (ready).
func (d Device) IsOnline() bool {
	return d.State == StateDevice
}

// IsDebuggable reports whether adb commands can be issued to the device.
// Offline devices and devices sitting in the bootloader are not debuggable.
func (d Device) IsDebuggable() bool {
	return d.State != StateOffline && d.State != StateFastboot
}
