package deploy

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Enhisir/android-manager/internal/adb"
	"github.com/Enhisir/android-manager/internal/history"
)

type fakeBridge struct {
	devices    []adb.Device
	devicesErr error
	installErr map[string]error
	installs   []string
	pushes     []string
}

func (f *fakeBridge) Devices() ([]adb.Device, error) { return f.devices, f.devicesErr }

func (f *fakeBridge) Properties(serial string) (adb.Properties, error) {
	return adb.Properties{adb.PropSDK: adb.ParseValue("34")}, nil
}

func (f *fakeBridge) Install(serial, pkg string, opts adb.InstallOptions) error {
	f.installs = append(f.installs, serial)
	return f.installErr[serial]
}

func (f *fakeBridge) Push(serial, local, remote string) error {
	f.pushes = append(f.pushes, serial)
	return nil
}

type memRecorder struct {
	entries []history.Entry
}

func (m *memRecorder) Record(e history.Entry) (int64, error) {
	m.entries = append(m.entries, e)
	return int64(len(m.entries)), nil
}

func TestInstallAllSkipsUndebuggableAndContinuesOnFailure(t *testing.T) {
	failure := errors.New("install failed")
	b := &fakeBridge{
		devices: []adb.Device{
			{Serial: "A", State: "device"},
			{Serial: "B", State: "offline"},
			{Serial: "C", State: "device"},
			{Serial: "D", State: "fastboot"},
		},
		installErr: map[string]error{"A": failure},
	}
	rec := &memRecorder{}
	d := &Deployer{ADB: b, History: rec, Log: zerolog.Nop()}

	results, err := d.InstallAll("app.apk", adb.DefaultInstallOptions())
	if err != nil {
		t.Fatalf("install all: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %+v", results)
	}
	if results[0].DeviceSerial != "A" || !errors.Is(results[0].Err, failure) {
		t.Fatalf("unexpected first result %+v", results[0])
	}
	if results[1].DeviceSerial != "C" || results[1].Err != nil {
		t.Fatalf("unexpected second result %+v", results[1])
	}
	if len(rec.entries) != 2 || rec.entries[0].OK || !rec.entries[1].OK {
		t.Fatalf("unexpected history %+v", rec.entries)
	}
	if rec.entries[0].Options != "replace" || rec.entries[0].Error != "install failed" {
		t.Fatalf("unexpected entry %+v", rec.entries[0])
	}
}

func TestInstallSelectsDevice(t *testing.T) {
	b := &fakeBridge{devices: []adb.Device{{Serial: "A", State: "device"}, {Serial: "B", State: "device"}}}
	d := &Deployer{ADB: b, Log: zerolog.Nop()}

	if _, err := d.Install("", "app.apk", adb.DefaultInstallOptions()); !errors.Is(err, adb.ErrAmbiguousDevice) {
		t.Fatalf("expected ErrAmbiguousDevice, got %v", err)
	}
	res, err := d.Install("B", "app.apk", adb.DefaultInstallOptions())
	if err != nil || res.Err != nil {
		t.Fatalf("install: %v %v", err, res.Err)
	}
	if len(b.installs) != 1 || b.installs[0] != "B" {
		t.Fatalf("unexpected installs %v", b.installs)
	}
}

func TestPushRecordsHistory(t *testing.T) {
	b := &fakeBridge{devices: []adb.Device{{Serial: "A", State: "device"}}}
	rec := &memRecorder{}
	d := &Deployer{ADB: b, History: rec, Log: zerolog.Nop()}

	res, err := d.Push("", "notes.txt", "/sdcard/Download")
	if err != nil || res.Err != nil {
		t.Fatalf("push: %v %v", err, res.Err)
	}
	if len(rec.entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(rec.entries))
	}
	e := rec.entries[0]
	if e.Op != history.OpPush || e.DeviceSerial != "A" || e.Destination != "/sdcard/Download" || !e.OK {
		t.Fatalf("unexpected entry %+v", e)
	}
}

func TestFormatOptions(t *testing.T) {
	got := FormatOptions(adb.InstallOptions{Replace: true, Multiple: true, DataCache: "d.zip", ObbCache: "o.zip"})
	if got != "replace,multiple,data=d.zip,obb=o.zip" {
		t.Fatalf("unexpected %q", got)
	}
	if FormatOptions(adb.InstallOptions{}) != "" {
		t.Fatalf("expected empty options")
	}
}

func TestInstallAllUsesPartialDeviceList(t *testing.T) {
	listErr := &adb.ToolError{Args: []string{"devices", "-l"}, ExitCode: 1}
	b := &fakeBridge{devices: []adb.Device{{Serial: "A", State: "device"}}, devicesErr: listErr}
	d := &Deployer{ADB: b, History: &memRecorder{}, Log: zerolog.Nop()}

	results, err := d.InstallAll("app.apk", adb.DefaultInstallOptions())
	if err != nil {
		t.Fatalf("InstallAll: %v", err)
	}
	if len(results) != 1 || results[0].DeviceSerial != "A" || results[0].Err != nil {
		t.Fatalf("unexpected results %+v", results)
	}

	b = &fakeBridge{devicesErr: listErr}
	d.ADB = b
	var terr *adb.ToolError
	if _, err := d.InstallAll("app.apk", adb.DefaultInstallOptions()); !errors.As(err, &terr) {
		t.Fatalf("expected enumeration error, got %v", err)
	}
}
