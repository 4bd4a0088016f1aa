package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const dayLayout = "2006-01-02"

// DailyFile is an io.WriteCloser that appends to path and, on the first
// write of a new day, renames the current file to path.YYYY-MM-DD.
type DailyFile struct {
	path string
	now  func() time.Time

	mu  sync.Mutex
	f   *os.File
	day string
}

// OpenDailyFile opens (or creates) path for appending.
func OpenDailyFile(path string) (*DailyFile, error) {
	return openDailyFile(path, time.Now)
}

func openDailyFile(path string, now func() time.Time) (*DailyFile, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	d := &DailyFile{path: path, now: now}
	day := now().Format(dayLayout)
	// A file left behind by an earlier day belongs to that day.
	if info, err := os.Stat(path); err == nil {
		if prev := info.ModTime().Format(dayLayout); prev != day {
			if err := os.Rename(path, path+"."+prev); err != nil {
				return nil, fmt.Errorf("rotate log: %w", err)
			}
		}
	}
	if err := d.open(day); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *DailyFile) open(day string) error {
	f, err := os.OpenFile(d.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	d.f = f
	d.day = day
	return nil
}

func (d *DailyFile) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.f == nil {
		return 0, os.ErrClosed
	}
	if day := d.now().Format(dayLayout); day != d.day {
		if err := d.rotate(day); err != nil {
			return 0, err
		}
	}
	return d.f.Write(p)
}

func (d *DailyFile) rotate(day string) error {
	if err := d.f.Close(); err != nil {
		return fmt.Errorf("close log: %w", err)
	}
	d.f = nil
	if err := os.Rename(d.path, d.path+"."+d.day); err != nil {
		// Keep appending to the current file until the next day.
		if oerr := d.open(day); oerr != nil {
			return fmt.Errorf("rotate log: %w", err)
		}
		return nil
	}
	return d.open(day)
}

// Close closes the current file.
func (d *DailyFile) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.f == nil {
		return nil
	}
	err := d.f.Close()
	d.f = nil
	return err
}
