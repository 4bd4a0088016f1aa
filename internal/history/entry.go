package history

import (
	"fmt"
	"time"
)

// Operation kinds.
const (
	OpInstall = "install"
	OpPush    = "push"
)

// Entry is one recorded install or push attempt.
type Entry struct {
	ID           int64
	DeviceSerial string
	Op           string
	Source       string
	Destination  string
	Options      string
	OK           bool
	Error        string
	CreatedAt    time.Time
}

// Record stores e and returns its row ID. A zero CreatedAt is set to now.
func (h *DB) Record(e Entry) (int64, error) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	res, err := h.db.Exec(
		`INSERT INTO operations (device_serial, op, source, destination, options, ok, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.DeviceSerial, e.Op, e.Source, e.Destination, e.Options, e.OK, e.Error, e.CreatedAt.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("record %s: %w", e.Op, err)
	}
	return res.LastInsertId()
}

// List returns the newest entries first. An empty serial lists every device;
// limit <= 0 means no limit.
func (h *DB) List(serial string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := h.db.Query(
		`SELECT id, device_serial, op, source, destination, options, ok, error, created_at
		 FROM operations
		 WHERE ? = '' OR device_serial = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		serial, serial, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.DeviceSerial, &e.Op, &e.Source, &e.Destination, &e.Options, &e.OK, &e.Error, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Stats summarizes recorded operations.
type Stats struct {
	Total     int
	Succeeded int
	Failed    int
}

// GetStats returns operation counts for a device, or for all devices when
// serial is empty.
func (h *DB) GetStats(serial string) (Stats, error) {
	var stats Stats
	err := h.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(ok), 0) FROM operations WHERE ? = '' OR device_serial = ?`,
		serial, serial,
	).Scan(&stats.Total, &stats.Succeeded)
	if err != nil {
		return stats, fmt.Errorf("history stats: %w", err)
	}
	stats.Failed = stats.Total - stats.Succeeded
	return stats, nil
}
