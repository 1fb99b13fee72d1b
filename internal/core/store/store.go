// Package store persists capture events in a single embedded SQLite file.
//
// The file is shared between the capture worker (writer) and the timeline
// viewer (reader). Every operation opens its own short-lived connection so
// neither side holds a long-lived lock.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/penwyp/go-window-recorder/internal/core/model"
	"github.com/penwyp/go-window-recorder/internal/util"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp TEXT NOT NULL,
	window_name TEXT NOT NULL,
	screenshot_name TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_timestamp ON events(timestamp);
`

// Store provides access to the capture event log.
type Store struct {
	path string
}

// New creates a store handle for the given database file. Call Init before
// first use.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Init creates the events table if it does not exist yet.
func (s *Store) Init() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create events table: %w", err)
	}
	return nil
}

func (s *Store) open() (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", s.path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// Insert appends one capture event row. Failures are reported to the caller
// and logged; the capture loop treats them as a partially completed tick.
func (s *Store) Insert(timestamp time.Time, windowTitle, screenshotName string) error {
	db, err := s.open()
	if err != nil {
		util.LogErrorf("event insert failed: %v", err)
		return err
	}
	defer db.Close()

	tp := util.GetTimeProvider()
	_, err = db.Exec(
		`INSERT INTO events (timestamp, window_name, screenshot_name) VALUES (?, ?, ?)`,
		tp.FormatTimestamp(timestamp), windowTitle, screenshotName,
	)
	if err != nil {
		util.LogErrorf("event insert failed: %v", err)
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// FetchAll returns every event ordered by timestamp ascending. When keyword
// is non-empty, only events whose window title contains it (case-insensitive)
// are returned. Store failures degrade to an empty result so the viewer
// stays responsive.
func (s *Store) FetchAll(keyword string) []model.CaptureEvent {
	db, err := s.open()
	if err != nil {
		util.LogErrorf("event query failed: %v", err)
		return nil
	}
	defer db.Close()

	query := `SELECT id, timestamp, window_name, screenshot_name FROM events`
	args := []interface{}{}
	if keyword != "" {
		query += ` WHERE lower(window_name) LIKE '%' || ? || '%'`
		args = append(args, strings.ToLower(keyword))
	}
	query += ` ORDER BY timestamp ASC, id ASC`

	rows, err := db.Query(query, args...)
	if err != nil {
		util.LogErrorf("event query failed: %v", err)
		return nil
	}
	defer rows.Close()

	tp := util.GetTimeProvider()
	var events []model.CaptureEvent
	for rows.Next() {
		var ev model.CaptureEvent
		var ts string
		if err := rows.Scan(&ev.ID, &ts, &ev.WindowTitle, &ev.ScreenshotName); err != nil {
			util.LogErrorf("event scan failed: %v", err)
			return nil
		}
		parsed, err := tp.ParseTimestamp(ts)
		if err != nil {
			// A corrupt row must not take the whole timeline down
			util.LogWarnf("skipping event %d with malformed timestamp %q", ev.ID, ts)
			continue
		}
		ev.Timestamp = parsed
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		util.LogErrorf("event query failed: %v", err)
		return nil
	}
	return events
}

// FetchDays returns the distinct calendar days that have events, ascending.
func (s *Store) FetchDays() ([]string, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(`SELECT DISTINCT substr(timestamp, 1, 10) FROM events ORDER BY 1 ASC`)
	if err != nil {
		return nil, fmt.Errorf("query days: %w", err)
	}
	defer rows.Close()

	var days []string
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("scan day: %w", err)
		}
		days = append(days, day)
	}
	return days, rows.Err()
}

// CleanupOlderThan deletes every event older than cutoff, then removes
// screenshot files no surviving row references. Row deletion is committed
// even when file deletion partially fails; a missing file is not an error.
func (s *Store) CleanupOlderThan(cutoff time.Time, screenshotsDir string) (rowsDeleted, filesDeleted int, err error) {
	db, err := s.open()
	if err != nil {
		return 0, 0, err
	}
	defer db.Close()

	tp := util.GetTimeProvider()
	cutoffStr := tp.FormatTimestamp(cutoff)

	tx, err := db.Begin()
	if err != nil {
		return 0, 0, fmt.Errorf("begin cleanup: %w", err)
	}

	rows, err := tx.Query(`SELECT DISTINCT screenshot_name FROM events WHERE timestamp < ?`, cutoffStr)
	if err != nil {
		tx.Rollback()
		return 0, 0, fmt.Errorf("query expired screenshots: %w", err)
	}
	var candidates []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			tx.Rollback()
			return 0, 0, fmt.Errorf("scan screenshot name: %w", err)
		}
		candidates = append(candidates, name)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		tx.Rollback()
		return 0, 0, fmt.Errorf("query expired screenshots: %w", err)
	}
	rows.Close()

	res, err := tx.Exec(`DELETE FROM events WHERE timestamp < ?`, cutoffStr)
	if err != nil {
		tx.Rollback()
		return 0, 0, fmt.Errorf("delete expired events: %w", err)
	}
	deleted, _ := res.RowsAffected()

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("commit cleanup: %w", err)
	}
	rowsDeleted = int(deleted)

	// Best-effort file sweep: only delete files no surviving row references.
	for _, name := range candidates {
		var remaining int
		if err := db.QueryRow(`SELECT COUNT(*) FROM events WHERE screenshot_name = ?`, name).Scan(&remaining); err != nil {
			util.LogWarnf("reference check for %s failed: %v", name, err)
			continue
		}
		if remaining > 0 {
			continue
		}
		path := filepath.Join(screenshotsDir, name)
		if err := os.Remove(path); err != nil {
			if !os.IsNotExist(err) {
				util.LogWarnf("failed to delete screenshot %s: %v", path, err)
			}
			continue
		}
		filesDeleted++
	}

	return rowsDeleted, filesDeleted, nil
}
