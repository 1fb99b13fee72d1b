package recorder

import (
	"time"

	"github.com/penwyp/go-window-recorder/internal/config"
	"github.com/penwyp/go-window-recorder/internal/core/capture"
	"github.com/penwyp/go-window-recorder/internal/core/model"
)

// EventStore persists and queries capture events.
type EventStore interface {
	// Insert appends one capture event row
	Insert(timestamp time.Time, windowTitle, screenshotName string) error
	// FetchAll returns all events ordered by timestamp, optionally filtered
	// by a case-insensitive window-title keyword
	FetchAll(keyword string) []model.CaptureEvent
	// CleanupOlderThan removes expired rows and orphaned screenshot files
	CleanupOlderThan(cutoff time.Time, screenshotsDir string) (rowsDeleted, filesDeleted int, err error)
}

// CaptureController starts and stops the background capture loop.
type CaptureController interface {
	Start() error
	Stop() error
	State() capture.State
}

// ConfigSource delivers complete replacement configurations.
type ConfigSource interface {
	// Updates returns the channel of reloaded configurations
	Updates() <-chan config.Config
	// Close stops watching
	Close() error
}
