package model

import (
	"time"
)

// CaptureEvent is one observed window at one capture tick. Many events may
// share a ScreenshotName: a single full-screen capture backs every window
// row recorded in the same tick.
type CaptureEvent struct {
	ID             int64
	Timestamp      time.Time
	WindowTitle    string
	ScreenshotName string
}

// SameTick reports whether two events belong to the same capture tick.
func (e CaptureEvent) SameTick(other CaptureEvent) bool {
	return e.ScreenshotName == other.ScreenshotName
}
