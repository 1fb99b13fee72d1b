package capture

import (
	"time"
)

// WindowInfo describes one visible top-level window at capture time.
type WindowInfo struct {
	Handle  uintptr
	Title   string
	PID     uint32
	Focused bool
}

// ScreenCapturer takes one full-screen screenshot and writes it to path.
type ScreenCapturer interface {
	CaptureScreen(path string) error
}

// WindowEnumerator lists currently visible top-level windows.
type WindowEnumerator interface {
	VisibleWindows() ([]WindowInfo, error)
}

// EventSink receives one row per recorded window.
type EventSink interface {
	Insert(timestamp time.Time, windowTitle, screenshotName string) error
}

// ExclusionPredicate reports whether a window must not be recorded.
type ExclusionPredicate func(w WindowInfo) bool

// SelfExclusion excludes windows owned by the given process id and whichever
// window holds input focus at the moment of capture, so the recorder never
// records its own foreground transition.
func SelfExclusion(ownPID uint32) ExclusionPredicate {
	return func(w WindowInfo) bool {
		return w.PID == ownPID || w.Focused
	}
}

// State is the scheduler lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateStopping
)

// String returns the state name for log lines.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	default:
		return "unknown"
	}
}
