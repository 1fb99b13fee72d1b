package timeline

import (
	"github.com/penwyp/go-window-recorder/internal/core/model"
)

// EventPosition maps one event onto a pixel x-coordinate of the track.
type EventPosition struct {
	Event model.CaptureEvent
	X     float64
}

// Tick is one labeled mark on the time ruler.
type Tick struct {
	X     float64
	Label string
}

// TrackConfig carries the geometry and view limits shared by every track.
type TrackConfig struct {
	Width       float64
	LeftMargin  float64
	RightMargin float64
	MinZoom     float64
	MaxZoom     float64
	TickTarget  int
}

// DefaultTrackConfig returns the geometry used when the host supplies none.
func DefaultTrackConfig() TrackConfig {
	return TrackConfig{
		Width:       800,
		LeftMargin:  40,
		RightMargin: 40,
		MinZoom:     1.0,
		MaxZoom:     20.0,
		TickTarget:  6,
	}
}
