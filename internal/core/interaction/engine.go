// Package interaction turns pointer gestures into timeline view mutations.
// It is toolkit-agnostic: the host feeds it pointer and wheel events and
// drives inertia by calling Tick with its own timer.
package interaction

import (
	"math"
	"time"

	"github.com/penwyp/go-window-recorder/internal/core/model"
	"github.com/penwyp/go-window-recorder/internal/core/timeline"
)

// GestureState is the per-gesture state machine.
type GestureState int

const (
	StateIdle GestureState = iota
	StateUndecided // pointer down, movement below the drag threshold
	StateDragging
	StateInertial
)

// velocitySampleCount bounds the rolling buffer used to estimate release
// velocity.
const velocitySampleCount = 6

// Config carries the gesture tunables.
type Config struct {
	DragThresholdPx float64
	HitDistancePx   float64
	ZoomStep        float64
	InertiaFriction float64
	MinVelocity     float64 // px/s; below this inertia stops
}

// DefaultConfig returns the documented gesture defaults.
func DefaultConfig() Config {
	return Config{
		DragThresholdPx: 6,
		HitDistancePx:   30,
		ZoomStep:        0.12,
		InertiaFriction: 0.92,
		MinVelocity:     10,
	}
}

// Callbacks let the host react to engine decisions. Any callback may be nil.
type Callbacks struct {
	// OnRepaint fires whenever view state changed and the track needs paint.
	OnRepaint func()
	// OnPreview fires when the hover target changes or moves. reload is true
	// only when the underlying screenshot differs from the previous target,
	// so hosts can skip redundant image decodes.
	OnPreview func(ev model.CaptureEvent, x float64, reload bool)
	// OnPreviewHidden fires when no event is near the pointer anymore.
	OnPreviewHidden func()
	// OnDetail fires on a clean click near an event, with the screenshot
	// name whose tick should be opened in a detail view.
	OnDetail func(screenshotName string)
}

type velocitySample struct {
	x  float64
	at time.Time
}

// Engine mutates a DayTrack's zoom and pan in response to gestures.
type Engine struct {
	track *timeline.DayTrack
	cfg   Config
	cb    Callbacks

	state       GestureState
	pressX      float64
	startOffset float64
	samples     []velocitySample
	velocity    float64 // px/s, only meaningful in StateInertial

	hoverScreenshot string
	hoverActive     bool
}

// NewEngine creates an engine bound to one track.
func NewEngine(track *timeline.DayTrack, cfg Config, cb Callbacks) *Engine {
	if cfg.DragThresholdPx <= 0 {
		cfg = DefaultConfig()
	}
	return &Engine{track: track, cfg: cfg, cb: cb}
}

// State returns the current gesture state.
func (e *Engine) State() GestureState {
	return e.state
}

// Wheel applies one or more zoom steps anchored at cursor x: the instant
// under the cursor before the zoom maps back to the same pixel afterwards.
func (e *Engine) Wheel(x float64, steps int) {
	if steps == 0 {
		return
	}

	anchor := e.track.TimeAt(x)
	e.track.SetZoom(e.track.Zoom() + float64(steps)*e.cfg.ZoomStep)
	e.track.SetPanOffset(e.track.SolvePanForAnchor(anchor, x))
	e.repaint()
}

// PointerDown begins a gesture. Any running inertia is cancelled
// immediately.
func (e *Engine) PointerDown(x float64, now time.Time) {
	e.velocity = 0
	e.state = StateUndecided
	e.pressX = x
	e.startOffset = e.track.PanOffset()
	e.samples = e.samples[:0]
	e.pushSample(x, now)
}

// PointerMove updates the gesture. Below the drag threshold the pointer
// still hovers; past it the view pans with the pointer.
func (e *Engine) PointerMove(x float64, now time.Time) {
	switch e.state {
	case StateUndecided:
		if math.Abs(x-e.pressX) < e.cfg.DragThresholdPx {
			e.pushSample(x, now)
			return
		}
		e.state = StateDragging
		e.hidePreview()
		fallthrough
	case StateDragging:
		dx := x - e.pressX
		// Drag right moves the view backward in time: content follows
		// the pointer.
		e.track.SetPanOffset(e.startOffset - dx*e.track.SecondsPerPixel())
		e.pushSample(x, now)
		e.repaint()
	case StateIdle:
		e.updateHover(x)
	}
}

// PointerUp ends the gesture: a clean click opens a detail view, a drag
// with enough release velocity transitions into inertia.
func (e *Engine) PointerUp(x float64, now time.Time) {
	switch e.state {
	case StateDragging:
		e.pushSample(x, now)
		v := e.releaseVelocity()
		if math.Abs(v) >= e.cfg.MinVelocity {
			e.velocity = v
			e.state = StateInertial
		} else {
			e.state = StateIdle
		}
	case StateUndecided:
		e.state = StateIdle
		if ev, ok := e.hit(x); ok && e.cb.OnDetail != nil {
			e.cb.OnDetail(ev.ScreenshotName)
		}
	default:
		e.state = StateIdle
	}
}

// Tick advances inertia by dt seconds and reports whether the engine still
// needs further ticks. The host drives this from whatever timer it has.
func (e *Engine) Tick(dt float64) bool {
	if e.state != StateInertial || dt <= 0 {
		return false
	}

	e.track.SetPanOffset(e.track.PanOffset() - e.velocity*e.track.SecondsPerPixel()*dt)
	e.velocity *= e.cfg.InertiaFriction
	e.repaint()

	if math.Abs(e.velocity) < e.cfg.MinVelocity {
		e.velocity = 0
		e.state = StateIdle
		return false
	}
	return true
}

// HitTest returns the event whose position is within the hit distance of x.
func (e *Engine) HitTest(x float64) (model.CaptureEvent, bool) {
	return e.hit(x)
}

// Leave hides any open hover preview; called when the pointer exits the
// track's bounds.
func (e *Engine) Leave() {
	e.hidePreview()
}

// Close stops inertia and clears hover state; called when the track widget
// is destroyed.
func (e *Engine) Close() {
	e.velocity = 0
	e.state = StateIdle
	e.hidePreview()
}

func (e *Engine) hit(x float64) (model.CaptureEvent, bool) {
	pos, ok := e.track.Nearest(x)
	if !ok || math.Abs(pos.X-x) > e.cfg.HitDistancePx {
		return model.CaptureEvent{}, false
	}
	return pos.Event, true
}

func (e *Engine) updateHover(x float64) {
	ev, ok := e.hit(x)
	if !ok {
		e.hidePreview()
		return
	}

	reload := !e.hoverActive || ev.ScreenshotName != e.hoverScreenshot
	e.hoverActive = true
	e.hoverScreenshot = ev.ScreenshotName
	if e.cb.OnPreview != nil {
		e.cb.OnPreview(ev, x, reload)
	}
}

func (e *Engine) hidePreview() {
	if !e.hoverActive {
		return
	}
	e.hoverActive = false
	e.hoverScreenshot = ""
	if e.cb.OnPreviewHidden != nil {
		e.cb.OnPreviewHidden()
	}
}

func (e *Engine) pushSample(x float64, now time.Time) {
	e.samples = append(e.samples, velocitySample{x: x, at: now})
	if len(e.samples) > velocitySampleCount {
		e.samples = e.samples[len(e.samples)-velocitySampleCount:]
	}
}

// releaseVelocity estimates px/s over the rolling sample buffer.
func (e *Engine) releaseVelocity() float64 {
	if len(e.samples) < 2 {
		return 0
	}
	first := e.samples[0]
	last := e.samples[len(e.samples)-1]
	dt := last.at.Sub(first.at).Seconds()
	if dt <= 0 {
		return 0
	}
	return (last.x - first.x) / dt
}

func (e *Engine) repaint() {
	if e.cb.OnRepaint != nil {
		e.cb.OnRepaint()
	}
}
