// Package timeline computes the visible time window of a day's capture
// events and maps every event to a pixel position on a horizontal track.
package timeline

import (
	"math"
	"sort"
	"time"

	"github.com/penwyp/go-window-recorder/internal/core/model"
	"github.com/penwyp/go-window-recorder/internal/util"
)

// tickIntervals are the candidate "nice" ruler spacings, in seconds.
var tickIntervals = []float64{60, 300, 600, 900, 1800, 3600, 7200, 14400}

// DayTrack holds one calendar day's events plus the view parameters the
// interaction engine mutates. Positions and ticks are cached and
// recomputed lazily after every mutation.
type DayTrack struct {
	Day   time.Time
	Items []model.CaptureEvent

	cfg        TrackConfig
	zoomFactor float64
	panOffset  float64 // seconds added to the nominal center

	dirty     bool
	positions []EventPosition
	ticks     []Tick
	tMin      float64 // unix seconds
	tMax      float64
}

// NewDayTrack creates a track for one day. Items are sorted ascending by
// timestamp regardless of input order.
func NewDayTrack(day time.Time, items []model.CaptureEvent, cfg TrackConfig) *DayTrack {
	if cfg.Width <= 0 {
		cfg = DefaultTrackConfig()
	}
	if cfg.TickTarget < 2 {
		cfg.TickTarget = DefaultTrackConfig().TickTarget
	}
	if cfg.MinZoom <= 0 {
		cfg.MinZoom = DefaultTrackConfig().MinZoom
	}
	if cfg.MaxZoom < cfg.MinZoom {
		cfg.MaxZoom = cfg.MinZoom
	}

	sorted := make([]model.CaptureEvent, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	return &DayTrack{
		Day:        day,
		Items:      sorted,
		cfg:        cfg,
		zoomFactor: cfg.MinZoom,
		dirty:      true,
	}
}

// Zoom returns the current zoom factor.
func (t *DayTrack) Zoom() float64 {
	return t.zoomFactor
}

// SetZoom clamps and applies a zoom factor, invalidating cached positions.
func (t *DayTrack) SetZoom(z float64) {
	z = math.Max(t.cfg.MinZoom, math.Min(t.cfg.MaxZoom, z))
	if z != t.zoomFactor {
		t.zoomFactor = z
		t.dirty = true
	}
}

// PanOffset returns the current pan offset in seconds.
func (t *DayTrack) PanOffset() float64 {
	return t.panOffset
}

// SetPanOffset applies a pan offset, invalidating cached positions.
func (t *DayTrack) SetPanOffset(seconds float64) {
	if seconds != t.panOffset {
		t.panOffset = seconds
		t.dirty = true
	}
}

// SetWidth applies a new track pixel width, invalidating cached positions.
func (t *DayTrack) SetWidth(w float64) {
	if w > 0 && w != t.cfg.Width {
		t.cfg.Width = w
		t.dirty = true
	}
}

// Width returns the track pixel width.
func (t *DayTrack) Width() float64 {
	return t.cfg.Width
}

// LeftMargin returns the left axis inset.
func (t *DayTrack) LeftMargin() float64 {
	return t.cfg.LeftMargin
}

// RightMargin returns the right axis inset.
func (t *DayTrack) RightMargin() float64 {
	return t.cfg.RightMargin
}

// AvailWidth returns the plottable width between the margins, at least 1px.
func (t *DayTrack) AvailWidth() float64 {
	return math.Max(t.cfg.Width-t.cfg.LeftMargin-t.cfg.RightMargin, 1)
}

// totalSpan returns the full-day span in seconds, floored at one second so
// a zero- or one-event day never divides by zero.
func (t *DayTrack) totalSpan() float64 {
	if len(t.Items) == 0 {
		return 1
	}
	first := float64(t.Items[0].Timestamp.Unix())
	last := float64(t.Items[len(t.Items)-1].Timestamp.Unix())
	return math.Max(last-first, 1)
}

// nominalCenter returns the midpoint of the full-day span in unix seconds.
func (t *DayTrack) nominalCenter() float64 {
	if len(t.Items) == 0 {
		return 0
	}
	return float64(t.Items[0].Timestamp.Unix()) + t.totalSpan()/2
}

// ZoomSpan returns the visible span in seconds at the current zoom.
func (t *DayTrack) ZoomSpan() float64 {
	return t.totalSpan() / t.zoomFactor
}

// SecondsPerPixel converts pixel deltas into time deltas for panning.
func (t *DayTrack) SecondsPerPixel() float64 {
	return t.ZoomSpan() / t.AvailWidth()
}

// Recompute rebuilds the visible window, positions and ticks from the
// current items, zoom, pan and width.
func (t *DayTrack) Recompute() {
	t.dirty = false
	t.positions = nil
	t.ticks = nil

	if len(t.Items) == 0 {
		t.tMin, t.tMax = 0, 0
		return
	}

	zoomSpan := t.ZoomSpan()
	center := t.nominalCenter() + t.panOffset
	t.tMin = center - zoomSpan/2
	t.tMax = center + zoomSpan/2

	availW := t.AvailWidth()
	span := t.tMax - t.tMin

	// Off-canvas events stay in the list; the render surface decides
	// whether to draw them.
	t.positions = make([]EventPosition, 0, len(t.Items))
	for _, ev := range t.Items {
		x := t.cfg.LeftMargin + (float64(ev.Timestamp.Unix())-t.tMin)/span*availW
		t.positions = append(t.positions, EventPosition{Event: ev, X: x})
	}

	t.ticks = t.generateTicks(zoomSpan, availW)
}

// generateTicks picks the candidate interval closest to the span divided by
// the desired label count, then emits a tick at every multiple covering the
// visible window.
func (t *DayTrack) generateTicks(zoomSpan, availW float64) []Tick {
	want := zoomSpan / float64(t.cfg.TickTarget-1)

	interval := tickIntervals[0]
	best := math.Abs(tickIntervals[0] - want)
	for _, cand := range tickIntervals[1:] {
		if d := math.Abs(cand - want); d < best {
			best = d
			interval = cand
		}
	}

	tp := util.GetTimeProvider()
	span := t.tMax - t.tMin
	var ticks []Tick
	for ts := math.Ceil(t.tMin/interval) * interval; ts <= t.tMax; ts += interval {
		x := t.cfg.LeftMargin + (ts-t.tMin)/span*availW
		ticks = append(ticks, Tick{
			X:     x,
			Label: tp.FormatClock(time.Unix(int64(ts), 0)),
		})
	}
	return ticks
}

func (t *DayTrack) ensure() {
	if t.dirty {
		t.Recompute()
	}
}

// Positions returns the event-to-pixel mapping, recomputing when stale.
func (t *DayTrack) Positions() []EventPosition {
	t.ensure()
	return t.positions
}

// Ticks returns the ruler ticks, recomputing when stale.
func (t *DayTrack) Ticks() []Tick {
	t.ensure()
	return t.ticks
}

// VisibleWindow returns the visible [tMin, tMax] in unix seconds.
func (t *DayTrack) VisibleWindow() (float64, float64) {
	t.ensure()
	return t.tMin, t.tMax
}

// TimeAt inverts the pixel mapping: the unix-seconds instant under pixel x.
func (t *DayTrack) TimeAt(x float64) float64 {
	t.ensure()
	return t.tMin + (x-t.cfg.LeftMargin)/t.AvailWidth()*(t.tMax-t.tMin)
}

// SolvePanForAnchor returns the pan offset that places the instant ts under
// pixel x at the current zoom, used to anchor wheel zoom at the cursor.
func (t *DayTrack) SolvePanForAnchor(ts, x float64) float64 {
	zoomSpan := t.ZoomSpan()
	// x = L + (ts - tMin)/zoomSpan*availW with
	// tMin = nominalCenter + pan - zoomSpan/2; solve for pan.
	return ts - t.nominalCenter() + zoomSpan*(0.5-(x-t.cfg.LeftMargin)/t.AvailWidth())
}

// Nearest returns the event position closest to pixel x.
func (t *DayTrack) Nearest(x float64) (EventPosition, bool) {
	t.ensure()
	if len(t.positions) == 0 {
		return EventPosition{}, false
	}
	best := t.positions[0]
	bestDist := math.Abs(best.X - x)
	for _, p := range t.positions[1:] {
		if d := math.Abs(p.X - x); d < bestDist {
			bestDist = d
			best = p
		}
	}
	return best, true
}

// NearestToCenter returns the event closest to the current view center.
func (t *DayTrack) NearestToCenter() (EventPosition, bool) {
	t.ensure()
	center := t.cfg.LeftMargin + t.AvailWidth()/2
	return t.Nearest(center)
}
