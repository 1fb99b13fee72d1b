// Package render turns timeline view state into an ordered list of draw
// commands. It never mutates the model; the host executes the commands
// against its own graphics surface.
package render

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/penwyp/go-window-recorder/internal/core/timeline"
	"github.com/penwyp/go-window-recorder/internal/util"
)

// Vertical layout of the track, in track-local pixels.
const (
	rulerY        = 14.0
	tickHeight    = 6.0
	baselineY     = 56.0
	markerLabelY  = 40.0
	legendY       = 96.0
	previewY      = 116.0
	previewLineH  = 18.0
	minMarkerR    = 3.0
	maxMarkerR    = 9.0
	labelZoomFrom = 4.0 // per-marker HH:MM labels appear past this zoom
)

// Options tunes rendering.
type Options struct {
	GapThresholdPx float64
	ThumbWidth     float64
	ThumbHeight    float64

	// ShowCenterPreview adds the panel describing the event nearest the
	// current view center.
	ShowCenterPreview bool
	// ScreenshotsDir locates backing images for preview thumbnails.
	ScreenshotsDir string
	// FileExists overrides the disk check, mainly for tests. Receives the
	// screenshot name.
	FileExists func(name string) bool
}

// DefaultOptions returns the documented rendering defaults.
func DefaultOptions() Options {
	return Options{
		GapThresholdPx:    30,
		ThumbWidth:        320,
		ThumbHeight:       180,
		ShowCenterPreview: true,
	}
}

// Render produces the draw commands for one day track, in paint order:
// ruler, baseline, gap segments, markers, legend, center preview.
func Render(t *timeline.DayTrack, opts Options) []DrawCommand {
	if opts.GapThresholdPx <= 0 {
		opts.GapThresholdPx = DefaultOptions().GapThresholdPx
	}

	positions := t.Positions()
	if len(positions) == 0 {
		return []DrawCommand{{
			Op:   OpText,
			Role: RoleEmpty,
			X:    t.Width() / 2,
			Y:    baselineY,
			Text: "no records",
		}}
	}

	var cmds []DrawCommand
	cmds = append(cmds, renderRuler(t)...)
	cmds = append(cmds, renderBaseline(t))
	cmds = append(cmds, renderGaps(t, positions, opts)...)
	cmds = append(cmds, renderMarkers(t, positions)...)
	cmds = append(cmds, renderLegend(t))
	if opts.ShowCenterPreview {
		cmds = append(cmds, renderCenterPreview(t, opts)...)
	}
	return cmds
}

func renderRuler(t *timeline.DayTrack) []DrawCommand {
	cmds := []DrawCommand{{
		Op:   OpLine,
		Role: RoleRuler,
		X1:   t.LeftMargin(),
		Y1:   rulerY,
		X2:   t.Width() - t.RightMargin(),
		Y2:   rulerY,
	}}

	for _, tick := range t.Ticks() {
		cmds = append(cmds,
			DrawCommand{
				Op:   OpLine,
				Role: RoleTick,
				X1:   tick.X,
				Y1:   rulerY,
				X2:   tick.X,
				Y2:   rulerY + tickHeight,
			},
			DrawCommand{
				Op:   OpText,
				Role: RoleTickLabel,
				X:    tick.X,
				Y:    rulerY - 4,
				Text: tick.Label,
			},
		)
	}
	return cmds
}

func renderBaseline(t *timeline.DayTrack) DrawCommand {
	return DrawCommand{
		Op:   OpLine,
		Role: RoleBaseline,
		X1:   t.LeftMargin(),
		Y1:   baselineY,
		X2:   t.Width() - t.RightMargin(),
		Y2:   baselineY,
	}
}

// renderGaps emits a dashed segment wherever neighbouring events sit more
// than the gap threshold apart, including the stretches between the margins
// and the first/last event.
func renderGaps(t *timeline.DayTrack, positions []timeline.EventPosition, opts Options) []DrawCommand {
	var cmds []DrawCommand
	gap := func(x1, x2 float64) {
		if x2-x1 > opts.GapThresholdPx {
			cmds = append(cmds, DrawCommand{
				Op:   OpDashedLine,
				Role: RoleGap,
				X1:   x1,
				Y1:   baselineY,
				X2:   x2,
				Y2:   baselineY,
			})
		}
	}

	gap(t.LeftMargin(), positions[0].X)
	for i := 1; i < len(positions); i++ {
		gap(positions[i-1].X, positions[i].X)
	}
	gap(positions[len(positions)-1].X, t.Width()-t.RightMargin())
	return cmds
}

func renderMarkers(t *timeline.DayTrack, positions []timeline.EventPosition) []DrawCommand {
	radius := math.Max(minMarkerR, math.Min(maxMarkerR, 2+t.Zoom()))
	left := t.LeftMargin()
	right := t.Width() - t.RightMargin()
	tp := util.GetTimeProvider()

	var cmds []DrawCommand
	for _, p := range positions {
		// The model keeps off-canvas events; skip drawing them here
		if p.X < left || p.X > right {
			continue
		}
		cmds = append(cmds, DrawCommand{
			Op:     OpCircle,
			Role:   RoleMarker,
			X:      p.X,
			Y:      baselineY,
			Radius: radius,
		})
		if t.Zoom() >= labelZoomFrom {
			cmds = append(cmds, DrawCommand{
				Op:   OpText,
				Role: RoleMarkerLabel,
				X:    p.X,
				Y:    markerLabelY,
				Text: tp.FormatClock(p.Event.Timestamp),
			})
		}
	}
	return cmds
}

func renderLegend(t *timeline.DayTrack) DrawCommand {
	return DrawCommand{
		Op:   OpText,
		Role: RoleLegend,
		X:    t.LeftMargin(),
		Y:    legendY,
		Text: fmt.Sprintf("● capture   ┄ idle gap   zoom ×%.2f", t.Zoom()),
	}
}

// renderCenterPreview describes the event nearest the view center: title,
// timestamp and a thumbnail when the backing image still exists on disk.
func renderCenterPreview(t *timeline.DayTrack, opts Options) []DrawCommand {
	pos, ok := t.NearestToCenter()
	if !ok {
		return nil
	}

	tp := util.GetTimeProvider()
	cmds := []DrawCommand{
		{
			Op:   OpText,
			Role: RolePreviewText,
			X:    t.LeftMargin(),
			Y:    previewY,
			Text: pos.Event.WindowTitle,
		},
		{
			Op:   OpText,
			Role: RolePreviewText,
			X:    t.LeftMargin(),
			Y:    previewY + previewLineH,
			Text: tp.FormatTimestamp(pos.Event.Timestamp),
		},
	}

	if screenshotExists(pos.Event.ScreenshotName, opts) {
		cmds = append(cmds, DrawCommand{
			Op:        OpImage,
			Role:      RolePreviewImage,
			X:         t.LeftMargin(),
			Y:         previewY + 2*previewLineH,
			W:         opts.ThumbWidth,
			H:         opts.ThumbHeight,
			ImagePath: filepath.Join(opts.ScreenshotsDir, pos.Event.ScreenshotName),
		})
	} else {
		cmds = append(cmds, DrawCommand{
			Op:   OpText,
			Role: RolePreviewText,
			X:    t.LeftMargin(),
			Y:    previewY + 2*previewLineH,
			Text: "[image missing]",
		})
	}
	return cmds
}

func screenshotExists(name string, opts Options) bool {
	if opts.FileExists != nil {
		return opts.FileExists(name)
	}
	_, err := os.Stat(filepath.Join(opts.ScreenshotsDir, name))
	return err == nil
}
