package timeline

import (
	"fmt"
	"math"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-window-recorder/internal/core/model"
	"github.com/penwyp/go-window-recorder/internal/util"
)

func TestMain(m *testing.M) {
	util.InitializeTimeProvider("UTC")
	os.Exit(m.Run())
}

func eventsAt(base time.Time, offsets ...time.Duration) []model.CaptureEvent {
	evs := make([]model.CaptureEvent, 0, len(offsets))
	for i, off := range offsets {
		evs = append(evs, model.CaptureEvent{
			ID:             int64(i + 1),
			Timestamp:      base.Add(off),
			WindowTitle:    fmt.Sprintf("window %d", i+1),
			ScreenshotName: fmt.Sprintf("screen_%d.png", i+1),
		})
	}
	return evs
}

func TestPositionsAreMonotonic(t *testing.T) {
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	track := NewDayTrack(base, eventsAt(base,
		0, 10*time.Second, 10*time.Second, 45*time.Second, 3*time.Minute, time.Hour,
	), DefaultTrackConfig())

	for _, zoom := range []float64{1.0, 2.5, 8.0, 20.0} {
		track.SetZoom(zoom)
		positions := track.Positions()
		require.Len(t, positions, 6)
		for i := 1; i < len(positions); i++ {
			assert.GreaterOrEqual(t, positions[i].X, positions[i-1].X,
				"positions must not reorder at zoom %.1f", zoom)
		}
	}
}

func TestItemsSortedRegardlessOfInputOrder(t *testing.T) {
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	shuffled := []model.CaptureEvent{
		{ID: 1, Timestamp: base.Add(2 * time.Minute)},
		{ID: 2, Timestamp: base},
		{ID: 3, Timestamp: base.Add(time.Minute)},
	}

	track := NewDayTrack(base, shuffled, DefaultTrackConfig())
	require.Len(t, track.Items, 3)
	assert.Equal(t, int64(2), track.Items[0].ID)
	assert.Equal(t, int64(3), track.Items[1].ID)
	assert.Equal(t, int64(1), track.Items[2].ID)
}

func TestRecomputeIsIdempotent(t *testing.T) {
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	track := NewDayTrack(base, eventsAt(base, 0, 20*time.Minute, time.Hour), DefaultTrackConfig())
	track.SetZoom(3.0)
	track.SetPanOffset(450)

	first := append([]EventPosition(nil), track.Positions()...)
	firstTicks := append([]Tick(nil), track.Ticks()...)

	track.Recompute()
	track.Recompute()

	assert.Equal(t, first, track.Positions())
	assert.Equal(t, firstTicks, track.Ticks())
}

func TestTickIntervalForOneHourSpan(t *testing.T) {
	// One hour at zoom 1.0 with six target labels wants 3600/5 = 720s,
	// which is closest to the 600s candidate.
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	track := NewDayTrack(base, eventsAt(base, 0, time.Hour), DefaultTrackConfig())

	ticks := track.Ticks()
	require.Len(t, ticks, 7)
	assert.Equal(t, "10:00", ticks[0].Label)
	assert.Equal(t, "10:10", ticks[1].Label)
	assert.Equal(t, "11:00", ticks[6].Label)

	// Uniform spacing of 600s worth of pixels
	step := 600.0 / 3600.0 * track.AvailWidth()
	for i := 1; i < len(ticks); i++ {
		assert.InDelta(t, step, ticks[i].X-ticks[i-1].X, 1e-6)
	}
}

func TestTickIntervalScalesWithZoom(t *testing.T) {
	tests := []struct {
		span time.Duration
		zoom float64
		want float64 // expected tick interval seconds
	}{
		{time.Hour, 1.0, 600},
		{time.Hour, 10.0, 60},   // 360/5 = 72 -> 60
		{8 * time.Hour, 1.0, 7200}, // 28800/5 = 5760 -> 7200
		{5 * time.Minute, 1.0, 60},
	}

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		track := NewDayTrack(base, eventsAt(base, 0, tt.span), DefaultTrackConfig())
		track.SetZoom(tt.zoom)

		ticks := track.Ticks()
		require.GreaterOrEqual(t, len(ticks), 2, "span %v zoom %.1f", tt.span, tt.zoom)

		spp := track.SecondsPerPixel()
		gotInterval := (ticks[1].X - ticks[0].X) * spp
		assert.InDelta(t, tt.want, gotInterval, 1e-6, "span %v zoom %.1f", tt.span, tt.zoom)
	}
}

func TestEmptyDayProducesNoPositions(t *testing.T) {
	track := NewDayTrack(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), nil, DefaultTrackConfig())

	assert.Empty(t, track.Positions())
	assert.Empty(t, track.Ticks())
}

func TestSingleEventDayCentersEvent(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	track := NewDayTrack(base, eventsAt(base, 0), DefaultTrackConfig())

	positions := track.Positions()
	require.Len(t, positions, 1)

	// Span is floored at one second, so the lone event sits near the center.
	center := track.LeftMargin() + track.AvailWidth()/2
	assert.InDelta(t, center, positions[0].X, track.AvailWidth()/2+1)
	assert.False(t, math.IsNaN(positions[0].X))
	assert.False(t, math.IsInf(positions[0].X, 0))
}

func TestZoomClamping(t *testing.T) {
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	track := NewDayTrack(base, eventsAt(base, 0, time.Hour), DefaultTrackConfig())

	track.SetZoom(0.2)
	assert.Equal(t, 1.0, track.Zoom())

	track.SetZoom(100)
	assert.Equal(t, 20.0, track.Zoom())

	track.SetZoom(5)
	assert.Equal(t, 5.0, track.Zoom())
}

func TestPanShiftsVisibleWindow(t *testing.T) {
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	track := NewDayTrack(base, eventsAt(base, 0, time.Hour), DefaultTrackConfig())

	min0, max0 := track.VisibleWindow()
	track.SetPanOffset(300)
	min1, max1 := track.VisibleWindow()

	assert.InDelta(t, 300, min1-min0, 1e-9)
	assert.InDelta(t, 300, max1-max0, 1e-9)
}

func TestTimeAtInvertsPositionMapping(t *testing.T) {
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	track := NewDayTrack(base, eventsAt(base, 0, 30*time.Minute, time.Hour), DefaultTrackConfig())
	track.SetZoom(4)
	track.SetPanOffset(-120)

	for _, p := range track.Positions() {
		assert.InDelta(t, float64(p.Event.Timestamp.Unix()), track.TimeAt(p.X), 1e-6)
	}
}

func TestSolvePanForAnchorKeepsInstantUnderPixel(t *testing.T) {
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	track := NewDayTrack(base, eventsAt(base, 0, time.Hour), DefaultTrackConfig())

	x := 300.0
	anchor := track.TimeAt(x)

	track.SetZoom(6.0)
	track.SetPanOffset(track.SolvePanForAnchor(anchor, x))

	assert.InDelta(t, anchor, track.TimeAt(x), 1e-6)
}

func TestNearestPicksClosestEvent(t *testing.T) {
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	track := NewDayTrack(base, eventsAt(base, 0, 30*time.Minute, time.Hour), DefaultTrackConfig())

	positions := track.Positions()
	require.Len(t, positions, 3)

	got, ok := track.Nearest(positions[1].X + 2)
	require.True(t, ok)
	assert.Equal(t, positions[1].Event.ID, got.Event.ID)

	_, ok = NewDayTrack(base, nil, DefaultTrackConfig()).Nearest(100)
	assert.False(t, ok)
}
