package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSameTick(t *testing.T) {
	ts := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	a := CaptureEvent{ID: 1, Timestamp: ts, WindowTitle: "Browser", ScreenshotName: "screen_a.png"}
	b := CaptureEvent{ID: 2, Timestamp: ts, WindowTitle: "Editor", ScreenshotName: "screen_a.png"}
	c := CaptureEvent{ID: 3, Timestamp: ts.Add(10 * time.Second), WindowTitle: "Browser", ScreenshotName: "screen_b.png"}

	assert.True(t, a.SameTick(b))
	assert.False(t, a.SameTick(c))
}
