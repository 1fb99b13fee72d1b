package recorder

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/penwyp/go-window-recorder/internal/core/model"
)

// Detail lists every window recorded in one capture tick, identified by the
// shared screenshot. The host dialog shows one timestamp+title row per
// event and offers "open screenshot" and "copy all window names" actions.
type Detail struct {
	ScreenshotName string
	ScreenshotsDir string
	Events         []model.CaptureEvent
}

// DetailForScreenshot collects the events sharing a screenshot, preserving
// their stored order.
func DetailForScreenshot(events []model.CaptureEvent, screenshotName, screenshotsDir string) Detail {
	d := Detail{
		ScreenshotName: screenshotName,
		ScreenshotsDir: screenshotsDir,
	}
	for _, ev := range events {
		if ev.ScreenshotName == screenshotName {
			d.Events = append(d.Events, ev)
		}
	}
	return d
}

// ScreenshotPath returns the full path of the backing image for the open
// action.
func (d Detail) ScreenshotPath() string {
	return filepath.Join(d.ScreenshotsDir, d.ScreenshotName)
}

// ScreenshotMissing reports whether the backing image is gone from disk, in
// which case the dialog shows a placeholder instead of failing.
func (d Detail) ScreenshotMissing() bool {
	_, err := os.Stat(d.ScreenshotPath())
	return err != nil
}

// WindowNames joins every recorded title, one per line, for the copy-all
// action.
func (d Detail) WindowNames() string {
	names := make([]string, 0, len(d.Events))
	for _, ev := range d.Events {
		names = append(names, ev.WindowTitle)
	}
	return strings.Join(names, "\n")
}
