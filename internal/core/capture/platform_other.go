//go:build !windows

package capture

import (
	"fmt"
	"os"
)

// NewPlatformCapturer reports that screen capture requires Windows. Tests
// and the viewer commands run anywhere; only the recording loop needs the
// real capturer.
func NewPlatformCapturer() (ScreenCapturer, error) {
	return nil, fmt.Errorf("screen capture is only supported on windows")
}

// NewPlatformEnumerator reports that window enumeration requires Windows.
func NewPlatformEnumerator() (WindowEnumerator, error) {
	return nil, fmt.Errorf("window enumeration is only supported on windows")
}

// OwnPID returns the recorder's process id for the exclusion predicate.
func OwnPID() uint32 {
	return uint32(os.Getpid())
}
