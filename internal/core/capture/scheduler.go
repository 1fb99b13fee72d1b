package capture

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/penwyp/go-window-recorder/internal/util"
)

// stopJoinTimeout bounds how long Stop waits for the worker to exit.
const stopJoinTimeout = 5 * time.Second

// RetentionPolicy prunes old events from within the capture loop. Cleanup is
// the store's age-based sweep; it receives the cutoff timestamp.
type RetentionPolicy struct {
	Days          int
	CheckInterval time.Duration
	Cleanup       func(cutoff time.Time) (rowsDeleted, filesDeleted int, err error)
}

// SchedulerConfig wires a Scheduler. Capturer, Enumerator and Sink are
// injected so the loop is testable without a real window manager.
type SchedulerConfig struct {
	Interval   time.Duration
	OutputDir  string
	Capturer   ScreenCapturer
	Enumerator WindowEnumerator
	Exclude    ExclusionPredicate
	Sink       EventSink
	Retention  RetentionPolicy
}

// Scheduler runs the periodic screenshot+enumeration loop on a background
// goroutine. All UI-side communication happens through log lines; the loop
// never touches UI state.
type Scheduler struct {
	cfg SchedulerConfig

	mu        sync.Mutex
	state     State
	stopCh    chan struct{}
	doneCh    chan struct{}
	startedAt time.Time
}

// NewScheduler creates a scheduler in the Idle state.
func NewScheduler(cfg SchedulerConfig) *Scheduler {
	if cfg.Exclude == nil {
		cfg.Exclude = func(WindowInfo) bool { return false }
	}
	return &Scheduler{cfg: cfg, state: StateIdle}
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start transitions Idle to Running and spawns the capture loop.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle {
		return fmt.Errorf("scheduler is %s, not idle", s.state)
	}
	if err := os.MkdirAll(s.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	s.state = StateRunning
	s.startedAt = time.Now()

	go s.loop(s.stopCh, s.doneCh)

	util.LogInfof("recording started, capturing every %s into %s", s.cfg.Interval, s.cfg.OutputDir)
	return nil
}

// Stop wakes the loop and waits for it to exit, bounded by stopJoinTimeout.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if s.state != StateRunning {
		s.mu.Unlock()
		return nil
	}
	s.state = StateStopping
	close(s.stopCh)
	doneCh := s.doneCh
	startedAt := s.startedAt
	s.mu.Unlock()

	select {
	case <-doneCh:
	case <-time.After(stopJoinTimeout):
		return fmt.Errorf("capture loop did not stop within %s", stopJoinTimeout)
	}

	s.mu.Lock()
	s.state = StateIdle
	s.mu.Unlock()

	util.LogInfof("recording stopped after %s", util.FormatDuration(time.Since(startedAt)))
	return nil
}

func (s *Scheduler) loop(stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	nextRetention := time.Now()

	for {
		s.runTick()

		if s.cfg.Retention.Cleanup != nil && !time.Now().Before(nextRetention) {
			s.runRetention()
			nextRetention = time.Now().Add(s.cfg.Retention.CheckInterval)
		}

		// Interruptible sleep: Stop takes effect mid-interval
		timer := time.NewTimer(s.cfg.Interval)
		select {
		case <-stopCh:
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// runTick performs one capture tick. A failing tick never terminates the
// loop: everything is caught, logged and retried on the next interval.
func (s *Scheduler) runTick() {
	defer func() {
		if r := recover(); r != nil {
			util.LogErrorf("capture tick panicked: %v", r)
		}
	}()

	now := time.Now().Truncate(time.Second)
	name := screenshotName(now)
	path := filepath.Join(s.cfg.OutputDir, name)

	if err := s.cfg.Capturer.CaptureScreen(path); err != nil {
		// No event rows without a backing screenshot
		util.LogErrorf("screenshot failed, skipping tick: %v", err)
		return
	}

	windows, err := s.cfg.Enumerator.VisibleWindows()
	if err != nil {
		util.LogErrorf("window enumeration failed: %v", err)
		return
	}

	recorded := 0
	for _, w := range windows {
		if w.Title == "" || s.cfg.Exclude(w) {
			continue
		}
		if err := s.cfg.Sink.Insert(now, w.Title, name); err != nil {
			util.LogErrorf("failed to record window %q: %v", w.Title, err)
			continue
		}
		recorded++
	}

	if recorded == 0 {
		util.LogWarnf("capture %s saved but no visible windows were recorded", name)
	} else {
		util.LogInfof("capture %s recorded %d windows", name, recorded)
	}
}

func (s *Scheduler) runRetention() {
	defer func() {
		if r := recover(); r != nil {
			util.LogErrorf("retention sweep panicked: %v", r)
		}
	}()

	cutoff := time.Now().AddDate(0, 0, -s.cfg.Retention.Days)
	rows, files, err := s.cfg.Retention.Cleanup(cutoff)
	if err != nil {
		util.LogErrorf("retention sweep failed: %v", err)
		return
	}
	if rows > 0 || files > 0 {
		util.LogInfof("retention sweep removed %d events and %d screenshots older than %d days",
			rows, files, s.cfg.Retention.Days)
	}
}

// screenshotName derives a collision-free filename from the capture
// timestamp, second resolution.
func screenshotName(t time.Time) string {
	return fmt.Sprintf("screen_%s.png", t.Format("20060102_150405"))
}
