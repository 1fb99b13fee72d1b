package recorder

import (
	"context"
	"fmt"

	"github.com/penwyp/go-window-recorder/internal/config"
	"github.com/penwyp/go-window-recorder/internal/util"
)

// Callbacks is the surface the orchestrator exposes to the surrounding
// application. Any callback may be nil.
type Callbacks struct {
	// OnLogLine fires for every status line emitted by the recorder.
	OnLogLine func(line string)
	// OnDetail fires when a detail view was requested for a screenshot.
	OnDetail func(detail Detail)
}

// Orchestrator wires the capture scheduler, event store and configuration
// source together and runs the recorder's event loop. The capture worker
// communicates exclusively through the log feed channel; config updates and
// detail requests are applied on the loop goroutine.
type Orchestrator struct {
	store        EventStore
	state        *StateManager
	configSource ConfigSource
	callbacks    Callbacks

	// newController builds a scheduler for a given config so hot reload can
	// restart the loop with new settings.
	newController func(config.Config) (CaptureController, error)
	controller    CaptureController

	logFeed   chan string
	detailReq chan string
}

// NewOrchestrator creates an orchestrator. configSource may be nil when hot
// reload is not wanted.
func NewOrchestrator(
	cfg config.Config,
	store EventStore,
	newController func(config.Config) (CaptureController, error),
	configSource ConfigSource,
	callbacks Callbacks,
) *Orchestrator {
	return &Orchestrator{
		store:         store,
		state:         NewStateManager(cfg),
		configSource:  configSource,
		callbacks:     callbacks,
		newController: newController,
		logFeed:       make(chan string, 100),
		detailReq:     make(chan string, 8),
	}
}

// State returns the shared state manager.
func (o *Orchestrator) State() *StateManager {
	return o.state
}

// RequestDetail asks the loop to assemble a detail view for a screenshot.
// Safe to call from the host's UI thread.
func (o *Orchestrator) RequestDetail(screenshotName string) {
	select {
	case o.detailReq <- screenshotName:
	default:
		util.LogWarn("detail request dropped, queue full")
	}
}

// Run starts the capture loop and processes events until ctx is cancelled.
func (o *Orchestrator) Run(ctx context.Context) error {
	// Worker log lines reach the host only through this feed
	util.AddGlobalOutput(util.NewFeedOutput(o.logFeed))

	controller, err := o.newController(o.state.Config())
	if err != nil {
		return fmt.Errorf("create capture controller: %w", err)
	}
	o.controller = controller

	if err := o.controller.Start(); err != nil {
		return fmt.Errorf("start capture loop: %w", err)
	}
	defer o.stopController()

	var updates <-chan config.Config
	if o.configSource != nil {
		updates = o.configSource.Updates()
		defer o.configSource.Close()
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case line := <-o.logFeed:
			o.state.AppendLog(line)
			if o.callbacks.OnLogLine != nil {
				o.callbacks.OnLogLine(line)
			}

		case cfg := <-updates:
			o.applyConfig(cfg)

		case name := <-o.detailReq:
			o.handleDetailRequest(name)
		}
	}
}

// applyConfig restarts the capture loop with a new configuration. The old
// loop is joined before the new one starts so two workers never run at once.
func (o *Orchestrator) applyConfig(cfg config.Config) {
	util.LogInfo("configuration changed, restarting capture loop")

	o.stopController()

	controller, err := o.newController(cfg)
	if err != nil {
		util.LogErrorf("failed to rebuild capture controller: %v", err)
		return
	}
	o.controller = controller
	o.state.SetConfig(cfg)

	if err := o.controller.Start(); err != nil {
		util.LogErrorf("failed to restart capture loop: %v", err)
	}
}

func (o *Orchestrator) handleDetailRequest(screenshotName string) {
	cfg := o.state.Config()
	events := o.store.FetchAll("")
	detail := DetailForScreenshot(events, screenshotName, cfg.ScreenshotsDir)
	if len(detail.Events) == 0 {
		util.LogWarnf("detail requested for unknown screenshot %s", screenshotName)
	}
	if o.callbacks.OnDetail != nil {
		o.callbacks.OnDetail(detail)
	}
}

func (o *Orchestrator) stopController() {
	if o.controller == nil {
		return
	}
	if err := o.controller.Stop(); err != nil {
		util.LogErrorf("capture loop stop: %v", err)
	}
}
