package recorder

import (
	"sync"

	"github.com/penwyp/go-window-recorder/internal/config"
)

// maxLogLines bounds the retained status feed, matching the launcher's
// scrollback limit.
const maxLogLines = 100

// StateManager holds the recorder's shared state in a thread-safe manner.
// The capture worker and the host-facing callbacks never share memory
// directly; everything crosses through here or through channels.
type StateManager struct {
	mu sync.RWMutex

	cfg      config.Config
	logLines []string
}

// NewStateManager creates a state manager seeded with the initial config.
func NewStateManager(cfg config.Config) *StateManager {
	return &StateManager{cfg: cfg}
}

// Config returns the current configuration.
func (sm *StateManager) Config() config.Config {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.cfg
}

// SetConfig replaces the current configuration.
func (sm *StateManager) SetConfig(cfg config.Config) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.cfg = cfg
}

// AppendLog records one status line, trimming the oldest past the cap.
func (sm *StateManager) AppendLog(line string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.logLines = append(sm.logLines, line)
	if len(sm.logLines) > maxLogLines {
		sm.logLines = sm.logLines[len(sm.logLines)-maxLogLines:]
	}
}

// Logs returns a copy of the retained status lines.
func (sm *StateManager) Logs() []string {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	lines := make([]string, len(sm.logLines))
	copy(lines, sm.logLines)
	return lines
}
