package util

import (
	"sync"
	"time"
)

// TimestampLayout is the second-resolution civil datetime format used by the
// event store and log output.
const TimestampLayout = "2006-01-02 15:04:05"

// DayLayout identifies one calendar day.
const DayLayout = "2006-01-02"

// TimeProvider is a global time utility that handles timezone-aware time operations
type TimeProvider struct {
	location *time.Location
	mu       sync.RWMutex
}

var (
	globalTimeProvider *TimeProvider
	timeProviderMu     sync.Mutex
)

// InitializeTimeProvider initializes the global time provider with the specified timezone
func InitializeTimeProvider(timezone string) error {
	timeProviderMu.Lock()
	defer timeProviderMu.Unlock()

	provider := &TimeProvider{}
	if err := provider.SetTimezone(timezone); err != nil {
		return err
	}

	globalTimeProvider = provider
	return nil
}

// GetTimeProvider returns the global time provider instance
// If not initialized, it defaults to Local timezone
func GetTimeProvider() *TimeProvider {
	if globalTimeProvider == nil {
		InitializeTimeProvider("Local")
	}
	return globalTimeProvider
}

// SetTimezone updates the timezone for the time provider
func (tp *TimeProvider) SetTimezone(timezone string) error {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	if timezone == "" || timezone == "Local" {
		tp.location = time.Local
		return nil
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return err
	}
	tp.location = loc
	return nil
}

// Location returns the configured timezone location
func (tp *TimeProvider) Location() *time.Location {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return tp.location
}

// FormatClock formats a time as HH:MM in the configured timezone
func (tp *TimeProvider) FormatClock(t time.Time) string {
	return t.In(tp.Location()).Format("15:04")
}

// FormatTimestamp formats a time at second precision in the configured timezone
func (tp *TimeProvider) FormatTimestamp(t time.Time) string {
	return t.In(tp.Location()).Format(TimestampLayout)
}

// ParseTimestamp parses a second-precision civil datetime in the configured timezone
func (tp *TimeProvider) ParseTimestamp(s string) (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, s, tp.Location())
}

// DayOf truncates a time to midnight of its calendar day in the configured timezone
func (tp *TimeProvider) DayOf(t time.Time) time.Time {
	local := t.In(tp.Location())
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, tp.Location())
}
