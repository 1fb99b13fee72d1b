package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-window-recorder/internal/util"
)

func TestMain(m *testing.M) {
	util.InitializeTimeProvider("UTC")
	os.Exit(m.Run())
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(filepath.Join(t.TempDir(), "recorder.db"))
	require.NoError(t, s.Init())
	return s
}

func TestInsertAndFetchAllOrdering(t *testing.T) {
	s := newTestStore(t)

	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.Insert(base.Add(2*time.Minute), "Editor", "screen_b.png"))
	require.NoError(t, s.Insert(base, "Browser", "screen_a.png"))
	require.NoError(t, s.Insert(base.Add(1*time.Minute), "Terminal", "screen_c.png"))

	events := s.FetchAll("")
	require.Len(t, events, 3)

	assert.Equal(t, "Browser", events[0].WindowTitle)
	assert.Equal(t, "Terminal", events[1].WindowTitle)
	assert.Equal(t, "Editor", events[2].WindowTitle)
	assert.True(t, events[0].Timestamp.Before(events[1].Timestamp))
	assert.True(t, events[1].Timestamp.Before(events[2].Timestamp))
}

func TestFetchAllKeywordFilterIsCaseInsensitive(t *testing.T) {
	s := newTestStore(t)

	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.Insert(now, "Mozilla Firefox", "screen_a.png"))
	require.NoError(t, s.Insert(now, "Visual Studio Code", "screen_a.png"))
	require.NoError(t, s.Insert(now, "firefox - private", "screen_a.png"))

	events := s.FetchAll("FIREFOX")
	require.Len(t, events, 2)
	for _, ev := range events {
		assert.Contains(t, []string{"Mozilla Firefox", "firefox - private"}, ev.WindowTitle)
	}

	assert.Len(t, s.FetchAll("nonexistent"), 0)
}

func TestFetchAllSameTickShareTimestampAndScreenshot(t *testing.T) {
	s := newTestStore(t)

	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.Insert(now, "Browser", "screen_20240101_100000.png"))
	require.NoError(t, s.Insert(now, "Editor", "screen_20240101_100000.png"))

	events := s.FetchAll("")
	require.Len(t, events, 2)
	assert.True(t, events[0].SameTick(events[1]))
}

func TestFetchAllSkipsMalformedTimestamps(t *testing.T) {
	s := newTestStore(t)

	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.Insert(now, "Good", "screen_a.png"))

	db, err := s.open()
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO events (timestamp, window_name, screenshot_name) VALUES ('garbage', 'Bad', 'screen_b.png')`)
	db.Close()
	require.NoError(t, err)

	events := s.FetchAll("")
	require.Len(t, events, 1)
	assert.Equal(t, "Good", events[0].WindowTitle)
}

func TestFetchDays(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Insert(time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC), "A", "a.png"))
	require.NoError(t, s.Insert(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), "B", "b.png"))
	require.NoError(t, s.Insert(time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC), "C", "c.png"))

	days, err := s.FetchDays()
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-01", "2024-01-02"}, days)
}

func TestCleanupOlderThanDeletesRowsAndOrphanedFiles(t *testing.T) {
	s := newTestStore(t)
	shotsDir := t.TempDir()

	old := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	recent := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)

	// Two old events share old.png; shared.png is referenced by an old
	// and a recent event and must survive the file sweep.
	require.NoError(t, s.Insert(old, "A", "old.png"))
	require.NoError(t, s.Insert(old, "B", "old.png"))
	require.NoError(t, s.Insert(old.Add(time.Hour), "C", "shared.png"))
	require.NoError(t, s.Insert(recent, "D", "shared.png"))
	require.NoError(t, s.Insert(recent, "E", "new.png"))

	for _, name := range []string{"old.png", "shared.png", "new.png"} {
		require.NoError(t, os.WriteFile(filepath.Join(shotsDir, name), []byte("png"), 0644))
	}

	cutoff := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	rows, files, err := s.CleanupOlderThan(cutoff, shotsDir)
	require.NoError(t, err)
	assert.Equal(t, 3, rows)
	assert.Equal(t, 1, files)

	_, err = os.Stat(filepath.Join(shotsDir, "old.png"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(shotsDir, "shared.png"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(shotsDir, "new.png"))
	assert.NoError(t, err)

	events := s.FetchAll("")
	require.Len(t, events, 2)
	for _, ev := range events {
		assert.False(t, ev.Timestamp.Before(cutoff))
	}
}

func TestCleanupToleratesMissingFiles(t *testing.T) {
	s := newTestStore(t)
	shotsDir := t.TempDir()

	old := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.Insert(old, "A", "never_written.png"))

	rows, files, err := s.CleanupOlderThan(old.Add(24*time.Hour), shotsDir)
	require.NoError(t, err)
	assert.Equal(t, 1, rows)
	assert.Equal(t, 0, files)
}

func TestCleanupNoExpiredRowsIsNoop(t *testing.T) {
	s := newTestStore(t)

	now := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.Insert(now, "A", "a.png"))

	rows, files, err := s.CleanupOlderThan(now.AddDate(0, 0, -7), t.TempDir())
	require.NoError(t, err)
	assert.Zero(t, rows)
	assert.Zero(t, files)
	assert.Len(t, s.FetchAll(""), 1)
}
