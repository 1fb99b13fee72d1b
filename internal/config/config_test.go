package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 10, cfg.IntervalSeconds)
	assert.Equal(t, "screenshots", cfg.ScreenshotsDir)
	assert.Equal(t, 7, cfg.DaysToKeep)
	assert.Equal(t, 6, cfg.TickTarget)
	assert.Equal(t, 0.92, cfg.InertiaFriction)
	assert.Equal(t, 16, cfg.InertiaTimerMs)
}

func TestValidateFillsDefaults(t *testing.T) {
	cfg := Config{}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, Default(), cfg)
}

func TestValidateClampsOutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		check func(t *testing.T, cfg Config)
	}{
		{
			name: "interval_below_one_second",
			cfg:  Config{IntervalSeconds: 0},
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, 10, cfg.IntervalSeconds)
			},
		},
		{
			name: "friction_above_one",
			cfg:  Config{InertiaFriction: 1.5},
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, 0.92, cfg.InertiaFriction)
			},
		},
		{
			name: "max_zoom_below_min_zoom",
			cfg:  Config{MinZoom: 2.0, MaxZoom: 1.0},
			check: func(t *testing.T, cfg Config) {
				assert.GreaterOrEqual(t, cfg.MaxZoom, cfg.MinZoom)
			},
		},
		{
			name: "tick_target_too_small",
			cfg:  Config{TickTarget: 1},
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, 6, cfg.TickTarget)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.cfg.Validate())
			tt.check(t, tt.cfg)
		})
	}
}

func TestLoadMissingFileWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recorder_config.json")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	// The defaults must now exist on disk for the user to edit
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recorder_config.json")

	want := Default()
	want.IntervalSeconds = 42
	want.DaysToKeep = 3
	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recorder_config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
