package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
)

// Config carries every tunable of the recorder and the timeline view.
// Values are validated and clamped once at load time; components receive the
// struct by value and never consult a mutable global.
type Config struct {
	// Capture settings
	IntervalSeconds int    `json:"interval_seconds"`
	ScreenshotsDir  string `json:"screenshots_dir"`
	DBFile          string `json:"db_file"`

	// Retention settings
	DaysToKeep            int `json:"days_to_keep"`
	RetentionCheckSeconds int `json:"retention_check_seconds"`

	// Timeline view settings
	ThumbWidth  int     `json:"thumb_width"`
	ThumbHeight int     `json:"thumb_height"`
	MinHitDist  float64 `json:"min_hit_dist"`
	TickTarget  int     `json:"tick_target"`
	MinZoom     float64 `json:"min_zoom"`
	MaxZoom     float64 `json:"max_zoom"`
	ZoomStep    float64 `json:"zoom_step"`
	GapPx       float64 `json:"gap_px"`

	// Gesture settings
	DragThreshold   float64 `json:"drag_threshold"`
	InertiaFriction float64 `json:"inertia_friction"`
	InertiaMinV     float64 `json:"inertia_min_v"`
	InertiaTimerMs  int     `json:"inertia_timer_ms"`

	// Display settings
	Timezone string `json:"timezone"`
}

// Default returns the documented default configuration.
func Default() Config {
	return Config{
		IntervalSeconds:       10,
		ScreenshotsDir:        "screenshots",
		DBFile:                "recorder.db",
		DaysToKeep:            7,
		RetentionCheckSeconds: 3600,
		ThumbWidth:            320,
		ThumbHeight:           180,
		MinHitDist:            30,
		TickTarget:            6,
		MinZoom:               1.0,
		MaxZoom:               20.0,
		ZoomStep:              0.12,
		GapPx:                 30,
		DragThreshold:         6,
		InertiaFriction:       0.92,
		InertiaMinV:           10,
		InertiaTimerMs:        16,
		Timezone:              "Local",
	}
}

// Validate fills zero values with defaults and clamps out-of-range settings.
func (c *Config) Validate() error {
	def := Default()

	if c.IntervalSeconds < 1 {
		c.IntervalSeconds = def.IntervalSeconds
	}
	if c.ScreenshotsDir == "" {
		c.ScreenshotsDir = def.ScreenshotsDir
	}
	if c.DBFile == "" {
		c.DBFile = def.DBFile
	}
	if c.DaysToKeep < 1 {
		c.DaysToKeep = def.DaysToKeep
	}
	if c.RetentionCheckSeconds < 60 {
		c.RetentionCheckSeconds = def.RetentionCheckSeconds
	}
	if c.ThumbWidth <= 0 {
		c.ThumbWidth = def.ThumbWidth
	}
	if c.ThumbHeight <= 0 {
		c.ThumbHeight = def.ThumbHeight
	}
	if c.MinHitDist <= 0 {
		c.MinHitDist = def.MinHitDist
	}
	if c.TickTarget < 2 {
		c.TickTarget = def.TickTarget
	}
	if c.MinZoom <= 0 {
		c.MinZoom = def.MinZoom
	}
	if c.MaxZoom < c.MinZoom {
		c.MaxZoom = c.MinZoom
		if def.MaxZoom > c.MinZoom {
			c.MaxZoom = def.MaxZoom
		}
	}
	if c.ZoomStep <= 0 {
		c.ZoomStep = def.ZoomStep
	}
	if c.GapPx <= 0 {
		c.GapPx = def.GapPx
	}
	if c.DragThreshold <= 0 {
		c.DragThreshold = def.DragThreshold
	}
	if c.InertiaFriction <= 0 || c.InertiaFriction >= 1 {
		c.InertiaFriction = def.InertiaFriction
	}
	if c.InertiaMinV <= 0 {
		c.InertiaMinV = def.InertiaMinV
	}
	if c.InertiaTimerMs < 1 {
		c.InertiaTimerMs = def.InertiaTimerMs
	}
	if c.Timezone == "" {
		c.Timezone = def.Timezone
	}
	return nil
}

// Load reads a configuration file. A missing file is not an error: the
// defaults are written out so the user has something to edit, matching the
// launcher's first-run behavior.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		cfg := Default()
		if saveErr := Save(path, cfg); saveErr != nil {
			return cfg, fmt.Errorf("write default config %s: %w", path, saveErr)
		}
		return cfg, nil
	}

	var cfg Config
	if err := sonic.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes a configuration file, creating parent directories as needed.
func Save(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	data, err := sonic.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
