package commands

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-window-recorder/internal/application/recorder"
	"github.com/penwyp/go-window-recorder/internal/config"
	"github.com/penwyp/go-window-recorder/internal/core/capture"
	"github.com/penwyp/go-window-recorder/internal/core/store"
	"github.com/penwyp/go-window-recorder/internal/util"
)

var (
	// Logging related
	debug bool

	// Configuration
	configFile string

	// Capture overrides
	intervalSeconds int
	outputDir       string
	dbFile          string

	rootCmd = &cobra.Command{
		Use:   "go-window-recorder",
		Short: "Periodic screen and window recorder",
		Long: `go-window-recorder captures a full-screen screenshot on a fixed interval,
records every visible top-level window into an embedded database, and serves
the data to a zoomable timeline viewer.

Examples:
  go-window-recorder                          # Record with settings from the config file
  go-window-recorder --interval 30            # Capture every 30 seconds
  go-window-recorder view --date 2024-01-01   # Render one day's timeline
  go-window-recorder cleanup --days 3         # Drop events older than 3 days`,
		RunE: runRecord,
	}
)

const (
	defaultLogFile    = "~/.go-window-recorder/logs/app.log"
	defaultConfigFile = "~/.go-window-recorder/recorder_config.json"
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", defaultConfigFile,
		"Configuration file path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")

	rootCmd.Flags().IntVarP(&intervalSeconds, "interval", "i", 0,
		"Capture interval in seconds (overrides config)")
	rootCmd.Flags().StringVar(&outputDir, "output-dir", "",
		"Screenshot output directory (overrides config)")
	rootCmd.Flags().StringVar(&dbFile, "db", "",
		"Event database file (overrides config)")
}

func runRecord(cmd *cobra.Command, args []string) error {
	cfg, err := initRuntime()
	if err != nil {
		return err
	}

	st := store.New(cfg.DBFile)
	if err := st.Init(); err != nil {
		return fmt.Errorf("failed to initialize event store: %w", err)
	}

	capturer, err := capture.NewPlatformCapturer()
	if err != nil {
		return err
	}
	enumerator, err := capture.NewPlatformEnumerator()
	if err != nil {
		return err
	}

	newController := func(c config.Config) (recorder.CaptureController, error) {
		return capture.NewScheduler(capture.SchedulerConfig{
			Interval:   time.Duration(c.IntervalSeconds) * time.Second,
			OutputDir:  c.ScreenshotsDir,
			Capturer:   capturer,
			Enumerator: enumerator,
			Exclude:    capture.SelfExclusion(capture.OwnPID()),
			Sink:       st,
			Retention: capture.RetentionPolicy{
				Days:          c.DaysToKeep,
				CheckInterval: time.Duration(c.RetentionCheckSeconds) * time.Second,
				Cleanup: func(cutoff time.Time) (int, int, error) {
					return st.CleanupOlderThan(cutoff, c.ScreenshotsDir)
				},
			},
		}), nil
	}

	var source recorder.ConfigSource
	if watcher, err := config.NewWatcher(expandPath(configFile)); err != nil {
		util.LogWarnf("config hot reload disabled: %v", err)
	} else {
		source = watcher
	}

	orch := recorder.NewOrchestrator(cfg, st, newController, source, recorder.Callbacks{
		OnLogLine: func(line string) {
			fmt.Println(line)
		},
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return orch.Run(ctx)
}

// initRuntime loads logging, timezone and configuration shared by every
// command.
func initRuntime() (config.Config, error) {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	logFile := expandPath(defaultLogFile)
	ensureDir(filepath.Dir(logFile))
	util.InitLogger(logLevel, logFile, debug)

	cfg, err := config.Load(expandPath(configFile))
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	if intervalSeconds > 0 {
		cfg.IntervalSeconds = intervalSeconds
	}
	if outputDir != "" {
		cfg.ScreenshotsDir = expandPath(outputDir)
	}
	if dbFile != "" {
		cfg.DBFile = expandPath(dbFile)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	if err := util.InitializeTimeProvider(cfg.Timezone); err != nil {
		return config.Config{}, fmt.Errorf("failed to initialize timezone: %w", err)
	}

	return cfg, nil
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
