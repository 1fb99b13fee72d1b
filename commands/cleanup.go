package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-window-recorder/internal/core/store"
)

var cleanupDays int

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete events and screenshots older than the retention horizon",
	Long: `Runs one retention sweep: deletes every event older than the horizon and
removes screenshot files that no surviving event references.`,
	RunE: runCleanup,
}

func init() {
	rootCmd.AddCommand(cleanupCmd)

	cleanupCmd.Flags().IntVar(&cleanupDays, "days", 0,
		"Retention horizon in days (overrides config days_to_keep)")
}

func runCleanup(cmd *cobra.Command, args []string) error {
	cfg, err := initRuntime()
	if err != nil {
		return err
	}

	days := cfg.DaysToKeep
	if cleanupDays > 0 {
		days = cleanupDays
	}

	st := store.New(cfg.DBFile)
	if err := st.Init(); err != nil {
		return fmt.Errorf("failed to open event store: %w", err)
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	rows, files, err := st.CleanupOlderThan(cutoff, cfg.ScreenshotsDir)
	if err != nil {
		return fmt.Errorf("retention sweep failed: %w", err)
	}

	fmt.Printf("Removed %d events and %d screenshots older than %d days\n", rows, files, days)
	return nil
}
