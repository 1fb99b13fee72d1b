package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-window-recorder/internal/core/store"
	"github.com/penwyp/go-window-recorder/internal/core/timeline"
	"github.com/penwyp/go-window-recorder/internal/presentation/display"
	"github.com/penwyp/go-window-recorder/internal/presentation/render"
	"github.com/penwyp/go-window-recorder/internal/util"
)

var (
	viewDate   string
	viewFilter string
	viewZoom   float64
	viewPan    float64
	viewWidth  float64
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Render a day's capture timeline in the terminal",
	Long: `Loads one calendar day of capture events, computes the timeline view at
the requested zoom and pan, and prints a text rendering of the track.

Without --date, the most recent recorded day is shown.`,
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)

	viewCmd.Flags().StringVar(&viewDate, "date", "",
		"Day to render (2006-01-02, default: most recent)")
	viewCmd.Flags().StringVarP(&viewFilter, "filter", "f", "",
		"Only include events whose window title contains this keyword")
	viewCmd.Flags().Float64Var(&viewZoom, "zoom", 0,
		"Zoom factor (1.0 = whole day)")
	viewCmd.Flags().Float64Var(&viewPan, "pan", 0,
		"Pan offset in seconds from the day center")
	viewCmd.Flags().Float64Var(&viewWidth, "width", 800,
		"Track width in pixels")
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := initRuntime()
	if err != nil {
		return err
	}

	st := store.New(cfg.DBFile)
	events := st.FetchAll(viewFilter)
	if len(events) == 0 {
		fmt.Println("no records")
		return nil
	}

	trackCfg := timeline.TrackConfig{
		Width:       viewWidth,
		LeftMargin:  40,
		RightMargin: 40,
		MinZoom:     cfg.MinZoom,
		MaxZoom:     cfg.MaxZoom,
		TickTarget:  cfg.TickTarget,
	}
	tracks := timeline.BuildDayTracks(events, trackCfg)

	track := tracks[len(tracks)-1]
	if viewDate != "" {
		track = nil
		for _, t := range tracks {
			if t.Day.Format(util.DayLayout) == viewDate {
				track = t
				break
			}
		}
		if track == nil {
			fmt.Println("no records")
			return nil
		}
	}

	if viewZoom > 0 {
		track.SetZoom(viewZoom)
	}
	if viewPan != 0 {
		track.SetPanOffset(viewPan)
	}

	opts := render.Options{
		GapThresholdPx:    cfg.GapPx,
		ThumbWidth:        float64(cfg.ThumbWidth),
		ThumbHeight:       float64(cfg.ThumbHeight),
		ShowCenterPreview: true,
		ScreenshotsDir:    cfg.ScreenshotsDir,
	}
	cmds := render.Render(track, opts)

	adapter := display.NewTerminalAdapter()
	fmt.Printf("%s  (%d events)\n", track.Day.Format(util.DayLayout), len(track.Items))
	fmt.Print(adapter.Execute(cmds, track.Width()))
	return nil
}
