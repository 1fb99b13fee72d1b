package timeline

import (
	"sort"

	"github.com/penwyp/go-window-recorder/internal/core/model"
	"github.com/penwyp/go-window-recorder/internal/util"
)

// BuildDayTracks groups events into one track per calendar day, ascending.
// Events inside each track are ordered by timestamp.
func BuildDayTracks(events []model.CaptureEvent, cfg TrackConfig) []*DayTrack {
	if len(events) == 0 {
		return nil
	}

	tp := util.GetTimeProvider()
	byDay := make(map[int64][]model.CaptureEvent)
	for _, ev := range events {
		day := tp.DayOf(ev.Timestamp)
		byDay[day.Unix()] = append(byDay[day.Unix()], ev)
	}

	days := make([]int64, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	tracks := make([]*DayTrack, 0, len(days))
	for _, day := range days {
		items := byDay[day]
		tracks = append(tracks, NewDayTrack(tp.DayOf(items[0].Timestamp), items, cfg))
	}
	return tracks
}
