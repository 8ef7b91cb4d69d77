package pipeline

import (
	"sort"
	"time"

	"github.com/threeasure/fomodash/internal/model"
)

// CountByDay counts responses per calendar day, oldest first, with gap days
// zero-filled so charts show quiet days, plus a running cumulative total.
// Records without a timestamp are excluded.
func CountByDay(recs []model.Record) []model.DailyCount {
	dayMap := make(map[string]int)
	var first, last time.Time

	for _, r := range recs {
		if r.Timestamp == nil {
			continue
		}
		day := r.Timestamp.Truncate(24 * time.Hour)
		dayMap[day.Format("2006-01-02")]++
		if first.IsZero() || day.Before(first) {
			first = day
		}
		if last.IsZero() || day.After(last) {
			last = day
		}
	}
	if len(dayMap) == 0 {
		return nil
	}

	var out []model.DailyCount
	cumulative := 0
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		n := dayMap[day.Format("2006-01-02")]
		cumulative += n
		out = append(out, model.DailyCount{Date: day, Count: n, Cumulative: cumulative})
	}
	return out
}

// CountByWeek counts responses per ISO week bucket, sorted chronologically
// (the "2006-W01" format sorts lexically).
func CountByWeek(recs []model.Record) []model.WeeklyCount {
	weeks := make(map[string]int)
	for _, r := range recs {
		if r.WeekBucket == "" {
			continue
		}
		weeks[r.WeekBucket]++
	}

	out := make([]model.WeeklyCount, 0, len(weeks))
	for w, n := range weeks {
		out = append(out, model.WeeklyCount{Week: w, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Week < out[j].Week })
	return out
}

// HeatmapByDayHour counts responses per weekday and hour of day.
// Rows run Monday..Sunday to match the survey's reporting convention.
func HeatmapByDayHour(recs []model.Record) model.ActivityHeatmap {
	var hm model.ActivityHeatmap
	for _, r := range recs {
		if r.Timestamp == nil || r.HourOfDay == nil {
			continue
		}
		// time.Weekday puts Sunday at 0; shift so Monday is row 0.
		row := (int(r.Timestamp.Weekday()) + 6) % 7
		hm.Counts[row][*r.HourOfDay]++
		hm.Total++
	}
	return hm
}
