package pipeline

import (
	"fmt"
	"testing"
	"time"

	"github.com/threeasure/fomodash/internal/model"
)

func tsRecord(t time.Time) model.Record {
	r := model.Record{}
	r.Timestamp = &t
	h := t.Hour()
	r.HourOfDay = &h
	year, week := t.ISOWeek()
	r.WeekBucket = fmt.Sprintf("%04d-W%02d", year, week)
	return r
}

func TestCountByDay_GapFilled(t *testing.T) {
	day1 := time.Date(2024, 11, 1, 10, 0, 0, 0, time.UTC)
	day3 := time.Date(2024, 11, 3, 12, 0, 0, 0, time.UTC)
	recs := []model.Record{tsRecord(day1), tsRecord(day1), tsRecord(day3)}

	got := CountByDay(recs)
	if len(got) != 3 {
		t.Fatalf("got %d days, want 3 (gap day included)", len(got))
	}
	if got[0].Count != 2 || got[1].Count != 0 || got[2].Count != 1 {
		t.Errorf("counts = %d,%d,%d want 2,0,1", got[0].Count, got[1].Count, got[2].Count)
	}
	if got[2].Cumulative != 3 {
		t.Errorf("final cumulative = %d, want 3", got[2].Cumulative)
	}
}

func TestCountByDay_NoTimestamps(t *testing.T) {
	if got := CountByDay([]model.Record{{}, {}}); got != nil {
		t.Errorf("expected nil for untimestamped records, got %v", got)
	}
}

func TestCountByWeek_Sorted(t *testing.T) {
	recs := []model.Record{
		tsRecord(time.Date(2024, 11, 12, 0, 0, 0, 0, time.UTC)),
		tsRecord(time.Date(2024, 11, 4, 0, 0, 0, 0, time.UTC)),
		tsRecord(time.Date(2024, 11, 5, 0, 0, 0, 0, time.UTC)),
	}
	got := CountByWeek(recs)
	if len(got) != 2 {
		t.Fatalf("got %d weeks, want 2", len(got))
	}
	if got[0].Week >= got[1].Week {
		t.Errorf("weeks not sorted: %v", got)
	}
	if got[0].Count != 2 {
		t.Errorf("first week count = %d, want 2", got[0].Count)
	}
}

func TestHeatmapByDayHour(t *testing.T) {
	// 2024-11-04 is a Monday.
	monday9 := time.Date(2024, 11, 4, 9, 0, 0, 0, time.UTC)
	sunday23 := time.Date(2024, 11, 3, 23, 0, 0, 0, time.UTC)
	recs := []model.Record{tsRecord(monday9), tsRecord(monday9), tsRecord(sunday23), {}}

	hm := HeatmapByDayHour(recs)
	if hm.Total != 3 {
		t.Errorf("Total = %d, want 3 (untimestamped excluded)", hm.Total)
	}
	if hm.Counts[0][9] != 2 {
		t.Errorf("Monday 09h = %d, want 2", hm.Counts[0][9])
	}
	if hm.Counts[6][23] != 1 {
		t.Errorf("Sunday 23h = %d, want 1", hm.Counts[6][23])
	}
}
