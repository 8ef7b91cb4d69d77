package model

import "time"

// GroupCount holds a respondent count for one category label.
type GroupCount struct {
	Label string
	Count int
}

// GroupMean holds the mean of a numeric field within one category.
// Count is the number of records that had a defined value.
type GroupMean struct {
	Label string
	Count int
	Mean  float64
}

// CrossTab is a two-way, row-normalized percentage table. Cells[i][j] is the
// share (0-100) of row group i that falls into column group j; each row sums
// to 100 within float tolerance. RowCounts holds the raw row totals.
type CrossTab struct {
	RowLabels []string
	ColLabels []string
	Cells     [][]float64
	RowCounts []int
}

// DailyCount holds the responses received on one calendar day.
type DailyCount struct {
	Date       time.Time
	Count      int
	Cumulative int
}

// WeeklyCount holds the responses received in one ISO week.
type WeeklyCount struct {
	Week  string // "2025-W03"
	Count int
}

// ActivityHeatmap counts responses per weekday and hour of day.
// Rows are Monday..Sunday, columns hours 0-23.
type ActivityHeatmap struct {
	Counts [7][24]int
	Total  int
}

// WeekdayName returns the English name for a heatmap row index (0 = Monday).
func WeekdayName(row int) string {
	names := [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	if row < 0 || row >= len(names) {
		return "?"
	}
	return names[row]
}

// NumSummary holds basic distribution statistics for a numeric field.
type NumSummary struct {
	Count  int
	Mean   float64
	Median float64
	Min    float64
	Max    float64
}

// OverviewStats holds the headline metrics for the introduction view.
type OverviewStats struct {
	Respondents      int
	TopFaculty       string
	TopFacultyCount  int
	MeanExpenseRatio *float64
	MedianFomoSpend  *float64
	FirstResponse    *time.Time
	LastResponse     *time.Time
}

// ScatterPoint is one (x, y) observation with an optional category label,
// used for relationship views and chart export.
type ScatterPoint struct {
	X, Y     float64
	Category string
}
