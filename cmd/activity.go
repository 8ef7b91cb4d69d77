package cmd

import (
	"fmt"
	"strings"

	"github.com/threeasure/fomodash/internal/cli"
	"github.com/threeasure/fomodash/internal/pipeline"

	"github.com/spf13/cobra"
)

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "When responses were submitted",
	RunE:  runActivity,
}

func init() {
	rootCmd.AddCommand(activityCmd)
}

func runActivity(_ *cobra.Command, _ []string) error {
	ds, err := loadData()
	if err != nil {
		return err
	}
	recs := applyFilters(ds)

	daily := pipeline.CountByDay(recs)
	if len(daily) == 0 {
		fmt.Println("\n  No timestamped responses in the selection.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("RESPONSE ACTIVITY"))
	fmt.Println()

	vals := make([]float64, len(daily))
	for i, d := range daily {
		vals[i] = float64(d.Count)
	}
	fmt.Printf("  %s to %s\n", cli.FormatDate(daily[0].Date), cli.FormatDate(daily[len(daily)-1].Date))
	fmt.Println("  " + cli.RenderSparkline(vals))
	fmt.Println()

	weeks := pipeline.CountByWeek(recs)
	if len(weeks) > 0 {
		rows := make([][]string, 0, len(weeks))
		cumulative := 0
		for _, w := range weeks {
			cumulative += w.Count
			rows = append(rows, []string{w.Week, cli.FormatNumber(int64(w.Count)), cli.FormatNumber(int64(cumulative))})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Responses per week",
			Headers: []string{"Week", "Responses", "Cumulative"},
			Rows:    rows,
		}))
		fmt.Println()
	}

	hm := pipeline.HeatmapByDayHour(recs)
	if hm.Total > 0 {
		fmt.Println(cli.RenderNote("Responses by weekday"))
		dayTotals := make([]int, 7)
		max := 0
		for row := range hm.Counts {
			for _, n := range hm.Counts[row] {
				dayTotals[row] += n
			}
			if dayTotals[row] > max {
				max = dayTotals[row]
			}
		}
		for row, total := range dayTotals {
			fmt.Println(cli.RenderHorizontalBar(cli.FormatDayOfWeek(row), float64(total), float64(max), 4, 40) +
				"  " + strings.TrimSpace(cli.FormatNumber(int64(total))))
		}
	}

	return nil
}
