package cmd

import (
	"fmt"

	"github.com/threeasure/fomodash/internal/cli"
	"github.com/threeasure/fomodash/internal/pipeline"

	"github.com/spf13/cobra"
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Headline survey metrics",
	RunE:  runOverview,
}

func init() {
	rootCmd.AddCommand(overviewCmd)
}

func runOverview(_ *cobra.Command, _ []string) error {
	ds, err := loadData()
	if err != nil {
		return err
	}
	recs := applyFilters(ds)
	if len(recs) == 0 {
		fmt.Println("\n  No responses match the selected filters.")
		return nil
	}

	stats := pipeline.Overview(recs)

	fmt.Println()
	fmt.Println(cli.RenderTitle("STUDENT FOMO SURVEY"))
	fmt.Println()

	rows := [][]string{
		{"Respondents", cli.FormatNumber(int64(stats.Respondents))},
	}
	if stats.TopFaculty != "" {
		rows = append(rows, []string{"Largest faculty",
			fmt.Sprintf("%s (%d)", stats.TopFaculty, stats.TopFacultyCount)})
	}
	if stats.MeanExpenseRatio != nil {
		rows = append(rows, []string{"Mean FOMO spending ratio", cli.FormatPercent(*stats.MeanExpenseRatio)})
	}
	if stats.MedianFomoSpend != nil {
		rows = append(rows, []string{"Median FOMO spend", cli.FormatRupiah(*stats.MedianFomoSpend)})
	}
	if stats.FirstResponse != nil && stats.LastResponse != nil {
		rows = append(rows, []string{"Response window",
			cli.FormatDate(*stats.FirstResponse) + " to " + cli.FormatDate(*stats.LastResponse)})
	}
	fmt.Print(cli.RenderTable(cli.Table{Rows: rows}))

	counts := pipeline.CountBy(recs, pipeline.ByFomoCategory)
	if len(counts) > 0 {
		fmt.Println()
		tblRows := make([][]string, 0, len(counts))
		for _, g := range counts {
			share := float64(g.Count) / float64(len(recs))
			tblRows = append(tblRows, []string{g.Label, cli.FormatNumber(int64(g.Count)), cli.FormatPercent(share)})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "FOMO category",
			Headers: []string{"Category", "Respondents", "Share"},
			Rows:    tblRows,
		}))
	}

	if ds.CellErrors > 0 {
		fmt.Println(cli.RenderWarning(fmt.Sprintf("%d unreadable cells were treated as missing", ds.CellErrors)))
	}

	return nil
}
