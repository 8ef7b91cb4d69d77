package cmd

import (
	"fmt"

	"github.com/threeasure/fomodash/internal/cli"
	"github.com/threeasure/fomodash/internal/pipeline"

	"github.com/spf13/cobra"
)

var facultyCmd = &cobra.Command{
	Use:   "faculty",
	Short: "Respondents and spending by faculty",
	RunE:  runFaculty,
}

func init() {
	rootCmd.AddCommand(facultyCmd)
}

func runFaculty(_ *cobra.Command, _ []string) error {
	ds, err := loadData()
	if err != nil {
		return err
	}
	recs := applyFilters(ds)

	counts := pipeline.CountBy(recs, pipeline.ByFaculty)
	if len(counts) == 0 {
		fmt.Println("\n  No faculty data in the selected responses.")
		return nil
	}

	meanRatio := pipeline.MeanBy(recs, pipeline.ByFaculty, pipeline.ValExpenseRatio)
	meanSpend := pipeline.MeanBy(recs, pipeline.ByFaculty, pipeline.ValFomoSpend)

	ratioByFac := make(map[string]float64, len(meanRatio))
	for _, g := range meanRatio {
		ratioByFac[g.Label] = g.Mean
	}
	spendByFac := make(map[string]float64, len(meanSpend))
	for _, g := range meanSpend {
		spendByFac[g.Label] = g.Mean
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("FACULTY BREAKDOWN"))
	fmt.Println()

	rows := make([][]string, 0, len(counts))
	for _, g := range counts {
		ratio := "-"
		if v, ok := ratioByFac[g.Label]; ok {
			ratio = cli.FormatPercent(v)
		}
		spend := "-"
		if v, ok := spendByFac[g.Label]; ok {
			spend = cli.FormatRupiah(v)
		}
		rows = append(rows, []string{g.Label, cli.FormatNumber(int64(g.Count)), ratio, spend})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Faculty", "Respondents", "Mean ratio", "Mean spend"},
		Rows:    rows,
	}))

	// Top programs across the selection
	progs := pipeline.CountBy(recs, pipeline.ByProgram)
	if len(progs) > 0 {
		fmt.Println()
		fmt.Println(cli.RenderNote("Top study programs"))
		shown := pipeline.TopCounts(progs, 10)
		max := 0
		labelW := 0
		for _, g := range shown {
			if g.Count > max {
				max = g.Count
			}
			if len(g.Label) > labelW {
				labelW = len(g.Label)
			}
		}
		for _, g := range shown {
			fmt.Println(cli.RenderHorizontalBar(g.Label, float64(g.Count), float64(max), labelW, 40))
		}
	}

	return nil
}
