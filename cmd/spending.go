package cmd

import (
	"fmt"

	"github.com/threeasure/fomodash/internal/cli"
	"github.com/threeasure/fomodash/internal/pipeline"

	"github.com/spf13/cobra"
)

var spendingCmd = &cobra.Command{
	Use:   "spending",
	Short: "FOMO spending relative to allowance",
	RunE:  runSpending,
}

func init() {
	rootCmd.AddCommand(spendingCmd)
}

func runSpending(_ *cobra.Command, _ []string) error {
	ds, err := loadData()
	if err != nil {
		return err
	}
	recs := applyFilters(ds)
	if len(recs) == 0 {
		fmt.Println("\n  No responses match the selected filters.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("FOMO SPENDING"))
	fmt.Println()

	if s, ok := pipeline.Summarize(recs, pipeline.ValExpenseRatio); ok {
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Spending as share of allowance",
			Headers: []string{"Stat", "Value"},
			Rows: [][]string{
				{"Answered", cli.FormatNumber(int64(s.Count))},
				{"Mean", cli.FormatPercent(s.Mean)},
				{"Median", cli.FormatPercent(s.Median)},
				{"Min", cli.FormatPercent(s.Min)},
				{"Max", cli.FormatPercent(s.Max)},
			},
		}))
		fmt.Println()
	}

	buckets := pipeline.CountBy(recs, pipeline.ByRatioBucket)
	if len(buckets) > 0 {
		byLabel := make(map[string]int, len(buckets))
		total := 0
		for _, g := range buckets {
			byLabel[g.Label] = g.Count
			total += g.Count
		}
		rows := make([][]string, 0, len(pipeline.RatioBucketOrder))
		for _, l := range pipeline.RatioBucketOrder {
			n, ok := byLabel[l]
			if !ok {
				continue
			}
			rows = append(rows, []string{l, cli.FormatNumber(int64(n)),
				cli.FormatPercent(float64(n) / float64(total))})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Spending buckets",
			Headers: []string{"Bucket", "Respondents", "Share"},
			Rows:    rows,
		}))
		fmt.Println()
	}

	spendByFomo := pipeline.MeanBy(recs, pipeline.ByFomoCategory, pipeline.ValFomoSpend)
	if len(spendByFomo) > 0 {
		rows := make([][]string, 0, len(spendByFomo))
		for _, g := range spendByFomo {
			rows = append(rows, []string{g.Label, cli.FormatRupiah(g.Mean), cli.FormatNumber(int64(g.Count))})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Mean FOMO spend per category",
			Headers: []string{"Category", "Mean spend", "n"},
			Rows:    rows,
		}))
		fmt.Println()
	}

	if s, ok := pipeline.Summarize(recs, pipeline.ValAllowance); ok {
		spend, spendOK := pipeline.Summarize(recs, pipeline.ValFomoSpend)
		rows := [][]string{
			{"Median allowance", cli.FormatRupiah(s.Median)},
		}
		if spendOK {
			rows = append(rows,
				[]string{"Median FOMO spend", cli.FormatRupiah(spend.Median)},
				[]string{"Mean FOMO spend", cli.FormatRupiah(spend.Mean)},
			)
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title: "Monthly amounts",
			Rows:  rows,
		}))
	}

	return nil
}
