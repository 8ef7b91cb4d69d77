package cmd

import (
	"fmt"

	"github.com/threeasure/fomodash/internal/cli"
	"github.com/threeasure/fomodash/internal/model"
	"github.com/threeasure/fomodash/internal/pipeline"

	"github.com/spf13/cobra"
)

var wellbeingCmd = &cobra.Command{
	Use:   "wellbeing",
	Short: "Stress and psychological indicators",
	RunE:  runWellbeing,
}

func init() {
	rootCmd.AddCommand(wellbeingCmd)
}

func runWellbeing(_ *cobra.Command, _ []string) error {
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
	fmt.Println(cli.RenderTitle("WELLBEING"))
	fmt.Println()

	stress := pipeline.MeanBy(recs, pipeline.ByFomoCategory, pipeline.ValStressIndex)
	if len(stress) > 0 {
		rows := make([][]string, 0, len(stress))
		for _, g := range stress {
			rows = append(rows, []string{g.Label, cli.FormatScore(g.Mean), cli.FormatNumber(int64(g.Count))})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Mean stress index by FOMO category (1-5)",
			Headers: []string{"Category", "Stress", "n"},
			Rows:    rows,
		}))
		fmt.Println()
	}

	ct := pipeline.CrossTabulate(recs,
		pipeline.ByFomoCategory, pipeline.ByFinanceBucket,
		pipeline.FomoCategoryOrder, pipeline.FinanceBucketOrder)
	if len(ct.RowLabels) > 0 {
		headers := append([]string{"FOMO \\ Finance"}, ct.ColLabels...)
		headers = append(headers, "n")
		rows := make([][]string, 0, len(ct.RowLabels))
		for i, r := range ct.RowLabels {
			row := []string{r}
			for j := range ct.ColLabels {
				row = append(row, fmt.Sprintf("%.1f%%", ct.Cells[i][j]))
			}
			row = append(row, cli.FormatNumber(int64(ct.RowCounts[i])))
			rows = append(rows, row)
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "FOMO frequency vs financial skill (% within row)",
			Headers: headers,
			Rows:    rows,
		}))
		fmt.Println()
	}

	stressByFinance := pipeline.MeanBy(recs, pipeline.ByFinanceBucket, pipeline.ValStressIndex)
	if len(stressByFinance) > 0 {
		byBucket := make(map[string]model.GroupMean, len(stressByFinance))
		for _, g := range stressByFinance {
			byBucket[g.Label] = g
		}
		rows := make([][]string, 0, len(pipeline.FinanceBucketOrder))
		for _, l := range pipeline.FinanceBucketOrder {
			g, ok := byBucket[l]
			if !ok {
				continue
			}
			rows = append(rows, []string{l, cli.FormatScore(g.Mean), cli.FormatNumber(int64(g.Count))})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Mean stress index by financial skill",
			Headers: []string{"Finance bucket", "Stress", "n"},
			Rows:    rows,
		}))
		fmt.Println()
	}

	if s, ok := pipeline.Summarize(recs, pipeline.ValPsychScore); ok {
		fmt.Print(cli.RenderTable(cli.Table{
			Title: "Psychological score",
			Rows: [][]string{
				{"Mean", cli.FormatScore(s.Mean)},
				{"Median", cli.FormatScore(s.Median)},
				{"Answered", cli.FormatNumber(int64(s.Count))},
			},
		}))
		fmt.Println()

		if bins := pipeline.Histogram(recs, pipeline.ValPsychScore, 5); len(bins) > 0 {
			fmt.Println(cli.RenderNote("Score distribution"))
			max := 0
			labelW := 0
			for _, b := range bins {
				if b.Count > max {
					max = b.Count
				}
				if len(b.Label) > labelW {
					labelW = len(b.Label)
				}
			}
			for _, b := range bins {
				fmt.Println(cli.RenderHorizontalBar(b.Label, float64(b.Count), float64(max), labelW, 40))
			}
			fmt.Println()
		}
	}

	support := pipeline.CountBy(recs, pipeline.BySupportNeed)
	if len(support) > 0 {
		total := 0
		for _, g := range support {
			total += g.Count
		}
		rows := make([][]string, 0, len(support))
		for _, g := range support {
			rows = append(rows, []string{g.Label, cli.FormatNumber(int64(g.Count)),
				cli.FormatPercent(float64(g.Count) / float64(total))})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Would use emotional/psychological support",
			Headers: []string{"Answer", "Respondents", "Share"},
			Rows:    rows,
		}))
	}

	return nil
}
