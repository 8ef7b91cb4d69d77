package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/threeasure/fomodash/internal/export"
	"github.com/threeasure/fomodash/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagExportDir    string
	flagExportCharts bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write an xlsx workbook and PNG charts",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportDir, "out", "o", ".", "Output directory")
	exportCmd.Flags().BoolVar(&flagExportCharts, "charts", true, "Also write PNG charts")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	ds, err := loadData()
	if err != nil {
		return err
	}
	recs := applyFilters(ds)
	if len(recs) == 0 {
		return fmt.Errorf("no responses match the selected filters")
	}

	if err := os.MkdirAll(flagExportDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	wbPath := filepath.Join(flagExportDir, "fomo_survey.xlsx")
	if err := export.WriteWorkbook(wbPath, recs, ds.Features); err != nil {
		return err
	}
	fmt.Printf("  wrote %s\n", wbPath)

	if !flagExportCharts {
		return nil
	}

	if counts := pipeline.CountBy(recs, pipeline.ByFaculty); len(counts) > 0 {
		p := filepath.Join(flagExportDir, "faculty_counts.png")
		if err := export.SaveBarChart(p, "Respondents by faculty", "Respondents", counts); err != nil {
			return err
		}
		fmt.Printf("  wrote %s\n", p)
	}

	points := pipeline.ScatterPoints(recs, pipeline.ValAllowance, pipeline.ValFomoSpend, pipeline.ByFomoCategory)
	if len(points) > 0 {
		p := filepath.Join(flagExportDir, "allowance_vs_spend.png")
		if err := export.SaveScatterChart(p, "Allowance vs FOMO spend", "Allowance (Rp)", "FOMO spend (Rp)", points); err != nil {
			return err
		}
		fmt.Printf("  wrote %s\n", p)
	}

	points = pipeline.ScatterPoints(recs, pipeline.ValExpenseRatio, pipeline.ValPsychScore, nil)
	if len(points) > 0 {
		p := filepath.Join(flagExportDir, "ratio_vs_psych.png")
		if err := export.SaveScatterChart(p, "FOMO spending ratio vs psychological score", "Expense ratio", "Psych score", points); err != nil {
			return err
		}
		fmt.Printf("  wrote %s\n", p)
	}

	if daily := pipeline.CountByDay(recs); len(daily) > 0 {
		p := filepath.Join(flagExportDir, "responses_per_day.png")
		if err := export.SaveDailyChart(p, "Responses per day", daily); err != nil {
			return err
		}
		fmt.Printf("  wrote %s\n", p)
	}

	return nil
}
