package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/threeasure/fomodash/internal/model"
	"github.com/threeasure/fomodash/internal/pipeline"
)

const (
	sheetResponses = "Responses"
	sheetSummary   = "Summary"
	sheetWeekly    = "Weekly"
)

// WriteWorkbook writes the prepared records and their summary aggregates to
// an xlsx workbook at path.
func WriteWorkbook(path string, recs []model.Record, features model.FeatureSet) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	f.SetSheetName("Sheet1", sheetResponses)
	if err := writeResponses(f, recs); err != nil {
		return fmt.Errorf("writing responses sheet: %w", err)
	}

	if _, err := f.NewSheet(sheetSummary); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}
	if err := writeSummary(f, recs, features); err != nil {
		return fmt.Errorf("writing summary sheet: %w", err)
	}

	if features.Has(model.FeatureTimestamp) {
		if _, err := f.NewSheet(sheetWeekly); err != nil {
			return fmt.Errorf("creating weekly sheet: %w", err)
		}
		if err := writeWeekly(f, recs); err != nil {
			return fmt.Errorf("writing weekly sheet: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func writeResponses(f *excelize.File, recs []model.Record) error {
	headers := []string{
		"Timestamp", "Faculty", "Program", "Allowance (Rp)", "FOMO Spend (Rp)",
		"Expense Ratio", "Remaining (Rp)", "Ratio Bucket", "Finance Skill",
		"Finance Bucket", "FOMO Category", "Relative FOMO", "Stress Index",
		"Psych Score", "Support Need",
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetResponses, cell, h); err != nil {
			return err
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheetResponses, col, col, 16); err != nil {
			return err
		}
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheetResponses, "A1", last, style); err != nil {
		return err
	}

	for i, r := range recs {
		row := i + 2
		vals := []any{
			tsCell(r), r.Faculty, r.Program,
			floatCell(r.Allowance), floatCell(r.FomoSpend),
			floatCell(r.ExpenseRatio), floatCell(r.RemainingAllowance),
			r.RatioBucket, floatCell(r.FinanceSkill), r.FinanceBucket,
			r.FomoCategory, floatCell(r.RelativeFomoScore),
			floatCell(r.StressIndex), floatCell(r.PsychScore), r.SupportNeed,
		}
		for j, v := range vals {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetResponses, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeSummary(f *excelize.File, recs []model.Record, features model.FeatureSet) error {
	row := 1
	set := func(col int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheetSummary, cell, v)
	}

	stats := pipeline.Overview(recs)
	if err := set(1, "Respondents"); err != nil {
		return err
	}
	if err := set(2, stats.Respondents); err != nil {
		return err
	}
	row++
	if stats.TopFaculty != "" {
		if err := set(1, "Largest faculty"); err != nil {
			return err
		}
		if err := set(2, fmt.Sprintf("%s (%d)", stats.TopFaculty, stats.TopFacultyCount)); err != nil {
			return err
		}
		row++
	}
	if stats.MeanExpenseRatio != nil {
		if err := set(1, "Mean expense ratio"); err != nil {
			return err
		}
		if err := set(2, *stats.MeanExpenseRatio); err != nil {
			return err
		}
		row++
	}
	if stats.MedianFomoSpend != nil {
		if err := set(1, "Median FOMO spend (Rp)"); err != nil {
			return err
		}
		if err := set(2, *stats.MedianFomoSpend); err != nil {
			return err
		}
		row++
	}
	row++

	blocks := []struct {
		title   string
		feature model.Feature
		key     pipeline.Selector
	}{
		{"Respondents by faculty", model.FeatureFaculty, pipeline.ByFaculty},
		{"FOMO category", model.FeatureFomoCategory, pipeline.ByFomoCategory},
		{"Financial management", model.FeatureFinanceBucket, pipeline.ByFinanceBucket},
		{"Expense ratio bucket", model.FeatureExpenseRatio, pipeline.ByRatioBucket},
	}
	for _, blk := range blocks {
		if !features.Has(blk.feature) {
			continue
		}
		counts := pipeline.CountBy(recs, blk.key)
		if len(counts) == 0 {
			continue
		}
		if err := set(1, blk.title); err != nil {
			return err
		}
		row++
		for _, gc := range counts {
			if err := set(1, gc.Label); err != nil {
				return err
			}
			if err := set(2, gc.Count); err != nil {
				return err
			}
			row++
		}
		row++
	}

	return f.SetColWidth(sheetSummary, "A", "A", 32)
}

func writeWeekly(f *excelize.File, recs []model.Record) error {
	if err := f.SetCellValue(sheetWeekly, "A1", "Week"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheetWeekly, "B1", "Responses"); err != nil {
		return err
	}
	for i, wc := range pipeline.CountByWeek(recs) {
		row := i + 2
		if err := f.SetCellValue(sheetWeekly, fmt.Sprintf("A%d", row), wc.Week); err != nil {
			return err
		}
		if err := f.SetCellValue(sheetWeekly, fmt.Sprintf("B%d", row), wc.Count); err != nil {
			return err
		}
	}
	return nil
}

func tsCell(r model.Record) any {
	if r.Timestamp == nil {
		return nil
	}
	return r.Timestamp.Format("2006-01-02 15:04:05")
}

func floatCell(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
