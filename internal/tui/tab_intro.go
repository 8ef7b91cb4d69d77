package tui

import (
	"fmt"
	"strings"

	"github.com/threeasure/fomodash/internal/cli"
	"github.com/threeasure/fomodash/internal/model"
	"github.com/threeasure/fomodash/internal/tui/components"
	"github.com/threeasure/fomodash/internal/tui/theme"
)

func (a App) renderIntroTab(cw int) string {
	t := theme.Active
	stats := a.overview
	var b strings.Builder

	// Row 1: headline metric cards
	ratioStr := "n/a"
	if stats.MeanExpenseRatio != nil {
		ratioStr = cli.FormatPercent(*stats.MeanExpenseRatio)
	}
	spendStr := "n/a"
	if stats.MedianFomoSpend != nil {
		spendStr = cli.FormatRupiah(*stats.MedianFomoSpend)
	}
	facultyStr := "n/a"
	facultyCaption := ""
	if stats.TopFaculty != "" {
		facultyStr = truncStr(stats.TopFaculty, 24)
		facultyCaption = fmt.Sprintf("%d respondents", stats.TopFacultyCount)
	}

	cards := []struct{ Label, Value, Caption string }{
		{"Respondents", cli.FormatNumber(int64(stats.Respondents)), responseWindow(stats)},
		{"Largest faculty", facultyStr, facultyCaption},
		{"Mean FOMO ratio", ratioStr, "of monthly allowance"},
		{"Median FOMO spend", spendStr, "per month"},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: daily response volume
	if len(a.daily) > 0 {
		vals := make([]float64, len(a.daily))
		labels := make([]string, len(a.daily))
		for i, d := range a.daily {
			vals[i] = float64(d.Count)
			labels[i] = d.Date.Format("02")
		}
		b.WriteString(components.ContentCard(
			"Responses per day",
			components.BarChart(vals, labels, t.Blue, components.CardInnerWidth(cw), 8),
			cw,
		))
		b.WriteString("\n")
	}

	// Row 3: respondents by faculty
	if a.dataset.Features.Has(model.FeatureFaculty) && len(a.facultyCounts) > 0 {
		b.WriteString(components.ContentCard(
			"Respondents by faculty",
			components.HBarList(a.facultyCounts, components.CardInnerWidth(cw), t.Accent),
			cw,
		))
	}

	return b.String()
}

func responseWindow(stats model.OverviewStats) string {
	if stats.FirstResponse == nil || stats.LastResponse == nil {
		return ""
	}
	return cli.FormatDate(*stats.FirstResponse) + " .. " + cli.FormatDate(*stats.LastResponse)
}
