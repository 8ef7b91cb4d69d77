package tui

import (
	"fmt"
	"strings"

	"github.com/threeasure/fomodash/internal/cli"
	"github.com/threeasure/fomodash/internal/model"
	"github.com/threeasure/fomodash/internal/pipeline"
	"github.com/threeasure/fomodash/internal/tui/components"
	"github.com/threeasure/fomodash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderAnalysisTab(cw int) string {
	t := theme.Active
	features := a.dataset.Features
	var b strings.Builder

	halves := components.LayoutRow(cw, 2)

	// Row 1: spending distribution + finance skill
	var left, right string
	if features.Has(model.FeatureExpenseRatio) && len(a.ratioCounts) > 0 {
		left = components.ContentCard(
			"FOMO spending share of allowance",
			components.HBarList(orderCounts(a.ratioCounts, pipeline.RatioBucketOrder), components.CardInnerWidth(halves[0]), t.Orange),
			halves[0],
		)
	}
	if features.Has(model.FeatureFinanceBucket) && len(a.financeCounts) > 0 {
		right = components.ContentCard(
			"Financial management skill",
			components.HBarList(orderCounts(a.financeCounts, pipeline.FinanceBucketOrder), components.CardInnerWidth(halves[1]), t.Green),
			halves[1],
		)
	}
	b.WriteString(a.joinHalves(left, right, cw))

	// Row 2: mean expense ratio by faculty (top 5)
	if len(a.ratioByFac) > 0 {
		top := pipeline.TopK(a.ratioByFac, 5)
		innerW := components.CardInnerWidth(cw)

		labelW := 0
		for _, g := range top {
			if len(g.Label) > labelW {
				labelW = len(g.Label)
			}
		}
		if labelW > innerW/2 {
			labelW = innerW / 2
		}
		barMax := innerW - labelW - 9
		if barMax < 1 {
			barMax = 1
		}
		maxMean := top[0].Mean

		nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
		barStyle := lipgloss.NewStyle().Foreground(t.Accent)
		pctStyle := lipgloss.NewStyle().Foreground(t.TextDim)

		var body strings.Builder
		for _, g := range top {
			barLen := 0
			if maxMean > 0 {
				barLen = int(g.Mean / maxMean * float64(barMax))
			}
			fmt.Fprintf(&body, "%s %s %s\n",
				nameStyle.Render(fmt.Sprintf("%-*s", labelW, truncStr(g.Label, labelW))),
				barStyle.Render(strings.Repeat("█", barLen)),
				pctStyle.Render(cli.FormatPercent(g.Mean)))
		}
		b.WriteString(components.ContentCard("Highest mean FOMO ratio by faculty", body.String(), cw))
		b.WriteString("\n")
	}

	// Row 3: FOMO frequency vs financial skill cross table
	if len(a.crossTab.RowLabels) > 0 {
		b.WriteString(components.ContentCard(
			"FOMO frequency vs financial skill (% within row)",
			renderCrossTab(a.crossTab),
			cw,
		))
		b.WriteString("\n")
	}

	// Row 4: stress index by FOMO category + response heatmap
	var stressCard, heatCard string
	if features.Has(model.FeatureStressIndex) && len(a.stressByFomo) > 0 {
		numStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
		valStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
		var body strings.Builder
		for _, g := range a.stressByFomo {
			fmt.Fprintf(&body, "%s %s  %s\n",
				numStyle.Render(fmt.Sprintf("%-10s", g.Label)),
				valStyle.Render(cli.FormatScore(g.Mean)),
				numStyle.Render(fmt.Sprintf("(n=%d)", g.Count)))
		}
		stressCard = components.ContentCard("Mean stress index by FOMO category", body.String(), halves[0])
	}
	if features.Has(model.FeatureTimestamp) && a.heatmap.Total > 0 {
		heatCard = components.ContentCard("Response activity (day × hour)",
			components.Heatmap(a.heatmap, components.CardInnerWidth(halves[1])), halves[1])
	}
	b.WriteString(a.joinHalves(stressCard, heatCard, cw))

	return b.String()
}

// joinHalves lays two cards side by side, stacking them in compact layouts.
func (a App) joinHalves(left, right string, cw int) string {
	var b strings.Builder
	if a.isCompactLayout() {
		if left != "" {
			b.WriteString(left)
			b.WriteString("\n")
		}
		if right != "" {
			b.WriteString(right)
			b.WriteString("\n")
		}
	} else if left != "" || right != "" {
		b.WriteString(components.CardRow([]string{left, right}))
		b.WriteString("\n")
	}
	return b.String()
}

// orderCounts reorders group counts to a canonical bucket order, dropping
// labels outside it.
func orderCounts(counts []model.GroupCount, order []string) []model.GroupCount {
	byLabel := make(map[string]model.GroupCount, len(counts))
	for _, g := range counts {
		byLabel[g.Label] = g
	}
	out := make([]model.GroupCount, 0, len(order))
	for _, l := range order {
		if g, ok := byLabel[l]; ok {
			out = append(out, g)
		}
	}
	return out
}

func renderCrossTab(ct model.CrossTab) string {
	t := theme.Active
	headStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	cellStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	rowW := 0
	for _, r := range ct.RowLabels {
		if len(r) > rowW {
			rowW = len(r)
		}
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", rowW))
	for _, c := range ct.ColLabels {
		b.WriteString(headStyle.Render(fmt.Sprintf(" %10s", truncStr(c, 10))))
	}
	b.WriteString(headStyle.Render(fmt.Sprintf(" %8s", "n")))
	b.WriteString("\n")

	for i, r := range ct.RowLabels {
		b.WriteString(rowStyle.Render(fmt.Sprintf("%-*s", rowW, r)))
		for j := range ct.ColLabels {
			b.WriteString(cellStyle.Render(fmt.Sprintf(" %9.1f%%", ct.Cells[i][j])))
		}
		b.WriteString(cellStyle.Render(fmt.Sprintf(" %8d", ct.RowCounts[i])))
		b.WriteString("\n")
	}
	return b.String()
}
