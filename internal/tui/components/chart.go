package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/threeasure/fomodash/internal/model"
	"github.com/threeasure/fomodash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	style := lipgloss.NewStyle().Foreground(color)

	var buf strings.Builder
	buf.Grow(len(values) * 4)
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(blocks[idx])
	}

	return style.Render(buf.String())
}

// BarChart renders a vertical bar chart with a y axis. Falls back to a
// sparkline when the area is too small for axes.
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, color)
	}

	t := theme.Active

	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	yLabelW := len(formatChartLabel(maxVal)) + 1
	if yLabelW < 4 {
		yLabelW = 4
	}
	chartW := width - yLabelW - 1
	if chartW < 5 {
		chartW = 5
	}

	n := len(values)
	gap := 1
	if n <= 1 {
		gap = 0
	}
	barW := chartW
	if n > 1 {
		barW = (chartW - (n - 1)) / n
	}
	// Downsample when bars would vanish.
	if barW < 2 && n > 1 {
		maxN := (chartW + 1) / 3
		if maxN < 2 {
			maxN = 2
		}
		sampled := make([]float64, maxN)
		var sampledLabels []string
		if len(labels) == n {
			sampledLabels = make([]string, maxN)
		}
		for i := range sampled {
			srcIdx := i * (n - 1) / (maxN - 1)
			sampled[i] = values[srcIdx]
			if sampledLabels != nil {
				sampledLabels[i] = labels[srcIdx]
			}
		}
		values = sampled
		labels = sampledLabels
		n = maxN
		barW = 2
	}
	if barW > 6 {
		barW = 6
	}
	axisLen := n*barW + (n-1)*gap

	blocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	barStyle := lipgloss.NewStyle().Foreground(color)

	var b strings.Builder
	for row := height; row >= 1; row-- {
		rowTop := maxVal * float64(row) / float64(height)
		rowBottom := maxVal * float64(row-1) / float64(height)

		label := ""
		if row == height {
			label = formatChartLabel(maxVal)
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, label)))
		b.WriteString(axisStyle.Render("│"))

		for i, v := range values {
			if i > 0 && gap > 0 {
				b.WriteString(strings.Repeat(" ", gap))
			}
			switch {
			case v >= rowTop:
				b.WriteString(barStyle.Render(strings.Repeat("█", barW)))
			case v > rowBottom:
				frac := (v - rowBottom) / (rowTop - rowBottom)
				idx := int(frac * 8)
				if idx > 8 {
					idx = 8
				}
				if idx < 1 {
					idx = 1
				}
				b.WriteString(barStyle.Render(strings.Repeat(string(blocks[idx]), barW)))
			default:
				b.WriteString(strings.Repeat(" ", barW))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(axisStyle.Render("└"))
	b.WriteString(axisStyle.Render(strings.Repeat("─", axisLen)))

	if len(labels) == n && n > 0 {
		buf := make([]byte, axisLen)
		for i := range buf {
			buf[i] = ' '
		}
		lastEnd := -1
		for i := 0; i < n; i++ {
			pos := i * (barW + gap)
			lbl := labels[i]
			end := pos + len(lbl)
			if pos <= lastEnd || end > axisLen {
				continue
			}
			copy(buf[pos:end], lbl)
			lastEnd = end + 1
		}
		b.WriteString("\n")
		labelStyle := lipgloss.NewStyle().Foreground(t.TextDim)
		b.WriteString(strings.Repeat(" ", yLabelW+1))
		b.WriteString(labelStyle.Render(strings.TrimRight(string(buf), " ")))
	}

	return b.String()
}

// HBarList renders labelled horizontal bars for group counts, widest first
// scaling. Labels longer than the label column are truncated.
func HBarList(groups []model.GroupCount, width int, color lipgloss.Color) string {
	if len(groups) == 0 {
		return ""
	}
	t := theme.Active

	maxCount := 0
	labelW := 0
	for _, g := range groups {
		if g.Count > maxCount {
			maxCount = g.Count
		}
		if len(g.Label) > labelW {
			labelW = len(g.Label)
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}
	if labelW > width/2 {
		labelW = width / 2
	}

	numW := len(fmt.Sprintf("%d", maxCount))
	barMax := width - labelW - numW - 3
	if barMax < 1 {
		barMax = 1
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	numStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	barStyle := lipgloss.NewStyle().Foreground(color)

	var b strings.Builder
	for _, g := range groups {
		lbl := g.Label
		if len(lbl) > labelW {
			lbl = lbl[:labelW-1] + "…"
		}
		barLen := g.Count * barMax / maxCount
		fmt.Fprintf(&b, "%s %s %s\n",
			labelStyle.Render(fmt.Sprintf("%-*s", labelW, lbl)),
			numStyle.Render(fmt.Sprintf("%*d", numW, g.Count)),
			barStyle.Render(strings.Repeat("█", barLen)))
	}
	return b.String()
}

// Heatmap renders the weekday-by-hour activity grid with intensity shading.
func Heatmap(hm model.ActivityHeatmap, width int) string {
	t := theme.Active

	maxCount := 0
	for _, row := range hm.Counts {
		for _, n := range row {
			if n > maxCount {
				maxCount = n
			}
		}
	}
	if maxCount == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Render("no timestamped responses")
	}

	shades := []rune{'·', '░', '▒', '▓', '█'}
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	cellStyle := lipgloss.NewStyle().Foreground(t.Accent)

	// One column per hour plus the 3-letter weekday prefix.
	var b strings.Builder
	b.WriteString(dimStyle.Render("    0   4   8   12  16  20"))
	b.WriteString("\n")
	for row := 0; row < 7; row++ {
		b.WriteString(dimStyle.Render(model.WeekdayName(row)[:3] + " "))
		for hour := 0; hour < 24; hour++ {
			n := hm.Counts[row][hour]
			if n == 0 {
				b.WriteString(dimStyle.Render("·"))
				continue
			}
			idx := int(math.Ceil(float64(n) / float64(maxCount) * float64(len(shades)-1)))
			if idx >= len(shades) {
				idx = len(shades) - 1
			}
			b.WriteString(cellStyle.Render(string(shades[idx])))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatChartLabel(v float64) string {
	switch {
	case v >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.1fk", v/1e3)
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
