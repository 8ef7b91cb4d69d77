package tui

import (
	"fmt"
	"strings"

	"github.com/threeasure/fomodash/internal/cli"
	"github.com/threeasure/fomodash/internal/model"
	"github.com/threeasure/fomodash/internal/pipeline"
	"github.com/threeasure/fomodash/internal/tui/components"
	"github.com/threeasure/fomodash/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Filter rows in the explore tab, top to bottom.
const (
	exploreRowFaculty = iota
	exploreRowFomo
	exploreRowFinance
	exploreRowRatio
	exploreRowProgram
	exploreRowCount
)

type exploreState struct {
	cursor      int
	searching   bool
	searchInput textinput.Model
	searchQuery string
}

func newExploreState() exploreState {
	ti := textinput.New()
	ti.Placeholder = "program name..."
	ti.CharLimit = 64
	ti.Width = 30
	return exploreState{searchInput: ti}
}

// updateExploreKeys handles filter keybindings; handled=false lets the key
// fall through to global navigation.
func (a App) updateExploreKeys(key string) (bool, tea.Model, tea.Cmd) {
	switch key {
	case "j", "down":
		if a.explore.cursor < exploreRowCount-1 {
			a.explore.cursor++
		}
		return true, a, nil
	case "k", "up":
		if a.explore.cursor > 0 {
			a.explore.cursor--
		}
		return true, a, nil
	case "h":
		a.cycleFilter(-1)
		return true, a, nil
	case "l":
		a.cycleFilter(1)
		return true, a, nil
	case "/":
		a.explore.cursor = exploreRowProgram
		a.explore.searching = true
		a.explore.searchInput.SetValue(a.explore.searchQuery)
		a.explore.searchInput.Focus()
		return true, a, a.explore.searchInput.Cursor.BlinkCmd()
	case "x":
		a.clearFilterRow(a.explore.cursor)
		a.recompute()
		return true, a, nil
	case "X", "esc":
		a.filter = model.Filter{}
		a.explore.searchQuery = ""
		a.recompute()
		return true, a, nil
	}
	return false, a, nil
}

func (a App) updateExploreSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.explore.searchQuery = strings.TrimSpace(a.explore.searchInput.Value())
		a.explore.searching = false
		a.applyProgramSearch()
		a.recompute()
		return a, nil
	case "esc":
		a.explore.searching = false
		return a, nil
	}

	var cmd tea.Cmd
	a.explore.searchInput, cmd = a.explore.searchInput.Update(msg)
	return a, cmd
}

// applyProgramSearch turns the search query into a program set filter.
func (a *App) applyProgramSearch() {
	if a.explore.searchQuery == "" {
		a.filter.Programs = nil
		return
	}
	q := strings.ToLower(a.explore.searchQuery)
	var matched []string
	for _, p := range a.programs {
		if strings.Contains(strings.ToLower(p), q) {
			matched = append(matched, p)
		}
	}
	// No matches still filters: the result set is legitimately empty.
	if matched == nil {
		matched = []string{}
	}
	a.filter.Programs = matched
}

func (a *App) cycleFilter(dir int) {
	switch a.explore.cursor {
	case exploreRowFaculty:
		a.filter.Faculty = cycleString(a.filter.Faculty, a.faculties, dir)
	case exploreRowFomo:
		a.filter.FomoCategory = cycleString(a.filter.FomoCategory, pipeline.FomoCategoryOrder, dir)
	case exploreRowFinance:
		a.filter.FinanceBucket = cycleString(a.filter.FinanceBucket, pipeline.FinanceBucketOrder, dir)
	case exploreRowRatio:
		a.filter.RatioBucket = cycleString(a.filter.RatioBucket, pipeline.RatioBucketOrder, dir)
	}
	a.recompute()
}

func (a *App) clearFilterRow(row int) {
	switch row {
	case exploreRowFaculty:
		a.filter.Faculty = ""
	case exploreRowFomo:
		a.filter.FomoCategory = ""
	case exploreRowFinance:
		a.filter.FinanceBucket = ""
	case exploreRowRatio:
		a.filter.RatioBucket = ""
	case exploreRowProgram:
		a.filter.Programs = nil
		a.explore.searchQuery = ""
	}
}

// cycleString steps through "" followed by the options, wrapping around.
func cycleString(current string, options []string, dir int) string {
	if len(options) == 0 {
		return ""
	}
	idx := 0
	for i, o := range options {
		if o == current {
			idx = i + 1
			break
		}
	}
	n := len(options) + 1
	idx = (idx + dir + n) % n
	if idx == 0 {
		return ""
	}
	return options[idx-1]
}

func (a App) renderExploreTab(cw int) string {
	t := theme.Active
	var b strings.Builder

	halves := components.LayoutRow(cw, 2)

	// Left card: filter rows
	selStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	rows := []struct {
		name  string
		value string
	}{
		{"Faculty", a.filter.Faculty},
		{"FOMO category", a.filter.FomoCategory},
		{"Finance skill", a.filter.FinanceBucket},
		{"Spending bucket", a.filter.RatioBucket},
		{"Program search", a.explore.searchQuery},
	}

	var filterBody strings.Builder
	for i, row := range rows {
		marker := "  "
		style := rowStyle
		if i == a.explore.cursor {
			marker = "> "
			style = selStyle
		}
		value := row.value
		if value == "" {
			value = dimStyle.Render("(all)")
		} else {
			value = style.Render(truncStr(value, 28))
		}
		if i == exploreRowProgram && a.explore.searching {
			value = a.explore.searchInput.View()
		}
		fmt.Fprintf(&filterBody, "%s%s %s\n",
			style.Render(marker),
			style.Render(fmt.Sprintf("%-16s", row.name)),
			value)
	}
	filterBody.WriteString("\n")
	filterBody.WriteString(dimStyle.Render("h/l cycle · / search · x clear · X reset"))

	filterCard := components.ContentCard("Filters", filterBody.String(), halves[0])

	// Right card: result summary for the filtered slice
	var resultBody strings.Builder
	total := len(a.dataset.Records)
	share := 0.0
	if total > 0 {
		share = float64(len(a.filtered)) / float64(total)
	}
	resultBody.WriteString(components.ShareBar("Matched", share, 8, components.CardInnerWidth(halves[1])-16))
	resultBody.WriteString("\n\n")

	valStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	fmt.Fprintf(&resultBody, "%s %s\n",
		mutedStyle.Render("Respondents:"),
		valStyle.Render(cli.FormatNumber(int64(len(a.filtered)))))

	if s, ok := pipeline.Summarize(a.filtered, pipeline.ValExpenseRatio); ok {
		fmt.Fprintf(&resultBody, "%s %s  %s %s\n",
			mutedStyle.Render("Mean ratio:"),
			valStyle.Render(cli.FormatPercent(s.Mean)),
			mutedStyle.Render("median:"),
			valStyle.Render(cli.FormatPercent(s.Median)))
	}
	if s, ok := pipeline.Summarize(a.filtered, pipeline.ValFomoSpend); ok {
		fmt.Fprintf(&resultBody, "%s %s\n",
			mutedStyle.Render("Median spend:"),
			valStyle.Render(cli.FormatRupiah(s.Median)))
	}
	if s, ok := pipeline.Summarize(a.filtered, pipeline.ValStressIndex); ok {
		fmt.Fprintf(&resultBody, "%s %s\n",
			mutedStyle.Render("Stress index:"),
			valStyle.Render(cli.FormatScore(s.Mean)))
	}

	resultCard := components.ContentCard("Selection", resultBody.String(), halves[1])

	b.WriteString(a.joinHalves(filterCard, resultCard, cw))

	// Program breakdown within the selection
	progCounts := pipeline.CountBy(a.filtered, pipeline.ByProgram)
	if len(progCounts) > 0 {
		top := pipeline.TopCounts(progCounts, 8)
		b.WriteString(components.ContentCard(
			"Programs in selection",
			components.HBarList(top, components.CardInnerWidth(cw), t.Cyan),
			cw,
		))
	}

	return b.String()
}
