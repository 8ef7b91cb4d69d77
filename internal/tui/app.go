// Package tui provides the interactive Bubble Tea dashboard for fomodash.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/threeasure/fomodash/internal/config"
	"github.com/threeasure/fomodash/internal/model"
	"github.com/threeasure/fomodash/internal/pipeline"
	"github.com/threeasure/fomodash/internal/store"
	"github.com/threeasure/fomodash/internal/tui/components"
	"github.com/threeasure/fomodash/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// DataLoadedMsg is sent when the data pipeline finishes.
type DataLoadedMsg struct {
	Dataset  *model.Dataset
	Err      error
	LoadTime time.Duration
}

// App is the root Bubble Tea model.
type App struct {
	// Data
	dataset  *model.Dataset
	loaded   bool
	loadErr  error
	loadTime time.Duration

	// Filter state and the records passing it
	filter   model.Filter
	filtered []model.Record

	// Pre-computed for current filter
	overview      model.OverviewStats
	facultyCounts []model.GroupCount
	fomoCounts    []model.GroupCount
	financeCounts []model.GroupCount
	ratioCounts   []model.GroupCount
	ratioByFac    []model.GroupMean
	spendByFac    []model.GroupMean
	crossTab      model.CrossTab
	stressByFomo  []model.GroupMean
	daily         []model.DailyCount
	heatmap       model.ActivityHeatmap

	// Distinct label pools for filter cycling
	faculties []string
	programs  []string

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	explore   exploreState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool

	// Loading
	spinner spinner.Model

	// Data source for the pipeline
	dataPath string
	synonyms map[string]string
	noCache  bool
}

const (
	minTerminalWidth = 70
	compactWidth     = 110
	maxContentWidth  = 170
	minContentHeight = 5
)

// NewApp creates a new TUI app model.
func NewApp(dataPath string, synonyms map[string]string, noCache bool) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	return App{
		dataPath:  dataPath,
		synonyms:  synonyms,
		noCache:   noCache,
		needSetup: !config.Exists(),
		spinner:   sp,
		explore:   newExploreState(),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		loadDataCmd(a.dataPath, a.synonyms, a.noCache),
		a.spinner.Tick,
	)
}

func (a *App) recompute() {
	if a.dataset == nil {
		return
	}
	recs := a.dataset.Records

	a.faculties = pipeline.Faculties(recs)
	a.programs = pipeline.Programs(recs)

	a.filtered = pipeline.Apply(recs, a.filter)

	a.overview = pipeline.Overview(a.filtered)
	a.facultyCounts = pipeline.CountBy(a.filtered, pipeline.ByFaculty)
	a.fomoCounts = pipeline.CountBy(a.filtered, pipeline.ByFomoCategory)
	a.financeCounts = pipeline.CountBy(a.filtered, pipeline.ByFinanceBucket)
	a.ratioCounts = pipeline.CountBy(a.filtered, pipeline.ByRatioBucket)
	a.ratioByFac = pipeline.MeanBy(a.filtered, pipeline.ByFaculty, pipeline.ValExpenseRatio)
	a.spendByFac = pipeline.MeanBy(a.filtered, pipeline.ByFaculty, pipeline.ValFomoSpend)
	a.crossTab = pipeline.CrossTabulate(a.filtered,
		pipeline.ByFomoCategory, pipeline.ByFinanceBucket,
		pipeline.FomoCategoryOrder, pipeline.FinanceBucketOrder)
	a.stressByFomo = pipeline.MeanBy(a.filtered, pipeline.ByFomoCategory, pipeline.ValStressIndex)
	a.daily = pipeline.CountByDay(a.filtered)
	a.heatmap = pipeline.HeatmapByDayHour(a.filtered)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}
		if msg.Button == tea.MouseButtonLeft && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if !a.loaded {
			if a.loadErr != nil && (key == "q" || key == "enter" || key == "esc") {
				return a, tea.Quit
			}
			return a, nil
		}

		// First-run setup wizard intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		// Program search intercepts keys while typing
		if a.activeTab == 2 && a.explore.searching {
			return a.updateExploreSearch(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		if key == "q" {
			return a, tea.Quit
		}

		// Explore tab has its own filter keybindings
		if a.activeTab == 2 {
			if handled, m, cmd := a.updateExploreKeys(key); handled {
				return m, cmd
			}
		}

		switch key {
		case "i":
			a.activeTab = 0
		case "a":
			a.activeTab = 1
		case "e":
			a.activeTab = 2
		case "c":
			a.activeTab = 3
		case "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		case "right", "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		}
		return a, nil

	case DataLoadedMsg:
		a.loadTime = msg.LoadTime
		if msg.Err != nil {
			a.loadErr = msg.Err
			return a, nil
		}
		a.dataset = msg.Dataset
		a.loaded = true
		a.recompute()

		if a.needSetup {
			a.setupForm = newSetupForm(len(a.dataset.Records), a.dataPath, &a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		_ = a.saveSetupConfig()
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.loadErr != nil {
		return a.viewLoadError()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  fomodash needs at least %d columns.\n",
		a.width, minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoadError() string {
	t := theme.Active
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Red).
		Padding(1, 3)

	errStyle := lipgloss.NewStyle().Foreground(t.Red).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	body := errStyle.Render("Could not load survey data") + "\n\n" +
		mutedStyle.Render(a.loadErr.Error()) + "\n\n" +
		mutedStyle.Render("Press q to exit")

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(body))
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ fomodash"))
	b.WriteString(subtitleStyle.Render(" · Student FOMO Survey"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Reading responses..."))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(b.String()))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Navigation"))
	b.WriteString("\n")
	navBindings := []struct{ key, desc string }{
		{"i a e c", "Jump to tab"},
		{"← →", "Previous / Next tab"},
	}
	for _, bind := range navBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Explore tab"))
	b.WriteString("\n")
	exploreBindings := []struct{ key, desc string }{
		{"j k", "Select filter row"},
		{"h l", "Cycle filter value"},
		{"/", "Search programs"},
		{"x", "Clear selected filter"},
		{"X", "Clear all filters"},
	}
	for _, bind := range exploreBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("General"))
	b.WriteString("\n")
	generalBindings := []struct{ key, desc string }{
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range generalBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(b.String()))
}

func (a App) viewMain() string {
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	total := 0
	if a.dataset != nil {
		total = len(a.dataset.Records)
	}
	cellErrors := 0
	if a.dataset != nil {
		cellErrors = a.dataset.CellErrors
	}
	statusBar := components.RenderStatusBar(w, len(a.filtered), total, cellErrors)

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case 0:
		content = a.renderIntroTab(cw)
	case 1:
		content = a.renderAnalysisTab(cw)
	case 2:
		content = a.renderExploreTab(cw)
	case 3:
		content = a.renderConclusionTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 1 // leading space
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 2
	}
	return -1
}

// loadDataCmd runs the data pipeline and reports the result.
func loadDataCmd(dataPath string, synonyms map[string]string, noCache bool) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()

		if !noCache {
			if cache, err := store.Open(pipeline.CachePath()); err == nil {
				ds, loadErr := pipeline.LoadWithCache(dataPath, synonyms, cache)
				_ = cache.Close()
				if loadErr == nil {
					return DataLoadedMsg{Dataset: ds, LoadTime: time.Since(start)}
				}
			}
		}

		ds, err := pipeline.Load(dataPath, synonyms)
		if err != nil {
			return DataLoadedMsg{Err: err, LoadTime: time.Since(start)}
		}
		return DataLoadedMsg{Dataset: ds, LoadTime: time.Since(start)}
	}
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}
