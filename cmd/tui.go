package cmd

import (
	"fmt"

	"github.com/threeasure/fomodash/internal/config"
	"github.com/threeasure/fomodash/internal/tui"
	"github.com/threeasure/fomodash/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()
	theme.SetActive(cfg.Appearance.Theme)

	path, err := dataPath(cfg)
	if err != nil {
		return err
	}

	// Force TrueColor profile so all styling produces ANSI codes even when
	// the terminal is not detected correctly.
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(path, config.EffectiveSynonyms(cfg), flagNoCache)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
