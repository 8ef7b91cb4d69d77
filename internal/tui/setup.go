package tui

import (
	"fmt"

	"github.com/threeasure/fomodash/internal/config"
	"github.com/threeasure/fomodash/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// setupValues holds the first-run form answers.
type setupValues struct {
	dataPath string
	theme    string
}

// newSetupForm builds the first-run setup wizard shown when no config file
// exists yet.
func newSetupForm(recordCount int, dataPath string, vals *setupValues) *huh.Form {
	vals.dataPath = dataPath
	vals.theme = theme.Active.Name

	themeOpts := make([]huh.Option[string], len(theme.All))
	for i, t := range theme.All {
		themeOpts[i] = huh.NewOption(t.Name, t.Name)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to fomodash").
				Description(fmt.Sprintf("Loaded %d responses from %s.\nA couple of preferences before we start.", recordCount, dataPath)),
			huh.NewInput().
				Title("Survey data file").
				Description("Path used when no --data flag is given.").
				Value(&vals.dataPath),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.theme),
		),
	).WithShowHelp(true)
}

// saveSetupConfig persists the wizard answers and applies the theme.
func (a *App) saveSetupConfig() error {
	cfg, _ := config.Load()

	if a.setupVals.dataPath != "" {
		cfg.General.DataPath = a.setupVals.dataPath
	}
	if a.setupVals.theme != "" {
		cfg.Appearance.Theme = a.setupVals.theme
		theme.SetActive(a.setupVals.theme)
	}

	return config.Save(cfg)
}
