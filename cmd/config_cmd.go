package cmd

import (
	"fmt"

	"github.com/threeasure/fomodash/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	if cfg.General.DataPath != "" {
		fmt.Printf("    Data file: %s\n", cfg.General.DataPath)
	} else {
		fmt.Println("    Data file: not set (pass --data)")
	}
	fmt.Printf("    Cache:     %v\n", !cfg.General.NoCache)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	synonyms := config.EffectiveSynonyms(cfg)
	fmt.Println("  [Synonyms]")
	for from, to := range synonyms {
		fmt.Printf("    %q -> %q\n", from, to)
	}
	fmt.Println()

	fmt.Println("  Delete the config file to rerun the first-time setup.")
	return nil
}
