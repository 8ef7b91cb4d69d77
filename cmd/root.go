// Package cmd wires up the fomodash command line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/threeasure/fomodash/internal/cli"
	"github.com/threeasure/fomodash/internal/config"
	"github.com/threeasure/fomodash/internal/model"
	"github.com/threeasure/fomodash/internal/pipeline"
	"github.com/threeasure/fomodash/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagData     string
	flagNoCache  bool
	flagQuiet    bool
	flagFaculty  string
	flagFomo     string
	flagFinance  string
	flagRatio    string
	flagRatioMin float64
	flagRatioMax float64
	flagPrograms []string
)

var rootCmd = &cobra.Command{
	Use:   "fomodash",
	Short: "Student FOMO survey analytics",
	Long:  "Analyze the student FOMO and financial wellbeing survey: spending, stress, and response activity.",
	RunE:  runOverview,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagData, "data", "d", "", "Survey CSV file (default from config)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip SQLite cache, reparse the file")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().StringVar(&flagFaculty, "faculty", "", "Filter to one faculty (exact match)")
	rootCmd.PersistentFlags().StringVar(&flagFomo, "fomo", "", "Filter to a FOMO category (Frequent/Rare)")
	rootCmd.PersistentFlags().StringVar(&flagFinance, "finance", "", "Filter to a finance bucket (Poor/Adequate/Good)")
	rootCmd.PersistentFlags().StringVar(&flagRatio, "ratio", "", "Filter to a spending bucket label")
	rootCmd.PersistentFlags().Float64Var(&flagRatioMin, "ratio-min", -1, "Keep expense ratios >= this value")
	rootCmd.PersistentFlags().Float64Var(&flagRatioMax, "ratio-max", -1, "Keep expense ratios <= this value")
	rootCmd.PersistentFlags().StringSliceVar(&flagPrograms, "program", nil, "Filter to study programs (repeatable)")
}

// dataPath resolves the survey file from flag, env, or config.
func dataPath(cfg config.Config) (string, error) {
	if flagData != "" {
		return flagData, nil
	}
	if p := config.DataPath(cfg); p != "" {
		return p, nil
	}
	return "", fmt.Errorf("no survey file configured: pass --data or set general.data_path in %s", config.ConfigPath())
}

// loadData is the shared data loading path used by all commands.
// Uses the SQLite cache when available for fast subsequent runs.
func loadData() (*model.Dataset, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	path, err := dataPath(cfg)
	if err != nil {
		return nil, err
	}
	synonyms := config.EffectiveSynonyms(cfg)

	if !flagNoCache {
		cache, err := store.Open(pipeline.CachePath())
		if err != nil {
			if !flagQuiet {
				fmt.Fprintf(os.Stderr, "  Cache unavailable, reading file\n")
			}
		} else {
			defer cache.Close()
			ds, err := pipeline.LoadWithCache(path, synonyms, cache)
			if err == nil {
				reportLoad(ds)
				return ds, nil
			}
			if !flagQuiet {
				fmt.Fprintf(os.Stderr, "  Cache error, reading file\n")
			}
		}
	}

	ds, err := pipeline.Load(path, synonyms)
	if err != nil {
		return nil, err
	}
	reportLoad(ds)
	return ds, nil
}

func reportLoad(ds *model.Dataset) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, "  Loaded %s responses\n", cli.FormatNumber(int64(len(ds.Records))))
	if ds.CellErrors > 0 {
		fmt.Fprintf(os.Stderr, "  %d unreadable cells treated as missing\n", ds.CellErrors)
	}
}

// cliFilter builds the record filter from the persistent flags.
func cliFilter() model.Filter {
	f := model.Filter{
		Faculty:       flagFaculty,
		FomoCategory:  flagFomo,
		FinanceBucket: flagFinance,
		RatioBucket:   flagRatio,
		Programs:      flagPrograms,
	}
	if flagRatioMin >= 0 {
		v := flagRatioMin
		f.RatioMin = &v
	}
	if flagRatioMax >= 0 {
		v := flagRatioMax
		f.RatioMax = &v
	}
	return f
}

// applyFilters returns the records passing the flag filters.
func applyFilters(ds *model.Dataset) []model.Record {
	return pipeline.Apply(ds.Records, cliFilter())
}
