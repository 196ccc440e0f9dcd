// Package cmd wires the retirecast CLI.
package cmd

import (
	"fmt"
	"os"

	"retirecast/internal/config"
	"retirecast/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagConfig string
	flagStore  string
	flagQuiet  bool
	flagNoSave bool
)

var rootCmd = &cobra.Command{
	Use:   "retirecast",
	Short: "Retirement cash-flow and tax simulator",
	Long: "Simulate a retirement drawdown year by year: progressive taxes, Social Security\n" +
		"taxability, RMDs, Roth conversions, and withdrawal strategies.",
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to app config TOML (default: XDG config dir)")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "", "Path to the run store database")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVar(&flagNoSave, "no-save", false, "Do not persist runs to the store")
}

// loadApp loads the TOML app config, honoring --config.
func loadApp() (config.App, error) {
	if flagConfig != "" {
		return config.LoadAppFrom(flagConfig)
	}
	return config.LoadApp()
}

// openStore opens the run store, honoring --store over the config path.
func openStore(app config.App) (*store.Store, error) {
	path := flagStore
	if path == "" {
		path = app.StorePath()
	}
	return store.Open(path)
}

func progressf(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}
