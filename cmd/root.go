// Package cmd implements the pacewatch CLI commands.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"pacewatch/internal/bank"
	"pacewatch/internal/cli"
	"pacewatch/internal/config"
	"pacewatch/internal/ledger"
	"pacewatch/internal/pipeline"
	"pacewatch/internal/store"
	"pacewatch/internal/tui/theme"

	"github.com/spf13/cobra"
)

var (
	flagDataDir string
	flagQuiet   bool
	flagNoSync  bool
)

var rootCmd = &cobra.Command{
	Use:   "pacewatch",
	Short: "Personal budget pace tracker",
	Long:  "Track monthly spending against a target: sync bank transactions, compare your pace to last month, and get alerted before you blow the budget.",
	RunE:  runStatus,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Ledger data directory (default: XDG data dir)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVar(&flagNoSync, "no-sync", false, "Skip the bank fetch, use stored transactions only")
}

// loadConfig loads the config file and applies global flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if flagDataDir != "" {
		cfg.General.DataDir = flagDataDir
	}
	if cfg.General.Currency != "" {
		cli.SetCurrency(cfg.General.Currency)
	}
	if cfg.General.Theme != "" {
		theme.SetActive(cfg.General.Theme)
	}
	return cfg, nil
}

// newChecker wires the check pipeline from config. withSync attaches
// the bank client when an access URL is configured.
func newChecker(cfg config.Config, withSync bool) *pipeline.Checker {
	fs := ledger.NewFileStore(config.DataDir(cfg))

	checker := &pipeline.Checker{
		Store:      fs,
		Legacy:     fs.LoadLegacy,
		Settings:   cfg.Settings(),
		Categorize: cfg.Categorize,
	}

	if withSync && !flagNoSync {
		if url := config.GetAccessURL(cfg); url != "" {
			if client := bank.NewClient(url); client != nil {
				checker.Fetch = client
			} else if !flagQuiet {
				fmt.Fprintln(os.Stderr, "  Access URL is not a valid https URL, skipping sync")
			}
		}
	}

	return checker
}

// openHistory opens the SQLite check log under the data directory.
func openHistory(cfg config.Config) (*store.History, error) {
	return store.Open(filepath.Join(config.DataDir(cfg), "history.db"))
}
