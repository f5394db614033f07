package cmd

import (
	"fmt"
	"strconv"

	"pacewatch/internal/config"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set one configuration value. Keys:

  target       monthly spending target, e.g. 3000
  sync-window  sync window in days, e.g. 7
  access-url   bank bridge access URL
  currency     currency symbol
  timezone     IANA timezone name, e.g. America/New_York
  theme        color theme name`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(_ *cobra.Command, _ []string) error {
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

	fmt.Println("  [general]")
	fmt.Printf("    Data directory: %s\n", config.DataDir(cfg))
	if cfg.General.Timezone != "" {
		fmt.Printf("    Timezone:       %s\n", cfg.General.Timezone)
	}
	fmt.Printf("    Currency:       %s\n", cfg.General.Currency)
	if cfg.General.Theme != "" {
		fmt.Printf("    Theme:          %s\n", cfg.General.Theme)
	}
	fmt.Println()

	fmt.Println("  [budget]")
	if cfg.Budget.MonthlyTarget.Sign() > 0 {
		fmt.Printf("    Monthly target: %s%s\n", cfg.General.Currency, cfg.Budget.MonthlyTarget.StringFixed(2))
	} else {
		fmt.Println("    Monthly target: not set")
	}
	fmt.Printf("    Sync window:    %d days\n", cfg.Budget.SyncWindowDays)
	fmt.Println()

	fmt.Println("  [bank]")
	url := config.GetAccessURL(cfg)
	if url != "" {
		fmt.Printf("    Access URL: %s\n", maskSecret(url))
	} else {
		fmt.Println("    Access URL: not configured")
	}
	fmt.Println()

	if len(cfg.Categories.Rules) > 0 {
		fmt.Println("  [categories]")
		fmt.Printf("    %d merchant rules\n", len(cfg.Categories.Rules))
		fmt.Println()
	}

	fmt.Println("  Run `pacewatch setup` to reconfigure.")
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	switch key {
	case "target":
		d, err := decimal.NewFromString(value)
		if err != nil || d.Sign() <= 0 {
			return fmt.Errorf("target must be a positive number, got %q", value)
		}
		cfg.Budget.MonthlyTarget = d
	case "sync-window":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("sync-window must be a positive day count, got %q", value)
		}
		cfg.Budget.SyncWindowDays = n
	case "access-url":
		cfg.Bank.AccessURL = value
	case "currency":
		cfg.General.Currency = value
	case "timezone":
		cfg.General.Timezone = value
	case "theme":
		cfg.General.Theme = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}

	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Printf("  Set %s\n", key)
	return nil
}

func maskSecret(s string) string {
	if len(s) > 24 {
		return s[:16] + "..." + s[len(s)-4:]
	}
	if len(s) > 8 {
		return s[:8] + "..."
	}
	return "****"
}
