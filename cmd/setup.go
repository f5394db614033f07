package cmd

import (
	"errors"
	"fmt"

	"pacewatch/internal/config"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()

	target := ""
	if cfg.Budget.MonthlyTarget.Sign() > 0 {
		target = cfg.Budget.MonthlyTarget.String()
	}
	window := cfg.Budget.SyncWindowDays
	if window <= 0 {
		window = 7
	}
	accessURL := cfg.Bank.AccessURL
	currency := cfg.General.Currency
	if currency == "" {
		currency = "$"
	}
	themeName := cfg.General.Theme
	if themeName == "" {
		themeName = "flexoki-dark"
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Monthly spending target").
				Description("Total you want to stay under each month, e.g. 3000").
				Value(&target).
				Validate(func(s string) error {
					d, err := decimal.NewFromString(s)
					if err != nil {
						return errors.New("enter a number like 3000 or 2500.50")
					}
					if d.Sign() <= 0 {
						return errors.New("target must be positive")
					}
					return nil
				}),

			huh.NewSelect[int]().
				Title("Sync window").
				Description("How far back each sync looks for transactions").
				Options(
					huh.NewOption("3 days", 3),
					huh.NewOption("7 days", 7),
					huh.NewOption("14 days", 14),
					huh.NewOption("30 days", 30),
				).
				Value(&window),
		),

		huh.NewGroup(
			huh.NewInput().
				Title("Bank access URL").
				Description("SimpleFIN bridge access URL (leave empty to skip bank sync)").
				EchoMode(huh.EchoModePassword).
				Value(&accessURL),

			huh.NewInput().
				Title("Currency symbol").
				Value(&currency),

			huh.NewSelect[string]().
				Title("Color theme").
				Options(
					huh.NewOption("Flexoki Dark", "flexoki-dark"),
					huh.NewOption("Terminal (ANSI 16)", "terminal"),
				).
				Value(&themeName),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Budget.MonthlyTarget = decimal.RequireFromString(target)
	cfg.Budget.SyncWindowDays = window
	cfg.Bank.AccessURL = accessURL
	cfg.General.Currency = currency
	cfg.General.Theme = themeName

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `pacewatch check` to do your first sync.")
	fmt.Println()

	return nil
}
