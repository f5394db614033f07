package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"pacewatch/internal/cli"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Sync, evaluate the budget, and report anything alert-worthy",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	checker := newChecker(cfg, true)

	history, err := openHistory(cfg)
	if err == nil {
		defer history.Close()
		checker.History = history
	} else if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Check log unavailable: %v\n", err)
	}

	if !flagQuiet && checker.Fetch != nil {
		fmt.Fprintln(os.Stderr, "  Syncing transactions...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	result, err := checker.Run(ctx)
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		warnStyle := lipgloss.NewStyle().Foreground(cli.ColorOrange)
		fmt.Fprintf(os.Stderr, "  %s\n", warnStyle.Render(w))
	}

	summary := result.Summary
	fmt.Println()
	if result.Synced {
		fmt.Printf("  Synced: %d new, %d pending resolved\n",
			len(result.Merge.New), result.Merge.Removed)
	}
	fmt.Printf("  %s  spent %s of %s (%s)  %s\n",
		summary.Month,
		cli.FormatMoney(summary.Spending.Total),
		cli.FormatMoney(summary.Spending.Target),
		cli.FormatPercent(summary.Spending.PercentUsed),
		cli.RenderStatusBadge(summary.Status),
	)
	fmt.Printf("  Pace: %s (%s vs expected, %s)\n",
		cli.RenderPaceBadge(summary.Pace.Classification),
		cli.FormatSignedMoney(summary.Pace.Delta),
		summary.Pace.Source,
	)
	fmt.Println()

	if result.Decision.ShouldAlert {
		alertStyle := lipgloss.NewStyle().Foreground(cli.ColorOrange).Bold(true)
		fmt.Printf("  %s\n", alertStyle.Render("Heads up:"))
		for _, reason := range result.Decision.Reasons {
			fmt.Printf("    - %s\n", reason)
		}
		fmt.Println()
	} else if !flagQuiet {
		fmt.Println("  Nothing alert-worthy.")
		fmt.Println()
	}

	return nil
}
