package cmd

import (
	"context"
	"fmt"
	"strings"

	"pacewatch/internal/cli"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show this month's spending summary and pace",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Status never syncs; it reads what check/sync already stored.
	checker := newChecker(cfg, false)
	result, err := checker.Summarize(context.Background())
	if err != nil {
		return err
	}

	summary := result.Summary
	sp := summary.Spending

	fmt.Println()
	fmt.Println(cli.RenderTitle("PACEWATCH — " + string(summary.Month)))
	fmt.Println()

	fmt.Printf("  Status: %s   Pace: %s\n",
		cli.RenderStatusBadge(summary.Status),
		cli.RenderPaceBadge(summary.Pace.Classification))
	fmt.Printf("  Day %d of %d, %d remaining\n\n",
		summary.Period.DaysElapsed,
		summary.Period.DaysElapsed+summary.Period.DaysRemaining,
		summary.Period.DaysRemaining)

	fmt.Printf("  %s\n\n", cli.RenderBudgetBar(sp.Total, sp.Target, 40))

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Spending",
		Headers: []string{"", "Amount"},
		Rows: [][]string{
			{"Spent", cli.FormatMoney(sp.Total)},
			{"Target", cli.FormatMoney(sp.Target)},
			{"Remaining", cli.FormatMoney(sp.Remaining)},
			{"---"},
			{"Used", cli.FormatPercent(sp.PercentUsed)},
			{"Daily average", cli.FormatMoney(sp.DailyAverage)},
		},
	}))

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Pace",
		Headers: []string{"", "Amount"},
		Rows: [][]string{
			{"Expected by today", cli.FormatMoney(summary.Pace.Expected)},
			{"Actual", cli.FormatMoney(summary.Pace.Actual)},
			{"Delta", cli.FormatSignedMoney(summary.Pace.Delta)},
			{"Baseline", strings.ReplaceAll(string(summary.Pace.Source), "_", " ")},
		},
	}))

	if len(summary.TopCategories) > 0 {
		rows := make([][]string, 0, len(summary.TopCategories))
		for _, c := range summary.TopCategories {
			rows = append(rows, []string{c.Category, cli.FormatMoney(c.Total)})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Top Categories",
			Headers: []string{"Category", "Total"},
			Rows:    rows,
		}))
	}

	if len(summary.RecentTransactions) > 0 {
		rows := make([][]string, 0, len(summary.RecentTransactions))
		for _, tx := range summary.RecentTransactions {
			pending := ""
			if tx.Pending() {
				pending = "pending"
			}
			rows = append(rows, []string{
				tx.Date.Format("Jan 02"),
				cli.Truncate(tx.Merchant, 28),
				tx.Category,
				cli.FormatMoney(tx.Amount),
				pending,
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Recent",
			Headers: []string{"Date", "Merchant", "Category", "Amount", ""},
			Rows:    rows,
		}))
	}

	if ledgerAge := result.Ledger.LastSyncedAt; !ledgerAge.IsZero() {
		dim := lipgloss.NewStyle().Foreground(cli.ColorTextDim)
		fmt.Printf("  %s\n\n", dim.Render("Last synced "+ledgerAge.Format("Jan 2 15:04")))
	} else {
		fmt.Printf("  %s\n\n", cli.Muted("Never synced — run `pacewatch check`"))
	}

	return nil
}
