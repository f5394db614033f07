package cmd

import (
	"context"
	"fmt"

	"pacewatch/internal/cli"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var flagRecentDays int

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List this month's transactions within a day window",
	RunE:  runRecent,
}

func init() {
	recentCmd.Flags().IntVarP(&flagRecentDays, "days", "n", 7, "Day window")
	rootCmd.AddCommand(recentCmd)
}

func runRecent(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	checker := newChecker(cfg, false)
	result, err := checker.Summarize(context.Background())
	if err != nil {
		return err
	}

	cutoff := result.Summary.ComputedAt.AddDate(0, 0, -flagRecentDays)

	var rows [][]string
	total := decimal.Zero
	for _, tx := range result.Ledger.Transactions {
		if tx.Date.Before(cutoff) {
			continue
		}
		pending := ""
		if tx.Pending() {
			pending = "pending"
		}
		rows = append(rows, []string{
			tx.Date.Format("Jan 02"),
			cli.Truncate(tx.Merchant, 32),
			tx.Category,
			cli.FormatMoney(tx.Amount),
			pending,
		})
		total = total.Add(tx.Amount)
	}

	fmt.Println()
	if len(rows) == 0 {
		fmt.Printf("  No transactions in the last %d days.\n\n", flagRecentDays)
		return nil
	}

	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"", "", "", cli.FormatMoney(total), ""})

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Last %d days", flagRecentDays),
		Headers: []string{"Date", "Merchant", "Category", "Amount", ""},
		Rows:    rows,
	}))
	fmt.Println()

	return nil
}
