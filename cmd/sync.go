package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"pacewatch/internal/cli"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch recent bank transactions and merge them into the ledger",
	RunE:  runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	checker := newChecker(cfg, true)
	if checker.Fetch == nil {
		return errors.New("no bank access URL configured — run `pacewatch setup` or set PACEWATCH_ACCESS_URL")
	}

	if !flagQuiet {
		fmt.Fprintln(os.Stderr, "  Syncing transactions...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	result, err := checker.Run(ctx)
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "  %s\n", w)
	}
	if !result.Synced {
		return errors.New("sync failed")
	}

	fmt.Println()
	fmt.Printf("  Merged %d new transactions (%d pending resolved, net %+d)\n",
		len(result.Merge.New), result.Merge.Removed, result.Merge.Added)
	fmt.Printf("  Month total: %s\n\n", cli.FormatMoney(result.Summary.Spending.Total))

	return nil
}
