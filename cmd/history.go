package cmd

import (
	"fmt"

	"pacewatch/internal/cli"

	"github.com/spf13/cobra"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent check runs from the audit log",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "Max rows to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	history, err := openHistory(cfg)
	if err != nil {
		return fmt.Errorf("opening check log: %w", err)
	}
	defer history.Close()

	records, err := history.Recent(flagHistoryLimit)
	if err != nil {
		return err
	}

	fmt.Println()
	if len(records) == 0 {
		fmt.Println("  No checks recorded yet. Run `pacewatch check`.")
		fmt.Println()
		return nil
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		alert := ""
		if r.ShouldAlert {
			alert = fmt.Sprintf("%d reason(s)", len(r.Reasons))
		}
		rows = append(rows, []string{
			r.CheckedAt.Local().Format("Jan 02 15:04"),
			string(r.Month),
			cli.FormatMoney(r.Total),
			string(r.Classification),
			string(r.Status),
			alert,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Check History",
		Headers: []string{"When", "Month", "Total", "Pace", "Status", "Alert"},
		Rows:    rows,
	}))

	count, err := history.CheckCount()
	if err == nil {
		fmt.Printf("  %s checks recorded\n", cli.FormatNumber(int64(count)))
	}
	fmt.Println()

	return nil
}
