package cmd

import (
	"context"
	"fmt"

	"pacewatch/internal/cli"
	"pacewatch/internal/pace"
	"pacewatch/internal/pipeline"
	"pacewatch/internal/tui"

	"github.com/spf13/cobra"
)

var flagChartPlain bool

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Interactive dashboard with the month's cumulative spend curve",
	RunE:  runChart,
}

func init() {
	chartCmd.Flags().BoolVar(&flagChartPlain, "plain", false, "Print a sparkline instead of the interactive dashboard")
	rootCmd.AddCommand(chartCmd)
}

func runChart(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	checker := newChecker(cfg, true)

	if flagChartPlain {
		return printPlainChart(checker)
	}

	return tui.Run(func(ctx context.Context) (*pipeline.CheckResult, error) {
		return checker.Run(ctx)
	})
}

func printPlainChart(checker *pipeline.Checker) error {
	result, err := checker.Summarize(context.Background())
	if err != nil {
		return err
	}

	curve := pace.BuildCurve(result.Ledger)
	points := cli.CurvePoints(curve, result.Summary.Period.DaysElapsed)

	fmt.Println()
	fmt.Printf("  %s cumulative spend, day 1-%d\n",
		result.Summary.Month, result.Summary.Period.DaysElapsed)
	fmt.Printf("  %s\n", cli.RenderSparkline(points))
	if prior := result.Prior; !prior.Empty() {
		fmt.Printf("  %s (last month)\n",
			cli.RenderSparkline(cli.CurvePoints(prior, prior.Days)))
	}
	fmt.Printf("  %s of %s (%s)\n\n",
		cli.FormatMoney(result.Summary.Spending.Total),
		cli.FormatMoney(result.Summary.Spending.Target),
		cli.FormatPercent(result.Summary.Spending.PercentUsed),
	)
	return nil
}
