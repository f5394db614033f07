// Package alert decides whether a summary warrants notifying the user.
package alert

import (
	"fmt"

	"github.com/shopspring/decimal"

	"pacewatch/internal/model"
)

// overPacePercent is the minimum percent-over-expected before a
// behind-pace classification produces its own alert reason.
var overPacePercent = decimal.NewFromInt(10)

// lowRemaining is the remaining-budget floor that triggers the
// low-remaining reason when still positive.
var lowRemaining = decimal.NewFromInt(500)

const endOfMonthDays = 3

// Evaluate applies the fixed trigger set to the latest summary and the
// transactions the last merge appended. Triggers gate independently and
// reasons keep evaluation order; any repeat-alert throttling belongs
// to the caller.
func Evaluate(summary model.Summary, newCount int, newItems []model.Transaction) model.AlertDecision {
	var reasons []string

	if newCount > 0 {
		noun := "transactions"
		if newCount == 1 {
			noun = "transaction"
		}
		reason := fmt.Sprintf("%d new %s since last check", newCount, noun)
		if largest, ok := largestOf(newItems); ok {
			reason += fmt.Sprintf(" (largest: %s at %s)", largest.Amount.StringFixed(2), largest.Merchant)
		}
		reasons = append(reasons, reason)
	}

	switch summary.Status {
	case model.StatusWatch:
		reasons = append(reasons, fmt.Sprintf("spending pace elevated: %s%% of budget used with %d days left",
			summary.Spending.PercentUsed.StringFixed(1), summary.Period.DaysRemaining))
	case model.StatusOver:
		reasons = append(reasons, fmt.Sprintf("over budget: spent %s against a target of %s",
			summary.Spending.Total.StringFixed(2), summary.Spending.Target.StringFixed(2)))
	}

	p := summary.Pace
	if p.Classification == model.PaceBehind && p.PercentDelta.GreaterThan(overPacePercent) {
		reasons = append(reasons, fmt.Sprintf("spending %s%% over expected pace for day %d",
			p.PercentDelta.StringFixed(1), summary.Period.DaysElapsed))
	}

	remaining := summary.Spending.Remaining
	if remaining.Sign() > 0 && remaining.LessThan(lowRemaining) {
		reasons = append(reasons, fmt.Sprintf("only %s of budget remaining", remaining.StringFixed(2)))
	}

	if d := summary.Period.DaysRemaining; d > 0 && d <= endOfMonthDays {
		noun := "days"
		if d == 1 {
			noun = "day"
		}
		reasons = append(reasons, fmt.Sprintf("%d %s left in the month", d, noun))
	}

	if summary.Period.DaysElapsed == 1 {
		reasons = append(reasons, "new month started")
	}

	return model.AlertDecision{
		ShouldAlert:     len(reasons) > 0,
		Reasons:         reasons,
		NewTransactions: newCount,
	}
}

func largestOf(txs []model.Transaction) (model.Transaction, bool) {
	if len(txs) == 0 {
		return model.Transaction{}, false
	}
	largest := txs[0]
	for _, tx := range txs[1:] {
		if tx.Amount.GreaterThan(largest.Amount) {
			largest = tx
		}
	}
	return largest, true
}
