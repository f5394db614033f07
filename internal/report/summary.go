// Package report compiles a month's ledger into a reporting snapshot.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"pacewatch/internal/model"
	"pacewatch/internal/pace"
)

const maxTopCategories = 5
const maxRecent = 5

var hundred = decimal.NewFromInt(100)

// watchMargin is how many percentage points spending may run ahead of
// calendar progress before status flips from on_track to watch.
var watchMargin = decimal.NewFromInt(10)

// Compute builds the full summary for the ledger's month. now is
// injected rather than read ambiently; a summary for a non-current
// month treats the month as fully elapsed.
func Compute(l *model.MonthlyLedger, settings model.Settings, prior model.CumulativeCurve, now time.Time) model.Summary {
	daysInMonth := l.Month.Days()

	daysElapsed := daysInMonth
	if l.Month.Contains(now) {
		daysElapsed = now.Day()
	}

	total := l.Total().Round(2)
	target := settings.MonthlyTarget

	percentUsed := decimal.Zero
	if target.Sign() > 0 {
		percentUsed = total.Div(target).Mul(hundred).Round(1)
	}

	dailyAverage := decimal.Zero
	if daysElapsed > 0 {
		dailyAverage = total.Div(decimal.NewFromInt(int64(daysElapsed))).Round(2)
	}

	curve := pace.BuildCurve(l)
	actual, _ := curve.At(daysElapsed)

	return model.Summary{
		ComputedAt: now,
		Month:      l.Month,
		Period: model.Period{
			Start:         l.Month.Start(),
			End:           l.Month.End(),
			DaysElapsed:   daysElapsed,
			DaysRemaining: daysInMonth - daysElapsed,
		},
		Spending: model.Spending{
			Total:        total,
			Target:       target.Round(2),
			Remaining:    target.Sub(total).Round(2),
			PercentUsed:  percentUsed,
			DailyAverage: dailyAverage,
		},
		Pace:               pace.Result(daysElapsed, daysInMonth, prior, target, actual),
		Status:             status(total, target, percentUsed, daysElapsed, daysInMonth),
		TopCategories:      topCategories(l.Transactions),
		RecentTransactions: recent(l.Transactions),
	}
}

// status is the linear-only spending signal: over when the target is
// blown, watch when percent used runs more than 10 points ahead of
// calendar progress. Independent of the curve-aware pace class.
func status(total, target, percentUsed decimal.Decimal, daysElapsed, daysInMonth int) model.BudgetStatus {
	if total.GreaterThan(target) {
		return model.StatusOver
	}

	progress := decimal.NewFromInt(int64(daysElapsed)).
		Div(decimal.NewFromInt(int64(daysInMonth))).
		Mul(hundred)
	if percentUsed.GreaterThan(progress.Add(watchMargin)) {
		return model.StatusWatch
	}
	return model.StatusOnTrack
}

// topCategories ranks categories by summed amount, descending, max 5.
// Equal totals keep first-seen order.
func topCategories(txs []model.Transaction) []model.CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	var order []string

	for _, tx := range txs {
		if _, seen := totals[tx.Category]; !seen {
			order = append(order, tx.Category)
		}
		totals[tx.Category] = totals[tx.Category].Add(tx.Amount)
	}

	ranked := make([]model.CategoryTotal, 0, len(order))
	for _, cat := range order {
		ranked = append(ranked, model.CategoryTotal{Category: cat, Total: totals[cat].Round(2)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total.GreaterThan(ranked[j].Total)
	})

	if len(ranked) > maxTopCategories {
		ranked = ranked[:maxTopCategories]
	}
	return ranked
}

// recent returns up to 5 transactions, most recent first. The ledger
// is already date-descending after merge; re-sort anyway so a
// hand-edited document still reports correctly.
func recent(txs []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	if len(out) > maxRecent {
		out = out[:maxRecent]
	}
	return out
}
