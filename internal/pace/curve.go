// Package pace builds cumulative spend curves and computes
// expected-vs-actual spending pace against a prior-month baseline.
package pace

import (
	"github.com/shopspring/decimal"

	"pacewatch/internal/model"
)

// BuildCurve converts a month's ledger into a day-indexed cumulative
// spend curve covering every day of the calendar month. Days without
// transactions carry the prior running total forward, so the curve is
// a step function. Cumulative values are rounded to 2 decimal places
// at each step.
func BuildCurve(l *model.MonthlyLedger) model.CumulativeCurve {
	days := l.Month.Days()
	curve := model.CumulativeCurve{
		Days:   days,
		Totals: make(map[int]decimal.Decimal, days),
	}

	byDay := make(map[int]decimal.Decimal)
	for _, tx := range l.Transactions {
		d := tx.Day()
		// A record dated outside the ledger's month lands on the
		// nearest valid day rather than aborting the build.
		if d < 1 {
			d = 1
		}
		if d > days {
			d = days
		}
		byDay[d] = byDay[d].Add(tx.Amount)
	}

	running := decimal.Zero
	for d := 1; d <= days; d++ {
		running = running.Add(byDay[d]).Round(2)
		curve.Totals[d] = running
	}

	return curve
}
