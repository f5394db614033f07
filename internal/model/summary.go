package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaceClass classifies actual spend against the expected baseline.
type PaceClass string

const (
	// PaceAhead means spending less than expected by today.
	PaceAhead PaceClass = "ahead"
	// PaceOnPace means spending within the tolerance band.
	PaceOnPace PaceClass = "on_pace"
	// PaceBehind means spending more than expected by today.
	PaceBehind PaceClass = "behind"
)

// PaceSource records which baseline produced the expected value.
type PaceSource string

const (
	// SourcePriorCurve means last month's actual cumulative curve.
	SourcePriorCurve PaceSource = "prior_month_curve"
	// SourceLinearRamp means the uniform-daily-spend fallback.
	SourceLinearRamp PaceSource = "linear_ramp"
)

// PaceResult holds expected vs actual spend for "today".
type PaceResult struct {
	Expected       decimal.Decimal
	Actual         decimal.Decimal
	Delta          decimal.Decimal // actual - expected
	PercentDelta   decimal.Decimal
	Classification PaceClass
	Source         PaceSource
}

// BudgetStatus is the linear-measure spending status, independent of
// the curve-aware pace classification.
type BudgetStatus string

const (
	StatusOnTrack BudgetStatus = "on_track"
	StatusWatch   BudgetStatus = "watch"
	StatusOver    BudgetStatus = "over"
)

// Period describes the calendar span a summary covers.
type Period struct {
	Start         time.Time
	End           time.Time
	DaysElapsed   int
	DaysRemaining int
}

// Spending holds the month's headline budget numbers.
type Spending struct {
	Total        decimal.Decimal
	Target       decimal.Decimal
	Remaining    decimal.Decimal
	PercentUsed  decimal.Decimal
	DailyAverage decimal.Decimal
}

// CategoryTotal is one row of the ranked category breakdown.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// Summary is the full reporting snapshot for one month. Derived
// entirely from a ledger, settings, and an optional prior-month curve.
type Summary struct {
	ComputedAt         time.Time
	Month              MonthKey
	Period             Period
	Spending           Spending
	Pace               PaceResult
	Status             BudgetStatus
	TopCategories      []CategoryTotal
	RecentTransactions []Transaction
}

// AlertDecision is the evaluator's output. Reasons are ordered by
// evaluation order, not priority.
type AlertDecision struct {
	ShouldAlert     bool
	Reasons         []string
	NewTransactions int
}

// Settings holds the budgeting preferences the core computes against.
// Timezone is advisory only; date math runs on supplied calendar dates.
type Settings struct {
	MonthlyTarget  decimal.Decimal
	SyncWindowDays int
	Timezone       string
}
