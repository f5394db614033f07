// Package pipeline orchestrates a full budget check: ledger load, bank
// sync, merge, summary computation, and alert evaluation.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"pacewatch/internal/alert"
	"pacewatch/internal/bank"
	"pacewatch/internal/ledger"
	"pacewatch/internal/model"
	"pacewatch/internal/pace"
	"pacewatch/internal/report"
)

// Fetcher pulls recent account activity from the bank bridge.
type Fetcher interface {
	FetchAccounts(ctx context.Context, since, until time.Time) (*bank.FetchResult, error)
}

// Recorder persists one check outcome to the audit log.
type Recorder interface {
	Record(summary model.Summary, decision model.AlertDecision, at time.Time) error
}

// Checker runs the check pipeline. Fetcher and Recorder are optional;
// a nil Fetcher skips bank sync and a nil Recorder skips the audit log.
type Checker struct {
	Store      ledger.Store
	Fetch      Fetcher
	History    Recorder
	Legacy     ledger.LegacyLoader
	Settings   model.Settings
	Categorize bank.Categorizer
	Now        func() time.Time
}

// CheckResult is everything a single check produced.
type CheckResult struct {
	Ledger   *model.MonthlyLedger
	Merge    ledger.MergeResult
	Summary  model.Summary
	Decision model.AlertDecision
	// Prior is last month's cumulative curve; zero-value when last
	// month has no data.
	Prior    model.CumulativeCurve
	Synced   bool
	Warnings []string
}

// Run executes one check. Bank failures degrade to the stored ledger
// with a warning; store failures are fatal.
func (c *Checker) Run(ctx context.Context) (*CheckResult, error) {
	now := c.now()

	led, err := ledger.GetOrCreateCurrentMonth(c.Store, now, c.Legacy)
	if err != nil {
		return nil, fmt.Errorf("loading ledger: %w", err)
	}

	res := &CheckResult{Ledger: led}

	if c.Fetch != nil {
		res.Merge, res.Synced = c.sync(ctx, led, now, res)
	}

	res.Prior = c.priorCurve(led.Month)
	res.Summary = report.Compute(led, c.Settings, res.Prior, now)
	res.Decision = alert.Evaluate(res.Summary, len(res.Merge.New), res.Merge.New)

	led.LastCheckedAt = now
	if err := c.Store.Save(led); err != nil {
		return nil, fmt.Errorf("saving ledger: %w", err)
	}

	if c.History != nil {
		if err := c.History.Record(res.Summary, res.Decision, now); err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("recording check: %v", err))
		}
	}

	return res, nil
}

// Summarize computes the summary and decision from stored data only:
// no bank sync, no ledger write, no audit row.
func (c *Checker) Summarize(_ context.Context) (*CheckResult, error) {
	now := c.now()

	led, err := ledger.GetOrCreateCurrentMonth(c.Store, now, c.Legacy)
	if err != nil {
		return nil, fmt.Errorf("loading ledger: %w", err)
	}

	res := &CheckResult{Ledger: led}
	res.Prior = c.priorCurve(led.Month)
	res.Summary = report.Compute(led, c.Settings, res.Prior, now)
	res.Decision = alert.Evaluate(res.Summary, 0, nil)
	return res, nil
}

func (c *Checker) sync(ctx context.Context, led *model.MonthlyLedger, now time.Time, res *CheckResult) (ledger.MergeResult, bool) {
	window := c.Settings.SyncWindowDays
	if window <= 0 {
		window = 7
	}
	since := now.AddDate(0, 0, -window)

	fetched, err := c.Fetch.FetchAccounts(ctx, since, now)
	if err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("bank sync failed: %v", err))
		return ledger.MergeResult{}, false
	}
	res.Warnings = append(res.Warnings, fetched.Warnings...)

	incoming := ledger.FilterMonth(bank.MapTransactions(fetched.Accounts, c.Categorize), led.Month)
	return ledger.Merge(led, incoming, now), true
}

// priorCurve returns last month's cumulative curve, or a zero-value
// curve when last month's ledger is absent or has no transactions so
// the pace engine falls back to the linear ramp.
func (c *Checker) priorCurve(month model.MonthKey) model.CumulativeCurve {
	prev, err := c.Store.Load(month.Prev())
	if err != nil || len(prev.Transactions) == 0 {
		return model.CumulativeCurve{}
	}
	return pace.BuildCurve(prev)
}

func (c *Checker) now() time.Time {
	var t time.Time
	if c.Now != nil {
		t = c.Now()
	} else {
		t = time.Now()
	}
	if c.Settings.Timezone != "" {
		if loc, err := time.LoadLocation(c.Settings.Timezone); err == nil {
			t = t.In(loc)
		}
	}
	return t
}
