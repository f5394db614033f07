package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostingStatus distinguishes provisional charges from confirmed ones.
type PostingStatus string

const (
	// StatusPosted marks a confirmed charge.
	StatusPosted PostingStatus = "posted"
	// StatusPending marks a provisional charge the bank may later
	// re-issue as posted, possibly under a different ID.
	StatusPending PostingStatus = "pending"
)

// Transaction is a single charge. Amount is positive for spend; refunds
// carry a negative amount and are netted verbatim into daily totals.
type Transaction struct {
	ID       string          `toml:"id"`
	Date     time.Time       `toml:"date"`
	Amount   decimal.Decimal `toml:"amount"`
	Merchant string          `toml:"merchant"`
	Category string          `toml:"category"`
	Status   PostingStatus   `toml:"status"`

	// SupersedesID is set only on posted transactions that replace a
	// previously reported pending transaction.
	SupersedesID string `toml:"supersedes_id,omitempty"`
}

// Pending reports whether the transaction is still provisional.
// An unset status means posted.
func (t Transaction) Pending() bool {
	return t.Status == StatusPending
}

// Day returns the calendar day-of-month of the transaction date.
func (t Transaction) Day() int {
	return t.Date.Day()
}

// MonthlyLedger is the persisted transaction record for one calendar
// month. Transactions are unique by ID and ordered by date descending.
type MonthlyLedger struct {
	Month         MonthKey      `toml:"month"`
	LastSyncedAt  time.Time     `toml:"last_synced_at"`
	LastCheckedAt time.Time     `toml:"last_checked_at,omitempty"`
	Transactions  []Transaction `toml:"transactions"`
}

// NewLedger returns an empty ledger for the given month.
func NewLedger(month MonthKey) *MonthlyLedger {
	return &MonthlyLedger{Month: month}
}

// Total sums all transaction amounts in the ledger.
func (l *MonthlyLedger) Total() decimal.Decimal {
	total := decimal.Zero
	for _, tx := range l.Transactions {
		total = total.Add(tx.Amount)
	}
	return total
}

// CumulativeCurve maps day-of-month (1..Days) to cumulative spend
// through that day. Rebuilt on demand; never persisted.
type CumulativeCurve struct {
	Days   int
	Totals map[int]decimal.Decimal
}

// Empty reports whether the curve carries no day entries.
func (c CumulativeCurve) Empty() bool {
	return len(c.Totals) == 0
}

// At returns the cumulative total through the given day.
func (c CumulativeCurve) At(day int) (decimal.Decimal, bool) {
	v, ok := c.Totals[day]
	return v, ok
}

// Final returns the cumulative total through the last day of the month.
func (c CumulativeCurve) Final() decimal.Decimal {
	if v, ok := c.Totals[c.Days]; ok {
		return v
	}
	return decimal.Zero
}
