// Package ledger owns per-month transaction collections: merging
// incoming batches with dedup and pending/posted reconciliation, and
// the month-keyed document store behind them.
package ledger

import (
	"sort"
	"time"

	"pacewatch/internal/model"
)

// MergeResult reports what a merge changed.
type MergeResult struct {
	// Added is net-new transactions: appended minus superseded
	// removals. A posted charge replacing its pending version counts
	// as zero, since that is not new spending.
	Added int
	// Removed is how many pending transactions were dropped because a
	// posted transaction superseded them.
	Removed int
	// New holds the transactions appended by this merge, in incoming
	// order.
	New []model.Transaction
}

// Merge folds an incoming batch into the ledger. Posted transactions
// carrying a supersedes reference drop the referenced pending entries;
// transactions whose ID is already stored are ignored (stored values
// win). The ledger ends sorted by date descending, stable, and with
// LastSyncedAt set to now.
func Merge(l *model.MonthlyLedger, incoming []model.Transaction, now time.Time) MergeResult {
	var res MergeResult

	superseded := make(map[string]struct{})
	for _, tx := range incoming {
		if !tx.Pending() && tx.SupersedesID != "" {
			superseded[tx.SupersedesID] = struct{}{}
		}
	}

	if len(superseded) > 0 {
		kept := make([]model.Transaction, 0, len(l.Transactions))
		for _, tx := range l.Transactions {
			if _, drop := superseded[tx.ID]; drop {
				res.Removed++
				continue
			}
			kept = append(kept, tx)
		}
		l.Transactions = kept
	}

	seen := make(map[string]struct{}, len(l.Transactions))
	for _, tx := range l.Transactions {
		seen[tx.ID] = struct{}{}
	}

	for _, tx := range incoming {
		if _, dup := seen[tx.ID]; dup {
			continue
		}
		seen[tx.ID] = struct{}{}
		res.New = append(res.New, tx)
	}

	l.Transactions = append(l.Transactions, res.New...)
	sort.SliceStable(l.Transactions, func(i, j int) bool {
		return l.Transactions[i].Date.After(l.Transactions[j].Date)
	})

	res.Added = len(res.New) - res.Removed
	l.LastSyncedAt = now

	return res
}
