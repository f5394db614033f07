package bank

import (
	"encoding/json"
	"time"
)

// AccountSet is the raw bridge response for an account listing.
type AccountSet struct {
	Errors   []string  `json:"errors"`
	Accounts []Account `json:"accounts"`
}

// Account is one bank account with its transactions for the requested
// window.
type Account struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Currency     string            `json:"currency"`
	Balance      string            `json:"balance"`
	Transactions []WireTransaction `json:"transactions"`
}

// WireTransaction is a single transaction as the bridge reports it.
// Amounts are decimal strings from the account's perspective, so
// spending is negative. Posted is kept raw because institutions report
// it as either number or string epoch seconds.
type WireTransaction struct {
	ID          string          `json:"id"`
	Posted      json.RawMessage `json:"posted"`
	Amount      string          `json:"amount"`
	Description string          `json:"description"`
	Pending     bool            `json:"pending"`
	Extra       WireExtra       `json:"extra"`
}

// WireExtra carries institution-specific fields the bridge passes
// through untouched.
type WireExtra struct {
	PendingReferenceID string `json:"pending_reference_id,omitempty"`
}

// FetchResult is the normalized outcome of one bridge fetch.
type FetchResult struct {
	Accounts  []Account
	FetchedAt time.Time
	// Warnings are non-fatal upstream notices the bridge surfaced.
	Warnings []string
}
