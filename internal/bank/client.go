// Package bank fetches transaction batches from a SimpleFIN-style
// bridge and maps them onto ledger transactions.
package bank

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"pacewatch/internal/model"
)

const (
	requestTimeout = 15 * time.Second
	maxBodySize    = 4 << 20 // 4 MB
)

var (
	// ErrUnauthorized indicates the access URL credential was rejected.
	ErrUnauthorized = errors.New("bank: unauthorized (access URL expired or revoked)")
	// ErrRateLimited indicates the bridge throttled the request.
	ErrRateLimited = errors.New("bank: rate limited")
)

// Categorizer assigns a category label to a merchant display string.
type Categorizer func(merchant string) string

// Client fetches account data from a bridge access URL. The URL embeds
// basic-auth credentials, so it is treated as a secret.
type Client struct {
	accessURL string
	http      *http.Client
}

// NewClient creates a client for the given access URL.
// Returns nil if the URL is empty or not an absolute https URL.
func NewClient(accessURL string) *Client {
	accessURL = strings.TrimSpace(strings.TrimSuffix(accessURL, "/"))
	if accessURL == "" {
		return nil
	}
	u, err := url.Parse(accessURL)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		return nil
	}
	return &Client{
		accessURL: accessURL,
		http:      &http.Client{},
	}
}

// FetchAccounts returns accounts with transactions posted inside
// [since, until], pending ones included.
func (c *Client) FetchAccounts(ctx context.Context, since, until time.Time) (*FetchResult, error) {
	q := url.Values{}
	q.Set("start-date", strconv.FormatInt(since.Unix(), 10))
	q.Set("end-date", strconv.FormatInt(until.Unix(), 10))
	q.Set("pending", "1")

	body, err := c.get(ctx, "/accounts?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var set AccountSet
	if err := json.Unmarshal(body, &set); err != nil {
		return nil, fmt.Errorf("bank: parsing accounts: %w", err)
	}

	return &FetchResult{
		Accounts:  set.Accounts,
		FetchedAt: time.Now(),
		Warnings:  set.Errors,
	}, nil
}

// get performs an authenticated GET request and returns the body.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.accessURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("bank: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bank: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("bank: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("bank: reading response: %w", err)
	}
	return body, nil
}

// MapTransactions flattens accounts into ledger transactions.
// Bridge amounts are account-perspective (spend negative); they are
// negated so spend is positive and refunds negative. Records with no
// ID, an unparseable amount, or an unparseable date are skipped.
func MapTransactions(accounts []Account, categorize Categorizer) []model.Transaction {
	var out []model.Transaction
	for _, acct := range accounts {
		for _, wt := range acct.Transactions {
			tx, ok := mapOne(wt, categorize)
			if !ok {
				continue
			}
			out = append(out, tx)
		}
	}
	return out
}

func mapOne(wt WireTransaction, categorize Categorizer) (model.Transaction, bool) {
	if wt.ID == "" {
		return model.Transaction{}, false
	}

	amount, err := decimal.NewFromString(wt.Amount)
	if err != nil {
		return model.Transaction{}, false
	}

	posted, ok := parseEpoch(wt.Posted)
	if !ok {
		return model.Transaction{}, false
	}

	status := model.StatusPosted
	if wt.Pending {
		status = model.StatusPending
	}

	category := ""
	if categorize != nil {
		category = categorize(wt.Description)
	}

	tx := model.Transaction{
		ID:       wt.ID,
		Date:     posted,
		Amount:   amount.Neg(),
		Merchant: wt.Description,
		Category: category,
		Status:   status,
	}
	if !wt.Pending {
		tx.SupersedesID = wt.Extra.PendingReferenceID
	}
	return tx, true
}

// parseEpoch parses an epoch-seconds field that may be a JSON number
// or string. The result is truncated to a calendar date.
func parseEpoch(raw json.RawMessage) (time.Time, bool) {
	if len(raw) == 0 {
		return time.Time{}, false
	}

	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return dateOf(n), true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			return dateOf(v), true
		}
	}

	return time.Time{}, false
}

func dateOf(epoch int64) time.Time {
	t := time.Unix(epoch, 0).UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
