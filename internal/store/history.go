// Package store provides a SQLite-backed audit log of check runs.
// It is a display/history surface only; ledgers stay the source of
// truth.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"pacewatch/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// History records the outcome of each check run.
type History struct {
	db *sql.DB
}

// CheckRecord is one logged check run.
type CheckRecord struct {
	ID              int64
	CheckedAt       time.Time
	Month           model.MonthKey
	Total           decimal.Decimal
	Target          decimal.Decimal
	Expected        decimal.Decimal
	Actual          decimal.Decimal
	Classification  model.PaceClass
	PaceSource      model.PaceSource
	Status          model.BudgetStatus
	NewTransactions int
	ShouldAlert     bool
	Reasons         []string
}

// Open opens or creates the history database at the given path.
func Open(dbPath string) (*History, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &History{db: db}, nil
}

// Close closes the history database.
func (h *History) Close() error {
	return h.db.Close()
}

// Record appends the outcome of one check run.
func (h *History) Record(summary model.Summary, decision model.AlertDecision, at time.Time) error {
	reasons, err := json.Marshal(decision.Reasons)
	if err != nil {
		return err
	}

	shouldAlert := 0
	if decision.ShouldAlert {
		shouldAlert = 1
	}

	_, err = h.db.Exec(`INSERT INTO checks
		(checked_at, month, total, target, expected, actual,
		 classification, pace_source, status, new_transactions, should_alert, reasons)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		at.UTC().Format(time.RFC3339),
		summary.Month.String(),
		summary.Spending.Total.String(),
		summary.Spending.Target.String(),
		summary.Pace.Expected.String(),
		summary.Pace.Actual.String(),
		string(summary.Pace.Classification),
		string(summary.Pace.Source),
		string(summary.Status),
		decision.NewTransactions,
		shouldAlert,
		string(reasons),
	)
	return err
}

// Recent returns the latest check records, newest first.
func (h *History) Recent(limit int) ([]CheckRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := h.db.Query(`SELECT
		id, checked_at, month, total, target, expected, actual,
		classification, pace_source, status, new_transactions, should_alert, reasons
		FROM checks ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []CheckRecord
	for rows.Next() {
		var (
			r          CheckRecord
			checkedAt  string
			month      string
			total      string
			target     string
			expected   string
			actual     string
			class      string
			source     string
			status     string
			alertInt   int
			reasonsRaw string
		)
		err := rows.Scan(&r.ID, &checkedAt, &month, &total, &target, &expected, &actual,
			&class, &source, &status, &r.NewTransactions, &alertInt, &reasonsRaw)
		if err != nil {
			return nil, err
		}

		r.CheckedAt, _ = time.Parse(time.RFC3339, checkedAt)
		r.Month = model.MonthKey(month)
		r.Total, _ = decimal.NewFromString(total)
		r.Target, _ = decimal.NewFromString(target)
		r.Expected, _ = decimal.NewFromString(expected)
		r.Actual, _ = decimal.NewFromString(actual)
		r.Classification = model.PaceClass(class)
		r.PaceSource = model.PaceSource(source)
		r.Status = model.BudgetStatus(status)
		r.ShouldAlert = alertInt != 0
		_ = json.Unmarshal([]byte(reasonsRaw), &r.Reasons)

		records = append(records, r)
	}
	return records, rows.Err()
}

// CheckCount returns the number of recorded check runs.
func (h *History) CheckCount() (int, error) {
	var count int
	err := h.db.QueryRow("SELECT COUNT(*) FROM checks").Scan(&count)
	return count, err
}
