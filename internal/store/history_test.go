package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"pacewatch/internal/model"
)

func openTestHistory(t *testing.T) *History {
	t.Helper()
	h, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func sampleSummary() model.Summary {
	return model.Summary{
		Month: "2026-03",
		Spending: model.Spending{
			Total:  decimal.RequireFromString("1234.56"),
			Target: decimal.RequireFromString("3000"),
		},
		Pace: model.PaceResult{
			Expected:       decimal.RequireFromString("1100"),
			Actual:         decimal.RequireFromString("1234.56"),
			Classification: model.PaceBehind,
			Source:         model.SourcePriorCurve,
		},
		Status: model.StatusWatch,
	}
}

func TestHistory_RecordAndRecent(t *testing.T) {
	h := openTestHistory(t)

	at := time.Date(2026, 3, 10, 8, 30, 0, 0, time.UTC)
	decision := model.AlertDecision{
		ShouldAlert:     true,
		Reasons:         []string{"2 new transactions since last check", "spending pace elevated"},
		NewTransactions: 2,
	}

	if err := h.Record(sampleSummary(), decision, at); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := h.Record(sampleSummary(), model.AlertDecision{}, at.Add(time.Hour)); err != nil {
		t.Fatalf("Record: %v", err)
	}

	records, err := h.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}

	// Newest first.
	if records[0].ShouldAlert {
		t.Error("records[0] should be the quiet run")
	}
	r := records[1]
	if !r.CheckedAt.Equal(at) {
		t.Errorf("CheckedAt = %v, want %v", r.CheckedAt, at)
	}
	if r.Month != "2026-03" {
		t.Errorf("Month = %q, want 2026-03", r.Month)
	}
	if !r.Total.Equal(decimal.RequireFromString("1234.56")) {
		t.Errorf("Total = %s, want 1234.56", r.Total)
	}
	if r.Classification != model.PaceBehind || r.PaceSource != model.SourcePriorCurve {
		t.Errorf("pace = %q/%q", r.Classification, r.PaceSource)
	}
	if r.Status != model.StatusWatch {
		t.Errorf("Status = %q, want watch", r.Status)
	}
	if len(r.Reasons) != 2 || r.NewTransactions != 2 {
		t.Errorf("Reasons = %v, NewTransactions = %d", r.Reasons, r.NewTransactions)
	}
	if !r.ShouldAlert {
		t.Error("ShouldAlert = false, want true")
	}
}

func TestHistory_RecentLimit(t *testing.T) {
	h := openTestHistory(t)

	at := time.Now()
	for i := 0; i < 5; i++ {
		if err := h.Record(sampleSummary(), model.AlertDecision{}, at); err != nil {
			t.Fatal(err)
		}
	}

	records, err := h.Recent(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Errorf("records = %d, want 3", len(records))
	}

	count, err := h.CheckCount()
	if err != nil {
		t.Fatal(err)
	}
	if count != 5 {
		t.Errorf("CheckCount = %d, want 5", count)
	}
}
