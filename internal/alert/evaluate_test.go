package alert

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"pacewatch/internal/model"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// quietSummary triggers nothing on its own.
func quietSummary() model.Summary {
	return model.Summary{
		Month: "2026-03",
		Period: model.Period{
			Start:         time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			End:           time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
			DaysElapsed:   15,
			DaysRemaining: 16,
		},
		Spending: model.Spending{
			Total:     dec("1400"),
			Target:    dec("3000"),
			Remaining: dec("1600"),
		},
		Pace: model.PaceResult{
			Classification: model.PaceOnPace,
			Source:         model.SourcePriorCurve,
		},
		Status: model.StatusOnTrack,
	}
}

func TestEvaluate_QuietMonth(t *testing.T) {
	d := Evaluate(quietSummary(), 0, nil)
	if d.ShouldAlert {
		t.Fatalf("ShouldAlert = true with no triggers, reasons: %v", d.Reasons)
	}
	if len(d.Reasons) != 0 {
		t.Errorf("Reasons = %v, want empty", d.Reasons)
	}
}

func TestEvaluate_NewTransactionsAndOverBudget(t *testing.T) {
	s := quietSummary()
	s.Status = model.StatusOver
	s.Spending.Total = dec("3500")
	s.Spending.Remaining = dec("-500")

	d := Evaluate(s, 3, []model.Transaction{
		{ID: "a", Amount: dec("20"), Merchant: "Cafe"},
		{ID: "b", Amount: dec("450"), Merchant: "Garage"},
		{ID: "c", Amount: dec("30"), Merchant: "Market"},
	})

	if !d.ShouldAlert {
		t.Fatal("ShouldAlert = false, want true")
	}
	// Exactly two reasons: new transactions and over budget. Remaining
	// is -500, outside (0, 500), so no low-remaining reason.
	if len(d.Reasons) != 2 {
		t.Fatalf("Reasons = %v, want exactly 2", d.Reasons)
	}
	if !strings.Contains(d.Reasons[0], "3 new transactions") {
		t.Errorf("Reasons[0] = %q, want new-transaction reason first", d.Reasons[0])
	}
	if !strings.Contains(d.Reasons[0], "450.00") {
		t.Errorf("Reasons[0] = %q, want largest new charge mentioned", d.Reasons[0])
	}
	if !strings.Contains(d.Reasons[1], "over budget") {
		t.Errorf("Reasons[1] = %q, want over-budget reason", d.Reasons[1])
	}
	if d.NewTransactions != 3 {
		t.Errorf("NewTransactions = %d, want 3", d.NewTransactions)
	}
}

func TestEvaluate_SingularNewTransaction(t *testing.T) {
	d := Evaluate(quietSummary(), 1, []model.Transaction{{ID: "a", Amount: dec("5"), Merchant: "Kiosk"}})
	if len(d.Reasons) != 1 {
		t.Fatalf("Reasons = %v, want 1", d.Reasons)
	}
	if !strings.Contains(d.Reasons[0], "1 new transaction ") {
		t.Errorf("Reasons[0] = %q, want singular form", d.Reasons[0])
	}
}

func TestEvaluate_WatchAndOverMutuallyExclusive(t *testing.T) {
	s := quietSummary()
	s.Status = model.StatusWatch

	d := Evaluate(s, 0, nil)
	if len(d.Reasons) != 1 {
		t.Fatalf("Reasons = %v, want 1", d.Reasons)
	}
	if !strings.Contains(d.Reasons[0], "pace elevated") {
		t.Errorf("Reasons[0] = %q, want pace-elevated reason", d.Reasons[0])
	}
}

func TestEvaluate_OverPace(t *testing.T) {
	s := quietSummary()
	s.Pace.Classification = model.PaceBehind
	s.Pace.PercentDelta = dec("14.2")

	d := Evaluate(s, 0, nil)
	if len(d.Reasons) != 1 {
		t.Fatalf("Reasons = %v, want 1", d.Reasons)
	}
	if !strings.Contains(d.Reasons[0], "14.2%") {
		t.Errorf("Reasons[0] = %q, want over-pace percentage", d.Reasons[0])
	}
}

func TestEvaluate_BehindButWithinTenPercentStaysQuiet(t *testing.T) {
	s := quietSummary()
	s.Pace.Classification = model.PaceBehind
	s.Pace.PercentDelta = dec("8")

	d := Evaluate(s, 0, nil)
	if d.ShouldAlert {
		t.Errorf("behind by 8%% should not alert, reasons: %v", d.Reasons)
	}
}

func TestEvaluate_LowRemaining(t *testing.T) {
	tests := []struct {
		name      string
		remaining string
		want      bool
	}{
		{"inside window", "499.99", true},
		{"at ceiling", "500", false},
		{"zero", "0", false},
		{"negative", "-10", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := quietSummary()
			s.Spending.Remaining = dec(tt.remaining)

			d := Evaluate(s, 0, nil)
			if d.ShouldAlert != tt.want {
				t.Errorf("remaining %s: ShouldAlert = %v, want %v (%v)",
					tt.remaining, d.ShouldAlert, tt.want, d.Reasons)
			}
		})
	}
}

func TestEvaluate_EndOfMonth(t *testing.T) {
	s := quietSummary()
	s.Period.DaysElapsed = 29
	s.Period.DaysRemaining = 2

	d := Evaluate(s, 0, nil)
	if len(d.Reasons) != 1 {
		t.Fatalf("Reasons = %v, want 1", d.Reasons)
	}
	if !strings.Contains(d.Reasons[0], "2 days left") {
		t.Errorf("Reasons[0] = %q, want end-of-month reason", d.Reasons[0])
	}
}

func TestEvaluate_NewMonth(t *testing.T) {
	s := quietSummary()
	s.Period.DaysElapsed = 1
	s.Period.DaysRemaining = 30

	d := Evaluate(s, 0, nil)
	if len(d.Reasons) != 1 {
		t.Fatalf("Reasons = %v, want 1", d.Reasons)
	}
	if d.Reasons[0] != "new month started" {
		t.Errorf("Reasons[0] = %q, want new-month reason", d.Reasons[0])
	}
}

func TestEvaluate_ReasonOrderIsEvaluationOrder(t *testing.T) {
	s := quietSummary()
	s.Status = model.StatusWatch
	s.Pace.Classification = model.PaceBehind
	s.Pace.PercentDelta = dec("22")
	s.Spending.Remaining = dec("120")
	s.Period.DaysElapsed = 29
	s.Period.DaysRemaining = 2

	d := Evaluate(s, 2, []model.Transaction{{ID: "a", Amount: dec("60"), Merchant: "Shop"}})

	if len(d.Reasons) != 5 {
		t.Fatalf("Reasons = %v, want 5", d.Reasons)
	}
	wantOrder := []string{"new", "pace elevated", "over expected pace", "remaining", "left in the month"}
	for i, frag := range wantOrder {
		if !strings.Contains(d.Reasons[i], frag) {
			t.Errorf("Reasons[%d] = %q, want fragment %q", i, d.Reasons[i], frag)
		}
	}
}
