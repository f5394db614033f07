package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"pacewatch/internal/model"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func tx(id string, day int, amount, category string) model.Transaction {
	return model.Transaction{
		ID:       id,
		Date:     time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC),
		Amount:   dec(amount),
		Merchant: "merchant-" + id,
		Category: category,
		Status:   model.StatusPosted,
	}
}

func settings(target string) model.Settings {
	return model.Settings{MonthlyTarget: dec(target), SyncWindowDays: 7}
}

var noPrior model.CumulativeCurve

func TestCompute_EmptyLedger(t *testing.T) {
	l := model.NewLedger("2026-03")
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	s := Compute(l, settings("3000"), noPrior, now)

	if !s.Spending.Total.IsZero() {
		t.Errorf("Total = %s, want 0", s.Spending.Total)
	}
	if s.Status != model.StatusOnTrack {
		t.Errorf("Status = %q, want on_track", s.Status)
	}
	if len(s.TopCategories) != 0 {
		t.Errorf("TopCategories = %v, want empty", s.TopCategories)
	}
	if len(s.RecentTransactions) != 0 {
		t.Errorf("RecentTransactions = %v, want empty", s.RecentTransactions)
	}
	if s.Period.DaysElapsed != 10 || s.Period.DaysRemaining != 21 {
		t.Errorf("Period = %+v, want 10 elapsed / 21 remaining", s.Period)
	}
}

func TestCompute_StatusBoundary(t *testing.T) {
	// percentUsed 81.25 vs 28/31*100+10 = 100.3: under, on_track.
	now := time.Date(2026, 3, 28, 12, 0, 0, 0, time.UTC)

	l := model.NewLedger("2026-03")
	l.Transactions = []model.Transaction{tx("a", 5, "6500", "rent")}

	s := Compute(l, settings("8000"), noPrior, now)
	if !s.Spending.PercentUsed.Equal(dec("81.3")) {
		t.Errorf("PercentUsed = %s, want 81.3", s.Spending.PercentUsed)
	}
	if s.Status != model.StatusOnTrack {
		t.Errorf("Status = %q, want on_track", s.Status)
	}

	// Same ledger early in the month: 6500/8000 = 81.3% used on day 5,
	// calendar progress 5/31*100+10 = 26.1: crosses into watch.
	early := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)
	s = Compute(l, settings("8000"), noPrior, early)
	if s.Status != model.StatusWatch {
		t.Errorf("Status = %q, want watch", s.Status)
	}
}

func TestCompute_StatusOver(t *testing.T) {
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)

	l := model.NewLedger("2026-03")
	l.Transactions = []model.Transaction{tx("a", 5, "8500", "rent")}

	s := Compute(l, settings("8000"), noPrior, now)
	if s.Status != model.StatusOver {
		t.Errorf("Status = %q, want over", s.Status)
	}
	if !s.Spending.Remaining.Equal(dec("-500")) {
		t.Errorf("Remaining = %s, want -500", s.Spending.Remaining)
	}
}

func TestCompute_NonCurrentMonthFullyElapsed(t *testing.T) {
	l := model.NewLedger("2026-02")
	now := time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC)

	s := Compute(l, settings("3000"), noPrior, now)
	if s.Period.DaysElapsed != 28 {
		t.Errorf("DaysElapsed = %d, want 28 (full month)", s.Period.DaysElapsed)
	}
	if s.Period.DaysRemaining != 0 {
		t.Errorf("DaysRemaining = %d, want 0", s.Period.DaysRemaining)
	}
}

func TestCompute_ZeroTargetShortCircuits(t *testing.T) {
	l := model.NewLedger("2026-03")
	l.Transactions = []model.Transaction{tx("a", 5, "100", "misc")}
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	s := Compute(l, settings("0"), noPrior, now)
	if !s.Spending.PercentUsed.IsZero() {
		t.Errorf("PercentUsed = %s, want 0 for zero target", s.Spending.PercentUsed)
	}
}

func TestCompute_TopCategories(t *testing.T) {
	l := model.NewLedger("2026-03")
	l.Transactions = []model.Transaction{
		tx("a", 1, "50", "groceries"),
		tx("b", 2, "80", "dining"),
		tx("c", 3, "50", "groceries"),
		tx("d", 4, "100", "transport"), // ties with groceries
		tx("e", 5, "10", "coffee"),
		tx("f", 6, "5", "fees"),
		tx("g", 7, "2", "misc"),
	}
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	s := Compute(l, settings("3000"), noPrior, now)

	if len(s.TopCategories) != 5 {
		t.Fatalf("TopCategories len = %d, want 5", len(s.TopCategories))
	}
	// Ledger is date-descending, so "transport" is seen before
	// "groceries"; on the 100-vs-100 tie transport keeps its slot.
	wantOrder := []string{"transport", "groceries", "dining", "coffee", "fees"}
	for i, want := range wantOrder {
		if s.TopCategories[i].Category != want {
			t.Fatalf("TopCategories order = %v, want %v", s.TopCategories, wantOrder)
		}
	}
}

func TestCompute_RecentTransactions(t *testing.T) {
	l := model.NewLedger("2026-03")
	for day := 1; day <= 8; day++ {
		l.Transactions = append(l.Transactions, tx(string(rune('a'+day-1)), day, "10", "misc"))
	}
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	s := Compute(l, settings("3000"), noPrior, now)

	if len(s.RecentTransactions) != 5 {
		t.Fatalf("RecentTransactions len = %d, want 5", len(s.RecentTransactions))
	}
	if s.RecentTransactions[0].Day() != 8 {
		t.Errorf("most recent day = %d, want 8", s.RecentTransactions[0].Day())
	}
	for i := 1; i < len(s.RecentTransactions); i++ {
		if s.RecentTransactions[i].Date.After(s.RecentTransactions[i-1].Date) {
			t.Fatalf("RecentTransactions not date-descending at %d", i)
		}
	}
}

func TestCompute_PaceUsesPriorCurve(t *testing.T) {
	prior := model.CumulativeCurve{Days: 28, Totals: map[int]decimal.Decimal{
		10: dec("1200"),
		28: dec("2800"),
	}}

	l := model.NewLedger("2026-03")
	l.Transactions = []model.Transaction{tx("a", 3, "1000", "rent")}
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	s := Compute(l, settings("3000"), prior, now)

	if s.Pace.Source != model.SourcePriorCurve {
		t.Errorf("Pace.Source = %q, want prior_month_curve", s.Pace.Source)
	}
	if !s.Pace.Expected.Equal(dec("1200")) {
		t.Errorf("Pace.Expected = %s, want 1200", s.Pace.Expected)
	}
	if !s.Pace.Actual.Equal(dec("1000")) {
		t.Errorf("Pace.Actual = %s, want 1000 (spend through day 10)", s.Pace.Actual)
	}
	if s.Pace.Classification != model.PaceAhead {
		t.Errorf("Pace.Classification = %q, want ahead", s.Pace.Classification)
	}
}

func TestCompute_DailyAverage(t *testing.T) {
	l := model.NewLedger("2026-03")
	l.Transactions = []model.Transaction{tx("a", 1, "100", "misc"), tx("b", 2, "50", "misc")}
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

	s := Compute(l, settings("3000"), noPrior, now)
	if !s.Spending.DailyAverage.Equal(dec("37.5")) {
		t.Errorf("DailyAverage = %s, want 37.5", s.Spending.DailyAverage)
	}
}
