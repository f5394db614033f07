package pace

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"pacewatch/internal/model"
)

func monthTx(id string, year int, month time.Month, day int, amount string) model.Transaction {
	return model.Transaction{
		ID:     id,
		Date:   time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		Amount: decimal.RequireFromString(amount),
		Status: model.StatusPosted,
	}
}

func TestBuildCurve_StepFunction(t *testing.T) {
	l := model.NewLedger("2026-03")
	l.Transactions = []model.Transaction{
		monthTx("a", 2026, 3, 1, "100"),
		monthTx("b", 2026, 3, 1, "50"),
		monthTx("c", 2026, 3, 10, "25.50"),
	}

	curve := BuildCurve(l)

	if curve.Days != 31 {
		t.Fatalf("Days = %d, want 31", curve.Days)
	}

	cases := []struct {
		day  int
		want string
	}{
		{1, "150"},
		{2, "150"}, // no spend, carries forward
		{9, "150"},
		{10, "175.5"},
		{31, "175.5"},
	}
	for _, tc := range cases {
		got, ok := curve.At(tc.day)
		if !ok {
			t.Fatalf("curve has no entry for day %d", tc.day)
		}
		if !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Errorf("curve[%d] = %s, want %s", tc.day, got, tc.want)
		}
	}
}

func TestBuildCurve_MonotoneNonDecreasing(t *testing.T) {
	l := model.NewLedger("2026-04")
	l.Transactions = []model.Transaction{
		monthTx("a", 2026, 4, 3, "12.34"),
		monthTx("b", 2026, 4, 7, "0.01"),
		monthTx("c", 2026, 4, 7, "99.99"),
		monthTx("d", 2026, 4, 28, "7"),
	}

	curve := BuildCurve(l)

	prev := decimal.Zero
	for d := 1; d <= curve.Days; d++ {
		v, ok := curve.At(d)
		if !ok {
			t.Fatalf("missing day %d", d)
		}
		if v.LessThan(prev) {
			t.Fatalf("curve decreased at day %d: %s < %s", d, v, prev)
		}
		prev = v
	}
}

func TestBuildCurve_FinalEqualsLedgerTotal(t *testing.T) {
	l := model.NewLedger("2026-05")
	l.Transactions = []model.Transaction{
		monthTx("a", 2026, 5, 1, "10"),
		monthTx("refund", 2026, 5, 15, "-4.25"),
		monthTx("b", 2026, 5, 20, "30"),
	}

	curve := BuildCurve(l)
	if !curve.Final().Equal(l.Total().Round(2)) {
		t.Errorf("Final = %s, want ledger total %s", curve.Final(), l.Total())
	}
}

func TestBuildCurve_LeapFebruary(t *testing.T) {
	if days := model.MonthKey("2028-02").Days(); days != 29 {
		t.Fatalf("2028-02 days = %d, want 29", days)
	}
	if days := model.MonthKey("2026-02").Days(); days != 28 {
		t.Fatalf("2026-02 days = %d, want 28", days)
	}

	l := model.NewLedger("2028-02")
	l.Transactions = []model.Transaction{monthTx("a", 2028, 2, 29, "5")}
	curve := BuildCurve(l)
	if curve.Days != 29 {
		t.Errorf("curve Days = %d, want 29", curve.Days)
	}
	if v, _ := curve.At(29); !v.Equal(decimal.RequireFromString("5")) {
		t.Errorf("curve[29] = %s, want 5", v)
	}
}

func TestBuildCurve_MisdatedRecordClamps(t *testing.T) {
	// A record dated outside the month lands on the nearest valid day
	// instead of vanishing from the totals.
	l := model.NewLedger("2026-02")
	l.Transactions = []model.Transaction{monthTx("stray", 2026, 1, 31, "9")}

	curve := BuildCurve(l)
	if !curve.Final().Equal(decimal.RequireFromString("9")) {
		t.Errorf("Final = %s, want 9", curve.Final())
	}
}

func TestBuildCurve_EmptyLedger(t *testing.T) {
	curve := BuildCurve(model.NewLedger("2026-02"))
	if curve.Empty() {
		t.Fatal("curve over an empty ledger should still cover every day")
	}
	for d := 1; d <= curve.Days; d++ {
		if v, _ := curve.At(d); !v.IsZero() {
			t.Fatalf("curve[%d] = %s, want 0", d, v)
		}
	}
}
