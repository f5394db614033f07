package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"pacewatch/internal/model"
)

func tx(id string, day int, amount string) model.Transaction {
	return model.Transaction{
		ID:       id,
		Date:     time.Date(2026, 2, day, 0, 0, 0, 0, time.UTC),
		Amount:   decimal.RequireFromString(amount),
		Merchant: "merchant-" + id,
		Category: "misc",
		Status:   model.StatusPosted,
	}
}

func pendingTx(id string, day int, amount string) model.Transaction {
	t := tx(id, day, amount)
	t.Status = model.StatusPending
	return t
}

func postedReplacing(id, supersedes string, day int, amount string) model.Transaction {
	t := tx(id, day, amount)
	t.SupersedesID = supersedes
	return t
}

func ids(l *model.MonthlyLedger) []string {
	out := make([]string, 0, len(l.Transactions))
	for _, t := range l.Transactions {
		out = append(out, t.ID)
	}
	return out
}

var mergeTime = time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)

func TestMerge_AddsAndSortsDateDescending(t *testing.T) {
	l := model.NewLedger("2026-02")

	res := Merge(l, []model.Transaction{tx("a", 3, "10"), tx("b", 9, "20"), tx("c", 5, "30")}, mergeTime)

	if res.Added != 3 {
		t.Errorf("Added = %d, want 3", res.Added)
	}
	want := []string{"b", "c", "a"}
	got := ids(l)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
	if !l.LastSyncedAt.Equal(mergeTime) {
		t.Errorf("LastSyncedAt = %v, want %v", l.LastSyncedAt, mergeTime)
	}
}

func TestMerge_DuplicateIDKeepsStoredValues(t *testing.T) {
	l := model.NewLedger("2026-02")
	Merge(l, []model.Transaction{tx("a", 3, "10")}, mergeTime)

	changed := tx("a", 3, "99")
	res := Merge(l, []model.Transaction{changed}, mergeTime)

	if res.Added != 0 {
		t.Errorf("Added = %d, want 0", res.Added)
	}
	if len(l.Transactions) != 1 {
		t.Fatalf("transactions = %d, want 1", len(l.Transactions))
	}
	if !l.Transactions[0].Amount.Equal(decimal.RequireFromString("10")) {
		t.Errorf("stored amount = %s, want 10 (original values retained)", l.Transactions[0].Amount)
	}
}

func TestMerge_DuplicateWithinBatch(t *testing.T) {
	// Exact duplicate submission in a single batch collapses to one.
	l := model.NewLedger("2026-02")

	res := Merge(l, []model.Transaction{tx("a", 1, "50"), tx("a", 1, "50")}, mergeTime)
	if res.Added != 1 {
		t.Errorf("first merge Added = %d, want 1", res.Added)
	}
	if len(l.Transactions) != 1 {
		t.Fatalf("transactions = %d, want 1", len(l.Transactions))
	}

	res = Merge(l, []model.Transaction{tx("a", 1, "50"), tx("a", 1, "50")}, mergeTime)
	if res.Added != 0 {
		t.Errorf("resubmit Added = %d, want 0", res.Added)
	}
}

func TestMerge_PendingSupersededByPosted(t *testing.T) {
	l := model.NewLedger("2026-02")
	Merge(l, []model.Transaction{pendingTx("p1", 4, "25")}, mergeTime)

	res := Merge(l, []model.Transaction{postedReplacing("t1", "p1", 4, "25")}, mergeTime)

	if res.Removed != 1 {
		t.Errorf("Removed = %d, want 1", res.Removed)
	}
	if res.Added != 0 {
		t.Errorf("Added = %d, want 0 (replacement is not new spending)", res.Added)
	}
	if len(l.Transactions) != 1 {
		t.Fatalf("transactions = %d, want 1", len(l.Transactions))
	}
	if l.Transactions[0].ID != "t1" {
		t.Errorf("surviving id = %q, want t1", l.Transactions[0].ID)
	}
}

func TestMerge_DanglingSupersedeReference(t *testing.T) {
	// Posted transaction references a pending id that was never stored.
	l := model.NewLedger("2026-02")

	res := Merge(l, []model.Transaction{postedReplacing("t1", "ghost", 4, "25")}, mergeTime)

	if res.Removed != 0 {
		t.Errorf("Removed = %d, want 0", res.Removed)
	}
	if res.Added != 1 {
		t.Errorf("Added = %d, want 1 (one real addition)", res.Added)
	}
}

func TestMerge_EmptyBatchIsNoop(t *testing.T) {
	l := model.NewLedger("2026-02")
	Merge(l, []model.Transaction{tx("a", 3, "10")}, mergeTime)

	res := Merge(l, nil, mergeTime)
	if res.Added != 0 || res.Removed != 0 || len(res.New) != 0 {
		t.Errorf("empty merge = %+v, want all-zero", res)
	}
	if len(l.Transactions) != 1 {
		t.Errorf("transactions = %d, want 1", len(l.Transactions))
	}
}

func TestMerge_Idempotent(t *testing.T) {
	batch := []model.Transaction{
		tx("a", 2, "10"),
		pendingTx("b", 6, "15"),
		tx("c", 9, "20"),
	}

	l := model.NewLedger("2026-02")
	first := Merge(l, batch, mergeTime)
	if first.Added != 3 {
		t.Fatalf("first Added = %d, want 3", first.Added)
	}
	before := ids(l)

	second := Merge(l, batch, mergeTime)
	if second.Added != 0 {
		t.Errorf("second Added = %d, want 0", second.Added)
	}
	after := ids(l)
	if len(before) != len(after) {
		t.Fatalf("ledger size changed: %v -> %v", before, after)
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("ledger order changed: %v -> %v", before, after)
			break
		}
	}
}

func TestMerge_IDsUniqueAfterMerge(t *testing.T) {
	l := model.NewLedger("2026-02")
	Merge(l, []model.Transaction{tx("a", 1, "5"), tx("b", 2, "6")}, mergeTime)
	Merge(l, []model.Transaction{tx("b", 2, "6"), tx("c", 3, "7"), tx("c", 3, "7")}, mergeTime)

	seen := make(map[string]bool)
	for _, id := range ids(l) {
		if seen[id] {
			t.Fatalf("duplicate id %q after merge", id)
		}
		seen[id] = true
	}
}
