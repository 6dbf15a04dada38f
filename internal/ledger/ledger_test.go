package ledger

import (
	"errors"
	"testing"

	"cyclet/internal/model"
)

func TestInsertSpacing(t *testing.T) {
	l := New(nil)

	first, err := l.Insert("2024-01-01", "2024-01-05")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if first.DurationDays != 4 {
		t.Fatalf("expected duration 4, got %d", first.DurationDays)
	}
	if first.SpacingDays != 0 {
		t.Fatalf("expected sentinel spacing 0 for first cycle, got %d", first.SpacingDays)
	}

	second, err := l.Insert("2024-01-29", "2024-02-02")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if second.SpacingDays != 28 {
		t.Fatalf("expected spacing 28, got %d", second.SpacingDays)
	}
}

func TestInsertSpacingUsesChronologicalPredecessor(t *testing.T) {
	l := New(nil)
	mustInsert(t, l, "2024-01-01", "2024-01-05")
	mustInsert(t, l, "2024-03-01", "2024-03-05")

	// Backfilled entry between the two: spacing is measured from 2024-01-01,
	// not from the last-inserted 2024-03-01.
	mid, err := l.Insert("2024-01-31", "2024-02-04")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if mid.SpacingDays != 30 {
		t.Fatalf("expected spacing 30 from chronological predecessor, got %d", mid.SpacingDays)
	}

	// Backfilled before everything: no predecessor, sentinel 0.
	early, err := l.Insert("2023-12-01", "2023-12-05")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if early.SpacingDays != 0 {
		t.Fatalf("expected sentinel spacing 0, got %d", early.SpacingDays)
	}
}

func TestInsertErrors(t *testing.T) {
	l := New(nil)

	if _, err := l.Insert("2024-01-05", "2024-01-01"); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if _, err := l.Insert("not-a-date", "2024-01-01"); err == nil {
		t.Fatalf("expected parse error")
	}

	mustInsert(t, l, "2024-01-01", "2024-01-05")
	if _, err := l.Insert("2024-01-01", "2024-01-06"); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestDeleteByStart(t *testing.T) {
	l := New(nil)
	mustInsert(t, l, "2024-01-01", "2024-01-05")
	mustInsert(t, l, "2024-01-29", "2024-02-02")

	rec, err := l.DeleteByStart("2024-01-01")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if rec.EndDate != "2024-01-05" {
		t.Fatalf("expected the removed record back, got %+v", rec)
	}
	if l.Len() != 1 {
		t.Fatalf("expected 1 record left, got %d", l.Len())
	}

	// Remaining record keeps its stored spacing untouched.
	if got := l.Records()[0].SpacingDays; got != 28 {
		t.Fatalf("expected surviving spacing 28, got %d", got)
	}

	if _, err := l.DeleteByStart("2024-01-01"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestChronologicalIgnoresStorageOrder(t *testing.T) {
	l := New(nil)
	mustInsert(t, l, "2024-03-01", "2024-03-05")
	mustInsert(t, l, "2024-01-01", "2024-01-05")
	l.Restore(model.Cycle{StartDate: "2024-02-01", EndDate: "2024-02-05"})

	got := l.Chronological()
	want := []string{"2024-01-01", "2024-02-01", "2024-03-01"}
	for i, w := range want {
		if got[i].StartDate != w {
			t.Fatalf("position %d: expected %s, got %s", i, w, got[i].StartDate)
		}
	}

	// Storage order is untouched.
	if l.Records()[0].StartDate != "2024-03-01" {
		t.Fatalf("Chronological mutated storage order")
	}
}

func TestAverageSpacing(t *testing.T) {
	l := New(nil)
	if got := l.AverageSpacing(); got != DefaultSpacingDays {
		t.Fatalf("empty ledger: expected default %d, got %d", DefaultSpacingDays, got)
	}

	mustInsert(t, l, "2024-01-01", "2024-01-05")
	if got := l.AverageSpacing(); got != DefaultSpacingDays {
		t.Fatalf("single cycle: expected default %d, got %d", DefaultSpacingDays, got)
	}

	mustInsert(t, l, "2024-01-29", "2024-02-02") // spacing 28
	mustInsert(t, l, "2024-02-28", "2024-03-03") // spacing 30
	if got := l.AverageSpacing(); got != 29 {
		t.Fatalf("expected average 29, got %d", got)
	}

	// Truncates toward zero: (28+31)/2 = 29.5 -> 29.
	mustInsert(t, l, "2024-03-31", "2024-04-04") // spacing 32
	if got := l.AverageSpacing(); got != (28+30+32)/3 {
		t.Fatalf("expected truncated mean %d, got %d", (28+30+32)/3, got)
	}
}

func TestLatestStart(t *testing.T) {
	l := New(nil)
	if _, ok := l.LatestStart(); ok {
		t.Fatalf("empty ledger should have no latest start")
	}

	mustInsert(t, l, "2024-03-01", "2024-03-05")
	mustInsert(t, l, "2024-01-01", "2024-01-05")
	l.Restore(model.Cycle{StartDate: "2024-02-01", EndDate: "2024-02-05"})

	got, ok := l.LatestStart()
	if !ok || got != "2024-03-01" {
		t.Fatalf("expected latest 2024-03-01, got %q (ok=%v)", got, ok)
	}
}

func TestStats(t *testing.T) {
	l := New(nil)
	if st := l.Stats(); st.Count != 0 {
		t.Fatalf("expected empty stats, got %+v", st)
	}

	mustInsert(t, l, "2024-01-01", "2024-01-05") // duration 4
	mustInsert(t, l, "2024-01-29", "2024-02-03") // duration 5, spacing 28
	mustInsert(t, l, "2024-02-28", "2024-03-02") // duration 3, spacing 30

	st := l.Stats()
	if st.Count != 3 {
		t.Fatalf("expected count 3, got %d", st.Count)
	}
	if st.DurationMin != 3 || st.DurationMax != 5 {
		t.Fatalf("expected duration min/max 3/5, got %d/%d", st.DurationMin, st.DurationMax)
	}
	if st.DurationAvg != 4 {
		t.Fatalf("expected duration avg 4, got %v", st.DurationAvg)
	}
	if st.SpacingSamples != 2 || st.SpacingMin != 28 || st.SpacingMax != 30 || st.SpacingAvg != 29 {
		t.Fatalf("unexpected spacing stats: %+v", st)
	}
}

func mustInsert(t *testing.T, l *Ledger, start, end string) model.Cycle {
	t.Helper()
	rec, err := l.Insert(start, end)
	if err != nil {
		t.Fatalf("insert %s..%s: %v", start, end, err)
	}
	return rec
}
