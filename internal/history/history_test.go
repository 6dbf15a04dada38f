package history

import (
	"errors"
	"testing"

	"cyclet/internal/ledger"
	"cyclet/internal/model"
)

func TestUndoAdd(t *testing.T) {
	l := ledger.New(nil)
	m := New(nil, nil)

	rec, err := l.Insert("2024-01-01", "2024-01-05")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	m.RecordAdd(rec)

	act, err := m.Undo(l)
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if act.Kind != model.ActionAdd {
		t.Fatalf("expected add action back, got %q", act.Kind)
	}
	if l.Len() != 0 {
		t.Fatalf("expected empty ledger after undoing add, got %d records", l.Len())
	}
}

func TestUndoDeleteRestoresSpacing(t *testing.T) {
	l := ledger.New(nil)
	m := New(nil, nil)

	mustInsert(t, l, "2024-01-01", "2024-01-05")
	second := mustInsert(t, l, "2024-01-29", "2024-02-02")
	if second.SpacingDays != 28 {
		t.Fatalf("expected spacing 28, got %d", second.SpacingDays)
	}

	removed, err := l.DeleteByStart("2024-01-29")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	m.RecordDelete(removed)

	if _, err := m.Undo(l); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if l.Len() != 2 {
		t.Fatalf("expected 2 records after undo, got %d", l.Len())
	}
	for _, c := range l.Records() {
		if c.StartDate == "2024-01-29" && c.SpacingDays != 28 {
			t.Fatalf("undo did not restore original spacing: got %d", c.SpacingDays)
		}
	}
}

func TestUndoThenRedoIsNoop(t *testing.T) {
	l := ledger.New(nil)
	m := New(nil, nil)

	rec := mustInsert(t, l, "2024-01-01", "2024-01-05")
	m.RecordAdd(rec)
	before := l.Chronological()

	if _, err := m.Undo(l); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if _, err := m.Redo(l); err != nil {
		t.Fatalf("redo: %v", err)
	}

	after := l.Chronological()
	if len(before) != len(after) {
		t.Fatalf("undo+redo changed record count: %d != %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("undo+redo changed record %d: %+v != %+v", i, before[i], after[i])
		}
	}

	// And the redone action is undoable again.
	if _, err := m.Undo(l); err != nil {
		t.Fatalf("undo after redo: %v", err)
	}
	if l.Len() != 0 {
		t.Fatalf("expected empty ledger, got %d records", l.Len())
	}
}

func TestNewActionClearsRedo(t *testing.T) {
	l := ledger.New(nil)
	m := New(nil, nil)

	m.RecordAdd(mustInsert(t, l, "2024-01-01", "2024-01-05"))
	if _, err := m.Undo(l); err != nil {
		t.Fatalf("undo: %v", err)
	}

	m.RecordAdd(mustInsert(t, l, "2024-02-01", "2024-02-05"))

	if _, err := m.Redo(l); !errors.Is(err, ErrEmptyHistory) {
		t.Fatalf("expected ErrEmptyHistory after new action cleared redo, got %v", err)
	}
}

func TestEmptyHistory(t *testing.T) {
	l := ledger.New(nil)
	m := New(nil, nil)

	if _, err := m.Undo(l); !errors.Is(err, ErrEmptyHistory) {
		t.Fatalf("expected ErrEmptyHistory, got %v", err)
	}
	if _, err := m.Redo(l); !errors.Is(err, ErrEmptyHistory) {
		t.Fatalf("expected ErrEmptyHistory, got %v", err)
	}
}

func TestUndoStaleAdd(t *testing.T) {
	l := ledger.New(nil)
	m := New(nil, nil)

	m.RecordAdd(mustInsert(t, l, "2024-01-01", "2024-01-05"))

	// Out-of-band removal: the add-undo target is gone.
	if _, err := l.DeleteByStart("2024-01-01"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := m.Undo(l); !errors.Is(err, ErrStaleState) {
		t.Fatalf("expected ErrStaleState, got %v", err)
	}
	// The stale action must not land on the redo stack.
	if _, err := m.Redo(l); !errors.Is(err, ErrEmptyHistory) {
		t.Fatalf("expected empty redo after stale undo, got %v", err)
	}
}

func TestUndoStaleDelete(t *testing.T) {
	l := ledger.New(nil)
	m := New(nil, nil)

	rec := mustInsert(t, l, "2024-01-01", "2024-01-05")
	removed, err := l.DeleteByStart("2024-01-01")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	m.RecordDelete(removed)

	// Out-of-band re-insert: the delete-undo target is already present.
	l.Restore(rec)

	if _, err := m.Undo(l); !errors.Is(err, ErrStaleState) {
		t.Fatalf("expected ErrStaleState, got %v", err)
	}
}

func TestStacksSurvivePersistenceRoundtrip(t *testing.T) {
	l := ledger.New(nil)
	m := New(nil, nil)
	m.RecordAdd(mustInsert(t, l, "2024-01-01", "2024-01-05"))
	if _, err := m.Undo(l); err != nil {
		t.Fatalf("undo: %v", err)
	}

	// Rebuild the manager from its exported stacks, as the store does.
	m2 := New(m.UndoStack(), m.RedoStack())
	if _, err := m2.Redo(l); err != nil {
		t.Fatalf("redo on rebuilt manager: %v", err)
	}
	if l.Len() != 1 {
		t.Fatalf("expected 1 record after redo, got %d", l.Len())
	}
}

func mustInsert(t *testing.T, l *ledger.Ledger, start, end string) model.Cycle {
	t.Helper()
	rec, err := l.Insert(start, end)
	if err != nil {
		t.Fatalf("insert %s..%s: %v", start, end, err)
	}
	return rec
}
