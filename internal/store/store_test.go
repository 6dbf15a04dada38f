package store

import (
	"path/filepath"
	"testing"
	"time"

	"cyclet/internal/model"
)

func TestSaveLoadRoundtrip(t *testing.T) {
	s := Store{Dir: t.TempDir()}

	when := time.Date(2099, 6, 1, 0, 0, 0, 0, time.UTC)
	in := &DB{
		Version: 1,
		Cycles: []model.Cycle{
			{StartDate: "2024-01-01", EndDate: "2024-01-05", DurationDays: 4, SpacingDays: 0},
			{StartDate: "2024-01-29", EndDate: "2024-02-02", DurationDays: 4, SpacingDays: 28},
		},
		Logs: []model.DailyLog{
			{Date: "2024-01-02", Symptoms: "cramps", Mood: "tired"},
		},
		Reminders: []model.Reminder{
			{When: when, Message: "refill prescription"},
		},
		Undo: []model.HistoryAction{
			{Kind: model.ActionAdd, Record: model.Cycle{StartDate: "2024-01-29", EndDate: "2024-02-02", DurationDays: 4, SpacingDays: 28}},
		},
		Redo: []model.HistoryAction{
			{Kind: model.ActionDelete, Record: model.Cycle{StartDate: "2023-12-01", EndDate: "2023-12-05", DurationDays: 4}},
		},
	}
	if err := s.Save(in); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Cycles) != 2 || got.Cycles[1].SpacingDays != 28 {
		t.Fatalf("cycles did not roundtrip: %+v", got.Cycles)
	}
	if len(got.Logs) != 1 || got.Logs[0].Symptoms != "cramps" {
		t.Fatalf("logs did not roundtrip: %+v", got.Logs)
	}
	if len(got.Reminders) != 1 || !got.Reminders[0].When.Equal(when) {
		t.Fatalf("reminders did not roundtrip: %+v", got.Reminders)
	}
	if len(got.Undo) != 1 || got.Undo[0].Kind != model.ActionAdd {
		t.Fatalf("undo stack did not roundtrip: %+v", got.Undo)
	}
	if len(got.Redo) != 1 || got.Redo[0].Kind != model.ActionDelete {
		t.Fatalf("redo stack did not roundtrip: %+v", got.Redo)
	}
}

func TestSaveSkipsDerivedReminders(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	in := &DB{
		Version: 1,
		Reminders: []model.Reminder{
			{When: time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC), Message: "manual"},
			{When: time.Date(2099, 2, 1, 0, 0, 0, 0, time.UTC), Message: "Predicted next cycle: 2099-02-01", Derived: true},
		},
	}
	if err := s.Save(in); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Reminders) != 1 || got.Reminders[0].Message != "manual" {
		t.Fatalf("expected only the manual reminder persisted, got %+v", got.Reminders)
	}
}

func TestLoadEmptyStore(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Cycles) != 0 || len(got.Logs) != 0 {
		t.Fatalf("expected empty state, got %+v", got)
	}
}

func TestLegacyCSVImportedOnce(t *testing.T) {
	dir := t.TempDir()
	s := Store{Dir: dir}

	cycles := "2024-01-01,2024-01-05,4,0\nmalformed row\n2024-01-29,2024-02-02,4,28\n"
	logs := "2024-01-02,cramps; headache,tired\n"
	if err := writeFileAtomic(filepath.Join(dir, "cycles.csv"), []byte(cycles)); err != nil {
		t.Fatalf("prep: %v", err)
	}
	if err := writeFileAtomic(filepath.Join(dir, "daily_logs.csv"), []byte(logs)); err != nil {
		t.Fatalf("prep: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Cycles) != 2 {
		t.Fatalf("expected 2 imported cycles, got %+v", got.Cycles)
	}
	if len(got.Logs) != 1 || got.Logs[0].Mood != "tired" {
		t.Fatalf("expected imported log, got %+v", got.Logs)
	}

	// Import is one-time: dropping a cycle and saving must stick even though
	// the legacy CSV still lists both.
	got.Cycles = got.Cycles[:1]
	if err := s.Save(got); err != nil {
		t.Fatalf("save: %v", err)
	}
	again, err := s.Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(again.Cycles) != 1 {
		t.Fatalf("legacy CSV re-imported over saved state: %+v", again.Cycles)
	}
}

func TestLogDayAccumulates(t *testing.T) {
	db := &DB{}

	db.LogDay("2024-01-02", "cramps", "tired")
	db.LogDay("2024-01-02", "headache", "")
	db.LogDay("2024-01-02", "", "better")

	entry, ok := db.FindLog("2024-01-02")
	if !ok {
		t.Fatalf("expected log entry")
	}
	if entry.Symptoms != "cramps; headache" {
		t.Fatalf("expected appended symptoms, got %q", entry.Symptoms)
	}
	if entry.Mood != "better" {
		t.Fatalf("expected replaced mood, got %q", entry.Mood)
	}
	if len(db.Logs) != 1 {
		t.Fatalf("expected a single entry per date, got %d", len(db.Logs))
	}
}
