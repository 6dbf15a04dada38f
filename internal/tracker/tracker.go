// Package tracker ties the ledger, history manager, and reminder scheduler
// into one session: every mutation records its inverse action and rebuilds
// the derived reminder, so the queue always reflects current ledger state.
package tracker

import (
	"cyclet/internal/history"
	"cyclet/internal/ledger"
	"cyclet/internal/model"
	"cyclet/internal/remind"
)

type Tracker struct {
	Ledger    *ledger.Ledger
	History   *history.Manager
	Reminders *remind.Scheduler
}

// New assembles a session from persisted state and derives the initial
// prediction reminder.
func New(cycles []model.Cycle, undo, redo []model.HistoryAction, manual []model.Reminder) *Tracker {
	t := &Tracker{
		Ledger:    ledger.New(cycles),
		History:   history.New(undo, redo),
		Reminders: remind.New(manual),
	}
	t.Reminders.Rebuild(t.Ledger)
	return t
}

// AddCycle inserts a cycle, records the inverse action, and refreshes the
// derived reminder.
func (t *Tracker) AddCycle(start, end string) (model.Cycle, error) {
	rec, err := t.Ledger.Insert(start, end)
	if err != nil {
		return model.Cycle{}, err
	}
	t.History.RecordAdd(rec)
	t.Reminders.Rebuild(t.Ledger)
	return rec, nil
}

// DeleteCycle removes the cycle starting at date and records the inverse.
func (t *Tracker) DeleteCycle(date string) (model.Cycle, error) {
	rec, err := t.Ledger.DeleteByStart(date)
	if err != nil {
		return model.Cycle{}, err
	}
	t.History.RecordDelete(rec)
	t.Reminders.Rebuild(t.Ledger)
	return rec, nil
}

func (t *Tracker) Undo() (model.HistoryAction, error) {
	act, err := t.History.Undo(t.Ledger)
	if err != nil {
		return model.HistoryAction{}, err
	}
	t.Reminders.Rebuild(t.Ledger)
	return act, nil
}

func (t *Tracker) Redo() (model.HistoryAction, error) {
	act, err := t.History.Redo(t.Ledger)
	if err != nil {
		return model.HistoryAction{}, err
	}
	t.Reminders.Rebuild(t.Ledger)
	return act, nil
}
