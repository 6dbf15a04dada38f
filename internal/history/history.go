package history

import (
	"errors"
	"fmt"

	"cyclet/internal/ledger"
	"cyclet/internal/model"
)

var (
	ErrEmptyHistory = errors.New("nothing to undo or redo")
	// ErrStaleState means the undo/redo target was changed out-of-band: the
	// record an add-undo wants to remove is gone, or the record a delete-undo
	// wants to restore is already back. The popped action is discarded rather
	// than applied against the wrong state.
	ErrStaleState = errors.New("history is stale: ledger changed outside undo/redo")
)

// Manager keeps linear undo/redo history as stacks of inverse actions. Storing
// the inverse action instead of a snapshot keeps memory proportional to the
// number of edits, at the cost of the identity-matched presence guards below.
type Manager struct {
	undo []model.HistoryAction
	redo []model.HistoryAction
}

func New(undo, redo []model.HistoryAction) *Manager {
	m := &Manager{
		undo: make([]model.HistoryAction, len(undo)),
		redo: make([]model.HistoryAction, len(redo)),
	}
	copy(m.undo, undo)
	copy(m.redo, redo)
	return m
}

// UndoStack returns a copy, bottom-first, for persistence.
func (m *Manager) UndoStack() []model.HistoryAction {
	out := make([]model.HistoryAction, len(m.undo))
	copy(out, m.undo)
	return out
}

func (m *Manager) RedoStack() []model.HistoryAction {
	out := make([]model.HistoryAction, len(m.redo))
	copy(out, m.redo)
	return out
}

// RecordAdd notes that rec was just inserted. Any new recorded action clears
// the redo stack: history is linear, no branching timelines.
func (m *Manager) RecordAdd(rec model.Cycle) {
	m.undo = append(m.undo, model.HistoryAction{Kind: model.ActionAdd, Record: rec})
	m.redo = nil
}

func (m *Manager) RecordDelete(rec model.Cycle) {
	m.undo = append(m.undo, model.HistoryAction{Kind: model.ActionDelete, Record: rec})
	m.redo = nil
}

// Undo pops the most recent action and applies its inverse to the ledger:
// an add is removed (by start+end identity), a delete is restored verbatim.
// The action moves to the redo stack only when the inverse actually applied.
func (m *Manager) Undo(l *ledger.Ledger) (model.HistoryAction, error) {
	if len(m.undo) == 0 {
		return model.HistoryAction{}, ErrEmptyHistory
	}
	act := m.undo[len(m.undo)-1]
	m.undo = m.undo[:len(m.undo)-1]

	if err := invert(l, act); err != nil {
		return model.HistoryAction{}, err
	}
	m.redo = append(m.redo, act)
	return act, nil
}

// Redo re-applies the most recently undone action and moves it back onto the
// undo stack. Symmetric inverse of Undo.
func (m *Manager) Redo(l *ledger.Ledger) (model.HistoryAction, error) {
	if len(m.redo) == 0 {
		return model.HistoryAction{}, ErrEmptyHistory
	}
	act := m.redo[len(m.redo)-1]
	m.redo = m.redo[:len(m.redo)-1]

	if err := apply(l, act); err != nil {
		return model.HistoryAction{}, err
	}
	m.undo = append(m.undo, act)
	return act, nil
}

// invert applies the inverse of act: remove an added record, restore a deleted
// one. The presence guards catch out-of-band mutation.
func invert(l *ledger.Ledger, act model.HistoryAction) error {
	switch act.Kind {
	case model.ActionAdd:
		if _, ok := l.RemoveExact(act.Record.StartDate, act.Record.EndDate); !ok {
			return ErrStaleState
		}
		return nil
	case model.ActionDelete:
		if l.Contains(act.Record.StartDate, act.Record.EndDate) {
			return ErrStaleState
		}
		l.Restore(act.Record)
		return nil
	default:
		return fmt.Errorf("unknown history action kind %q", act.Kind)
	}
}

// apply re-applies act as originally performed.
func apply(l *ledger.Ledger, act model.HistoryAction) error {
	switch act.Kind {
	case model.ActionAdd:
		if l.Contains(act.Record.StartDate, act.Record.EndDate) {
			return ErrStaleState
		}
		l.Restore(act.Record)
		return nil
	case model.ActionDelete:
		if _, ok := l.RemoveExact(act.Record.StartDate, act.Record.EndDate); !ok {
			return ErrStaleState
		}
		return nil
	default:
		return fmt.Errorf("unknown history action kind %q", act.Kind)
	}
}
