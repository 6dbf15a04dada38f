package remind

import (
	"fmt"
	"sort"
	"time"

	"cyclet/internal/dateutil"
	"cyclet/internal/ledger"
	"cyclet/internal/model"
	"cyclet/internal/predict"
)

// DefaultListLimit caps reminder listings unless the caller asks for more.
const DefaultListLimit = 10

// Scheduler is a time-ordered reminder queue. Entries are kept in a slice
// sorted ascending by When (stable for equal instants), so listing can peek
// without consuming anything. Expiry is lazy: nothing prunes on a timer,
// PruneExpired runs before every listing.
type Scheduler struct {
	entries []model.Reminder
}

// New builds a scheduler from persisted manual reminders. Derived entries are
// never persisted; call Rebuild afterwards to derive the current one.
func New(manual []model.Reminder) *Scheduler {
	s := &Scheduler{}
	for _, r := range manual {
		r.Derived = false
		s.insert(r)
	}
	return s
}

// Rebuild replaces the single ledger-derived reminder with one at the current
// predicted next start. Must run after every ledger mutation (insert, delete,
// undo, redo); this is the system's only automatic invalidation rule.
func (s *Scheduler) Rebuild(l *ledger.Ledger) {
	kept := s.entries[:0]
	for _, r := range s.entries {
		if !r.Derived {
			kept = append(kept, r)
		}
	}
	s.entries = kept

	next, ok := predict.NextStart(l)
	if !ok {
		return
	}
	when, err := dateutil.ParseDate(next)
	if err != nil {
		return
	}
	s.insert(model.Reminder{
		When:    when,
		Message: fmt.Sprintf("Predicted next cycle: %s", next),
		Derived: true,
	})
}

// AddManual inserts a reminder unconditionally; duplicates are allowed.
func (s *Scheduler) AddManual(when time.Time, message string) model.Reminder {
	r := model.Reminder{When: when, Message: message}
	s.insert(r)
	return r
}

// PruneExpired drops every reminder strictly before now. One-way: expired
// reminders are gone, never resurrected.
func (s *Scheduler) PruneExpired(now time.Time) {
	kept := s.entries[:0]
	for _, r := range s.entries {
		if !r.When.Before(now) {
			kept = append(kept, r)
		}
	}
	s.entries = kept
}

// Upcoming prunes, then returns up to limit reminders in ascending When order.
// The returned slice is a copy; the queue itself is not consumed.
func (s *Scheduler) Upcoming(now time.Time, limit int) []model.Reminder {
	s.PruneExpired(now)
	n := len(s.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]model.Reminder, n)
	copy(out, s.entries[:n])
	return out
}

// Manual returns the non-derived entries, in queue order, for persistence.
func (s *Scheduler) Manual() []model.Reminder {
	var out []model.Reminder
	for _, r := range s.entries {
		if !r.Derived {
			out = append(out, r)
		}
	}
	return out
}

func (s *Scheduler) Len() int { return len(s.entries) }

// insert keeps the slice sorted by When; equal instants stay in insertion
// order (search finds the first slot after all existing equal entries).
func (s *Scheduler) insert(r model.Reminder) {
	i := sort.Search(len(s.entries), func(i int) bool {
		return s.entries[i].When.After(r.When)
	})
	s.entries = append(s.entries, model.Reminder{})
	copy(s.entries[i+1:], s.entries[i:])
	s.entries[i] = r
}
