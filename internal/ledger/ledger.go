package ledger

import (
	"errors"
	"sort"

	"cyclet/internal/dateutil"
	"cyclet/internal/model"
)

// DefaultSpacingDays is the fallback average spacing when no positive spacing
// data exists. It is a domain default (the textbook 28-day cycle), not a
// computed statistic.
const DefaultSpacingDays = 28

var (
	ErrInvalidRange = errors.New("end date is before start date")
	ErrNotFound     = errors.New("no cycle with that start date")
	ErrDuplicate    = errors.New("a cycle with that start date already exists")
)

// Ledger owns the ordered collection of cycles. Storage order is insertion
// order and may diverge from chronological order after undo/redo restores;
// every read path that cares about chronology sorts by start date.
type Ledger struct {
	records []model.Cycle
}

func New(records []model.Cycle) *Ledger {
	l := &Ledger{records: make([]model.Cycle, len(records))}
	copy(l.records, records)
	return l
}

func (l *Ledger) Len() int { return len(l.records) }

// Records returns a copy in storage order, for persistence.
func (l *Ledger) Records() []model.Cycle {
	out := make([]model.Cycle, len(l.records))
	copy(out, l.records)
	return out
}

// Insert validates and appends a new cycle. SpacingDays is computed against
// the chronologically previous cycle by start date, not the last-inserted one;
// a cycle with no predecessor gets the 0 sentinel.
func (l *Ledger) Insert(start, end string) (model.Cycle, error) {
	duration, err := dateutil.DaysBetween(start, end)
	if err != nil {
		return model.Cycle{}, err
	}
	if duration < 0 {
		return model.Cycle{}, ErrInvalidRange
	}
	for _, c := range l.records {
		if c.StartDate == start {
			return model.Cycle{}, ErrDuplicate
		}
	}

	spacing := 0
	if prev, ok := l.predecessorOf(start); ok {
		spacing, err = dateutil.DaysBetween(prev.StartDate, start)
		if err != nil {
			return model.Cycle{}, err
		}
	}

	rec := model.Cycle{
		StartDate:    start,
		EndDate:      end,
		DurationDays: duration,
		SpacingDays:  spacing,
	}
	l.records = append(l.records, rec)
	return rec, nil
}

// DeleteByStart removes the cycle whose start date equals date and returns it,
// so callers can build the inverse action. Other records keep their spacing
// values; undo must be able to restore the deleted record verbatim.
func (l *Ledger) DeleteByStart(date string) (model.Cycle, error) {
	for i, c := range l.records {
		if c.StartDate == date {
			l.records = append(l.records[:i], l.records[i+1:]...)
			return c, nil
		}
	}
	return model.Cycle{}, ErrNotFound
}

// Contains reports whether a cycle with this exact (start, end) identity exists.
func (l *Ledger) Contains(start, end string) bool {
	for _, c := range l.records {
		if c.StartDate == start && c.EndDate == end {
			return true
		}
	}
	return false
}

// RemoveExact removes the cycle matching (start, end) identity, if present.
// Used by undo/redo, which match on identity rather than start date alone.
func (l *Ledger) RemoveExact(start, end string) (model.Cycle, bool) {
	for i, c := range l.records {
		if c.StartDate == start && c.EndDate == end {
			l.records = append(l.records[:i], l.records[i+1:]...)
			return c, true
		}
	}
	return model.Cycle{}, false
}

// Restore appends a record verbatim, preserving its stored spacing. Callers
// (undo/redo) are responsible for the presence guard.
func (l *Ledger) Restore(rec model.Cycle) {
	l.records = append(l.records, rec)
}

// Chronological returns the cycles sorted ascending by start date. The
// internal storage order is left untouched.
func (l *Ledger) Chronological() []model.Cycle {
	out := l.Records()
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate < out[j].StartDate })
	return out
}

// AverageSpacing is the mean of all positive spacing values, truncated toward
// zero. With no positive spacing it falls back to DefaultSpacingDays.
func (l *Ledger) AverageSpacing() int {
	sum, n := 0, 0
	for _, c := range l.records {
		if c.SpacingDays > 0 {
			sum += c.SpacingDays
			n++
		}
	}
	if n == 0 {
		return DefaultSpacingDays
	}
	return sum / n
}

// LatestStart returns the maximum start date across all cycles, independent of
// storage order.
func (l *Ledger) LatestStart() (string, bool) {
	latest := ""
	for _, c := range l.records {
		if c.StartDate > latest {
			latest = c.StartDate
		}
	}
	return latest, latest != ""
}

func (l *Ledger) predecessorOf(start string) (model.Cycle, bool) {
	var best model.Cycle
	found := false
	for _, c := range l.records {
		if c.StartDate >= start {
			continue
		}
		if !found || c.StartDate > best.StartDate {
			best = c
			found = true
		}
	}
	return best, found
}
