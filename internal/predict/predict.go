// Package predict projects the next expected cycle start from ledger state.
// It is a pure function of the ledger; nothing here is stored.
package predict

import (
	"time"

	"cyclet/internal/dateutil"
	"cyclet/internal/ledger"
)

// NextStart returns the latest recorded start plus the average spacing.
// ok is false on an empty ledger: there is nothing to project from.
func NextStart(l *ledger.Ledger) (string, bool) {
	latest, ok := l.LatestStart()
	if !ok {
		return "", false
	}
	next, err := dateutil.AddDays(latest, l.AverageSpacing())
	if err != nil {
		// Ledger dates are validated on insert; an unparsable latest start
		// means corrupted state, not a prediction miss.
		return "", false
	}
	return next, true
}

// DaysUntil is the signed day distance from now to date: positive in the
// future, negative in the past. Shared by display and reminder expiry.
func DaysUntil(date string, now time.Time) (int, error) {
	return dateutil.DaysUntil(date, now)
}
