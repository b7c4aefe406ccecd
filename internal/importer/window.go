package importer

import "time"

const (
	// DefaultLookbackDays bounds the first run, when the ledger holds no
	// previous import to anchor on.
	DefaultLookbackDays = 3000

	// DefaultOverlapDays re-fetches the day before the newest known entry.
	// The overlap absorbs same-day imports and bank posting-date ambiguity;
	// the resulting duplicates are rejected by the ledger, not filtered here.
	DefaultOverlapDays = 1
)

// Window computes the statement date range to request from the bank. now
// must already be in the statement time zone, since Fio statement
// boundaries are date-based in that zone.
func Window(last *time.Time, now time.Time, lookbackDays, overlapDays int) (from, to time.Time) {
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}
	if overlapDays <= 0 {
		overlapDays = DefaultOverlapDays
	}

	if last != nil {
		return last.AddDate(0, 0, -overlapDays), now
	}
	return now.AddDate(0, 0, -lookbackDays), now
}
