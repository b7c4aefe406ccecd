// Package dateutils provides the date layouts and parsing helpers shared by
// the bank and ledger API clients.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Date layouts seen on the wire.
const (
	DateLayoutISO = "2006-01-02"
	// Fio statement dates carry a numeric zone offset but no time of day,
	// e.g. "2024-01-10+0100".
	DateLayoutFioOffset = "2006-01-02-0700"
)

// apiFormats is the list of layouts to try when parsing a date coming from
// one of the remote services.
var apiFormats = []string{
	DateLayoutFioOffset,
	time.RFC3339,
	DateLayoutISO,
}

// ParseAPIDate parses a date string as sent by the Fio statement API or the
// Firefly III transaction list.
func ParseAPIDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range apiFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", value)
}

// ToISODate formats a time value as an ISO date (YYYY-MM-DD).
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}
