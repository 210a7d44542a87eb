// Package reminder turns calendar-less (month, day) deadlines into concrete
// upcoming occurrences relative to a reference date, and classifies them for
// the today/upcoming report. All functions are pure; the store is queried by
// the callers.
package reminder

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ChumaSuey/TaxReminder/pkg/db"
)

// referenceYear is a fixed non-leap year used to validate (month, day) pairs
// without a year context. Feb 29 is rejected on purpose: a deadline that only
// exists every fourth year cannot be expressed here.
const referenceYear = 2023

// ErrInvalidDate marks a (month, day) pair that cannot form a real calendar
// date. Coming out of the store this means an invariant was bypassed by some
// other writer, so it is surfaced rather than skipped.
var ErrInvalidDate = errors.New("invalid calendar date")

// Item is a deadline entry with its computed distance from the reference date.
type Item struct {
	Entry     db.Entry
	DaysUntil int
}

// Report buckets the deadlines that fall inside the horizon window. Today
// preserves store order; Upcoming is sorted ascending by DaysUntil, ties
// keeping their relative store order.
type Report struct {
	Today    []Item
	Upcoming []Item
}

// Empty reports whether nothing falls due inside the window.
func (r Report) Empty() bool {
	return len(r.Today) == 0 && len(r.Upcoming) == 0
}

// ValidateMonthDay rejects (month, day) pairs that do not exist in the
// reference year, e.g. Feb 29, Feb 30 or Apr 31.
func ValidateMonthDay(month, day int) error {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return fmt.Errorf("%w: month %d day %d", ErrInvalidDate, month, day)
	}

	// time.Date normalizes out-of-range days (Feb 30 -> Mar 2), so build the
	// date and check that it round-trips.
	date := time.Date(referenceYear, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if int(date.Month()) != month || date.Day() != day {
		return fmt.Errorf("%w: month %d day %d", ErrInvalidDate, month, day)
	}

	return nil
}

// NextOccurrence maps a (month, day) deadline onto the nearest date on or
// after today: this year if the pair has not yet passed, next year otherwise.
func NextOccurrence(today time.Time, month, day int) (time.Time, error) {
	if err := ValidateMonthDay(month, day); err != nil {
		return time.Time{}, err
	}

	year := today.Year()
	if month < int(today.Month()) || (month == int(today.Month()) && day < today.Day()) {
		year++
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, today.Location()), nil
}

// DaysUntil counts whole days from today to the given occurrence.
func DaysUntil(today, occurrence time.Time) int {
	from := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(occurrence.Year(), occurrence.Month(), occurrence.Day(), 0, 0, 0, 0, time.UTC)

	return int(to.Sub(from).Hours() / 24)
}

// BuildReport classifies entries against a horizon of the given number of
// days: due today, upcoming within the horizon, or out of the window and
// dropped. An entry with an impossible (month, day) fails the whole report
// with ErrInvalidDate.
func BuildReport(today time.Time, horizon int, entries []db.Entry) (Report, error) {
	report := Report{}

	for _, entry := range entries {
		occurrence, err := NextOccurrence(today, entry.Month, entry.Day)
		if err != nil {
			return Report{}, fmt.Errorf("deadline %d in %s: %w", entry.ID, entry.Category, err)
		}

		days := DaysUntil(today, occurrence)

		switch {
		case days == 0:
			report.Today = append(report.Today, Item{Entry: entry})
		case days <= horizon:
			report.Upcoming = append(report.Upcoming, Item{Entry: entry, DaysUntil: days})
		}
	}

	sort.SliceStable(report.Upcoming, func(i, j int) bool {
		return report.Upcoming[i].DaysUntil < report.Upcoming[j].DaysUntil
	})

	return report, nil
}

// Nearest selects the single deadline closest to today across all entries,
// with no horizon; a deadline falling on today itself wins with DaysUntil 0.
// Ties on the same day are broken by category name, then id, so the answer
// does not depend on store iteration order. It returns nil when there are no
// entries.
func Nearest(today time.Time, entries []db.Entry) (*Item, error) {
	var nearest *Item

	for _, entry := range entries {
		occurrence, err := NextOccurrence(today, entry.Month, entry.Day)
		if err != nil {
			return nil, fmt.Errorf("deadline %d in %s: %w", entry.ID, entry.Category, err)
		}

		item := Item{Entry: entry, DaysUntil: DaysUntil(today, occurrence)}

		if nearest == nil || closer(item, *nearest) {
			current := item
			nearest = &current
		}
	}

	return nearest, nil
}

func closer(a, b Item) bool {
	if a.DaysUntil != b.DaysUntil {
		return a.DaysUntil < b.DaysUntil
	}

	if a.Entry.Category != b.Entry.Category {
		return a.Entry.Category < b.Entry.Category
	}

	return a.Entry.ID < b.Entry.ID
}
