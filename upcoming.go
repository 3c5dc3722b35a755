package addressbook

import "time"

const day = 24 * time.Hour

// NextOccurrence returns the first date on or after reference's calendar date
// that falls on b's month and day. Only the year, month and day of reference
// (in its own location) are used; the result is midnight UTC.
//
// A 29 February birthday falls on 28 February in years that are not leap
// years.
func NextOccurrence(b Birthday, reference time.Time) time.Time {
	ref := calendarDate(reference)
	occurrence := occurrenceIn(b, ref.Year())
	if occurrence.Before(ref) {
		occurrence = occurrenceIn(b, ref.Year()+1)
	}
	return occurrence
}

// DaysUntil returns the number of whole days from reference's calendar date to
// NextOccurrence. It is never negative.
func DaysUntil(b Birthday, reference time.Time) int {
	return int(NextOccurrence(b, reference).Sub(calendarDate(reference)) / day)
}

func occurrenceIn(b Birthday, year int) time.Time {
	month, dom := b.date.Month(), b.date.Day()
	if month == time.February && dom == 29 && !isLeap(year) {
		dom = 28
	}
	return time.Date(year, month, dom, 0, 0, 0, 0, time.UTC)
}

func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
