package core

import (
	"time"
)

// Instead of implementing full value objects, I'm using some alias types and helper functions here ...

// ItemIDString represents an item identifier
type ItemIDString = string

// PersonIDString represents a person (reader or librarian) identifier
type PersonIDString = string

// CalendarDate represents a day without a time-of-day component
type CalendarDate = time.Time

// LoanPeriodDays is the default number of days an item may be kept after borrowing.
const LoanPeriodDays = 30

// ToCalendarDate truncates a time to its calendar date at UTC midnight.
func ToCalendarDate(t time.Time) CalendarDate {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the signed number of whole calendar days from "from" to "to".
func DaysBetween(from, to time.Time) int {
	return int(ToCalendarDate(to).Sub(ToCalendarDate(from)).Hours() / 24)
}
