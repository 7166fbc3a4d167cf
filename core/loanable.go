package core

import (
	"errors"
	"time"
)

// Loanable is the lending capability shared by all catalog items.
//
// Every operation that depends on "today" takes the current time from the caller,
// so the date is evaluated at call time and never snapshotted.
type Loanable interface {
	// Borrow lends the item, the due date becomes today + LoanPeriodDays.
	Borrow(now time.Time) error

	// ReturnItem clears the loan, it fails with an *OverdueError when the item is overdue.
	ReturnItem(now time.Time) error

	// Extend moves the due date by the given number of days.
	Extend(days int) error

	// IsAvailable reports whether the item can be borrowed.
	IsAvailable() bool

	// BorrowDate returns the borrow date, the zero time if the item is not borrowed.
	BorrowDate() CalendarDate

	// DueDate returns the due date, the zero time if the item is not borrowed.
	DueDate() CalendarDate

	// IsOverdue reports whether the due date is strictly before today.
	IsOverdue(now time.Time) bool

	// DaysToReturn returns the signed number of days until the due date, negative when overdue.
	DaysToReturn(now time.Time) int

	// LoanSnapshot exposes the loan state for persistence.
	LoanSnapshot() LoanSnapshot
}

// LoanSnapshot is a plain copy of the loan state of an item.
type LoanSnapshot struct {
	Available  bool
	BorrowDate CalendarDate
	DueDate    CalendarDate
}

// AvailableSnapshot returns the loan state of an item that is on the shelf.
func AvailableSnapshot() LoanSnapshot {
	return LoanSnapshot{Available: true}
}

// BorrowedSnapshot returns the loan state of an item borrowed on the given day.
func BorrowedSnapshot(borrowedAt time.Time) LoanSnapshot {
	borrowDate := ToCalendarDate(borrowedAt)

	return LoanSnapshot{
		Available:  false,
		BorrowDate: borrowDate,
		DueDate:    borrowDate.AddDate(0, 0, LoanPeriodDays),
	}
}

// Validate checks the availability invariant: available iff both dates are unset.
func (s LoanSnapshot) Validate() error {
	if s.Available {
		if !s.BorrowDate.IsZero() || !s.DueDate.IsZero() {
			return errors.Join(ErrInvalidLoanState, errors.New("available item must not have loan dates"))
		}

		return nil
	}

	if s.BorrowDate.IsZero() || s.DueDate.IsZero() {
		return errors.Join(ErrInvalidLoanState, errors.New("borrowed item must have a borrow and a due date"))
	}

	if s.DueDate.Before(s.BorrowDate) {
		return errors.Join(ErrInvalidLoanState, errors.New("due date must not be before the borrow date"))
	}

	return nil
}

// loanState implements Loanable and is embedded into every item variant.
type loanState struct {
	available  bool
	borrowDate CalendarDate
	dueDate    CalendarDate
}

func newLoanState() loanState {
	return loanState{available: true}
}

func restoreLoanState(snapshot LoanSnapshot) (loanState, error) {
	if err := snapshot.Validate(); err != nil {
		return loanState{}, err
	}

	if snapshot.Available {
		return newLoanState(), nil
	}

	return loanState{
		available:  false,
		borrowDate: ToCalendarDate(snapshot.BorrowDate),
		dueDate:    ToCalendarDate(snapshot.DueDate),
	}, nil
}

func (s *loanState) Borrow(now time.Time) error {
	if !s.available {
		return ErrAlreadyBorrowed
	}

	today := ToCalendarDate(now)
	s.available = false
	s.borrowDate = today
	s.dueDate = today.AddDate(0, 0, LoanPeriodDays)

	return nil
}

func (s *loanState) ReturnItem(now time.Time) error {
	if s.IsOverdue(now) {
		return &OverdueError{DaysOverdue: -s.DaysToReturn(now)}
	}

	s.available = true
	s.borrowDate = time.Time{}
	s.dueDate = time.Time{}

	return nil
}

func (s *loanState) Extend(days int) error {
	if days < 0 {
		return errors.Join(ErrInvalidArgument, errors.New("days must not be negative"))
	}

	if s.available {
		return ErrNotBorrowed
	}

	s.dueDate = s.dueDate.AddDate(0, 0, days)

	return nil
}

func (s *loanState) IsAvailable() bool {
	return s.available
}

func (s *loanState) BorrowDate() CalendarDate {
	return s.borrowDate
}

func (s *loanState) DueDate() CalendarDate {
	return s.dueDate
}

func (s *loanState) IsOverdue(now time.Time) bool {
	return !s.dueDate.IsZero() && s.dueDate.Before(ToCalendarDate(now))
}

func (s *loanState) DaysToReturn(now time.Time) int {
	if s.dueDate.IsZero() {
		return 0
	}

	return DaysBetween(now, s.dueDate)
}

func (s *loanState) LoanSnapshot() LoanSnapshot {
	return LoanSnapshot{
		Available:  s.available,
		BorrowDate: s.borrowDate,
		DueDate:    s.dueDate,
	}
}
