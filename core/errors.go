package core

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyBorrowed is returned when borrowing an item that is not available.
	ErrAlreadyBorrowed = errors.New("item is already borrowed")

	// ErrOverdue is matched by every *OverdueError.
	ErrOverdue = errors.New("item is overdue")

	// ErrNotBorrowed is returned when extending a loan on an item that is not borrowed.
	ErrNotBorrowed = errors.New("item is not borrowed")

	// ErrInvalidArgument is returned for arguments outside their allowed range.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrItemNotFound is returned when the item to process does not exist.
	ErrItemNotFound = errors.New("item does not exist in the catalog")

	// ErrItemUnavailable is returned when a loan is requested for an item that is currently lent.
	ErrItemUnavailable = errors.New("item is currently unavailable")

	// ErrLoanLimitExceeded is returned when a reader already holds the maximum number of items.
	ErrLoanLimitExceeded = errors.New("reader has reached the loan limit")

	// ErrNotBorrowedByUser is returned when a reader returns an item they do not hold.
	ErrNotBorrowedByUser = errors.New("item was not borrowed by this reader")

	// ErrInvalidLoanState is returned when restoring loan state that violates the availability invariant.
	ErrInvalidLoanState = errors.New("invalid loan state")
)

// OverdueError is returned by ReturnItem when the due date has passed.
// The item stays borrowed until the overdue condition is resolved, e.g. by extending the loan.
type OverdueError struct {
	DaysOverdue int
}

// Error implements the error interface.
func (e *OverdueError) Error() string {
	return fmt.Sprintf("%s by %d days", ErrOverdue.Error(), e.DaysOverdue)
}

// Is makes errors.Is(err, ErrOverdue) work for OverdueError values.
func (e *OverdueError) Is(target error) bool {
	return target == ErrOverdue
}
