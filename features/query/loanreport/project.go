package loanreport

import (
	"github.com/AntonStoeckl/library-circulation-go/core"
)

// Project builds the loan report from the readers.
// This is a pure function with no side effects.
//
// Query Logic:
//
//	INCLUDES: readers with at least one borrowed item, in registration order
//	INCLUDES: per reader, the borrowed items in borrow order with their due dates
//	EXCLUDES: readers without borrowed items
func Project(users []*core.User) QueryResult {
	readers := make([]ReaderLoans, 0)

	for _, user := range users {
		borrowed := user.BorrowedItems()
		if len(borrowed) == 0 {
			continue
		}

		loans := make([]LoanInfo, 0, len(borrowed))
		for _, item := range borrowed {
			loans = append(loans, LoanInfo{
				ItemID:  item.ID(),
				Title:   item.Title(),
				DueDate: item.DueDate(),
			})
		}

		readers = append(readers, ReaderLoans{
			ReaderID: user.ID(),
			Name:     user.FullName(),
			Loans:    loans,
		})
	}

	return QueryResult{
		Readers: readers,
		Count:   len(readers),
	}
}
