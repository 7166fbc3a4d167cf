// Package returnitem implements the Return Item use case.
//
// A return is refused while the item is overdue, the loan stays open in that case.
// See package extendloan for moving the due date first.
package returnitem
